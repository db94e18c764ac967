package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"cakeshop-service/apperrors"
	"cakeshop-service/database"
	"cakeshop-service/models"
	"cakeshop-service/repository"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UserRepositoryTestSuite runs against a throwaway SQLite database per test.
type UserRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo repository.UserRepository
}

func (s *UserRepositoryTestSuite) SetupTest() {
	db, err := database.ConnectSQLite(filepath.Join(s.T().TempDir(), "cakeshop_test.db"))
	s.Require().NoError(err)
	s.Require().NoError(models.Migrate(db))

	s.db = db
	s.repo = repository.NewGormUserRepository(db)
}

func (s *UserRepositoryTestSuite) TearDownTest() {
	s.NoError(models.Drop(s.db))
	s.NoError(database.Close(s.db))
}

func TestUserRepository(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) TestCreateAndFindByID() {
	ctx := context.Background()

	created, err := s.repo.Create(ctx, 42, "alice")
	s.Require().NoError(err)
	s.Equal(int64(42), created.ID)
	s.Equal("alice", created.Username)

	found, err := s.repo.FindByID(ctx, 42)
	s.Require().NoError(err)
	s.Equal(created.ID, found.ID)
	s.Equal(created.Username, found.Username)
}

func (s *UserRepositoryTestSuite) TestCreateDuplicateIsConflict() {
	ctx := context.Background()

	_, err := s.repo.Create(ctx, 42, "alice")
	s.Require().NoError(err)

	_, err = s.repo.Create(ctx, 42, "someone-else")
	s.Error(err)
	s.True(apperrors.IsConflict(err), "duplicate id should be a conflict, got %v", err)
}

func (s *UserRepositoryTestSuite) TestFindMissingIsNotFound() {
	_, err := s.repo.FindByID(context.Background(), 7)
	s.Error(err)
	s.True(apperrors.IsNotFound(err))
}

func (s *UserRepositoryTestSuite) TestUpdateUsername() {
	ctx := context.Background()

	_, err := s.repo.Create(ctx, 42, "alice")
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Update(ctx, 42, "alice2"))

	found, err := s.repo.FindByID(ctx, 42)
	s.Require().NoError(err)
	s.Equal("alice2", found.Username)
}

func (s *UserRepositoryTestSuite) TestUpdateMissingIsNotFound() {
	err := s.repo.Update(context.Background(), 7, "ghost")
	s.Error(err)
	s.True(apperrors.IsNotFound(err))
}

func (s *UserRepositoryTestSuite) TestDelete() {
	ctx := context.Background()

	_, err := s.repo.Create(ctx, 42, "alice")
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(ctx, 42))

	_, err = s.repo.FindByID(ctx, 42)
	s.True(apperrors.IsNotFound(err))

	err = s.repo.Delete(ctx, 42)
	s.True(apperrors.IsNotFound(err), "second delete should report not found")
}

func (s *UserRepositoryTestSuite) TestGetOrCreateIsIdempotent() {
	ctx := context.Background()

	first, err := s.repo.GetOrCreate(ctx, 42, "alice")
	s.Require().NoError(err)

	second, err := s.repo.GetOrCreate(ctx, 42, "ignored-on-second-call")
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.Equal(first.Username, second.Username, "second call must return the existing row untouched")

	users, err := s.repo.FindAll(ctx)
	s.Require().NoError(err)
	s.Len(users, 1, "repeated get-or-create must leave exactly one row")
}

func (s *UserRepositoryTestSuite) TestFindAll() {
	ctx := context.Background()

	_, err := s.repo.Create(ctx, 1, "a")
	s.Require().NoError(err)
	_, err = s.repo.Create(ctx, 2, "b")
	s.Require().NoError(err)

	users, err := s.repo.FindAll(ctx)
	s.Require().NoError(err)
	s.Len(users, 2)
}
