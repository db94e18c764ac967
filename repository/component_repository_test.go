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

type ComponentRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo repository.ComponentRepository
}

func (s *ComponentRepositoryTestSuite) SetupTest() {
	db, err := database.ConnectSQLite(filepath.Join(s.T().TempDir(), "cakeshop_test.db"))
	s.Require().NoError(err)
	s.Require().NoError(models.Migrate(db))

	s.db = db
	s.repo = repository.NewGormComponentRepository(db, models.KindType)
}

func (s *ComponentRepositoryTestSuite) TearDownTest() {
	s.NoError(models.Drop(s.db))
	s.NoError(database.Close(s.db))
}

func TestComponentRepository(t *testing.T) {
	suite.Run(t, new(ComponentRepositoryTestSuite))
}

func (s *ComponentRepositoryTestSuite) TestCreateStartsPendingApproval() {
	ctx := context.Background()

	comp, err := s.repo.Create(ctx, "chocolate", "rich choc cake")
	s.Require().NoError(err)
	s.NotZero(comp.ID)
	s.Equal(models.AvailabilityNo, comp.Available, "new components must await approval")

	found, err := s.repo.FindByName(ctx, "chocolate")
	s.Require().NoError(err)
	s.Equal("chocolate", found.Name)
	s.Equal("rich choc cake", found.Desc)
	s.Equal(models.AvailabilityNo, found.Available)
}

func (s *ComponentRepositoryTestSuite) TestCreateDuplicateIsConflict() {
	ctx := context.Background()

	_, err := s.repo.Create(ctx, "chocolate", "rich choc cake")
	s.Require().NoError(err)

	_, err = s.repo.Create(ctx, "chocolate", "a different desc")
	s.Error(err)
	s.True(apperrors.IsConflict(err))
}

func (s *ComponentRepositoryTestSuite) TestGetOrCreateIsIdempotent() {
	ctx := context.Background()

	first, err := s.repo.GetOrCreate(ctx, "chocolate", "rich choc cake")
	s.Require().NoError(err)

	second, err := s.repo.GetOrCreate(ctx, "chocolate", "ignored")
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.Equal(first.Desc, second.Desc)

	comps, err := s.repo.FindAll(ctx)
	s.Require().NoError(err)
	s.Len(comps, 1, "repeated get-or-create must leave exactly one row")
}

func (s *ComponentRepositoryTestSuite) TestUpdateAvailability() {
	ctx := context.Background()

	comp, err := s.repo.Create(ctx, "chocolate", "rich choc cake")
	s.Require().NoError(err)

	s.Require().NoError(s.repo.UpdateAvailability(ctx, comp.ID, models.AvailabilityYes))

	found, err := s.repo.FindByName(ctx, "chocolate")
	s.Require().NoError(err)
	s.Equal(models.AvailabilityYes, found.Available)
}

func (s *ComponentRepositoryTestSuite) TestWithdrawalIsIrreversible() {
	ctx := context.Background()

	comp, err := s.repo.Create(ctx, "chocolate", "rich choc cake")
	s.Require().NoError(err)

	s.Require().NoError(s.repo.UpdateAvailability(ctx, comp.ID, models.AvailabilityDeleted))

	err = s.repo.UpdateAvailability(ctx, comp.ID, models.AvailabilityYes)
	s.Error(err)
	s.True(apperrors.IsInvalidTransition(err))

	// The row survives withdrawal so historical orders keep resolving.
	found, err := s.repo.FindByName(ctx, "chocolate")
	s.Require().NoError(err)
	s.Equal(models.AvailabilityDeleted, found.Available)
}

func (s *ComponentRepositoryTestSuite) TestUpdateAvailabilityRejectsUnknownValue() {
	ctx := context.Background()

	comp, err := s.repo.Create(ctx, "chocolate", "rich choc cake")
	s.Require().NoError(err)

	err = s.repo.UpdateAvailability(ctx, comp.ID, models.Availability("banana"))
	s.Error(err)
	s.True(apperrors.IsValidation(err), "out-of-range availability must be rejected, got %v", err)

	found, err := s.repo.FindByName(ctx, "chocolate")
	s.Require().NoError(err)
	s.Equal(models.AvailabilityNo, found.Available, "stored value must be untouched")
}

func (s *ComponentRepositoryTestSuite) TestUpdateAvailabilityMissing() {
	err := s.repo.UpdateAvailability(context.Background(), 999, models.AvailabilityYes)
	s.True(apperrors.IsNotFound(err))
}

func (s *ComponentRepositoryTestSuite) TestUpdateDesc() {
	ctx := context.Background()

	_, err := s.repo.Create(ctx, "chocolate", "rich choc cake")
	s.Require().NoError(err)

	s.Require().NoError(s.repo.UpdateDesc(ctx, "chocolate", "even richer"))

	found, err := s.repo.FindByName(ctx, "chocolate")
	s.Require().NoError(err)
	s.Equal("even richer", found.Desc)

	err = s.repo.UpdateDesc(ctx, "missing", "whatever")
	s.True(apperrors.IsNotFound(err))
}

func (s *ComponentRepositoryTestSuite) TestDelete() {
	ctx := context.Background()

	comp, err := s.repo.Create(ctx, "chocolate", "rich choc cake")
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(ctx, comp.ID))

	_, err = s.repo.FindByName(ctx, "chocolate")
	s.True(apperrors.IsNotFound(err))

	err = s.repo.Delete(ctx, comp.ID)
	s.True(apperrors.IsNotFound(err))
}

func (s *ComponentRepositoryTestSuite) TestKindsAreIsolated() {
	ctx := context.Background()
	flavourRepo := repository.NewGormComponentRepository(s.db, models.KindFlavour)

	_, err := s.repo.Create(ctx, "chocolate", "choc type")
	s.Require().NoError(err)

	// Same name in another kind lives in its own table.
	_, err = flavourRepo.Create(ctx, "chocolate", "choc flavour")
	s.Require().NoError(err)

	typeComps, err := s.repo.FindAll(ctx)
	s.Require().NoError(err)
	s.Len(typeComps, 1)

	flavourComps, err := flavourRepo.FindAll(ctx)
	s.Require().NoError(err)
	s.Len(flavourComps, 1)
	s.Equal("choc flavour", flavourComps[0].Desc)
}
