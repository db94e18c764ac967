package repository

import (
	"context"
	"errors"

	"cakeshop-service/apperrors"
	"cakeshop-service/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, id int64, username string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, username string) error
	Delete(ctx context.Context, id int64) error
	GetOrCreate(ctx context.Context, id int64, username string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
}

// GormUserRepository implements UserRepository using GORM. Every mutating
// method runs inside its own transaction: commit on success, rollback on any
// error.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository.
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user row. The id is caller-supplied.
func (r *GormUserRepository) Create(ctx context.Context, id int64, username string) (*models.User, error) {
	user := &models.User{ID: id, Username: username}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperrors.Conflict("user %d already exists", id)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID retrieves a user by its id.
func (r *GormUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update changes the user's display name.
func (r *GormUserRepository) Update(ctx context.Context, id int64, username string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("id = ?", id).
			Update("username", username)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("user %d not found", id)
		}
		return nil
	})
}

// Delete hard-deletes a user row.
func (r *GormUserRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("user %d not found", id)
		}
		return nil
	})
}

// GetOrCreate returns the user with the given id, creating it if absent.
// Two concurrent callers can both observe "absent"; the unique constraint
// rejects the losing insert, which is treated as "already exists, re-read"
// rather than a failure.
func (r *GormUserRepository) GetOrCreate(ctx context.Context, id int64, username string) (*models.User, error) {
	user := &models.User{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ?", id).First(user).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		user.ID = id
		user.Username = username
		return tx.Create(user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the insert race; the row exists now.
		return r.FindByID(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindAll retrieves every user. Order is not guaranteed.
func (r *GormUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
