package repository

import (
	"context"
	"errors"

	"cakeshop-service/apperrors"
	"cakeshop-service/models"

	"gorm.io/gorm"
)

// ComponentRepository defines the interface for catalog component data
// access. One instance serves exactly one kind (type, shape, flavour or
// confit); the contract is identical across kinds.
type ComponentRepository interface {
	Create(ctx context.Context, name, desc string) (*models.Component, error)
	FindByName(ctx context.Context, name string) (*models.Component, error)
	GetOrCreate(ctx context.Context, name, desc string) (*models.Component, error)
	UpdateAvailability(ctx context.Context, id uint, available models.Availability) error
	UpdateDesc(ctx context.Context, name, desc string) error
	Delete(ctx context.Context, id uint) error
	FindAll(ctx context.Context) ([]models.Component, error)
}

// GormComponentRepository implements ComponentRepository using GORM. The
// backing table is bound once at construction; methods never dispatch on a
// kind string.
type GormComponentRepository struct {
	db   *gorm.DB
	kind models.ComponentKind
}

// NewGormComponentRepository creates a repository over the given kind's
// table.
func NewGormComponentRepository(db *gorm.DB, kind models.ComponentKind) ComponentRepository {
	return &GormComponentRepository{db: db, kind: kind}
}

func (r *GormComponentRepository) table(tx *gorm.DB) *gorm.DB {
	return tx.Table(r.kind.TableName())
}

// Create inserts a new component. New components always start with
// available = "no" and must be approved before orders can reference them.
func (r *GormComponentRepository) Create(ctx context.Context, name, desc string) (*models.Component, error) {
	comp := &models.Component{
		Name:      name,
		Desc:      desc,
		Available: models.AvailabilityNo,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.table(tx).Create(comp).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperrors.Conflict("%s %q already exists", r.kind, name)
	}
	if err != nil {
		return nil, err
	}
	return comp, nil
}

// FindByName retrieves a component by its name.
func (r *GormComponentRepository) FindByName(ctx context.Context, name string) (*models.Component, error) {
	var comp models.Component
	err := r.table(r.db.WithContext(ctx)).Where("name = ?", name).First(&comp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("%s %q not found", r.kind, name)
	}
	if err != nil {
		return nil, err
	}
	return &comp, nil
}

// GetOrCreate returns the component with the given name, creating it with
// available = "no" if absent. Idempotent on name; a lost insert race against
// the unique constraint is resolved by re-reading.
func (r *GormComponentRepository) GetOrCreate(ctx context.Context, name, desc string) (*models.Component, error) {
	comp := &models.Component{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := r.table(tx).Where("name = ?", name).First(comp).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		comp.Name = name
		comp.Desc = desc
		comp.Available = models.AvailabilityNo
		return r.table(tx).Create(comp).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return r.FindByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return comp, nil
}

// UpdateAvailability flips the component's availability. Withdrawal is
// irreversible: once a component is "deleted" no further availability change
// is accepted.
func (r *GormComponentRepository) UpdateAvailability(ctx context.Context, id uint, available models.Availability) error {
	if !available.Valid() {
		return apperrors.Validation("invalid availability %q", string(available))
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comp models.Component
		err := r.table(tx).Where("id = ?", id).First(&comp).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("%s %d not found", r.kind, id)
		}
		if err != nil {
			return err
		}
		if comp.Available == models.AvailabilityDeleted {
			return apperrors.InvalidTransition(string(comp.Available), string(available))
		}
		return r.table(tx).Where("id = ?", id).Update("available", available).Error
	})
}

// UpdateDesc changes the description only.
func (r *GormComponentRepository) UpdateDesc(ctx context.Context, name, desc string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := r.table(tx).Where("name = ?", name).Update("desc", desc)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("%s %q not found", r.kind, name)
		}
		return nil
	})
}

// Delete physically removes the row. Administrative cleanup only — the
// catalog-facing removal path is UpdateAvailability to "deleted", which
// keeps the row resolvable for historical orders.
func (r *GormComponentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := r.table(tx).Where("id = ?", id).Delete(&models.Component{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("%s %d not found", r.kind, id)
		}
		return nil
	})
}

// FindAll retrieves every component of the kind.
func (r *GormComponentRepository) FindAll(ctx context.Context) ([]models.Component, error) {
	var comps []models.Component
	if err := r.table(r.db.WithContext(ctx)).Find(&comps).Error; err != nil {
		return nil, err
	}
	return comps, nil
}
