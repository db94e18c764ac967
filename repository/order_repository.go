package repository

import (
	"context"
	"errors"

	"cakeshop-service/apperrors"
	"cakeshop-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// orderTransitions is the allowed set of status changes. Finished and
// cancelled are terminal.
var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderCreated:   {models.OrderFinished, models.OrderCancelled},
	models.OrderFinished:  {},
	models.OrderCancelled: {},
}

func transitionAllowed(from, to models.OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CreateOrderParams carries the fields of a new order. Shape and confit are
// optional; everything else is required.
type CreateOrderParams struct {
	UserID    int64
	TypeID    uint
	ShapeID   *uint
	FlavourID uint
	ConfitID  *uint
	Comment   string
	Delivery  models.DeliveryMethod
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(ctx context.Context, params CreateOrderParams) (*models.Order, error)
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error)
	Delete(ctx context.Context, id uint) error
	FindByUserID(ctx context.Context, userID int64) ([]models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository.
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// Create validates every referenced row and inserts the order with status
// "created" in a single transaction: the user must exist and each referenced
// component must be available for ordering. Nothing is inserted when any
// check fails.
func (r *GormOrderRepository) Create(ctx context.Context, params CreateOrderParams) (*models.Order, error) {
	// The delivery column is constrained to its literal value set; the
	// repository is the last line of defence, not the binding layer.
	if !params.Delivery.Valid() {
		return nil, apperrors.Validation("invalid delivery method %q", string(params.Delivery))
	}

	order := &models.Order{
		OrderNumber: uuid.NewString(),
		UserID:      params.UserID,
		TypeID:      params.TypeID,
		ShapeID:     params.ShapeID,
		FlavourID:   params.FlavourID,
		ConfitID:    params.ConfitID,
		Comment:     params.Comment,
		Delivery:    params.Delivery,
		Status:      models.OrderCreated,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("id = ?", params.UserID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperrors.Validation("user %d does not exist", params.UserID)
		}

		if err := checkComponent(tx, models.KindType, params.TypeID); err != nil {
			return err
		}
		if err := checkComponent(tx, models.KindFlavour, params.FlavourID); err != nil {
			return err
		}
		if params.ShapeID != nil {
			if err := checkComponent(tx, models.KindShape, *params.ShapeID); err != nil {
				return err
			}
		}
		if params.ConfitID != nil {
			if err := checkComponent(tx, models.KindConfit, *params.ConfitID); err != nil {
				return err
			}
		}

		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// checkComponent verifies that the referenced catalog row exists and is
// orderable (available = "yes").
func checkComponent(tx *gorm.DB, kind models.ComponentKind, id uint) error {
	var count int64
	err := tx.Table(kind.TableName()).
		Where("id = ? AND available = ?", id, models.AvailabilityYes).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return apperrors.Validation("%s %d is not available for ordering", kind, id)
	}
	return nil
}

// FindByID retrieves an order by its id.
func (r *GormOrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("order %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus moves the order to a new status after checking the transition
// table. The read and the write share one transaction so the guard cannot be
// bypassed by a concurrent update.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	order := &models.Order{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ?", id).First(order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("order %d not found", id)
		}
		if err != nil {
			return err
		}
		if !transitionAllowed(order.Status, status) {
			return apperrors.InvalidTransition(string(order.Status), string(status))
		}
		return tx.Model(order).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Delete hard-deletes an order row. Administrative cleanup only; the normal
// lifecycle ends in a terminal status instead.
func (r *GormOrderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&models.Order{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("order %d not found", id)
		}
		return nil
	})
}

// FindByUserID retrieves all orders placed by a user. An unknown user simply
// yields an empty slice; the caller decides whether that is an error.
func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID int64) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll retrieves every order.
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
