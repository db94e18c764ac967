package services

import (
	"context"

	"cakeshop-service/models"
	"cakeshop-service/repository"
)

// PlaceOrderRequest is the inbound payload for placing an order. Binding
// tags bound field lengths and enum values before the repositories run.
type PlaceOrderRequest struct {
	UserID    int64  `json:"user_id" binding:"required"`
	Username  string `json:"username" binding:"max=64"`
	TypeID    uint   `json:"type_id" binding:"required"`
	ShapeID   *uint  `json:"shape_id"`
	FlavourID uint   `json:"flavour_id" binding:"required"`
	ConfitID  *uint  `json:"confit_id"`
	Comment   string `json:"comment" binding:"max=512"`
	Delivery  string `json:"delivery" binding:"required,oneof=delivery pickup"`
}

// OrderService composes the user and order repositories for order placement.
type OrderService struct {
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(userRepo repository.UserRepository, orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{
		userRepo:  userRepo,
		orderRepo: orderRepo,
	}
}

// PlaceOrder registers the user if needed, then records the order. The two
// steps run as independent transactions: a failure creating the order leaves
// the committed user row in place, but neither step is ever half-written.
func (s *OrderService) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*models.Order, error) {
	user, err := s.userRepo.GetOrCreate(ctx, req.UserID, req.Username)
	if err != nil {
		return nil, err
	}

	return s.orderRepo.Create(ctx, repository.CreateOrderParams{
		UserID:    user.ID,
		TypeID:    req.TypeID,
		ShapeID:   req.ShapeID,
		FlavourID: req.FlavourID,
		ConfitID:  req.ConfitID,
		Comment:   req.Comment,
		Delivery:  models.DeliveryMethod(req.Delivery),
	})
}
