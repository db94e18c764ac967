package controllers

import (
	"net/http"
	"strconv"

	"cakeshop-service/models"
	"cakeshop-service/repository"
	"cakeshop-service/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService *services.OrderService
	orderRepo    repository.OrderRepository
}

func NewOrderController(orderService *services.OrderService, orderRepo repository.OrderRepository) *OrderController {
	return &OrderController{
		orderService: orderService,
		orderRepo:    orderRepo,
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=created finished cancelled"`
}

// CreateOrder places a new order, registering the user on first contact.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, err := oc.orderService.PlaceOrder(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrder returns a single order by id.
func (oc *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := oc.orderRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateStatus moves the order through its lifecycle. Rejected transitions
// report the attempted from/to pair.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, err := oc.orderRepo.UpdateStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeleteOrder hard-deletes an order. Administrative cleanup only.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	if err := oc.orderRepo.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

// GetUserOrders returns all orders placed by one user.
func (oc *OrderController) GetUserOrders(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	orders, err := oc.orderRepo.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// ListOrders returns every order.
func (oc *OrderController) ListOrders(c *gin.Context) {
	orders, err := oc.orderRepo.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

func parseOrderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return 0, false
	}
	return uint(id), true
}
