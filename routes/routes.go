package routes

import (
	"cakeshop-service/controllers"

	"github.com/gin-gonic/gin"
)

// Register wires the REST surface onto the engine.
func Register(r *gin.Engine, uc *controllers.UserController, oc *controllers.OrderController, cc *controllers.ComponentController) {
	users := r.Group("/user")
	users.POST("", uc.Register)
	users.GET("", uc.ListUsers)
	users.GET("/:id", uc.GetUser)
	users.PUT("/:id", uc.UpdateUsername)
	users.DELETE("/:id", uc.DeleteUser)

	orders := r.Group("/order")
	orders.POST("", oc.CreateOrder)
	orders.GET("", oc.ListOrders)
	orders.GET("/:id", oc.GetOrder)
	orders.PUT("/:id", oc.UpdateStatus)
	orders.DELETE("/:id", oc.DeleteOrder)
	orders.GET("/user/:user_id", oc.GetUserOrders)

	components := r.Group("/component/:kind")
	components.POST("", cc.AddComponent)
	components.GET("", cc.ListComponents)
	components.GET("/:name", cc.GetComponent)
	components.PUT("", cc.UpdateDescription)
	components.PUT("/:id", cc.UpdateAvailability)
	components.DELETE("/:id", cc.DeleteComponent)
}
