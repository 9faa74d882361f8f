package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/sanjaikannang/Golden-Gate-BackEnd/handlers"
	"github.com/sanjaikannang/Golden-Gate-BackEnd/middleware"
)

func RegisterRoutes(e *echo.Echo, pc *handlers.PropertyController, uc *handlers.UserController) {
	auth := middleware.JWTMiddleware()

	users := e.Group("/users")
	users.POST("/register", uc.Register)
	users.POST("/login", uc.Login)
	users.GET("/profile", uc.GetProfile, auth)

	api := e.Group("/api")
	api.POST("/post-properties", pc.CreateProperty, auth)
	api.GET("/get-properties", pc.GetAllProperties)
	api.GET("/user-properties", pc.GetUserProperties, auth)
	api.PUT("/update-property/:id", pc.UpdateProperty, auth)
	api.DELETE("/delete-property/:id", pc.DeleteProperty, auth)
	api.GET("/property/:id", pc.GetPropertyByID, auth)
	api.POST("/search-properties", pc.SearchProperties)
}
