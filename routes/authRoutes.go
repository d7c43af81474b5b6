package routes

import (
	"rastha-be/controllers"
	"rastha-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine, ctl *controllers.AuthController) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", ctl.RegisterUser)
		auth.POST("/login", ctl.LoginUser)
		auth.POST("/logout", middlewares.AuthMiddleware(), ctl.LogoutUser)
		auth.GET("/me", middlewares.AuthMiddleware(), ctl.GetMe)
	}
}
