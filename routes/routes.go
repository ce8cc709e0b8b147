package routes

import (
	"walkinplus-backend/config"
	"walkinplus-backend/controllers"
	"walkinplus-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/reset-password", controllers.ResetPassword)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		api.GET("/home", controllers.Home)

		// Walk-in dashboard
		walkins := api.Group("/walkins")
		{
			walkins.GET("", controllers.GetWalkinDashboard)
			walkins.POST("", controllers.PostWalkinAction)
		}

		// Management dashboard
		management := api.Group("/management")
		{
			management.GET("", controllers.GetManagementDashboard)
			management.POST("", controllers.PostManagementForm)
		}
	}

	return r
}
