package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/levelup-dev/levelup/internal/handlers"
	"github.com/levelup-dev/levelup/internal/middleware"
	"github.com/levelup-dev/levelup/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/events/:event_id", middleware.AuthMiddleware(), handlers.EventAttendanceSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", handlers.Logout)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		gameTypes := api.Group("/gametypes", middleware.AuthMiddleware())
		{
			gameTypes.GET("", handlers.ListGameTypes)
			gameTypes.GET("/:game_type_id", handlers.GetGameType)
			gameTypes.POST("", handlers.CreateGameType)
			gameTypes.PUT("/:game_type_id", handlers.UpdateGameType)
			gameTypes.DELETE("/:game_type_id", handlers.DeleteGameType)
		}

		games := api.Group("/games", middleware.AuthMiddleware())
		{
			games.GET("", handlers.ListGames)
			games.GET("/:game_id", handlers.GetGame)
			games.POST("", handlers.CreateGame)
			games.PUT("/:game_id", handlers.UpdateGame)
			games.DELETE("/:game_id", handlers.DeleteGame)
		}

		events := api.Group("/events", middleware.AuthMiddleware())
		{
			events.GET("", handlers.ListEvents)
			events.GET("/:event_id", handlers.GetEvent)
			events.POST("", handlers.CreateEvent)
			events.PUT("/:event_id", handlers.UpdateEvent)
			events.DELETE("/:event_id", handlers.DeleteEvent)

			// Attendance actions
			events.POST("/:event_id/signup", handlers.SignupEvent)
			events.DELETE("/:event_id/leave", handlers.LeaveEvent)
		}

		reports := api.Group("/reports", middleware.AuthMiddleware())
		{
			reports.GET("/events-by-user", handlers.EventsByUser)
		}
	}

	return r
}
