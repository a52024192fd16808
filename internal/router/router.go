package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gradewise-dev/gradewise/internal/config"
	"github.com/gradewise-dev/gradewise/internal/handlers"
	"github.com/gradewise-dev/gradewise/internal/metrics"
	"github.com/gradewise-dev/gradewise/internal/middleware"
	"github.com/gradewise-dev/gradewise/internal/types"
	"github.com/gradewise-dev/gradewise/internal/validation"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	validation.Init()

	r := gin.New()

	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Metrics(),
	)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", types.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", types.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", middleware.WebSocketAuthMiddleware(), handlers.WebSocket(cfg.HTTP.AllowedOrigins))

		api.POST("/register", limiter.Handler(), handlers.Register)
		api.POST("/login", limiter.Handler(), handlers.Login)

		authed := api.Group("", middleware.AuthMiddleware())
		{
			authed.GET("/me", handlers.Me)
			authed.GET("/dashboard", handlers.GetDashboard)
			authed.GET("/analytics", handlers.GetAnalytics)

			authed.POST("/subjects", handlers.CreateSubject)
			authed.GET("/subjects", handlers.ListMySubjects)
			authed.GET("/subjects/:userId", handlers.ListSubjects)
			authed.DELETE("/subjects/:id", handlers.DeleteSubject)

			authed.POST("/scores", handlers.CreateScore)
			authed.GET("/scores", handlers.ListMyScores)
			authed.GET("/scores/:userId", handlers.ListScores)
			authed.DELETE("/scores/:id", handlers.DeleteScore)

			authed.POST("/goals", handlers.CreateGoal)
			authed.GET("/goals", handlers.ListMyGoals)
			authed.GET("/goals/:userId", handlers.ListGoals)
			authed.DELETE("/goals/:id", handlers.DeleteGoal)
		}
	}

	return r
}
