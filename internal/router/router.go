package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ahaldeman-8thlight/video-class-app/internal/handler"
	"github.com/ahaldeman-8thlight/video-class-app/pkg/constants"
)

// New builds the HTTP router.
func New(
	userHandler *handler.UserHandler,
	classHandler *handler.ClassHandler,
	health *handler.HealthHandler,
	frontendOrigin string,
	logger *zap.Logger,
) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
	}))

	r.GET(constants.PathHealth, health.Health)
	r.GET(constants.PathReady, health.Ready)

	api := r.Group(constants.PathAPI)
	{
		users := api.Group("/users")
		{
			users.POST("/", userHandler.CreateUser)
		}

		classes := api.Group("/classes")
		{
			classes.POST("/", classHandler.CreateClass)
			classes.GET("/", classHandler.ListClasses)
			classes.GET("/:class_id/token", classHandler.GetToken)
			classes.POST("/:class_id/start", classHandler.StartClass)
			classes.POST("/:class_id/end", classHandler.EndClass)
			classes.POST("/:class_id/enroll", classHandler.EnrollStudent)
			classes.GET("/:class_id/enrollments", classHandler.GetEnrollments)
		}
	}

	return r
}

// requestLogger logs one line per request with method, path, status and duration.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
