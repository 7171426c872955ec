package server

import (
	"net/http"
	"time"

	"dr-failover-lambda/internal/config"
	"dr-failover-lambda/internal/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the local harness router around the container's handler
func NewRouter(c *Container) *gin.Engine {
	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(c.Logger))
	router.Use(middleware.ErrorHandler(c.Logger))

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
			"mode":      config.GetDeploymentMode(),
		})
	})

	router.POST("/invoke",
		middleware.RateLimiter(c.Config.RateLimit.RequestsPerSecond, c.Config.RateLimit.Burst, c.Logger),
		c.DRHandler.Invoke,
	)

	return router
}
