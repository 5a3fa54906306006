package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/latlong-terrain/internal/config"
	"github.com/jengzang/latlong-terrain/internal/handler"
	"github.com/jengzang/latlong-terrain/internal/middleware"
)

// SetupRouter 设置路由
// The returned stop func releases the rate limiter; call it when the server shuts down.
func SetupRouter(cfg *config.Config, points *handler.PointHandler) (r *gin.Engine, stop func()) {
	r = gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	stop = func() {}
	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
		r.Use(middleware.RateLimit(limiter))
		stop = limiter.Stop
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "latlong terrain API is running",
		})
	})

	// API 路由组
	api := r.Group("/api/v1")
	if cfg.JWTSecret != "" {
		api.Use(middleware.JWTAuth(cfg.JWTSecret))
	} else {
		log.Printf("[Router] JWT_SECRET not set, API is unauthenticated")
	}

	// 坐标点接口
	pointGroup := api.Group("/points")
	{
		pointGroup.GET("", points.ListPoints)
		pointGroup.GET("/road", points.RoadPoints)
		pointGroup.GET("/summary", points.Summary)
		pointGroup.GET("/:id", points.GetPointByID)
	}

	return r, stop
}
