package router

import (
	"github.com/gin-gonic/gin"

	"github.com/threadcap/threadcap/internal/cache"
	"github.com/threadcap/threadcap/internal/config"
	publichandlers "github.com/threadcap/threadcap/internal/http/handlers/public"
	"github.com/threadcap/threadcap/internal/logger"
	"github.com/threadcap/threadcap/internal/provider"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.Z()
	if cfg.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	handler := publichandlers.NewHandler(c)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	orderRateLimit := RateLimitRule{
		Prefix:        "threadcap:rate:orders",
		WindowSeconds: int(cfg.Security.RateLimit.Window.Seconds()),
		MaxRequests:   cfg.Security.RateLimit.Limit,
	}

	apiV1 := r.Group("/api/v1")
	{
		products := apiV1.Group("/products")
		{
			products.GET("", handler.ListProducts)
			products.POST("", handler.CreateProduct)
			products.GET("/:id", handler.GetProduct)
			products.PUT("/:id", handler.UpdateProduct)
			products.DELETE("/:id", handler.DeleteProduct)
		}

		cart := apiV1.Group("/cart")
		{
			cart.GET("", handler.GetCart)
			cart.POST("/items", handler.UpsertCartItem)
		}

		orders := apiV1.Group("/orders")
		if cfg.Security.RateLimit.Enabled {
			orders.Use(RateLimitMiddleware(cache.Client(), orderRateLimit, KeyByIP))
		}
		{
			orders.POST("", handler.SubmitOrder)
		}
	}

	return r
}
