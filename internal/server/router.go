package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/lunchline/canteen-backend/internal/handlers"
  "github.com/lunchline/canteen-backend/internal/middleware"
)

type RouterConfig struct {
  OrderHandler *handlers.OrderHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  router.Use(middleware.RequestID())

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "Idempotency-Key", "X-Request-ID"},
    AllowCredentials: true,
  }))

  router.GET("/healthcheck", handlers.HealthCheck)

  api := router.Group("/api")
  {
    api.POST("/orders", cfg.OrderHandler.CreateOrder)
    api.GET("/orders/:id", cfg.OrderHandler.GetOrder)
  }

  return router
}
