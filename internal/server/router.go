package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/leafcycle/plantcare-backend/internal/handlers"
  "github.com/leafcycle/plantcare-backend/internal/middleware"
)

type RouterConfig struct {
  RequestLog      *middleware.RequestLogMiddleware
  SystemHandler   *handlers.SystemHandler
  UserHandler     *handlers.UserHandler
  TemplateHandler *handlers.TemplateHandler
  PlantHandler    *handlers.PlantHandler
  SensorHandler   *handlers.SensorHandler
  AdvisorHandler  *handlers.AdvisorHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.New()
  router.Use(gin.Recovery())
  if cfg.RequestLog != nil {
    router.Use(cfg.RequestLog.Log())
  }

  // Open CORS with credentials; the demo frontend can live anywhere.
  router.Use(cors.New(cors.Config{
    AllowOriginFunc:  func(origin string) bool { return true },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  // System
  router.GET("/", cfg.SystemHandler.Root)
  router.GET("/healthcheck", handlers.HealthCheck)
  router.GET("/test", cfg.SystemHandler.TestDatabase)
  router.GET("/schema", cfg.SystemHandler.Schema)

  api := router.Group("/api")
  {
    // Users
    api.GET("/users/demo", cfg.UserHandler.GetDemoUser)

    // Plant templates
    api.GET("/templates", cfg.TemplateHandler.List)
    api.POST("/templates", cfg.TemplateHandler.Create)
    api.POST("/templates/seed", cfg.TemplateHandler.Seed)

    // User plants
    api.POST("/plants", cfg.PlantHandler.Create)
    api.GET("/plants", cfg.PlantHandler.List)
    api.GET("/plants/:id", cfg.PlantHandler.Get)
    api.POST("/plants/:id/care", cfg.PlantHandler.Care)
    api.POST("/growth/run", cfg.PlantHandler.RunGrowth)

    // Advisor ("AI") stubs
    api.POST("/ai/identify", cfg.AdvisorHandler.Identify)
    api.POST("/ai/disease", cfg.AdvisorHandler.Disease)
    api.POST("/ai/chat", cfg.AdvisorHandler.Chat)

    // IoT ingest
    api.POST("/iot/sensor", cfg.SensorHandler.Ingest)
  }

  return router
}
