package main

import (
  "fmt"
  "os"
  "github.com/leafcycle/plantcare-backend/internal/logger"
  "github.com/leafcycle/plantcare-backend/internal/utils"
  "github.com/leafcycle/plantcare-backend/internal/db"
  "github.com/leafcycle/plantcare-backend/internal/engine"
  "github.com/leafcycle/plantcare-backend/internal/repos"
  "github.com/leafcycle/plantcare-backend/internal/services"
  "github.com/leafcycle/plantcare-backend/internal/handlers"
  "github.com/leafcycle/plantcare-backend/internal/middleware"
  "github.com/leafcycle/plantcare-backend/internal/server"
  redisclient "github.com/leafcycle/plantcare-backend/internal/clients/redis"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Engine config
  engineConfigPath := utils.GetEnv("ENGINE_CONFIG_PATH", "", log)
  engineCfg, err := engine.LoadConfig(engineConfigPath, log)
  if err != nil {
    log.Error("Engine config failed to load", "error", err)
    os.Exit(1)
  }
  eng := engine.New(engineCfg)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  templateRepo := repos.NewPlantTemplateRepo(thePG, log)
  plantRepo := repos.NewUserPlantRepo(thePG, log)
  sensorRepo := repos.NewSensorReadingRepo(thePG, log)

  // Template cache (optional)
  var templateCache redisclient.TemplateCache
  if cache, err := redisclient.NewTemplateCache(log); err != nil {
    log.Warn("Template cache disabled", "error", err)
  } else {
    templateCache = cache
    defer cache.Close()
  }

  // Services
  log.Info("Setting up services from main...")
  userService := services.NewUserService(thePG, log, userRepo)
  templateService := services.NewTemplateService(thePG, log, templateRepo, templateCache)
  plantService := services.NewPlantService(thePG, log, eng, plantRepo, templateRepo, userRepo)
  sensorService := services.NewSensorService(thePG, log, eng, plantRepo, templateRepo, sensorRepo)
  advisorService := services.NewAdvisorService(thePG, log, plantRepo, templateRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  systemHandler := handlers.NewSystemHandler(log, thePG)
  userHandler := handlers.NewUserHandler(userService)
  templateHandler := handlers.NewTemplateHandler(templateService)
  plantHandler := handlers.NewPlantHandler(plantService)
  sensorHandler := handlers.NewSensorHandler(sensorService)
  advisorHandler := handlers.NewAdvisorHandler(advisorService)

  // Middleware
  requestLog := middleware.NewRequestLogMiddleware(log)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    RequestLog:      requestLog,
    SystemHandler:   systemHandler,
    UserHandler:     userHandler,
    TemplateHandler: templateHandler,
    PlantHandler:    plantHandler,
    SensorHandler:   sensorHandler,
    AdvisorHandler:  advisorHandler,
  })

  port := utils.GetEnv("PORT", "8000", log)
  log.Info("Server listening", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
  }
}
