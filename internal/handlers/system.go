package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "gorm.io/gorm"
  "github.com/leafcycle/plantcare-backend/internal/logger"
)

type SystemHandler struct {
  log *logger.Logger
  db  *gorm.DB
}

func NewSystemHandler(log *logger.Logger, db *gorm.DB) *SystemHandler {
  return &SystemHandler{log: log.With("handler", "SystemHandler"), db: db}
}

func (sh *SystemHandler) Root(c *gin.Context) {
  c.JSON(http.StatusOK, gin.H{"message": "Digital Plant Growth & Care System API running"})
}

func HealthCheck(c *gin.Context) {
  c.String(http.StatusOK, "ok")
}

// Schema lists the persisted model names for builder/viewer UIs.
func (sh *SystemHandler) Schema(c *gin.Context) {
  c.JSON(http.StatusOK, gin.H{
    "models": []string{
      "User",
      "PlantTemplate",
      "UserPlant",
      "SensorReading",
    },
  })
}

// TestDatabase reports connectivity and the visible tables, for the
// ops smoke-test page.
func (sh *SystemHandler) TestDatabase(c *gin.Context) {
  response := gin.H{
    "backend":           "running",
    "database":          "not available",
    "connection_status": "not connected",
    "tables":            []string{},
  }
  if sh.db == nil {
    c.JSON(http.StatusOK, response)
    return
  }

  sqlDB, err := sh.db.DB()
  if err != nil {
    response["database"] = "error: " + err.Error()
    c.JSON(http.StatusOK, response)
    return
  }
  if err := sqlDB.PingContext(c.Request.Context()); err != nil {
    response["database"] = "error: " + err.Error()
    c.JSON(http.StatusOK, response)
    return
  }
  response["database"] = "available"
  response["connection_status"] = "connected"

  var tables []string
  if err := sh.db.WithContext(c.Request.Context()).
    Raw(`SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename`).
    Scan(&tables).Error; err != nil {
    sh.log.Warn("Could not list tables", "error", err)
  } else {
    response["tables"] = tables
  }
  c.JSON(http.StatusOK, response)
}
