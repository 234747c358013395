package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/leafcycle/plantcare-backend/internal/services"
)

type SensorHandler struct {
  sensorService services.SensorService
}

func NewSensorHandler(sensorService services.SensorService) *SensorHandler {
  return &SensorHandler{sensorService: sensorService}
}

type sensorIngestRequest struct {
  PlantID  string   `json:"plant_id" binding:"required,uuid"`
  Moisture *float64 `json:"moisture"`
  Temp     *float64 `json:"temp"`
  Light    *float64 `json:"light"`
  Humidity *float64 `json:"humidity"`
}

func (sh *SensorHandler) Ingest(c *gin.Context) {
  var req sensorIngestRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    respondError(c, http.StatusBadRequest, err)
    return
  }

  plant, err := sh.sensorService.Ingest(c.Request.Context(), services.SensorInput{
    PlantID:     uuid.MustParse(req.PlantID),
    Moisture:    req.Moisture,
    Temperature: req.Temp,
    Humidity:    req.Humidity,
    Light:       req.Light,
  })
  if err != nil {
    respondError(c, statusForError(err), err)
    return
  }
  c.JSON(http.StatusOK, plant)
}
