package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/leafcycle/plantcare-backend/internal/engine"
  "github.com/leafcycle/plantcare-backend/internal/services"
)

type PlantHandler struct {
  plantService services.PlantService
}

func NewPlantHandler(plantService services.PlantService) *PlantHandler {
  return &PlantHandler{plantService: plantService}
}

type createPlantRequest struct {
  UserID     string `json:"user_id" binding:"required,uuid"`
  TemplateID string `json:"template_id" binding:"required,uuid"`
  Nickname   string `json:"nickname" binding:"required"`
}

type careActionRequest struct {
  Type string `json:"type" binding:"required"`
}

func (ph *PlantHandler) Create(c *gin.Context) {
  var req createPlantRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    respondError(c, http.StatusBadRequest, err)
    return
  }
  ownerID := uuid.MustParse(req.UserID)
  templateID := uuid.MustParse(req.TemplateID)

  plant, err := ph.plantService.Create(c.Request.Context(), ownerID, templateID, req.Nickname)
  if err != nil {
    // Bad owner/template references are client faults, per the
    // original API shape.
    respondError(c, http.StatusBadRequest, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"_id": plant.ID})
}

func (ph *PlantHandler) List(c *gin.Context) {
  ownerID, err := uuid.Parse(c.Query("user_id"))
  if err != nil {
    respondError(c, http.StatusBadRequest, err)
    return
  }
  plants, err := ph.plantService.ListByOwner(c.Request.Context(), ownerID)
  if err != nil {
    respondError(c, statusForError(err), err)
    return
  }
  c.JSON(http.StatusOK, plants)
}

func (ph *PlantHandler) Get(c *gin.Context) {
  plantID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    respondError(c, http.StatusBadRequest, err)
    return
  }
  plant, err := ph.plantService.Get(c.Request.Context(), plantID)
  if err != nil {
    respondError(c, statusForError(err), err)
    return
  }
  c.JSON(http.StatusOK, plant)
}

func (ph *PlantHandler) Care(c *gin.Context) {
  plantID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    respondError(c, http.StatusBadRequest, err)
    return
  }
  var req careActionRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    respondError(c, http.StatusBadRequest, err)
    return
  }

  plant, xp, err := ph.plantService.Care(c.Request.Context(), plantID, engine.ActionType(req.Type))
  if err != nil {
    respondError(c, statusForError(err), err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"plant": plant, "xp_awarded": xp})
}

// RunGrowth advances time for all of one user's plants.
func (ph *PlantHandler) RunGrowth(c *gin.Context) {
  ownerID, err := uuid.Parse(c.Query("user_id"))
  if err != nil {
    respondError(c, http.StatusBadRequest, err)
    return
  }
  updated, err := ph.plantService.RunGrowthTick(c.Request.Context(), ownerID)
  if err != nil {
    respondError(c, statusForError(err), err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"updated": updated})
}
