package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/leafcycle/plantcare-backend/internal/services"
)

type AdvisorHandler struct {
  advisorService services.AdvisorService
}

func NewAdvisorHandler(advisorService services.AdvisorService) *AdvisorHandler {
  return &AdvisorHandler{advisorService: advisorService}
}

type imageURLRequest struct {
  ImageURL string `json:"image_url"`
}

type careChatRequest struct {
  PlantID  string `json:"plant_id" binding:"required,uuid"`
  Question string `json:"question"`
}

func (ah *AdvisorHandler) Identify(c *gin.Context) {
  var req imageURLRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    respondError(c, http.StatusBadRequest, err)
    return
  }
  c.JSON(http.StatusOK, ah.advisorService.IdentifyPlant(req.ImageURL))
}

func (ah *AdvisorHandler) Disease(c *gin.Context) {
  var req imageURLRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    respondError(c, http.StatusBadRequest, err)
    return
  }
  c.JSON(http.StatusOK, ah.advisorService.DiagnoseDisease(req.ImageURL))
}

func (ah *AdvisorHandler) Chat(c *gin.Context) {
  var req careChatRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    respondError(c, http.StatusBadRequest, err)
    return
  }
  answer, err := ah.advisorService.CareChat(c.Request.Context(), uuid.MustParse(req.PlantID), req.Question)
  if err != nil {
    // Mirror the original behavior: a missing plant yields a chat
    // answer, not an API error.
    c.JSON(http.StatusOK, gin.H{"answer": "I couldn't find that plant."})
    return
  }
  c.JSON(http.StatusOK, gin.H{"answer": answer})
}
