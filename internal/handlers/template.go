package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/leafcycle/plantcare-backend/internal/services"
)

type TemplateHandler struct {
  templateService services.TemplateService
}

func NewTemplateHandler(templateService services.TemplateService) *TemplateHandler {
  return &TemplateHandler{templateService: templateService}
}

// createTemplateRequest mirrors the data-model ranges at the edge so
// out-of-range values never reach the service. Optional numeric fields
// are pointers so their defaults survive binding.
type createTemplateRequest struct {
  TemplateName     string   `json:"template_name" binding:"required"`
  ScientificName   *string  `json:"scientific_name"`
  IdealMoisture    *int     `json:"ideal_moisture" binding:"required,min=0,max=100"`
  IdealLight       *int     `json:"ideal_light" binding:"required,min=0,max=100"`
  IdealTemperature *int     `json:"ideal_temperature" binding:"omitempty,min=0,max=60"`
  GrowthDays       *int     `json:"growth_days" binding:"omitempty,min=1,max=3650"`
  Instructions     *string  `json:"instructions"`
  ExampleImages    []string `json:"example_images"`
}

func (th *TemplateHandler) List(c *gin.Context) {
  templates, err := th.templateService.List(c.Request.Context())
  if err != nil {
    respondError(c, statusForError(err), err)
    return
  }
  c.JSON(http.StatusOK, templates)
}

func (th *TemplateHandler) Create(c *gin.Context) {
  var req createTemplateRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    respondError(c, http.StatusBadRequest, err)
    return
  }

  in := services.CreateTemplateInput{
    TemplateName:     req.TemplateName,
    ScientificName:   req.ScientificName,
    IdealMoisture:    *req.IdealMoisture,
    IdealLight:       *req.IdealLight,
    IdealTemperature: 24,
    GrowthDays:       120,
    Instructions:     req.Instructions,
    ExampleImages:    req.ExampleImages,
  }
  if req.IdealTemperature != nil {
    in.IdealTemperature = *req.IdealTemperature
  }
  if req.GrowthDays != nil {
    in.GrowthDays = *req.GrowthDays
  }

  template, err := th.templateService.Create(c.Request.Context(), in)
  if err != nil {
    respondError(c, http.StatusBadRequest, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"_id": template.ID})
}

func (th *TemplateHandler) Seed(c *gin.Context) {
  count, err := th.templateService.Seed(c.Request.Context())
  if err != nil {
    respondError(c, statusForError(err), err)
    return
  }
  if count == 0 {
    c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Templates already seeded"})
    return
  }
  c.JSON(http.StatusOK, gin.H{"status": "ok", "count": count})
}
