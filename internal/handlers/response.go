package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "gorm.io/gorm"
  "github.com/leafcycle/plantcare-backend/internal/engine"
  "github.com/leafcycle/plantcare-backend/internal/repos"
)

func respondError(c *gin.Context, status int, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, gin.H{"error": msg})
}

// statusForError maps the service-layer error taxonomy onto HTTP:
// unknown actions and bad references are client faults, version
// conflicts mean the caller should retry, everything else is a 500.
func statusForError(err error) int {
  switch {
  case errors.Is(err, engine.ErrUnknownAction):
    return http.StatusBadRequest
  case errors.Is(err, gorm.ErrRecordNotFound):
    return http.StatusNotFound
  case errors.Is(err, repos.ErrVersionConflict):
    return http.StatusConflict
  default:
    return http.StatusInternalServerError
  }
}
