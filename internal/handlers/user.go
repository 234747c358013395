package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/leafcycle/plantcare-backend/internal/services"
)

type UserHandler struct {
  userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{userService: userService}
}

// GetDemoUser is the auth-free entry point: it returns the well-known
// demo gardener, creating it on first call.
func (uh *UserHandler) GetDemoUser(c *gin.Context) {
  user, err := uh.userService.GetOrCreateDemoUser(c.Request.Context())
  if err != nil {
    respondError(c, statusForError(err), err)
    return
  }
  c.JSON(http.StatusOK, user)
}
