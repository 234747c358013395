package middleware

import (
  "time"
  "github.com/gin-gonic/gin"
  "github.com/leafcycle/plantcare-backend/internal/logger"
)

type RequestLogMiddleware struct {
  log *logger.Logger
}

func NewRequestLogMiddleware(log *logger.Logger) *RequestLogMiddleware {
  middlewareLog := log.With("middleware", "RequestLogMiddleware")
  return &RequestLogMiddleware{log: middlewareLog}
}

// Log emits one structured line per request after the handler chain
// completes.
func (rl *RequestLogMiddleware) Log() gin.HandlerFunc {
  return func(c *gin.Context) {
    start := time.Now()
    c.Next()

    fields := []interface{}{
      "method", c.Request.Method,
      "path", c.FullPath(),
      "status", c.Writer.Status(),
      "latency_ms", time.Since(start).Milliseconds(),
    }
    if len(c.Errors) > 0 {
      fields = append(fields, "errors", c.Errors.String())
    }
    if c.Writer.Status() >= 500 {
      rl.log.Error("Request failed", fields...)
      return
    }
    rl.log.Info("Request handled", fields...)
  }
}
