package middleware

import (
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID propagates the caller's X-Request-ID or assigns a fresh one, so
// every log line of a request can be correlated.
func RequestID() gin.HandlerFunc {
  return func(c *gin.Context) {
    requestID := c.GetHeader(RequestIDHeader)
    if requestID == "" {
      requestID = uuid.NewString()
    }
    c.Set("request_id", requestID)
    c.Writer.Header().Set(RequestIDHeader, requestID)
    c.Next()
  }
}
