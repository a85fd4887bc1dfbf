package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/soleworks/soleworks-api/config"
)

// ErrorRecovery normalizes panics and unhandled failures into the uniform
// response envelope. The raw error is echoed only in development mode; a bad
// request never crashes the process.
func ErrorRecovery(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("%v", r)
				zap.L().Error("unhandled error in request handler",
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Error(err))

				response := gin.H{
					"status":  "error",
					"message": "Internal server error",
				}
				if cfg.IsDevelopment() {
					response["error"] = err.Error()
				}

				c.AbortWithStatusJSON(http.StatusInternalServerError, response)
			}
		}()

		c.Next()
	}
}
