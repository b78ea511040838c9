package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/freelance-tracker-api/internal/errors"
	"go.uber.org/zap"
)

// Recovery turns a panicking handler into a 500 response and logs the stack.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		panic("Recovery requires a non-nil zap.Logger instance")
	}
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered",
					zap.Any("error", err),
					zap.String("stacktrace", string(debug.Stack())),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)

				// Avoid a second WriteHeader when the handler already responded
				if !c.Writer.Written() {
					apierrors.InternalError(c, "")
					return
				}
				c.Abort()
			}
		}()

		c.Next()
	}
}
