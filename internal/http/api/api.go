package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is returned by endpoint handlers and rendered as {"error": Message}.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string { return e.Message }

type HandlerFunc func(ctx *gin.Context) (any, *APIError)

// ResolveEndpoint adapts a HandlerFunc to gin, writing the result as JSON.
func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}
