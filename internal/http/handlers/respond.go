package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error bodies are flat {code, message, ...} rather than nested; the
// browser and terminal clients both key off "message" directly.
func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	body := gin.H{
		"code":    code,
		"message": message,
	}

	if id := requestIDFrom(ctx); id != "" {
		body["requestId"] = id
	}

	if details != nil {
		body["details"] = details
	}

	ctx.JSON(status, body)
}

func requestIDFrom(ctx *gin.Context) string {
	v, ok := ctx.Get("request_id")

	if ok {
		s, ok := v.(string)
		if ok && s != "" {
			return s
		}
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, details)
}

func RespondInvalidInput(ctx *gin.Context, details interface{}) {
	// the auth endpoints report malformed input as 401, matching the
	// contract the front-end was written against
	RespondError(ctx, http.StatusUnauthorized, "invalid_input", "Input is invalid. Some elements are null or empty.", details)
}

func RespondUnAuthorized(ctx *gin.Context, code, message string) {
	RespondError(ctx, http.StatusUnauthorized, code, message, nil)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, "internal_error", message, nil)
}
