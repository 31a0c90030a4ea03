package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lojaweb/catalog/internal/validation"
)

type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	if s := ctx.GetString("request_id"); s != "" {
		return s
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	ctx.JSON(status, gin.H{
		"error": APIError{
			Code:      code,
			Message:   message,
			RequestID: requestIDFrom(ctx),
			Details:   details,
		},
	})
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, details)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil)
}

func RespondConflict(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusConflict, "conflict", message, nil)
}

// RespondValidation is the single 422 contract for every store backend:
// the body always carries the full field list.
func RespondValidation(ctx *gin.Context, errs validation.Errors) {
	RespondError(ctx, http.StatusUnprocessableEntity, "validation_failed", "One or more fields are invalid", gin.H{"fields": errs})
}

// RespondStorage surfaces the underlying cause after the operation name.
func RespondStorage(ctx *gin.Context, op string, err error) {
	RespondError(ctx, http.StatusInternalServerError, "storage_error", op+": "+err.Error(), nil)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, "internal_error", message, nil)
}
