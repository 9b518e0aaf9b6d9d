package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abner-serafim/2025-api-arq/internal/apperr"
)

// statusFor maps the service error taxonomy to HTTP. The services themselves
// carry no HTTP semantics; this is the only place the mapping lives.
func statusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindValidation, apperr.KindConflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
