package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"inventario/internal/domain"
	"inventario/internal/http/middleware"
)

func respondError(c *gin.Context, status int, code, message string, details any) {
	payload := gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	}
	if details != nil {
		payload["details"] = details
	}
	c.JSON(status, payload)
}

// RespondDomainError mapea la taxonomía de errores de dominio a HTTP.
// El detalle de los errores internos solo se expone en modo debug.
func (h *Handlers) RespondDomainError(c *gin.Context, err error) {
	var vErr domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondError(c, http.StatusBadRequest, "validation_error", vErr.Error(), vErr.Details)
	case domain.IsInvalidID(err):
		respondError(c, http.StatusBadRequest, "invalid_id", "ID de item inválido", nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	default:
		var details any
		if h.Env.Debug {
			details = err.Error()
		}
		respondError(c, http.StatusInternalServerError, "internal_error", "Error interno del servidor", details)
	}
}
