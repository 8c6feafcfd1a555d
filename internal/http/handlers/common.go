package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError asegura que el body exista y se pueda parsear.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "validation_error", "body vacío", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "payload inválido", err.Error())
		return false
	}
	return true
}
