// Package handlers traduce requests HTTP a llamadas de servicio y
// errores de dominio a respuestas JSON.
package handlers

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"inventario/internal/config"
	"inventario/internal/http/middleware"
	"inventario/internal/repositories"
	"inventario/internal/services"
)

// Handlers agrupa las dependencias inyectadas al router: el handle de la
// base (abierto en main, cerrado al apagar) y la configuración.
type Handlers struct {
	DB  *sql.DB
	Env config.Env
}

func New(db *sql.DB, env config.Env) *Handlers {
	return &Handlers{DB: db, Env: env}
}

func (h *Handlers) authService(c *gin.Context) services.AuthService {
	return services.AuthService{
		Users:     repositories.UserRepository{DB: h.DB},
		JWTSecret: []byte(h.Env.JWTSecret),
		TokenTTL:  h.Env.TokenTTL,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handlers) inventoryService(c *gin.Context) services.InventoryService {
	return services.InventoryService{
		Items:     repositories.InventoryRepository{DB: h.DB},
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handlers) reportService(c *gin.Context) services.ReportService {
	return services.ReportService{
		Items:     repositories.InventoryRepository{DB: h.DB},
		RequestID: middleware.GetRequestID(c),
	}
}
