package api

import (
	"database/sql"
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	"inventario/internal/config"
	h "inventario/internal/http/handlers"
	"inventario/internal/http/middleware"
)

func NewRouter(db *sql.DB, env config.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: no se pudieron configurar trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "Ruta no encontrada",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	hs := h.New(db, env)

	api := r.Group("/api")
	{
		api.GET("/health", hs.Health)

		auth := api.Group("/auth")
		auth.POST("/register", hs.Register)
		auth.POST("/login", hs.Login)

		inventory := api.Group("/inventory")
		inventory.Use(middleware.RequireAuth([]byte(env.JWTSecret)))
		inventory.GET("", hs.ListItems)
		inventory.GET("/search", hs.SearchItems)
		inventory.GET("/report", hs.InventoryReport)
		inventory.GET("/:id", hs.GetItem)
		inventory.POST("", hs.CreateItem)
		inventory.PUT("/:id", hs.UpdateItem)
		inventory.DELETE("/:id", hs.DeleteItem)
	}

	return r
}
