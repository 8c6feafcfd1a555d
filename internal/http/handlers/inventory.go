package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventario/internal/domain/models"
	"inventario/internal/http/middleware"
	"inventario/internal/services"
)

// POST /api/inventory — el creador sale del token, nunca del payload.
func (h *Handlers) CreateItem(c *gin.Context) {
	var req models.InventoryItem
	if !BindJSONOrError(c, &req) {
		return
	}

	item, err := h.inventoryService(c).Create(req, middleware.GetUserID(c))
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// GET /api/inventory — listado simple en modo página.
func (h *Handlers) ListItems(c *gin.Context) {
	items, meta, err := h.inventoryService(c).List(c.Request.URL.Query())
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"currentPage": meta.CurrentPage,
		"totalPages":  meta.TotalPages,
		"totalItems":  meta.TotalItems,
	})
}

// GET /api/inventory/search — gramática completa de filtros, modo offset.
func (h *Handlers) SearchItems(c *gin.Context) {
	items, meta, err := h.inventoryService(c).Search(c.Request.URL.Query())
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":   items,
		"hasMore": meta.HasMore,
		"total":   meta.TotalItems,
	})
}

// GET /api/inventory/:id
func (h *Handlers) GetItem(c *gin.Context) {
	item, err := h.inventoryService(c).Get(c.Param("id"))
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// PUT /api/inventory/:id — actualización parcial; creador e id inmutables.
func (h *Handlers) UpdateItem(c *gin.Context) {
	var req services.ItemUpdate
	if !BindJSONOrError(c, &req) {
		return
	}

	item, err := h.inventoryService(c).Update(c.Param("id"), req)
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DELETE /api/inventory/:id — borrado en duro.
func (h *Handlers) DeleteItem(c *gin.Context) {
	deletedID, err := h.inventoryService(c).Delete(c.Param("id"))
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Item eliminado correctamente",
		"deletedItemId": deletedID,
	})
}

// GET /api/inventory/report — exporta el resultado filtrado como PDF.
func (h *Handlers) InventoryReport(c *gin.Context) {
	pdfBytes, filename, err := h.reportService(c).Generate(c.Request.URL.Query())
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
