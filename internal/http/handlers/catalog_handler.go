// README: Catalog handlers for vehicle classes and fixed packages.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabdesk/internal/modules/pricing"
)

type CatalogHandler struct {
	pricing *pricing.Service
}

func NewCatalogHandler(svc *pricing.Service) *CatalogHandler {
	return &CatalogHandler{pricing: svc}
}

func (h *CatalogHandler) Vehicles(c *gin.Context) {
	vehicles, err := h.pricing.Vehicles(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"vehicles": vehicles})
}

func (h *CatalogHandler) Packages(c *gin.Context) {
	writeJSON(c, http.StatusOK, map[string]any{"packages": h.pricing.Packages()})
}
