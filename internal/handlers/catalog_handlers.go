package handlers

import (
	"net/http"

	"pharmacy_pos_backend/internal/services"
	"pharmacy_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public search view.
type CatalogHandler struct {
	catalogService services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(cs services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: cs}
}

// Index is the public landing view: substring search over every shop's
// inventory via the `search` query parameter, plus the distinct medicine
// name list for suggestions. No session required.
func (h *CatalogHandler) Index(c *gin.Context) {
	query := c.Query("search")

	result, err := h.catalogService.Search(query)
	if err != nil {
		utils.LogError(err, "Index: Error from catalogService.Search")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to search catalog.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, result)
}
