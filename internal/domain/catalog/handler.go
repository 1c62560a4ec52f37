package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bioscrap/internal/pkg/response"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// GetCatalog handles GET /api/v1/catalog
// @Summary Booking reference data
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Response{data=CatalogResponse}
// @Router /catalog [get]
func (h *Handler) GetCatalog(c *gin.Context) {
	response.Success(c, http.StatusOK, Snapshot())
}
