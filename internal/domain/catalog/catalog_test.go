package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultContainerSizeIsKnown(t *testing.T) {
	_, ok := FindContainerSize(DefaultContainerSize)
	assert.True(t, ok)
}

func TestMaterials_NotAcceptingCategories(t *testing.T) {
	var closed []string
	for _, m := range Materials() {
		if !m.Accepting {
			closed = append(closed, m.ID)
		}
	}
	assert.ElementsMatch(t, []string{"fiber", "rubber", "wood"}, closed)
}

func TestFindTimeSlot(t *testing.T) {
	slot, ok := FindTimeSlot("morning")
	require.True(t, ok)
	assert.Equal(t, "8:00 AM - 12:00 PM", slot.Range)

	_, ok = FindTimeSlot("night")
	assert.False(t, ok)
}

func TestAccessorsReturnCopies(t *testing.T) {
	list := WasteTypes()
	list[0].ID = "mutated"

	_, ok := FindWasteType("kitchen")
	assert.True(t, ok)
	assert.Equal(t, "kitchen", WasteTypes()[0].ID)
}

func TestGetCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler().RegisterRoutes(r.Group("/api/v1"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool            `json:"success"`
		Data    CatalogResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data.WasteTypes, 4)
	assert.Len(t, body.Data.TimeSlots, 3)
	assert.Len(t, body.Data.Materials, 8)
	assert.Equal(t, "medium", body.Data.DefaultContainerSize)
}
