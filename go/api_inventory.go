package cartapiserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartports "github.com/Apurer/go-cart-widget/internal/domains/cart/ports"
)

// InventoryAPI serves the read-only catalog.
type InventoryAPI struct {
	service cartports.Service
}

func NewInventoryAPI(service cartports.Service) InventoryAPI {
	return InventoryAPI{service: service}
}

// Get /inventory
// Lists purchasable items
func (api *InventoryAPI) ListInventory(c *gin.Context) {
	items, err := api.service.ListInventory(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
