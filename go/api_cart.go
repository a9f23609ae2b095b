package cartapiserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-cart-widget/internal/domains/cart/ports"
)

// CartAPI serves the cart collection.
type CartAPI struct {
	service cartports.Service
}

func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{service: service}
}

// QuantityUpdate is the PATCH /cart/:id body.
type QuantityUpdate struct {
	Quantity *int `json:"quantity"`
}

// Get /cart
// Lists cart entries in insertion order
func (api *CartAPI) ListCart(c *gin.Context) {
	items, err := api.service.ListCart(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Post /cart
// Adds an entry to the cart
func (api *CartAPI) AddToCart(c *gin.Context) {
	var payload domain.CartItem
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	saved, err := api.service.AddItem(c.Request.Context(), payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// Delete /cart/:id
// Removes a cart entry
func (api *CartAPI) DeleteFromCart(c *gin.Context) {
	if err := api.service.RemoveItem(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// Patch /cart/:id
// Changes the quantity of a cart entry
func (api *CartAPI) UpdateCart(c *gin.Context) {
	var payload QuantityUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	if payload.Quantity == nil {
		respondBadRequest(c, errors.New("quantity is required"))
		return
	}
	updated, err := api.service.UpdateQuantity(c.Request.Context(), c.Param("id"), *payload.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
