// Package cartapiserver exposes the cart REST API consumed by the widget.
package cartapiserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers per resource.
type ApiHandleFunctions struct {
	CartAPI      CartAPI
	InventoryAPI InventoryAPI
}

// NewRouter returns a new gin engine with the cart API routes registered.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine registers the cart API routes on an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"ListInventory", http.MethodGet, "/inventory", handleFunctions.InventoryAPI.ListInventory},
		{"ListCart", http.MethodGet, "/cart", handleFunctions.CartAPI.ListCart},
		{"AddToCart", http.MethodPost, "/cart", handleFunctions.CartAPI.AddToCart},
		{"DeleteFromCart", http.MethodDelete, "/cart/:id", handleFunctions.CartAPI.DeleteFromCart},
		{"UpdateCart", http.MethodPatch, "/cart/:id", handleFunctions.CartAPI.UpdateCart},
	}
}
