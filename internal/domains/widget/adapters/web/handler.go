// Package web binds the widget controller to HTTP. Each user gesture on the page is
// a form post; the response is either a redirect back to the page or, for requests
// sent with HX-Request, the region the gesture affected.
package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/Apurer/go-cart-widget/internal/clients/http/cartapi"
	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
	"github.com/Apurer/go-cart-widget/internal/domains/widget/adapters/view"
	"github.com/Apurer/go-cart-widget/internal/domains/widget/application"
	apierrors "github.com/Apurer/go-cart-widget/internal/shared/errors"
)

// HeaderFragment marks requests that expect a region fragment instead of a redirect.
const HeaderFragment = "HX-Request"

type region string

const (
	regionPage      region = "page"
	regionInventory region = "inventory"
	regionCart      region = "cart"
)

// Handler serves the widget page and translates posts into controller events.
type Handler struct {
	controller *application.Controller
	document   *view.Document
	logger     *slog.Logger
	responder  *apierrors.Responder
}

type Option func(*Handler)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler serves document, which must be the view the controller draws on.
func NewHandler(controller *application.Controller, document *view.Document, opts ...Option) *Handler {
	h := &Handler{
		controller: controller,
		document:   document,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		responder: apierrors.NewResponder(
			apierrors.MapSentinel(application.ErrUnknownItem, apierrors.ErrNotFound),
			mapCartNotFound,
			apierrors.MapSentinel(domain.ErrInvalidQuantity, apierrors.ErrValidation),
			apierrors.MapSentinel(domain.ErrInvalidID, apierrors.ErrValidation),
			mapUpstream,
		),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Register mounts the widget routes on router.
func (h *Handler) Register(router gin.IRoutes) {
	router.GET("/", h.Page)
	router.GET("/regions/inventory", h.InventoryRegion)
	router.GET("/regions/cart", h.CartRegion)
	router.POST("/inventory/:id/plus", h.Increment)
	router.POST("/inventory/:id/minus", h.Decrement)
	router.POST("/inventory/:id/add", h.AddToCart)
	router.POST("/cart/:id/delete", h.Delete)
	router.POST("/cart/:id/edit", h.Edit)
	router.POST("/checkout", h.Checkout)
	router.POST("/refresh", h.Refresh)
	router.GET("/healthz", h.Healthz)
}

// Get /
func (h *Handler) Page(c *gin.Context) {
	h.write(c, regionPage)
}

// Get /regions/inventory
func (h *Handler) InventoryRegion(c *gin.Context) {
	h.write(c, regionInventory)
}

// Get /regions/cart
func (h *Handler) CartRegion(c *gin.Context) {
	h.write(c, regionCart)
}

// Post /inventory/:id/plus
func (h *Handler) Increment(c *gin.Context) {
	_, err := h.controller.StepQuantity(c.Param("id"), 1)
	h.respond(c, regionInventory, err)
}

// Post /inventory/:id/minus
func (h *Handler) Decrement(c *gin.Context) {
	_, err := h.controller.StepQuantity(c.Param("id"), -1)
	h.respond(c, regionInventory, err)
}

// Post /inventory/:id/add
func (h *Handler) AddToCart(c *gin.Context) {
	err := h.controller.AddToCart(c.Request.Context(), c.Param("id"))
	h.respond(c, regionCart, err)
}

// Post /cart/:id/delete
func (h *Handler) Delete(c *gin.Context) {
	err := h.controller.Delete(c.Request.Context(), c.Param("id"))
	h.respond(c, regionCart, err)
}

// Post /cart/:id/edit
func (h *Handler) Edit(c *gin.Context) {
	err := h.controller.Edit(c.Request.Context(), c.Param("id"))
	h.respond(c, regionCart, err)
}

// Post /checkout
func (h *Handler) Checkout(c *gin.Context) {
	_, err := h.controller.Checkout(c.Request.Context())
	h.respond(c, regionCart, err)
}

// Post /refresh
func (h *Handler) Refresh(c *gin.Context) {
	err := h.controller.Refresh(c.Request.Context())
	h.respond(c, regionPage, err)
}

// Get /healthz
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respond finishes a gesture. Page flows always go back to the page, which shows
// whatever the store holds; fragment flows get the region or a problem document.
func (h *Handler) respond(c *gin.Context, affected region, err error) {
	if err != nil {
		h.logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "widget event failed",
			slog.String("http.route", c.FullPath()),
			slog.String("item.id", c.Param("id")),
			slog.String("error", err.Error()))
	}
	if !wantsFragment(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	h.write(c, affected)
}

func (h *Handler) write(c *gin.Context, r region) {
	var data any
	h.controller.OnLoop(func() {
		page := h.document.Page()
		switch r {
		case regionInventory:
			data = page.Inventory
		case regionCart:
			data = page.Cart
		default:
			data = page
		}
	})
	c.Render(http.StatusOK, render.HTML{Template: view.Templates(), Name: string(r), Data: data})
}

func wantsFragment(c *gin.Context) bool {
	return c.GetHeader(HeaderFragment) == "true"
}

func mapCartNotFound(err error) (apierrors.ProblemDetail, bool) {
	var notFound *cartapi.NotFoundError
	if errors.As(err, &notFound) {
		return apierrors.NewNotFoundProblem("cart entry", notFound.ID), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapUpstream(err error) (apierrors.ProblemDetail, bool) {
	return apierrors.ErrUpstream.WithDetail(err.Error()), true
}
