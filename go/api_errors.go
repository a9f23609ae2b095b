package cartapiserver

import (
	"github.com/gin-gonic/gin"

	cartapp "github.com/Apurer/go-cart-widget/internal/domains/cart/application"
	cartports "github.com/Apurer/go-cart-widget/internal/domains/cart/ports"
	apierrors "github.com/Apurer/go-cart-widget/internal/shared/errors"
)

var responder = apierrors.NewResponder(
	apierrors.MapSentinel(cartports.ErrNotFound, apierrors.ErrNotFound),
	apierrors.MapSentinel(cartports.ErrConflict, apierrors.ErrConflict),
	apierrors.MapSentinel(cartapp.ErrInvalidInput, apierrors.ErrValidation),
)

func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	responder.BadRequest(c, err.Error())
}
