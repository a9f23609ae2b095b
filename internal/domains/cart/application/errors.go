package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid cart input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidID) ||
		errors.Is(err, domain.ErrInvalidContent) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrDuplicateID) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
