package cart

import (
	"context"

	"github.com/vilaverde-labs/shop-api/internal/audit"
	domain "github.com/vilaverde-labs/shop-api/internal/domain/cart"
	"github.com/vilaverde-labs/shop-api/internal/httperr"
	"github.com/vilaverde-labs/shop-api/internal/models"
)

type CloseCart struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCloseCart(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CloseCart {
	return &CloseCart{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CloseCart) Execute(
	ctx context.Context,
	userID string,
) (*models.Cart, error) {

	c, err := uc.repo.GetOpenCart(ctx, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("no_open_cart")
	}

	// Carrinho abandonado: fecha sem calcular total.
	if err := domain.Close(c); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateCart(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "cart_closed",
		Entity:   "cart",
		EntityID: &c.ID,
	})

	return c, nil
}
