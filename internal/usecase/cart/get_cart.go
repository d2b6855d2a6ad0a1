package cart

import (
	"context"

	domain "github.com/vilaverde-labs/shop-api/internal/domain/cart"
	"github.com/vilaverde-labs/shop-api/internal/httperr"
	"github.com/vilaverde-labs/shop-api/internal/models"
)

type GetCart struct {
	repo domain.Repository
}

func NewGetCart(repo domain.Repository) *GetCart {
	return &GetCart{repo: repo}
}

func (uc *GetCart) Execute(
	ctx context.Context,
	userID string,
) (*models.Cart, error) {

	open, err := uc.repo.GetOpenCart(ctx, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("no_open_cart")
	}

	return uc.repo.GetCartDetail(ctx, open.ID)
}
