package cart

import (
	"context"

	"github.com/vilaverde-labs/shop-api/internal/audit"
	domain "github.com/vilaverde-labs/shop-api/internal/domain/cart"
	"github.com/vilaverde-labs/shop-api/internal/httperr"
	"github.com/vilaverde-labs/shop-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type AddToCartInput struct {
	UserID    string
	ProductID string
	Quantity  int
}

// ======================================================
// USE CASE
// ======================================================

type AddToCart struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddToCart(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AddToCart {
	return &AddToCart{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *AddToCart) Execute(
	ctx context.Context,
	in AddToCartInput,
) (*models.Cart, error) {

	product, err := uc.repo.GetProduct(ctx, in.ProductID)
	if err != nil {
		return nil, httperr.ErrBusiness("product_not_found")
	}

	cartID, err := uc.repo.AddItem(ctx, in.UserID, product, in.Quantity)
	if err != nil {
		return nil, err
	}

	c, err := uc.repo.GetCartDetail(ctx, cartID)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "cart_item_added",
		Entity:   "cart",
		EntityID: &c.ID,
		Metadata: map[string]any{
			"product_id": in.ProductID,
			"quantity":   in.Quantity,
		},
	})

	return c, nil
}
