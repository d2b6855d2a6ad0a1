package cart

import (
	"context"

	"github.com/vilaverde-labs/shop-api/internal/audit"
	domain "github.com/vilaverde-labs/shop-api/internal/domain/cart"
	"github.com/vilaverde-labs/shop-api/internal/models"
)

type UpdateCartItemInput struct {
	UserID     string
	CartItemID string
	Quantity   *int
}

type UpdateCartItem struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateCartItem(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateCartItem {
	return &UpdateCartItem{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateCartItem) Execute(
	ctx context.Context,
	in UpdateCartItemInput,
) (*models.Cart, error) {

	cartID, err := uc.repo.UpdateItemQuantity(ctx, in.UserID, in.CartItemID, in.Quantity)
	if err != nil {
		return nil, err
	}

	c, err := uc.repo.GetCartDetail(ctx, cartID)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "cart_item_updated",
		Entity:   "cart_item",
		EntityID: &in.CartItemID,
	})

	return c, nil
}
