package cart

import (
	"context"

	"github.com/vilaverde-labs/shop-api/internal/audit"
	domain "github.com/vilaverde-labs/shop-api/internal/domain/cart"
	"github.com/vilaverde-labs/shop-api/internal/models"
)

type RemoveCartItem struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRemoveCartItem(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RemoveCartItem {
	return &RemoveCartItem{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RemoveCartItem) Execute(
	ctx context.Context,
	userID string,
	cartItemID string,
) (*models.Cart, error) {

	cartID, err := uc.repo.RemoveItem(ctx, userID, cartItemID)
	if err != nil {
		return nil, err
	}

	c, err := uc.repo.GetCartDetail(ctx, cartID)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "cart_item_removed",
		Entity:   "cart_item",
		EntityID: &cartItemID,
	})

	return c, nil
}
