package cart

import (
	"context"

	domain "github.com/vilaverde-labs/shop-api/internal/domain/cart"
	"github.com/vilaverde-labs/shop-api/internal/httperr"
	"github.com/vilaverde-labs/shop-api/internal/models"
)

type ListPaidCartsInput struct {
	CallerID string
	UserID   string
}

type ListPaidCarts struct {
	repo domain.Repository
}

func NewListPaidCarts(repo domain.Repository) *ListPaidCarts {
	return &ListPaidCarts{repo: repo}
}

func (uc *ListPaidCarts) Execute(
	ctx context.Context,
	in ListPaidCartsInput,
) ([]models.Cart, error) {

	caller, err := uc.repo.GetUserByID(ctx, in.CallerID)
	if err != nil {
		return nil, err
	}

	if caller.Role != models.RoleAdmin {
		return nil, httperr.ErrBusiness("access_denied")
	}

	return uc.repo.ListPaidCarts(ctx, domain.PaidCartsFilter{
		UserID: in.UserID,
	})
}
