package cart

import (
	"context"

	"github.com/vilaverde-labs/shop-api/internal/audit"
	domain "github.com/vilaverde-labs/shop-api/internal/domain/cart"
	"github.com/vilaverde-labs/shop-api/internal/httperr"
	"github.com/vilaverde-labs/shop-api/internal/models"
)

type PayCart struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewPayCart(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *PayCart {
	return &PayCart{
		repo:  repo,
		audit: audit,
	}
}

func (uc *PayCart) Execute(
	ctx context.Context,
	userID string,
) (*models.Cart, error) {

	c, err := uc.repo.GetOpenCart(ctx, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("no_open_cart")
	}

	// Total = Σ(preço capturado × quantidade) sobre os itens atuais.
	if err := domain.Pay(c); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateCart(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "cart_paid",
		Entity:   "cart",
		EntityID: &c.ID,
		Metadata: map[string]any{
			"total_value": c.TotalValue,
		},
	})

	// Resposta com o mesmo nível de detalhe das demais operações.
	return uc.repo.GetCartDetail(ctx, c.ID)
}
