package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vilaverde-labs/shop-api/internal/models"
)

type CartItemDTO struct {
	ID        string          `json:"id"`
	CartID    string          `json:"cart_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`

	Product *models.Product `json:"product,omitempty"`
}

type CartDTO struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	Status     string           `json:"status"`
	TotalValue *decimal.Decimal `json:"total_value"`

	User  *UserDTO      `json:"user,omitempty"`
	Items []CartItemDTO `json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromCart(c *models.Cart) CartDTO {
	out := CartDTO{
		ID:         c.ID,
		UserID:     c.UserID,
		Status:     c.Status,
		TotalValue: c.TotalValue,
		Items:      make([]CartItemDTO, 0, len(c.Items)),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}

	if c.User.ID != "" {
		u := FromUser(&c.User)
		out.User = &u
	}

	for i := range c.Items {
		item := c.Items[i]

		dto := CartItemDTO{
			ID:        item.ID,
			CartID:    item.CartID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
		if item.Product.ID != "" {
			p := item.Product
			dto.Product = &p
		}

		out.Items = append(out.Items, dto)
	}

	return out
}

func FromCarts(carts []models.Cart) []CartDTO {
	out := make([]CartDTO, 0, len(carts))
	for i := range carts {
		out = append(out, FromCart(&carts[i]))
	}
	return out
}
