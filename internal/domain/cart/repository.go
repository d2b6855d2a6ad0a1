package cart

import (
	"context"

	"github.com/vilaverde-labs/shop-api/internal/models"
)

type PaidCartsFilter struct {
	UserID string
}

type Repository interface {
	// -------- Product / User --------
	GetProduct(
		ctx context.Context,
		productID string,
	) (*models.Product, error)

	GetUserByID(
		ctx context.Context,
		userID string,
	) (*models.User, error)

	// -------- Cart (resolve / detail) --------
	GetOpenCart(
		ctx context.Context,
		userID string,
	) (*models.Cart, error)

	GetCartDetail(
		ctx context.Context,
		cartID string,
	) (*models.Cart, error)

	// -------- Items (transactional read-modify-write) --------
	AddItem(
		ctx context.Context,
		userID string,
		product *models.Product,
		quantity int,
	) (cartID string, err error)

	UpdateItemQuantity(
		ctx context.Context,
		userID string,
		itemID string,
		quantity *int,
	) (cartID string, err error)

	RemoveItem(
		ctx context.Context,
		userID string,
		itemID string,
	) (cartID string, err error)

	// -------- Cart (state change) --------
	UpdateCart(
		ctx context.Context,
		c *models.Cart,
	) error

	// -------- Paid listing --------
	ListPaidCarts(
		ctx context.Context,
		filter PaidCartsFilter,
	) ([]models.Cart, error)
}
