package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/vilaverde-labs/shop-api/internal/domain/cart"
	"github.com/vilaverde-labs/shop-api/internal/httperr"
	"github.com/vilaverde-labs/shop-api/internal/models"
)

type CartGormRepository struct {
	db *gorm.DB
}

func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// sqlite (usado nos testes) não aceita SELECT ... FOR UPDATE
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// --------------------------------------------------
// Product / User
// --------------------------------------------------

func (r *CartGormRepository) GetProduct(
	ctx context.Context,
	productID string,
) (*models.Product, error) {

	var product models.Product
	if err := r.db.WithContext(ctx).
		First(&product, "id = ?", productID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *CartGormRepository) GetUserByID(
	ctx context.Context,
	userID string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Cart (resolve / detail)
// --------------------------------------------------

func (r *CartGormRepository) GetOpenCart(
	ctx context.Context,
	userID string,
) (*models.Cart, error) {

	var c models.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND status = ?", userID, domain.StatusOpen).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CartGormRepository) GetCartDetail(
	ctx context.Context,
	cartID string,
) (*models.Cart, error) {

	var c models.Cart
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Items").
		Preload("Items.Product").
		First(&c, "id = ?", cartID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// --------------------------------------------------
// Items (transactional read-modify-write)
// --------------------------------------------------

func (r *CartGormRepository) AddItem(
	ctx context.Context,
	userID string,
	product *models.Product,
	quantity int,
) (string, error) {

	var cartID string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var c models.Cart
		err := lockForUpdate(tx).
			Where("user_id = ? AND status = ?", userID, domain.StatusOpen).
			First(&c).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			c = models.Cart{
				UserID: userID,
				Status: string(domain.InitialStatus()),
			}
			if err := tx.Create(&c).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var item models.CartItem
		err = lockForUpdate(tx).
			Where("cart_id = ? AND product_id = ?", c.ID, product.ID).
			First(&item).Error

		switch {
		case err == nil:
			// mesmo produto já no carrinho → acumula, preço capturado não muda
			if err := tx.Model(&item).
				Update("quantity", item.Quantity+quantity).Error; err != nil {
				return err
			}

		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				CartID:    c.ID,
				ProductID: product.ID,
				Quantity:  quantity,
				Price:     product.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

		default:
			return err
		}

		cartID = c.ID
		return nil
	})

	return cartID, err
}

func (r *CartGormRepository) UpdateItemQuantity(
	ctx context.Context,
	userID string,
	itemID string,
	quantity *int,
) (string, error) {

	var cartID string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		item, c, err := r.getItemWithCart(tx, itemID, userID)
		if err != nil {
			return err
		}

		if quantity != nil {
			if *quantity <= 0 {
				if err := tx.Delete(&models.CartItem{}, "id = ?", item.ID).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Model(item).
					Update("quantity", *quantity).Error; err != nil {
					return err
				}
			}
		}

		cartID = c.ID
		return nil
	})

	return cartID, err
}

func (r *CartGormRepository) RemoveItem(
	ctx context.Context,
	userID string,
	itemID string,
) (string, error) {

	var cartID string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		item, c, err := r.getItemWithCart(tx, itemID, userID)
		if err != nil {
			return err
		}

		if err := tx.Delete(&models.CartItem{}, "id = ?", item.ID).Error; err != nil {
			return err
		}

		cartID = c.ID
		return nil
	})

	return cartID, err
}

// getItemWithCart carrega o item, trava a linha do carrinho e aplica as
// regras de dono e de estado antes de qualquer mutação.
func (r *CartGormRepository) getItemWithCart(
	tx *gorm.DB,
	itemID string,
	userID string,
) (*models.CartItem, *models.Cart, error) {

	var item models.CartItem
	if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, httperr.ErrBusiness("cart_item_not_found")
		}
		return nil, nil, err
	}

	var c models.Cart
	if err := lockForUpdate(tx).First(&c, "id = ?", item.CartID).Error; err != nil {
		return nil, nil, err
	}

	if c.UserID != userID {
		return nil, nil, httperr.ErrBusiness("access_denied")
	}

	if err := domain.CanModifyItems(domain.Status(c.Status)); err != nil {
		return nil, nil, err
	}

	return &item, &c, nil
}

// --------------------------------------------------
// Cart (state change)
// --------------------------------------------------

func (r *CartGormRepository) UpdateCart(
	ctx context.Context,
	c *models.Cart,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(c).Error
}

// --------------------------------------------------
// Paid listing
// --------------------------------------------------

func (r *CartGormRepository) ListPaidCarts(
	ctx context.Context,
	filter domain.PaidCartsFilter,
) ([]models.Cart, error) {

	q := r.db.WithContext(ctx).
		Preload("User").
		Preload("Items").
		Preload("Items.Product").
		Where("status = ?", domain.StatusPaid)

	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}

	var carts []models.Cart
	if err := q.
		Order("created_at DESC").
		Find(&carts).Error; err != nil {
		return nil, err
	}

	return carts, nil
}

// Compile-time check
var _ domain.Repository = (*CartGormRepository)(nil)
