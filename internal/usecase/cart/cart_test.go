package cart_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vilaverde-labs/shop-api/internal/audit"
	dbpkg "github.com/vilaverde-labs/shop-api/internal/db"
	domain "github.com/vilaverde-labs/shop-api/internal/domain/cart"
	"github.com/vilaverde-labs/shop-api/internal/httperr"
	infraRepo "github.com/vilaverde-labs/shop-api/internal/infra/repository"
	"github.com/vilaverde-labs/shop-api/internal/models"
	ucCart "github.com/vilaverde-labs/shop-api/internal/usecase/cart"
)

type fixture struct {
	db   *gorm.DB
	repo *infraRepo.CartGormRepository

	add    *ucCart.AddToCart
	get    *ucCart.GetCart
	update *ucCart.UpdateCartItem
	remove *ucCart.RemoveCartItem
	close  *ucCart.CloseCart
	pay    *ucCart.PayCart
	listUC *ucCart.ListPaidCarts
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	// banco em memória vive numa única conexão
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	repo := infraRepo.NewCartGormRepository(db)
	dispatcher := audit.NewDispatcher(audit.New(db))

	return &fixture{
		db:     db,
		repo:   repo,
		add:    ucCart.NewAddToCart(repo, dispatcher),
		get:    ucCart.NewGetCart(repo),
		update: ucCart.NewUpdateCartItem(repo, dispatcher),
		remove: ucCart.NewRemoveCartItem(repo, dispatcher),
		close:  ucCart.NewCloseCart(repo, dispatcher),
		pay:    ucCart.NewPayCart(repo, dispatcher),
		listUC: ucCart.NewListPaidCarts(repo),
	}
}

func (f *fixture) createUser(t *testing.T, email, role string) *models.User {
	t.Helper()
	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, f.db.Create(&user).Error)
	return &user
}

func (f *fixture) createProduct(t *testing.T, name, price string) *models.Product {
	t.Helper()
	product := models.Product{
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
	require.NoError(t, f.db.Create(&product).Error)
	return &product
}

func TestAddToCartCreatesOpenCart(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "buyer@example.com", models.RoleClient)
	product := f.createProduct(t, "Keyboard", "10.00")

	cart, err := f.add.Execute(context.Background(), ucCart.AddToCartInput{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  2,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusOpen), cart.Status)
	assert.Equal(t, user.ID, cart.UserID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, product.ID, cart.Items[0].ProductID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, cart.Items[0].Price.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, "Keyboard", cart.Items[0].Product.Name)
}

func TestAddToCartUnknownProductCreatesNothing(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "buyer@example.com", models.RoleClient)

	_, err := f.add.Execute(context.Background(), ucCart.AddToCartInput{
		UserID:    user.ID,
		ProductID: "2f6f24d6-0000-0000-0000-000000000000",
		Quantity:  1,
	})
	assert.True(t, httperr.IsBusiness(err, "product_not_found"))

	var carts, items int64
	f.db.Model(&models.Cart{}).Count(&carts)
	f.db.Model(&models.CartItem{}).Count(&items)
	assert.Zero(t, carts)
	assert.Zero(t, items)
}

func TestAddToCartAccumulatesSameProduct(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "buyer@example.com", models.RoleClient)
	product := f.createProduct(t, "Mouse", "25.50")

	_, err := f.add.Execute(context.Background(), ucCart.AddToCartInput{
		UserID: user.ID, ProductID: product.ID, Quantity: 2,
	})
	require.NoError(t, err)

	cart, err := f.add.Execute(context.Background(), ucCart.AddToCartInput{
		UserID: user.ID, ProductID: product.ID, Quantity: 3,
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	var openCarts int64
	f.db.Model(&models.Cart{}).
		Where("user_id = ? AND status = ?", user.ID, domain.StatusOpen).
		Count(&openCarts)
	assert.EqualValues(t, 1, openCarts)
}

func TestAddToCartKeepsSnapshotPriceOnAccumulate(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "buyer@example.com", models.RoleClient)
	product := f.createProduct(t, "Monitor", "100.00")

	_, err := f.add.Execute(context.Background(), ucCart.AddToCartInput{
		UserID: user.ID, ProductID: product.ID, Quantity: 1,
	})
	require.NoError(t, err)

	// preço do produto muda depois do primeiro add
	require.NoError(t, f.db.Model(product).
		Update("price", decimal.RequireFromString("150.00")).Error)

	cart, err := f.add.Execute(context.Background(), ucCart.AddToCartInput{
		UserID: user.ID, ProductID: product.ID, Quantity: 1,
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.True(t, cart.Items[0].Price.Equal(decimal.RequireFromString("100.00")))
}

func TestSingleOpenCartAcrossProducts(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "buyer@example.com", models.RoleClient)
	p1 := f.createProduct(t, "A", "1.00")
	p2 := f.createProduct(t, "B", "2.00")

	_, err := f.add.Execute(context.Background(), ucCart.AddToCartInput{
		UserID: user.ID, ProductID: p1.ID, Quantity: 1,
	})
	require.NoError(t, err)

	cart, err := f.add.Execute(context.Background(), ucCart.AddToCartInput{
		UserID: user.ID, ProductID: p2.ID, Quantity: 1,
	})
	require.NoError(t, err)

	assert.Len(t, cart.Items, 2)

	var total int64
	f.db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&total)
	assert.EqualValues(t, 1, total)
}

func TestUpdateCartItemSetsExactQuantity(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "buyer@example.com", models.RoleClient)
	product := f.createProduct(t, "Cable", "5.00")

	cart, err := f.add.Execute(context.Background(), ucCart.AddToCartInput{
		UserID: user.ID, ProductID: product.ID, Quantity: 2,
	})
	require.NoError(t, err)

	qty := 7
	cart, err = f.update.Execute(context.Background(), ucCart.UpdateCartItemInput{
		UserID:     user.ID,
		CartItemID: cart.Items[0].ID,
		Quantity:   &qty,
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestUpdateCartItemZeroQuantityRemovesItem(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "buyer@example.com", models.RoleClient)
	product := f.createProduct(t, "Cable", "5.00")

	cart, err := f.add.Execute(context.Background(), ucCart.AddToCartInput{
		UserID: user.ID, ProductID: product.ID, Quantity: 2,
	})
	require.NoError(t, err)

	qty := 0
	cart, err = f.update.Execute(context.Background(), ucCart.UpdateCartItemInput{
		UserID:     user.ID,
		CartItemID: cart.Items[0].ID,
		Quantity:   &qty,
	})
	require.NoError(t, err)

	assert.Empty(t, cart.Items)
}

func TestUpdateCartItemUnknownItem(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "buyer@example.com", models.RoleClient)

	qty := 1
	_, err := f.update.Execute(context.Background(), ucCart.UpdateCartItemInput{
		UserID:     user.ID,
		CartItemID: "9a1b0000-0000-0000-0000-000000000000",
		Quantity:   &qty,
	})
	assert.True(t, httperr.IsBusiness(err, "cart_item_not_found"))
}

func TestCartItemOwnershipEnforced(t *testing.T) {
	f := newFixture(t)
	owner := f.createUser(t, "owner@example.com", models.RoleClient)
	other := f.createUser(t, "other@example.com", models.RoleClient)
	product := f.createProduct(t, "Desk", "300.00")

	cart, err := f.add.Execute(context.Background(), ucCart.AddToCartInput{
		UserID: owner.ID, ProductID: product.ID, Quantity: 1,
	})
	require.NoError(t, err)

	qty := 3
	_, err = f.update.Execute(context.Background(), ucCart.UpdateCartItemInput{
		UserID:     other.ID,
		CartItemID: cart.Items[0].ID,
		Quantity:   &qty,
	})
	assert.True(t, httperr.IsBusiness(err, "access_denied"))

	_, err = f.remove.Execute(context.Background(), other.ID, cart.Items[0].ID)
	assert.True(t, httperr.IsBusiness(err, "access_denied"))
}

func TestItemsFrozenAfterPay(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "buyer@example.com", models.RoleClient)
	product := f.createProduct(t, "Chair", "80.00")

	cart, err := f.add.Execute(context.Background(), ucCart.AddToCartInput{
		UserID: user.ID, ProductID: product.ID, Quantity: 1,
	})
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	_, err = f.pay.Execute(context.Background(), user.ID)
	require.NoError(t, err)

	qty := 2
	_, err = f.update.Execute(context.Background(), ucCart.UpdateCartItemInput{
		UserID:     user.ID,
		CartItemID: itemID,
		Quantity:   &qty,
	})
	assert.True(t, httperr.IsBusiness(err, "cart_not_open"))

	_, err = f.remove.Execute(context.Background(), user.ID, itemID)
	assert.True(t, httperr.IsBusiness(err, "cart_not_open"))
}

func TestRemoveCartItem(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "buyer@example.com", models.RoleClient)
	p1 := f.createProduct(t, "A", "1.00")
	p2 := f.createProduct(t, "B", "2.00")

	_, err := f.add.Execute(context.Background(), ucCart.AddToCartInput{
		UserID: user.ID, ProductID: p1.ID, Quantity: 1,
	})
	require.NoError(t, err)
	cart, err := f.add.Execute(context.Background(), ucCart.AddToCartInput{
		UserID: user.ID, ProductID: p2.ID, Quantity: 1,
	})
	require.NoError(t, err)

	var removeID string
	for _, item := range cart.Items {
		if item.ProductID == p1.ID {
			removeID = item.ID
		}
	}
	require.NotEmpty(t, removeID)

	cart, err = f.remove.Execute(context.Background(), user.ID, removeID)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, p2.ID, cart.Items[0].ProductID)
}

func TestPayCartTotalUsesSnapshotPrices(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "buyer@example.com", models.RoleClient)
	product := f.createProduct(t, "Headset", "10.00")

	_, err := f.add.Execute(context.Background(), ucCart.AddToCartInput{
		UserID: user.ID, ProductID: product.ID, Quantity: 2,
	})
	require.NoError(t, err)

	// mudança de preço depois do add não pode afetar o total
	require.NoError(t, f.db.Model(product).
		Update("price", decimal.RequireFromString("999.99")).Error)

	cart, err := f.pay.Execute(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPaid), cart.Status)
	require.NotNil(t, cart.TotalValue)
	assert.True(t, cart.TotalValue.Equal(decimal.RequireFromString("20.00")))

	// resposta do pay vem com o mesmo detalhe das demais operações
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Headset", cart.Items[0].Product.Name)
}

func TestPayWithoutOpenCart(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "buyer@example.com", models.RoleClient)

	_, err := f.pay.Execute(context.Background(), user.ID)
	assert.True(t, httperr.IsBusiness(err, "no_open_cart"))
}

func TestCloseCartLeavesNoOpenCart(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "buyer@example.com", models.RoleClient)
	product := f.createProduct(t, "Lamp", "15.00")

	_, err := f.add.Execute(context.Background(), ucCart.AddToCartInput{
		UserID: user.ID, ProductID: product.ID, Quantity: 1,
	})
	require.NoError(t, err)

	closed, err := f.close.Execute(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusClosed), closed.Status)
	assert.Nil(t, closed.TotalValue)

	_, err = f.get.Execute(context.Background(), user.ID)
	assert.True(t, httperr.IsBusiness(err, "no_open_cart"))

	// novo add abre um carrinho novo
	fresh, err := f.add.Execute(context.Background(), ucCart.AddToCartInput{
		UserID: user.ID, ProductID: product.ID, Quantity: 1,
	})
	require.NoError(t, err)
	assert.NotEqual(t, closed.ID, fresh.ID)
}

func TestListPaidCartsAdminOnly(t *testing.T) {
	f := newFixture(t)
	admin := f.createUser(t, "admin@example.com", models.RoleAdmin)
	client := f.createUser(t, "client@example.com", models.RoleClient)
	product := f.createProduct(t, "Book", "30.00")

	_, err := f.add.Execute(context.Background(), ucCart.AddToCartInput{
		UserID: client.ID, ProductID: product.ID, Quantity: 1,
	})
	require.NoError(t, err)
	_, err = f.pay.Execute(context.Background(), client.ID)
	require.NoError(t, err)

	_, err = f.listUC.Execute(context.Background(), ucCart.ListPaidCartsInput{
		CallerID: client.ID,
	})
	assert.True(t, httperr.IsBusiness(err, "access_denied"))

	carts, err := f.listUC.Execute(context.Background(), ucCart.ListPaidCartsInput{
		CallerID: admin.ID,
	})
	require.NoError(t, err)
	require.Len(t, carts, 1)
	assert.Equal(t, string(domain.StatusPaid), carts[0].Status)
	assert.Equal(t, client.Email, carts[0].User.Email)
	require.Len(t, carts[0].Items, 1)
	assert.Equal(t, "Book", carts[0].Items[0].Product.Name)
}

func TestListPaidCartsFilterByUser(t *testing.T) {
	f := newFixture(t)
	admin := f.createUser(t, "admin@example.com", models.RoleAdmin)
	u1 := f.createUser(t, "u1@example.com", models.RoleClient)
	u2 := f.createUser(t, "u2@example.com", models.RoleClient)
	product := f.createProduct(t, "Pen", "2.00")

	for _, u := range []*models.User{u1, u2} {
		_, err := f.add.Execute(context.Background(), ucCart.AddToCartInput{
			UserID: u.ID, ProductID: product.ID, Quantity: 1,
		})
		require.NoError(t, err)
		_, err = f.pay.Execute(context.Background(), u.ID)
		require.NoError(t, err)
	}

	carts, err := f.listUC.Execute(context.Background(), ucCart.ListPaidCartsInput{
		CallerID: admin.ID,
		UserID:   u2.ID,
	})
	require.NoError(t, err)
	require.Len(t, carts, 1)
	assert.Equal(t, u2.ID, carts[0].UserID)
}
