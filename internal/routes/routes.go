package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vilaverde-labs/shop-api/internal/audit"
	"github.com/vilaverde-labs/shop-api/internal/config"
	"github.com/vilaverde-labs/shop-api/internal/handlers"
	infraRepo "github.com/vilaverde-labs/shop-api/internal/infra/repository"
	"github.com/vilaverde-labs/shop-api/internal/middleware"
	"github.com/vilaverde-labs/shop-api/internal/models"
	ucCart "github.com/vilaverde-labs/shop-api/internal/usecase/cart"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	cartRepo := infraRepo.NewCartGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧠 USE CASES — CART
	// ======================================================
	addToCartUC := ucCart.NewAddToCart(cartRepo, auditDispatcher)
	getCartUC := ucCart.NewGetCart(cartRepo)
	updateCartItemUC := ucCart.NewUpdateCartItem(cartRepo, auditDispatcher)
	removeCartItemUC := ucCart.NewRemoveCartItem(cartRepo, auditDispatcher)
	closeCartUC := ucCart.NewCloseCart(cartRepo, auditDispatcher)
	payCartUC := ucCart.NewPayCart(cartRepo, auditDispatcher)
	listPaidCartsUC := ucCart.NewListPaidCarts(cartRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db, auditDispatcher)
	productHandler := handlers.NewProductHandler(db, auditDispatcher)

	cartHandler := handlers.NewCartHandler(
		addToCartUC,
		getCartUC,
		updateCartItemUC,
		removeCartItemUC,
		closeCartUC,
		payCartUC,
		listPaidCartsUC,
	)

	// ======================================================
	// 🌐 ROTAS
	// ======================================================

	// ------------------------------
	// 🔓 PÚBLICAS
	// ------------------------------
	r.POST("/auth/login", authHandler.Login)
	r.POST("/users", userHandler.Create) // registro

	// ------------------------------
	// 🔐 AUTENTICADAS
	// ------------------------------
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		secured.GET("/users", userHandler.List)
		secured.GET("/users/:id", userHandler.Get)
		secured.PATCH("/users/:id", userHandler.Update)
		secured.DELETE("/users/:id", userHandler.Delete)

		secured.GET("/products", productHandler.List)
		secured.GET("/products/:id", productHandler.Get)

		// ------------------------------
		// CART
		// ------------------------------
		secured.POST("/cart/add", cartHandler.AddToCart)
		secured.GET("/cart", cartHandler.GetCart)
		secured.PATCH("/cart/item/:id", cartHandler.UpdateItem)
		secured.DELETE("/cart/item/:id", cartHandler.RemoveItem)
		secured.POST("/cart/close", cartHandler.CloseCart)
		secured.POST("/cart/pay", cartHandler.PayCart)
		secured.GET("/cart/paid", cartHandler.ListPaid)

		// ------------------------------
		// 🔐 ADMIN
		// ------------------------------
		admin := secured.Group("/")
		admin.Use(middleware.RequireRole(db, models.RoleAdmin))
		{
			admin.POST("/products", productHandler.Create)
			admin.PATCH("/products/:id", productHandler.Update)
			admin.DELETE("/products/:id", productHandler.Delete)
		}
	}
}
