package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vilaverde-labs/shop-api/internal/audit"
	"github.com/vilaverde-labs/shop-api/internal/httperr"
	"github.com/vilaverde-labs/shop-api/internal/models"
)

type ProductHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewProductHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *ProductHandler {
	return &ProductHandler{db: db, audit: auditDispatcher}
}

// --------- Requests ---------

type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// --------- Handlers ---------

func (h *ProductHandler) List(c *gin.Context) {
	var products []models.Product
	if err := h.db.
		Order("created_at ASC").
		Find(&products).Error; err != nil {

		httperr.Internal(c, "failed_to_list_products", "failed to list products")
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "product_not_found", "product not found")
			return
		}
		httperr.Internal(c, "failed_to_get_product", "failed to get product")
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !req.Price.IsPositive() {
		httperr.BadRequest(c, "invalid_price", "price must be positive")
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}

	if err := h.db.Create(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_create_product", "failed to create product")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "product_created",
		Entity:   "product",
		EntityID: &product.ID,
	})

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "product_not_found", "product not found")
			return
		}
		httperr.Internal(c, "failed_to_get_product", "failed to get product")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			httperr.BadRequest(c, "invalid_price", "price must be positive")
			return
		}
		product.Price = *req.Price
	}

	if err := h.db.Save(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "failed to update product")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "product_updated",
		Entity:   "product",
		EntityID: &product.ID,
	})

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "product_not_found", "product not found")
			return
		}
		httperr.Internal(c, "failed_to_get_product", "failed to get product")
		return
	}

	if err := h.db.Delete(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_product", "failed to delete product")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "product_deleted",
		Entity:   "product",
		EntityID: &product.ID,
	})

	c.Status(http.StatusNoContent)
}
