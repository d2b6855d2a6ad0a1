package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vilaverde-labs/shop-api/internal/dto"
	"github.com/vilaverde-labs/shop-api/internal/httperr"
	"github.com/vilaverde-labs/shop-api/internal/httpresp"
	"github.com/vilaverde-labs/shop-api/internal/middleware"
	ucCart "github.com/vilaverde-labs/shop-api/internal/usecase/cart"
)

type CartHandler struct {
	addToCart      *ucCart.AddToCart
	getCart        *ucCart.GetCart
	updateCartItem *ucCart.UpdateCartItem
	removeCartItem *ucCart.RemoveCartItem
	closeCart      *ucCart.CloseCart
	payCart        *ucCart.PayCart
	listPaidCarts  *ucCart.ListPaidCarts
}

func NewCartHandler(
	addToCart *ucCart.AddToCart,
	getCart *ucCart.GetCart,
	updateCartItem *ucCart.UpdateCartItem,
	removeCartItem *ucCart.RemoveCartItem,
	closeCart *ucCart.CloseCart,
	payCart *ucCart.PayCart,
	listPaidCarts *ucCart.ListPaidCarts,
) *CartHandler {
	return &CartHandler{
		addToCart:      addToCart,
		getCart:        getCart,
		updateCartItem: updateCartItem,
		removeCartItem: removeCartItem,
		closeCart:      closeCart,
		payCart:        payCart,
		listPaidCarts:  listPaidCarts,
	}
}

// --------- Requests ---------

type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity,omitempty"`
}

// --------- Handlers ---------

func (h *CartHandler) AddToCart(c *gin.Context) {
	userID := currentUserID(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	cart, err := h.addToCart.Execute(c.Request.Context(), ucCart.AddToCartInput{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeCartError(c, err)
		return
	}

	httpresp.OK(c, dto.FromCart(cart))
}

func (h *CartHandler) GetCart(c *gin.Context) {
	userID := currentUserID(c)

	cart, err := h.getCart.Execute(c.Request.Context(), userID)
	if err != nil {
		writeCartError(c, err)
		return
	}

	httpresp.OK(c, dto.FromCart(cart))
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID := currentUserID(c)
	itemID := c.Param("id")

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	cart, err := h.updateCartItem.Execute(c.Request.Context(), ucCart.UpdateCartItemInput{
		UserID:     userID,
		CartItemID: itemID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		writeCartError(c, err)
		return
	}

	httpresp.OK(c, dto.FromCart(cart))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := currentUserID(c)
	itemID := c.Param("id")

	cart, err := h.removeCartItem.Execute(c.Request.Context(), userID, itemID)
	if err != nil {
		writeCartError(c, err)
		return
	}

	httpresp.OK(c, dto.FromCart(cart))
}

func (h *CartHandler) CloseCart(c *gin.Context) {
	userID := currentUserID(c)

	cart, err := h.closeCart.Execute(c.Request.Context(), userID)
	if err != nil {
		writeCartError(c, err)
		return
	}

	httpresp.OK(c, dto.FromCart(cart))
}

func (h *CartHandler) PayCart(c *gin.Context) {
	userID := currentUserID(c)

	cart, err := h.payCart.Execute(c.Request.Context(), userID)
	if err != nil {
		writeCartError(c, err)
		return
	}

	httpresp.OK(c, dto.FromCart(cart))
}

func (h *CartHandler) ListPaid(c *gin.Context) {
	callerID := currentUserID(c)

	filterUserID := c.Query("user_id")
	if filterUserID != "" {
		if _, err := uuid.Parse(filterUserID); err != nil {
			httperr.BadRequest(c, "invalid_user_id", "user_id must be a valid uuid")
			return
		}
	}

	carts, err := h.listPaidCarts.Execute(c.Request.Context(), ucCart.ListPaidCartsInput{
		CallerID: callerID,
		UserID:   filterUserID,
	})
	if err != nil {
		writeCartError(c, err)
		return
	}

	httpresp.List(c, dto.FromCarts(carts))
}

// --------- Helpers ---------

func currentUserID(c *gin.Context) string {
	v, _ := c.Get(middleware.ContextUserID)
	userID, _ := v.(string)
	return userID
}

func writeCartError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "product_not_found"):
		httperr.NotFound(c, "product_not_found", "product not found")
	case httperr.IsBusiness(err, "no_open_cart"):
		httperr.NotFound(c, "no_open_cart", "no open cart found")
	case httperr.IsBusiness(err, "cart_item_not_found"):
		httperr.NotFound(c, "cart_item_not_found", "cart item not found")
	case httperr.IsBusiness(err, "access_denied"):
		httperr.Forbidden(c, "access_denied", "access denied")
	case httperr.IsBusiness(err, "cart_not_open"):
		httperr.PreconditionFailed(c, "cart_not_open", "cart is not open")
	default:
		httperr.Internal(c, "internal_error", "internal error")
	}
}
