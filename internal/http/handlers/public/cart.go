package public

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/threadcap/threadcap/internal/http/response"
	"github.com/threadcap/threadcap/internal/service"
)

// CartItemRequest 购物车项请求
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// GetCart 获取当日购物车快照
func (h *Handler) GetCart(c *gin.Context) {
	snapshot, err := h.CartService.ActiveCartSnapshot(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load shopping cart", err)
		return
	}
	response.Success(c, snapshot)
}

// UpsertCartItem 向当日购物车增减商品
func (h *Handler) UpsertCartItem(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	item, err := h.CartService.AddOrUpdateItem(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrZeroQuantity):
			response.BadRequest(c, "The quantity of a product in the shopping cart cannot be 0.")
		case errors.Is(err, service.ErrProductNotFound):
			response.NotFound(c, "product not found")
		case errors.Is(err, service.ErrInsufficientStock):
			response.BadRequest(c, "Not enough stock available.")
		case errors.Is(err, service.ErrConcurrencyConflict):
			response.Error(c, response.CodeInternal, "cart is being modified, please retry")
		default:
			respondError(c, response.CodeInternal, "failed to update shopping cart", err)
		}
		return
	}

	response.Success(c, gin.H{
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})
}
