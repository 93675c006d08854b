package public

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/threadcap/threadcap/internal/http/response"
	"github.com/threadcap/threadcap/internal/service"
)

// SubmitOrder 提交订单，结算当日购物车
func (h *Handler) SubmitOrder(c *gin.Context) {
	var form service.OrderForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	cartID, err := h.CheckoutService.SubmitOrder(c.Request.Context(), form)
	if err != nil {
		var fieldErrors service.FieldErrors
		switch {
		case errors.As(err, &fieldErrors):
			response.ErrorWithData(c, response.CodeBadRequest, "validation failed", gin.H{"errors": fieldErrors})
		case errors.Is(err, service.ErrNoActiveCart):
			response.NotFound(c, "there is no shopping cart to order")
		case errors.Is(err, service.ErrConcurrencyConflict):
			response.Error(c, response.CodeInternal, "cart is being modified, please retry")
		default:
			respondError(c, response.CodeInternal, "failed to submit order", err)
		}
		return
	}

	response.SuccessWithMsg(c, "order submitted", gin.H{"cart_id": cartID})
}
