package public

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/threadcap/threadcap/internal/http/response"
	"github.com/threadcap/threadcap/internal/service"
)

// ListProducts 商品列表（Cap 在前，入库日期倒序）
func (h *Handler) ListProducts(c *gin.Context) {
	views, err := h.ProductService.List(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load products", err)
		return
	}
	response.Success(c, gin.H{"products": views})
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.ProductService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to load product", err)
		return
	}
	response.Success(c, gin.H{"product": service.NewProductView(product)})
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	product, err := h.ProductService.Create(c.Request.Context(), input)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, gin.H{"product": service.NewProductView(product)})
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	product, err := h.ProductService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, gin.H{"product": service.NewProductView(product)})
}

// DeleteProduct 下架商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to delete product", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		response.NotFound(c, "product not found")
	case errors.Is(err, service.ErrInvalidKind),
		errors.Is(err, service.ErrInvalidGender),
		errors.Is(err, service.ErrHasSleevesRequired),
		errors.Is(err, service.ErrInvalidMaterial),
		errors.Is(err, service.ErrCompositionSum),
		errors.Is(err, service.ErrInvalidUnitPrice),
		errors.Is(err, service.ErrInvalidInitialStock),
		errors.Is(err, service.ErrKindImmutable),
		errors.Is(err, service.ErrInitialStockImmutable):
		response.BadRequest(c, err.Error())
	default:
		respondError(c, response.CodeInternal, "failed to save product", err)
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid product id")
		return 0, false
	}
	return uint(id), true
}
