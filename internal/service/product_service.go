package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/threadcap/threadcap/internal/cache"
	"github.com/threadcap/threadcap/internal/constants"
	"github.com/threadcap/threadcap/internal/logger"
	"github.com/threadcap/threadcap/internal/models"
	"github.com/threadcap/threadcap/internal/repository"
)

const (
	productListCacheKey = "catalog:products"
	productListCacheTTL = 5 * time.Minute
)

// ProductInput 商品创建/更新入参
type ProductInput struct {
	Kind            string          `json:"kind"`
	MainColor       string          `json:"main_color"`
	SecondaryColors string          `json:"secondary_colors"`
	Brand           string          `json:"brand"`
	InclusionDate   time.Time       `json:"inclusion_date"`
	PhotoURL        string          `json:"photo_url"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	InitialStock    int             `json:"initial_stock"`

	LogoColor string `json:"logo_color"`

	Size        string             `json:"size"`
	Composition map[string]float64 `json:"composition"`
	Gender      string             `json:"gender"`
	HasSleeves  *bool              `json:"has_sleeves"`
}

// ProductView 商品展示结构
type ProductView struct {
	ID           uint         `json:"id"`
	Kind         string       `json:"kind"`
	Description  string       `json:"description"`
	PhotoURL     string       `json:"photo_url"`
	UnitPrice    models.Money `json:"unit_price"`
	CurrentStock int          `json:"current_stock"`
}

// ProductService 商品目录服务
type ProductService struct {
	products repository.ProductRepository
	clock    Clock
}

// NewProductService 创建商品目录服务
func NewProductService(products repository.ProductRepository, clock Clock) *ProductService {
	if clock == nil {
		clock = SystemClock()
	}
	return &ProductService{products: products, clock: clock}
}

// Create 创建商品
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &models.Product{
		Kind:            input.Kind,
		MainColor:       input.MainColor,
		SecondaryColors: input.SecondaryColors,
		Brand:           input.Brand,
		InclusionDate:   input.InclusionDate,
		PhotoURL:        input.PhotoURL,
		UnitPrice:       models.NewMoneyFromDecimal(input.UnitPrice),
		InitialStock:    input.InitialStock,
		CurrentStock:    input.InitialStock,
	}
	applyVariantFields(product, input)

	if err := s.products.Create(product); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	logger.Infow("product_created",
		"product_id", product.ID,
		"kind", product.Kind,
		"brand", product.Brand,
		"initial_stock", product.InitialStock,
	)
	return product, nil
}

// Update 更新商品（类型与初始库存不可修改）
func (s *ProductService) Update(ctx context.Context, id uint, input ProductInput) (*models.Product, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if input.Kind != "" && input.Kind != product.Kind {
		return nil, ErrKindImmutable
	}
	if input.InitialStock != 0 && input.InitialStock != product.InitialStock {
		return nil, ErrInitialStockImmutable
	}

	normalized := input
	normalized.Kind = product.Kind
	normalized.InitialStock = product.InitialStock
	if err := validateProductInput(normalized); err != nil {
		return nil, err
	}

	product.MainColor = input.MainColor
	product.SecondaryColors = input.SecondaryColors
	product.Brand = input.Brand
	product.InclusionDate = input.InclusionDate
	product.PhotoURL = input.PhotoURL
	product.UnitPrice = models.NewMoneyFromDecimal(input.UnitPrice)
	applyVariantFields(product, normalized)

	if err := s.products.Update(product); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	logger.Infow("product_updated", "product_id", product.ID)
	return product, nil
}

// Get 查询单个商品
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// Delete 软删除商品（历史购物车中的引用保持可见）
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	err := s.products.SoftDelete(id, s.clock.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	s.invalidateListCache(ctx)
	logger.Infow("product_deleted", "product_id", id)
	return nil
}

// List 查询商品列表（Cap 在前，入库日期倒序），可用时走缓存
func (s *ProductService) List(ctx context.Context) ([]ProductView, error) {
	if cache.Enabled() {
		var cached []ProductView
		ok, err := cache.GetJSON(ctx, productListCacheKey, &cached)
		if err != nil {
			logger.Warnw("product_list_cache_read_failed", "error", err)
		} else if ok {
			return cached, nil
		}
	}

	products, err := s.products.List()
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, NewProductView(&products[i]))
	}

	if cache.Enabled() {
		if err := cache.SetJSON(ctx, productListCacheKey, views, productListCacheTTL); err != nil {
			logger.Warnw("product_list_cache_write_failed", "error", err)
		}
	}
	return views, nil
}

// NewProductView 构造商品展示结构
func NewProductView(product *models.Product) ProductView {
	return ProductView{
		ID:           product.ID,
		Kind:         product.Kind,
		Description:  product.Description(),
		PhotoURL:     product.PhotoURL,
		UnitPrice:    product.UnitPrice,
		CurrentStock: product.CurrentStock,
	}
}

func (s *ProductService) invalidateListCache(ctx context.Context) {
	if !cache.Enabled() {
		return
	}
	if err := cache.Delete(ctx, productListCacheKey); err != nil {
		logger.Warnw("product_list_cache_invalidate_failed", "error", err)
	}
}

func applyVariantFields(product *models.Product, input ProductInput) {
	switch product.Kind {
	case constants.ProductKindCap:
		product.LogoColor = input.LogoColor
		product.Size = ""
		product.Composition = nil
		product.Gender = ""
		product.HasSleeves = nil
	case constants.ProductKindTshirt:
		product.LogoColor = ""
		product.Size = input.Size
		product.Composition = compositionJSON(input.Composition)
		product.Gender = input.Gender
		product.HasSleeves = input.HasSleeves
	}
}

func compositionJSON(composition map[string]float64) models.JSON {
	if composition == nil {
		return nil
	}
	out := make(models.JSON, len(composition))
	for material, percentage := range composition {
		out[material] = percentage
	}
	return out
}

func validateProductInput(input ProductInput) error {
	if !containsString(constants.ProductKinds, input.Kind) {
		return ErrInvalidKind
	}
	if input.UnitPrice.IsNegative() {
		return ErrInvalidUnitPrice
	}
	if input.InitialStock < 0 {
		return ErrInvalidInitialStock
	}
	if input.Kind == constants.ProductKindTshirt {
		if !containsString(constants.TshirtGenders, input.Gender) {
			return ErrInvalidGender
		}
		if input.HasSleeves == nil {
			return ErrHasSleevesRequired
		}
		// 成分必填：缺省时总和为 0，同样不满足 100%
		total := 0.0
		for material, percentage := range input.Composition {
			if !containsString(constants.TshirtMaterials, material) {
				return ErrInvalidMaterial
			}
			total += percentage
		}
		if total != 100 {
			return ErrCompositionSum
		}
	}
	return nil
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
