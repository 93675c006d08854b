package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/threadcap/threadcap/internal/logger"
	"github.com/threadcap/threadcap/internal/models"
	"github.com/threadcap/threadcap/internal/repository"
)

// CartItemDetail 购物车项展示结构
type CartItemDetail struct {
	ProductID   uint         `json:"product_id"`
	Description string       `json:"description"`
	PhotoURL    string       `json:"photo_url"`
	UnitPrice   models.Money `json:"unit_price"`
	Quantity    int          `json:"quantity"`
}

// CartSnapshot 当日购物车快照
type CartSnapshot struct {
	Items         []CartItemDetail `json:"products"`
	TotalQuantity int              `json:"total_products"`
}

// CartService 购物车服务，负责加购与库存占用
type CartService struct {
	db       *gorm.DB
	products repository.ProductRepository
	carts    repository.CartRepository
	clock    Clock
}

// NewCartService 创建购物车服务
func NewCartService(db *gorm.DB, products repository.ProductRepository, carts repository.CartRepository, clock Clock) *CartService {
	if clock == nil {
		clock = SystemClock()
	}
	return &CartService{db: db, products: products, carts: carts, clock: clock}
}

// AddOrUpdateItem 向当日购物车增减商品数量。
// quantityDelta 为正表示加购、为负表示移除；数量下限为 0，
// 库存按实际变化量扣减或归还。
func (s *CartService) AddOrUpdateItem(ctx context.Context, productID uint, quantityDelta int) (*models.CartItem, error) {
	if quantityDelta == 0 {
		return nil, ErrZeroQuantity
	}

	var resultItem *models.CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.products.WithTx(tx)
		carts := s.carts.WithTx(tx)

		// 先锁商品，再锁购物车与购物车项，保持固定加锁顺序避免死锁
		product, err := products.GetByIDForUpdate(productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		cart, err := s.lockOrCreateActiveCart(carts)
		if err != nil {
			return err
		}

		oldQuantity := 0
		var existing *models.CartItem
		existing, err = carts.GetItemForUpdate(cart.ID, product.ID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			existing = nil
		} else {
			oldQuantity = existing.Quantity
		}

		newQuantity := oldQuantity + quantityDelta
		if newQuantity < 0 {
			newQuantity = 0
		}

		// 库存按实际数量变化调整，保证当前库存 = 初始库存 - 累计占用
		effectiveDelta := newQuantity - oldQuantity
		if effectiveDelta > 0 {
			ok, err := products.ReserveStock(product.ID, effectiveDelta)
			if err != nil {
				return err
			}
			if !ok {
				return ErrInsufficientStock
			}
		} else if effectiveDelta < 0 {
			if err := products.ReleaseStock(product.ID, -effectiveDelta); err != nil {
				return err
			}
		}

		if existing == nil {
			item := &models.CartItem{
				CartID:    cart.ID,
				ProductID: product.ID,
				Quantity:  newQuantity,
			}
			if err := carts.CreateItem(item); err != nil {
				return err
			}
			resultItem = item
			return nil
		}

		if err := carts.UpdateItemQuantity(existing.ID, newQuantity); err != nil {
			return err
		}
		existing.Quantity = newQuantity
		resultItem = existing
		return nil
	})
	if err != nil {
		if isLockConflict(err) {
			logger.Warnw("cart_update_lock_conflict", "product_id", productID, "error", err)
			return nil, ErrConcurrencyConflict
		}
		return nil, err
	}

	logger.Infow("cart_item_updated",
		"cart_id", resultItem.CartID,
		"product_id", resultItem.ProductID,
		"quantity", resultItem.Quantity,
		"delta", quantityDelta,
	)
	return resultItem, nil
}

// ActiveCartSnapshot 返回当日购物车快照；不存在时返回空快照
func (s *CartService) ActiveCartSnapshot(ctx context.Context) (*CartSnapshot, error) {
	cart, err := s.carts.GetActiveCart(s.clock.Today())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CartSnapshot{Items: []CartItemDetail{}}, nil
		}
		return nil, err
	}

	items, err := s.carts.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}

	snapshot := &CartSnapshot{Items: make([]CartItemDetail, 0, len(items))}
	for i := range items {
		item := &items[i]
		if item.Quantity == 0 {
			continue
		}
		detail := CartItemDetail{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			detail.Description = item.Product.Description()
			detail.PhotoURL = item.Product.PhotoURL
			detail.UnitPrice = item.Product.UnitPrice
		}
		snapshot.Items = append(snapshot.Items, detail)
		snapshot.TotalQuantity += item.Quantity
	}
	return snapshot, nil
}

func (s *CartService) lockOrCreateActiveCart(carts repository.CartRepository) (*models.ShoppingCart, error) {
	today := s.clock.Today()
	cart, err := carts.GetActiveCartForUpdate(today)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &models.ShoppingCart{CreatedOn: today}
	if err := carts.Create(created); err != nil {
		// 唯一索引冲突：另一事务已创建当日购物车，改为锁定既有购物车
		if cart, refetchErr := carts.GetActiveCartForUpdate(today); refetchErr == nil {
			return cart, nil
		}
		return nil, err
	}
	logger.Infow("cart_created", "cart_id", created.ID, "created_on", today.Format("2006-01-02"))
	return created, nil
}

// isLockConflict 判断错误是否为并发锁冲突
func isLockConflict(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "database is locked") ||
		strings.Contains(message, "database table is locked") ||
		strings.Contains(message, "deadlock") ||
		strings.Contains(message, "could not serialize") ||
		strings.Contains(message, "lock timeout")
}
