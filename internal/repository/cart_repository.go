package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/threadcap/threadcap/internal/models"
)

// ReservedQuantity 某商品的累计占用数量（已结算订单 + 当日未结算购物车）
type ReservedQuantity struct {
	ProductID uint
	Total     int
}

// CartRepository 购物车数据访问接口
type CartRepository interface {
	Create(cart *models.ShoppingCart) error
	GetActiveCart(day time.Time) (*models.ShoppingCart, error)
	GetActiveCartForUpdate(day time.Time) (*models.ShoppingCart, error)
	MarkPurchased(cartID uint) error
	GetItem(cartID, productID uint) (*models.CartItem, error)
	GetItemForUpdate(cartID, productID uint) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItemQuantity(itemID uint, quantity int) error
	ListItems(cartID uint) ([]models.CartItem, error)
	SumReservedByProduct(day time.Time) ([]ReservedQuantity, error)
	Transaction(fn func(txRepo CartRepository) error) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository 基于 GORM 的购物车仓储实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository 创建购物车仓储
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 返回绑定事务的仓储实例
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	return &GormCartRepository{db: tx}
}

// Transaction 在事务中执行
func (r *GormCartRepository) Transaction(fn func(txRepo CartRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// Create 创建购物车
func (r *GormCartRepository) Create(cart *models.ShoppingCart) error {
	return r.db.Create(cart).Error
}

// GetActiveCart 查询指定自然日的未结算购物车
func (r *GormCartRepository) GetActiveCart(day time.Time) (*models.ShoppingCart, error) {
	var cart models.ShoppingCart
	err := r.db.Where("created_on = ? AND purchased = ?", models.DateOf(day), false).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetActiveCartForUpdate 查询指定自然日的未结算购物车并加行锁
func (r *GormCartRepository) GetActiveCartForUpdate(day time.Time) (*models.ShoppingCart, error) {
	var cart models.ShoppingCart
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("created_on = ? AND purchased = ?", models.DateOf(day), false).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// MarkPurchased 将购物车标记为已结算
func (r *GormCartRepository) MarkPurchased(cartID uint) error {
	result := r.db.Model(&models.ShoppingCart{}).
		Where("id = ? AND purchased = ?", cartID, false).
		Update("purchased", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetItem 查询购物车项
func (r *GormCartRepository) GetItem(cartID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemForUpdate 查询购物车项并加行锁
func (r *GormCartRepository) GetItemForUpdate(cartID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem 创建购物车项
func (r *GormCartRepository) CreateItem(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateItemQuantity 覆盖购物车项数量
func (r *GormCartRepository) UpdateItemQuantity(itemID uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

// ListItems 按加入顺序查询购物车项（预加载商品）
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Where("cart_id = ?", cartID).
		Order("id ASC").
		Preload("Product").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// SumReservedByProduct 按商品汇总占用数量：所有已结算购物车 + 当日未结算购物车
func (r *GormCartRepository) SumReservedByProduct(day time.Time) ([]ReservedQuantity, error) {
	var rows []ReservedQuantity
	err := r.db.Model(&models.CartItem{}).
		Select("cart_items.product_id AS product_id, SUM(cart_items.quantity) AS total").
		Joins("JOIN shopping_carts ON shopping_carts.id = cart_items.cart_id").
		Where("shopping_carts.purchased = ? OR (shopping_carts.purchased = ? AND shopping_carts.created_on = ?)",
			true, false, models.DateOf(day)).
		Group("cart_items.product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
