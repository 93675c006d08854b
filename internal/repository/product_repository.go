package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/threadcap/threadcap/internal/constants"
	"github.com/threadcap/threadcap/internal/models"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	Create(product *models.Product) error
	Update(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	GetByIDForUpdate(id uint) (*models.Product, error)
	GetAnyByID(id uint) (*models.Product, error)
	List() ([]models.Product, error)
	SoftDelete(id uint, at time.Time) error
	ReserveStock(productID uint, quantity int) (bool, error)
	ReleaseStock(productID uint, quantity int) error
	SetCurrentStock(productID uint, stock int) error
	Transaction(fn func(txRepo ProductRepository) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository 基于 GORM 的商品仓储实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository 创建商品仓储
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 返回绑定事务的仓储实例
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	return &GormProductRepository{db: tx}
}

// Transaction 在事务中执行
func (r *GormProductRepository) Transaction(fn func(txRepo ProductRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 保存商品字段
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// GetByID 按 ID 查询未删除商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByIDForUpdate 按 ID 查询未删除商品并加行锁
func (r *GormProductRepository) GetByIDForUpdate(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetAnyByID 按 ID 查询商品（包含已删除，供对账使用）
func (r *GormProductRepository) GetAnyByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List 查询在售商品列表（Cap 在前，入库日期倒序）
func (r *GormProductRepository) List() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("is_deleted = ?", false).
		Order(fmt.Sprintf("CASE WHEN kind = '%s' THEN 0 ELSE 1 END", constants.ProductKindCap)).
		Order("inclusion_date DESC").
		Order("id DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// SoftDelete 软删除商品
func (r *GormProductRepository) SoftDelete(id uint, at time.Time) error {
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReserveStock 条件扣减库存，库存不足时返回 false
func (r *GormProductRepository) ReserveStock(productID uint, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, errors.New("reserve quantity must be positive")
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND is_deleted = ? AND current_stock >= ?", productID, false, quantity).
		Update("current_stock", gorm.Expr("current_stock - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ReleaseStock 归还库存
func (r *GormProductRepository) ReleaseStock(productID uint, quantity int) error {
	if quantity <= 0 {
		return errors.New("release quantity must be positive")
	}
	return r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("current_stock", gorm.Expr("current_stock + ?", quantity)).Error
}

// SetCurrentStock 直接设置当前库存（对账使用）
func (r *GormProductRepository) SetCurrentStock(productID uint, stock int) error {
	return r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("current_stock", stock).Error
}
