package models

import "time"

// ShoppingCart 购物车表（每个自然日最多存在一个未结算购物车）
type ShoppingCart struct {
	ID        uint      `gorm:"primarykey" json:"id"`                         // 主键
	CreatedOn time.Time `gorm:"not null;index:idx_cart_day" json:"created_on"` // 创建日期（自然日，创建后不可修改）
	Purchased bool      `gorm:"not null;default:false;index:idx_cart_day" json:"purchased"` // 是否已结算（false -> true 仅一次）
	CreatedAt time.Time `json:"created_at"`                                   // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                   // 更新时间

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"` // 购物车项
}

// TableName 指定表名
func (ShoppingCart) TableName() string {
	return "shopping_carts"
}

// DateOf 截断到自然日（UTC）
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
