package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/threadcap/threadcap/internal/constants"
)

// JSON 通用 JSON 字段类型
type JSON map[string]interface{}

// Value 实现 driver.Valuer 接口
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan 实现 sql.Scanner 接口
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// Product 商品表（Cap/Tshirt 两种类型共用一张表，变体字段按类型取值）
type Product struct {
	ID              uint       `gorm:"primarykey" json:"id"`                         // 主键
	Kind            string     `gorm:"type:varchar(20);not null;index" json:"kind"`  // 商品类型（Cap/Tshirt，创建后不可修改）
	MainColor       string     `gorm:"type:varchar(20);not null" json:"main_color"`  // 主色
	SecondaryColors string     `gorm:"type:varchar(200)" json:"secondary_colors"`    // 辅色列表（逗号分隔）
	Brand           string     `gorm:"type:varchar(50);not null" json:"brand"`       // 品牌
	InclusionDate   time.Time  `gorm:"not null;index" json:"inclusion_date"`         // 入库日期
	PhotoURL        string     `gorm:"type:varchar(500)" json:"photo_url"`           // 商品图片地址
	UnitPrice       Money      `gorm:"type:decimal(6,2);not null" json:"unit_price"` // 单价
	InitialStock    int        `gorm:"not null" json:"-"`                            // 初始库存（创建后不可修改）
	CurrentStock    int        `gorm:"not null" json:"current_stock"`                // 当前库存
	IsDeleted       bool       `gorm:"not null;default:false;index" json:"-"`        // 软删除标记
	DeletedAt       *time.Time `json:"-"`                                            // 软删除时间

	// Cap 变体字段
	LogoColor string `gorm:"type:varchar(20)" json:"logo_color,omitempty"` // 标志颜色

	// Tshirt 变体字段
	Size        string `gorm:"type:varchar(20)" json:"size,omitempty"`    // 尺码
	Composition JSON   `gorm:"type:json" json:"composition,omitempty"`    // 成分占比（材质 -> 百分比）
	Gender      string `gorm:"type:varchar(20)" json:"gender,omitempty"`  // 适用性别
	HasSleeves  *bool  `json:"has_sleeves,omitempty"`                     // 是否有袖
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// Description 根据商品类型拼装展示文案
func (p *Product) Description() string {
	base := fmt.Sprintf("%s %s %s with secondary colors %s, included in the catalog in the year %d",
		p.MainColor, p.Brand, p.Kind, p.SecondaryColors, p.InclusionDate.Year())
	if p.Kind != constants.ProductKindTshirt {
		return base
	}
	return fmt.Sprintf("%s, size %s, composition %s", base, p.Size, p.CompositionDisplay())
}

// CompositionDisplay 成分展示文案（材质按字母序输出，保证稳定）
func (p *Product) CompositionDisplay() string {
	if len(p.Composition) == 0 {
		return ""
	}
	materials := make([]string, 0, len(p.Composition))
	for material := range p.Composition {
		materials = append(materials, material)
	}
	sort.Strings(materials)
	parts := make([]string, 0, len(materials))
	for _, material := range materials {
		parts = append(parts, fmt.Sprintf("%s: %s%%", material, formatPercentage(p.Composition[material])))
	}
	return strings.Join(parts, ", ")
}

// CompositionPercentages 将成分 JSON 转换为数值映射
func (p *Product) CompositionPercentages() map[string]float64 {
	result := make(map[string]float64, len(p.Composition))
	for material, raw := range p.Composition {
		switch v := raw.(type) {
		case float64:
			result[material] = v
		case int:
			result[material] = float64(v)
		case json.Number:
			f, err := v.Float64()
			if err == nil {
				result[material] = f
			}
		}
	}
	return result
}

func formatPercentage(raw interface{}) string {
	switch v := raw.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", raw)
	}
}
