package entity

import (
	"time"
)

// MaterialCategory 原材料类别
const (
	CategoryRubber   = "rubber"   // 橡胶
	CategoryChemical = "chemical" // 化工料
)

// Material 原材料库存，name 全局唯一，按名称查找
type Material struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"size:128;not null;uniqueIndex"`
	Rate      float64   `json:"rate" gorm:"type:decimal(12,4);not null;default:0"`
	Category  string    `json:"category" gorm:"size:20;not null"`
	Quantity  float64   `json:"quantity" gorm:"type:decimal(14,4);not null;default:0"` // 与最后一条台账余额保持一致
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Logs []MaterialLog `json:"logs,omitempty" gorm:"foreignKey:MaterialID"`
}

func (Material) TableName() string {
	return "stock_materials"
}

// MaterialLog 原材料台账记录，主键自增即插入顺序
type MaterialLog struct {
	ID          uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	MaterialID  string    `json:"materialId" gorm:"size:36;not null;index"`
	Date        time.Time `json:"date"`
	Particulars string    `json:"particulars" gorm:"size:255;not null"`
	Inward      float64   `json:"inward" gorm:"type:decimal(14,4);default:0"`
	Outward     float64   `json:"outward" gorm:"type:decimal(14,4);default:0"`
	Balance     float64   `json:"balance" gorm:"type:decimal(14,4);default:0"`
	Remarks     string    `json:"remarks" gorm:"type:text"`
}

func (MaterialLog) TableName() string {
	return "stock_material_logs"
}
