package entity

import (
	"time"
)

// Manufacturing 成型工艺
const (
	ManufacturingMoulding  = "Moulding"
	ManufacturingExtrusion = "Extrusion"
)

// ProductFormulation 产品用料：配方引用 + 单件填充重量
type ProductFormulation struct {
	FormulaID  string  `json:"formulaId"`
	FillWeight float64 `json:"fillWeight"`
}

// Product 成品档案
type Product struct {
	ID             string               `json:"id" gorm:"primaryKey;size:36"`
	ArticleName    string               `json:"articleName" gorm:"size:128;not null"`
	Image          string               `json:"image" gorm:"size:255"`
	ArticleNo      string               `json:"articleNo" gorm:"size:64;not null;uniqueIndex"`
	Manufacturing  string               `json:"manufacturing" gorm:"size:20;not null"`
	MouldingTemp   string               `json:"mouldingTemp" gorm:"size:32"`
	Formulations   []ProductFormulation `json:"formulations" gorm:"serializer:json;type:jsonb"`
	MouldNo        string               `json:"mouldNo" gorm:"size:32"`
	NoOfCavity     int                  `json:"noOfCavity"`
	CycleTime      float64              `json:"cycleTime" gorm:"type:decimal(12,4);default:0"`
	ExpectedCycles float64              `json:"expectedCycles" gorm:"type:decimal(12,4);default:0"`
	NoOfLabours    int                  `json:"noOfLabours"`
	Hardness       float64              `json:"hardness" gorm:"type:decimal(12,4);default:0"`
	Quantity       float64              `json:"quantity" gorm:"type:decimal(14,4);not null;default:0"` // 与最后一条台账余额保持一致
	LastUpdated    time.Time            `json:"lastUpdated"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`

	TransactionLogs []ProductLog `json:"transactionLogs,omitempty" gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string {
	return "stock_products"
}

// ProductLog 成品出入库台账，主键自增即插入顺序
type ProductLog struct {
	ID          uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID   string    `json:"productId" gorm:"size:36;not null;index"`
	Date        time.Time `json:"date"`
	Particulars string    `json:"particulars" gorm:"size:255;not null"`
	Inward      float64   `json:"inward" gorm:"type:decimal(14,4);default:0"`
	Outward     float64   `json:"outward" gorm:"type:decimal(14,4);default:0"`
	Balance     float64   `json:"balance" gorm:"type:decimal(14,4);default:0"`
	Remarks     string    `json:"remarks" gorm:"type:text"`
}

func (ProductLog) TableName() string {
	return "stock_product_logs"
}
