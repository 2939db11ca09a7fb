package entity

import (
	"time"
)

// FormulaIngredient 配方成分，ratio 为单批用量
type FormulaIngredient struct {
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Ratio       float64 `json:"ratio"`
	PHR         float64 `json:"phr,omitempty"`
	Consumption float64 `json:"consumption,omitempty"`
}

// Formula 混炼配方
type Formula struct {
	ID            string              `json:"id" gorm:"primaryKey;size:36"`
	Name          string              `json:"name" gorm:"size:128;not null;uniqueIndex"`
	LotMultiplier string              `json:"lotMultiplier" gorm:"size:50"`
	Ingredients   []FormulaIngredient `json:"ingredients" gorm:"serializer:json;type:jsonb"`
	TotalWeight   float64             `json:"totalWeight" gorm:"type:decimal(14,4);not null"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`

	Logs []FormulaLog `json:"logs,omitempty" gorm:"foreignKey:FormulaID"`
}

func (Formula) TableName() string {
	return "stock_formulas"
}

// FormulaLog 配方台账记录。余额有两条写入路径：
// 混炼按 batchWeight*numberOfBatches 增加，产品消耗按 inward*fillWeight 减少。
type FormulaLog struct {
	ID                uint64  `json:"id" gorm:"primaryKey;autoIncrement"`
	FormulaID         string  `json:"formulaId" gorm:"size:36;not null;index"`
	Date              string  `json:"date" gorm:"size:32"`
	Shift             string  `json:"shift" gorm:"size:16"`
	OrderNo           string  `json:"orderNo" gorm:"size:64"`
	MachineNo         string  `json:"machineNo" gorm:"size:32"`
	Operator          string  `json:"operator" gorm:"size:64"`
	BatchNo           string  `json:"batchNo" gorm:"size:64"`
	BatchWeight       float64 `json:"batchWeight" gorm:"type:decimal(14,4);default:0"`
	NumberOfBatches   float64 `json:"numberOfBatches" gorm:"type:decimal(14,4);default:0"`
	Remarks           string  `json:"remarks" gorm:"type:text"`
	SelectedFormulaID string  `json:"selectedFormulaId" gorm:"size:36"`
	Balance           float64 `json:"balance" gorm:"type:decimal(14,4);default:0"`
}

func (FormulaLog) TableName() string {
	return "stock_formula_logs"
}
