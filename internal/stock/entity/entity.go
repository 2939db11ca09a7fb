package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移所有库存表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// 原材料
		&Material{},
		&MaterialLog{},

		// 配方
		&Formula{},
		&FormulaLog{},

		// 成品
		&Product{},
		&ProductLog{},

		// 订单
		&Order{},

		// 便签
		&Note{},
	)
}
