package repository

import "gorm.io/gorm"

// Repositories 库存仓库集合
type Repositories struct {
	Material *MaterialRepository
	Formula  *FormulaRepository
	Product  *ProductRepository
	Order    *OrderRepository
	Note     *NoteRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Material: NewMaterialRepository(db),
		Formula:  NewFormulaRepository(db),
		Product:  NewProductRepository(db),
		Order:    NewOrderRepository(db),
		Note:     NewNoteRepository(db),
	}
}
