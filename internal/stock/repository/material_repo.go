package repository

import (
	"github.com/manish-terminal/elastomech/internal/stock/entity"
	"gorm.io/gorm"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// GetByName 按名称获取原材料
func (r *MaterialRepository) GetByName(name string) (*entity.Material, error) {
	var m entity.Material
	err := r.db.Where("name = ?", name).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByNameWithLogs 按名称获取原材料及全部台账，台账按插入顺序
func (r *MaterialRepository) GetByNameWithLogs(name string) (*entity.Material, error) {
	var m entity.Material
	err := r.db.Preload("Logs", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Where("name = ?", name).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepository) List() ([]entity.Material, error) {
	var items []entity.Material
	err := r.db.Preload("Logs", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *MaterialRepository) Create(m *entity.Material) error {
	return r.db.Create(m).Error
}

func (r *MaterialRepository) Update(m *entity.Material) error {
	return r.db.Save(m).Error
}

func (r *MaterialRepository) DeleteByName(name string) error {
	res := r.db.Where("name = ?", name).Delete(&entity.Material{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetLogs 获取原材料台账，按插入顺序
func (r *MaterialRepository) GetLogs(materialID string) ([]entity.MaterialLog, error) {
	var logs []entity.MaterialLog
	err := r.db.Where("material_id = ?", materialID).Order("id ASC").Find(&logs).Error
	return logs, err
}

// AppendLog 追加台账并同步镜像库存量，一次事务落库
func (r *MaterialRepository) AppendLog(m *entity.Material, log *entity.MaterialLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(log).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Material{}).Where("id = ?", m.ID).
			Update("quantity", m.Quantity).Error
	})
}

func (r *MaterialRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entity.Material{}).Count(&total).Error
	return total, err
}

// ListExhausted 库存已扣空的原材料
func (r *MaterialRepository) ListExhausted() ([]entity.Material, error) {
	var items []entity.Material
	err := r.db.Where("quantity <= 0").Order("name ASC").Find(&items).Error
	return items, err
}
