package repository

import (
	"errors"

	"github.com/manish-terminal/elastomech/internal/stock/entity"
	"gorm.io/gorm"
)

type FormulaRepository struct {
	db *gorm.DB
}

func NewFormulaRepository(db *gorm.DB) *FormulaRepository {
	return &FormulaRepository{db: db}
}

func (r *FormulaRepository) GetByID(id string) (*entity.Formula, error) {
	var f entity.Formula
	err := r.db.Where("id = ?", id).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FormulaRepository) GetByName(name string) (*entity.Formula, error) {
	var f entity.Formula
	err := r.db.Where("name = ?", name).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FormulaRepository) List() ([]entity.Formula, error) {
	var items []entity.Formula
	err := r.db.Order("name ASC").Find(&items).Error
	return items, err
}

func (r *FormulaRepository) Create(f *entity.Formula) error {
	return r.db.Create(f).Error
}

func (r *FormulaRepository) Update(f *entity.Formula) error {
	return r.db.Save(f).Error
}

func (r *FormulaRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&entity.Formula{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetLastLog 取最后一条台账（按插入顺序），没有则返回 nil
func (r *FormulaRepository) GetLastLog(formulaID string) (*entity.FormulaLog, error) {
	var log entity.FormulaLog
	err := r.db.Where("formula_id = ?", formulaID).Order("id DESC").First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

// GetLogs 获取配方台账，按插入顺序
func (r *FormulaRepository) GetLogs(formulaID string) ([]entity.FormulaLog, error) {
	var logs []entity.FormulaLog
	err := r.db.Where("formula_id = ?", formulaID).Order("id ASC").Find(&logs).Error
	return logs, err
}

func (r *FormulaRepository) AppendLog(log *entity.FormulaLog) error {
	return r.db.Create(log).Error
}

func (r *FormulaRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entity.Formula{}).Count(&total).Error
	return total, err
}
