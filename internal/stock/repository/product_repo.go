package repository

import (
	"errors"

	"github.com/manish-terminal/elastomech/internal/stock/entity"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	var p entity.Product
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) List() ([]entity.Product, error) {
	var items []entity.Product
	err := r.db.Order("article_no ASC").Find(&items).Error
	return items, err
}

func (r *ProductRepository) Create(p *entity.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) Update(p *entity.Product) error {
	return r.db.Save(p).Error
}

// GetLastLog 取最后一条出入库台账（按插入顺序），没有则返回 nil
func (r *ProductRepository) GetLastLog(productID string) (*entity.ProductLog, error) {
	var log entity.ProductLog
	err := r.db.Where("product_id = ?", productID).Order("id DESC").First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

// GetLogs 获取出入库台账，按插入顺序
func (r *ProductRepository) GetLogs(productID string) ([]entity.ProductLog, error) {
	var logs []entity.ProductLog
	err := r.db.Where("product_id = ?", productID).Order("id ASC").Find(&logs).Error
	return logs, err
}

// AppendLog 追加台账并同步镜像库存量，一次事务落库
func (r *ProductRepository) AppendLog(p *entity.Product, log *entity.ProductLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(log).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Product{}).Where("id = ?", p.ID).
			Updates(map[string]interface{}{"quantity": p.Quantity, "last_updated": log.Date}).Error
	})
}

func (r *ProductRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entity.Product{}).Count(&total).Error
	return total, err
}
