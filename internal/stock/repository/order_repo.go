package repository

import (
	"github.com/manish-terminal/elastomech/internal/stock/entity"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) GetByID(id string) (*entity.Order, error) {
	var o entity.Order
	err := r.db.Where("id = ?", id).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderListParams struct {
	Status   string
	Priority string
	Action   string
}

func (r *OrderRepository) List(params OrderListParams) ([]entity.Order, error) {
	query := r.db.Model(&entity.Order{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Priority != "" {
		query = query.Where("priority = ?", params.Priority)
	}
	if params.Action != "" {
		query = query.Where("action = ?", params.Action)
	}
	var items []entity.Order
	err := query.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *OrderRepository) Create(o *entity.Order) error {
	return r.db.Create(o).Error
}

func (r *OrderRepository) Update(o *entity.Order) error {
	return r.db.Save(o).Error
}

// CountByOrderIDPrefix 统计 orderId 以指定前缀开头的订单数，用于按日流水号
func (r *OrderRepository) CountByOrderIDPrefix(prefix string) (int64, error) {
	var total int64
	err := r.db.Model(&entity.Order{}).Where("order_id LIKE ?", prefix+"%").Count(&total).Error
	return total, err
}

// CountByStatus 统计指定状态的订单数，空状态统计全部
func (r *OrderRepository) CountByStatus(status string) (int64, error) {
	query := r.db.Model(&entity.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var total int64
	err := query.Count(&total).Error
	return total, err
}
