package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/manish-terminal/elastomech/internal/stock/entity"
	"github.com/manish-terminal/elastomech/internal/stock/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MaterialService struct {
	repo   *repository.MaterialRepository
	logger *zap.Logger
}

func NewMaterialService(repo *repository.MaterialRepository, logger *zap.Logger) *MaterialService {
	return &MaterialService{repo: repo, logger: logger}
}

type CreateMaterialRequest struct {
	Name     string  `json:"name" binding:"required"`
	Rate     float64 `json:"rate" binding:"gte=0"`
	Category string  `json:"category" binding:"required,oneof=rubber chemical"`
	Quantity float64 `json:"quantity" binding:"gte=0"`
}

func (s *MaterialService) Create(req CreateMaterialRequest) (*entity.Material, error) {
	if _, err := s.repo.GetByName(req.Name); err == nil {
		return nil, fmt.Errorf("%w: 原材料 %s 已存在", ErrValidation, req.Name)
	}

	m := &entity.Material{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Rate:     req.Rate,
		Category: req.Category,
		Quantity: req.Quantity,
	}
	if err := s.repo.Create(m); err != nil {
		return nil, fmt.Errorf("创建原材料失败: %w", err)
	}
	return m, nil
}

func (s *MaterialService) List() ([]entity.Material, error) {
	return s.repo.List()
}

// GetByName 按名称获取原材料及台账
func (s *MaterialService) GetByName(name string) (*entity.Material, error) {
	m, err := s.repo.GetByNameWithLogs(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 原材料 %s", ErrNotFound, name)
		}
		return nil, err
	}
	if m.Logs == nil {
		m.Logs = []entity.MaterialLog{}
	}
	return m, nil
}

type UpdateMaterialRequest struct {
	Rate     *float64 `json:"rate"`
	Category *string  `json:"category"`
}

func (s *MaterialService) Update(name string, req UpdateMaterialRequest) (*entity.Material, error) {
	m, err := s.getByName(name)
	if err != nil {
		return nil, err
	}
	if req.Rate != nil {
		m.Rate = *req.Rate
	}
	if req.Category != nil {
		if *req.Category != entity.CategoryRubber && *req.Category != entity.CategoryChemical {
			return nil, fmt.Errorf("%w: 无效的类别 %s", ErrValidation, *req.Category)
		}
		m.Category = *req.Category
	}
	if err := s.repo.Update(m); err != nil {
		return nil, fmt.Errorf("更新原材料失败: %w", err)
	}
	return m, nil
}

func (s *MaterialService) Delete(name string) error {
	if err := s.repo.DeleteByName(name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: 原材料 %s", ErrNotFound, name)
		}
		return fmt.Errorf("删除原材料失败: %w", err)
	}
	return nil
}

// AppendLog 追加原材料台账。上一余额取镜像库存量，结果非负截断，
// 台账与镜像量一次事务写入。无幂等保护。
func (s *MaterialService) AppendLog(name string, delta LogDelta) (*entity.MaterialLog, error) {
	if delta.Particulars == "" {
		return nil, fmt.Errorf("%w: particulars 不能为空", ErrValidation)
	}
	if delta.Inward < 0 || delta.Outward < 0 {
		return nil, fmt.Errorf("%w: inward/outward 不能为负", ErrValidation)
	}

	m, err := s.getByName(name)
	if err != nil {
		return nil, err
	}

	balance := clampBalance(nextBalance(m.Quantity, delta.Inward, delta.Outward))
	log := &entity.MaterialLog{
		MaterialID:  m.ID,
		Date:        time.Now(),
		Particulars: delta.Particulars,
		Inward:      delta.Inward,
		Outward:     delta.Outward,
		Balance:     balance,
		Remarks:     delta.Remarks,
	}
	m.Quantity = balance

	if err := s.repo.AppendLog(m, log); err != nil {
		return nil, fmt.Errorf("写入台账失败: %w", err)
	}
	return log, nil
}

// Deduct 直接扣减镜像库存量，不写台账。订单报工的扣料走这条独立路径。
func (s *MaterialService) Deduct(name string, qty float64) error {
	m, err := s.getByName(name)
	if err != nil {
		return err
	}
	if m.Quantity < qty {
		return fmt.Errorf("%w: 原材料 %s 需要 %.4f 可用 %.4f", ErrInsufficientStock, name, qty, m.Quantity)
	}
	m.Quantity -= qty
	if err := s.repo.Update(m); err != nil {
		return fmt.Errorf("扣减库存失败: %w", err)
	}
	return nil
}

func (s *MaterialService) getByName(name string) (*entity.Material, error) {
	m, err := s.repo.GetByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 原材料 %s", ErrNotFound, name)
		}
		return nil, err
	}
	return m, nil
}
