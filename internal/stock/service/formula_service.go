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

type FormulaService struct {
	repo        *repository.FormulaRepository
	materialSvc *MaterialService
	logger      *zap.Logger
}

func NewFormulaService(repo *repository.FormulaRepository, materialSvc *MaterialService, logger *zap.Logger) *FormulaService {
	return &FormulaService{repo: repo, materialSvc: materialSvc, logger: logger}
}

type CreateFormulaRequest struct {
	Name          string                     `json:"name" binding:"required"`
	LotMultiplier string                     `json:"lotMultiplier"`
	Ingredients   []entity.FormulaIngredient `json:"ingredients" binding:"required,min=1"`
	TotalWeight   float64                    `json:"totalWeight" binding:"required,gt=0"`
}

func (s *FormulaService) Create(req CreateFormulaRequest) (*entity.Formula, error) {
	if _, err := s.repo.GetByName(req.Name); err == nil {
		return nil, fmt.Errorf("%w: 配方 %s 已存在", ErrValidation, req.Name)
	}

	f := &entity.Formula{
		ID:            uuid.New().String(),
		Name:          req.Name,
		LotMultiplier: req.LotMultiplier,
		Ingredients:   req.Ingredients,
		TotalWeight:   req.TotalWeight,
	}
	if err := s.repo.Create(f); err != nil {
		return nil, fmt.Errorf("创建配方失败: %w", err)
	}
	return f, nil
}

func (s *FormulaService) List() ([]entity.Formula, error) {
	return s.repo.List()
}

func (s *FormulaService) GetByID(id string) (*entity.Formula, error) {
	return s.getByID(id)
}

type UpdateFormulaRequest struct {
	Name        string                     `json:"name" binding:"required"`
	Ingredients []entity.FormulaIngredient `json:"ingredients" binding:"required,min=1"`
}

func (s *FormulaService) Update(id string, req UpdateFormulaRequest) (*entity.Formula, error) {
	f, err := s.getByID(id)
	if err != nil {
		return nil, err
	}
	f.Name = req.Name
	f.Ingredients = req.Ingredients
	if err := s.repo.Update(f); err != nil {
		return nil, fmt.Errorf("更新配方失败: %w", err)
	}
	return f, nil
}

func (s *FormulaService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: 配方 %s", ErrNotFound, id)
		}
		return fmt.Errorf("删除配方失败: %w", err)
	}
	return nil
}

// LogsByName 按配方名称查询台账
func (s *FormulaService) LogsByName(name string) ([]entity.FormulaLog, error) {
	f, err := s.repo.GetByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 配方 %s", ErrNotFound, name)
		}
		return nil, err
	}
	logs, err := s.repo.GetLogs(f.ID)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []entity.FormulaLog{}
	}
	return logs, nil
}

type MixingLogRequest struct {
	Date            string  `json:"date" binding:"required"`
	Shift           string  `json:"shift" binding:"required"`
	OrderNo         string  `json:"orderNo" binding:"required"`
	MachineNo       string  `json:"machineNo" binding:"required"`
	Operator        string  `json:"operator" binding:"required"`
	BatchNo         string  `json:"batchNo" binding:"required"`
	BatchWeight     float64 `json:"batchWeight" binding:"required,gt=0"`
	NumberOfBatches float64 `json:"numberOfBatches" binding:"required,gt=0"`
	Remarks         string  `json:"remarks"`
}

// LogMixing 记录混炼：配方余额按 batchWeight*numberOfBatches 增加，
// 随后逐个成分在原材料台账记一笔出库。成分扣减互不影响，
// 失败只收集打日志，配方台账已落库不回滚。
func (s *FormulaService) LogMixing(id string, req MixingLogRequest) (*entity.FormulaLog, []CascadeError, error) {
	f, err := s.getByID(id)
	if err != nil {
		return nil, nil, err
	}

	previous, err := s.lastBalance(f.ID)
	if err != nil {
		return nil, nil, err
	}

	log := &entity.FormulaLog{
		FormulaID:         f.ID,
		Date:              req.Date,
		Shift:             req.Shift,
		OrderNo:           req.OrderNo,
		MachineNo:         req.MachineNo,
		Operator:          req.Operator,
		BatchNo:           req.BatchNo,
		BatchWeight:       req.BatchWeight,
		NumberOfBatches:   req.NumberOfBatches,
		Remarks:           req.Remarks,
		SelectedFormulaID: f.ID,
		Balance:           previous + req.BatchWeight*req.NumberOfBatches,
	}
	if err := s.repo.AppendLog(log); err != nil {
		return nil, nil, fmt.Errorf("写入配方台账失败: %w", err)
	}

	var fails []CascadeError
	for _, ing := range f.Ingredients {
		used := ing.Ratio * req.NumberOfBatches
		_, err := s.materialSvc.AppendLog(ing.Name, LogDelta{
			Particulars: fmt.Sprintf("Used in Order %s", req.OrderNo),
			Outward:     used,
			Remarks:     fmt.Sprintf("Deduction for %v batches of formula %s Remarks:(%s)", req.NumberOfBatches, ing.Name, req.Remarks),
		})
		if err != nil {
			s.logger.Warn("混炼扣料失败",
				zap.String("formula", f.Name),
				zap.String("material", ing.Name),
				zap.Float64("used", used),
				zap.Error(err))
			fails = append(fails, CascadeError{Kind: "material", Key: ing.Name, Err: err})
		}
	}

	return log, fails, nil
}

type ProductUsageRequest struct {
	OrderNo     string  `json:"orderNo" binding:"required"`
	Particulars string  `json:"particulars" binding:"required"`
	Inward      float64 `json:"inward" binding:"gte=0"`
	Outward     float64 `json:"outward" binding:"gte=0"`
	FillWeight  float64 `json:"fillWeight" binding:"required,gt=0"`
}

// LogFromProduct 记录产品侧的配方消耗：余额按 inward*fillWeight 减少。
// 与 LogMixing 的符号约定相反，两条写入路径各自独立，不要合并。
func (s *FormulaService) LogFromProduct(id string, req ProductUsageRequest) (*entity.FormulaLog, error) {
	if req.OrderNo == "" || req.Particulars == "" || req.FillWeight <= 0 {
		return nil, fmt.Errorf("%w: orderNo/particulars/fillWeight 必填", ErrValidation)
	}

	f, err := s.getByID(id)
	if err != nil {
		return nil, err
	}

	previous, err := s.lastBalance(f.ID)
	if err != nil {
		return nil, err
	}
	used := req.Inward * req.FillWeight

	log := &entity.FormulaLog{
		FormulaID:         f.ID,
		Date:              time.Now().Format("2006-01-02"),
		Shift:             "NA",
		OrderNo:           req.OrderNo,
		MachineNo:         "NA",
		Operator:          "NA",
		BatchNo:           "NA",
		Remarks:           req.Particulars,
		SelectedFormulaID: f.ID,
		Balance:           previous - used,
	}
	if err := s.repo.AppendLog(log); err != nil {
		return nil, fmt.Errorf("写入配方台账失败: %w", err)
	}
	return log, nil
}

func (s *FormulaService) getByID(id string) (*entity.Formula, error) {
	f, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 配方 %s", ErrNotFound, id)
		}
		return nil, err
	}
	return f, nil
}

func (s *FormulaService) lastBalance(formulaID string) (float64, error) {
	last, err := s.repo.GetLastLog(formulaID)
	if err != nil {
		return 0, fmt.Errorf("读取配方台账失败: %w", err)
	}
	if last == nil {
		return 0, nil
	}
	return last.Balance, nil
}
