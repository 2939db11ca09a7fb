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

type OrderService struct {
	repo        *repository.OrderRepository
	materialSvc *MaterialService
	logger      *zap.Logger
}

func NewOrderService(repo *repository.OrderRepository, materialSvc *MaterialService, logger *zap.Logger) *OrderService {
	return &OrderService{repo: repo, materialSvc: materialSvc, logger: logger}
}

type CreateOrderRequest struct {
	OrderID            string                   `json:"orderId"`
	CustomerName       string                   `json:"customerName" binding:"required"`
	ItemName           string                   `json:"itemName" binding:"required"`
	WeightPerProduct   float64                  `json:"weightPerProduct"`
	Quantity           float64                  `json:"quantity" binding:"required,gt=0"`
	RubberIngredients  []entity.OrderIngredient `json:"rubberIngredients"`
	ChemicalIngredients []entity.OrderIngredient `json:"chemicalIngredients"`
	DeliveryDate       string                   `json:"deliveryDate"`
	Remarks            string                   `json:"remarks"`
}

// Create 创建订单并生成流水号。流水号为 ELAST+日期+当日序号,
// 序号取自前缀计数,并发下单可能撞号。
func (s *OrderService) Create(req CreateOrderRequest) (*entity.Order, error) {
	orderID := req.OrderID
	if orderID == "" {
		id, err := s.generateOrderID()
		if err != nil {
			return nil, err
		}
		orderID = id
	}

	o := &entity.Order{
		ID:                  uuid.New().String(),
		OrderID:             orderID,
		CustomerName:        req.CustomerName,
		ItemName:            req.ItemName,
		WeightPerProduct:    req.WeightPerProduct,
		Quantity:            req.Quantity,
		RubberIngredients:   req.RubberIngredients,
		ChemicalIngredients: req.ChemicalIngredients,
		DeliveryDate:        req.DeliveryDate,
		Remarks:             req.Remarks,
		Status:              entity.OrderStatusPending,
		Priority:            entity.OrderPriorityNormal,
		Action:              entity.OrderActionMoveToDispatch,
	}
	if err := s.repo.Create(o); err != nil {
		return nil, fmt.Errorf("创建订单失败: %w", err)
	}
	return o, nil
}

func (s *OrderService) generateOrderID() (string, error) {
	now := time.Now()
	prefix := "ELAST" + now.Format("20060102")
	count, err := s.repo.CountByOrderIDPrefix(prefix)
	if err != nil {
		return "", fmt.Errorf("统计当日订单失败: %w", err)
	}
	return fmt.Sprintf("%s%02d", prefix, count+1), nil
}

// NextDispatchID 返回下一个派工单号 OD+日月年-当日序号,
// 序号取当日 OD 前缀订单计数,并发下仍可能撞号。
func (s *OrderService) NextDispatchID() (string, error) {
	now := time.Now()
	prefix := "OD" + now.Format("020106")
	count, err := s.repo.CountByOrderIDPrefix(prefix)
	if err != nil {
		return "", fmt.Errorf("统计当日派工单失败: %w", err)
	}
	return fmt.Sprintf("%s-%02d", prefix, count+1), nil
}

func (s *OrderService) List(params repository.OrderListParams) ([]entity.Order, error) {
	orders, err := s.repo.List(params)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []entity.Order{}
	}
	return orders, nil
}

func (s *OrderService) GetByID(id string) (*entity.Order, error) {
	return s.getByID(id)
}

type UpdateOrderRequest struct {
	Status       *string  `json:"status"`
	Priority     *string  `json:"priority"`
	Action       *string  `json:"action"`
	Manufactured *float64 `json:"manufactured"`
	Rejected     *float64 `json:"rejected"`
	DeliveryDate *string  `json:"deliveryDate"`
	Remarks      *string  `json:"remarks"`
}

// Update 更新订单。manufactured 增量触发物料直扣,订单先落库,
// 扣料失败不回滚,错误在落库后一并返回。
func (s *OrderService) Update(id string, req UpdateOrderRequest) (*entity.Order, []CascadeError, error) {
	o, err := s.getByID(id)
	if err != nil {
		return nil, nil, err
	}

	if req.Status != nil {
		if !contains(entity.OrderStatuses, *req.Status) {
			return nil, nil, fmt.Errorf("%w: 非法状态 %s", ErrValidation, *req.Status)
		}
		o.Status = *req.Status
	}
	if req.Priority != nil {
		if !contains(entity.OrderPriorities, *req.Priority) {
			return nil, nil, fmt.Errorf("%w: 非法优先级 %s", ErrValidation, *req.Priority)
		}
		o.Priority = *req.Priority
	}
	if req.Action != nil {
		if !contains(entity.OrderActions, *req.Action) {
			return nil, nil, fmt.Errorf("%w: 非法动作 %s", ErrValidation, *req.Action)
		}
		o.Action = *req.Action
	}
	if req.DeliveryDate != nil {
		o.DeliveryDate = *req.DeliveryDate
	}
	if req.Remarks != nil {
		o.Remarks = *req.Remarks
	}
	// 扣料量为生产增量与废品增量之和
	increase := 0.0
	if req.Rejected != nil {
		if *req.Rejected < 0 {
			return nil, nil, fmt.Errorf("%w: rejected 不能为负", ErrValidation)
		}
		increase += *req.Rejected - o.Rejected
		o.Rejected = *req.Rejected
	}
	if req.Manufactured != nil {
		if *req.Manufactured < o.Manufactured {
			return nil, nil, fmt.Errorf("%w: manufactured 不能减少", ErrValidation)
		}
		if *req.Manufactured > o.Quantity {
			return nil, nil, fmt.Errorf("%w: manufactured 不能超过订单数量", ErrValidation)
		}
		increase += *req.Manufactured - o.Manufactured
		o.Manufactured = *req.Manufactured
	}

	if err := s.repo.Update(o); err != nil {
		return nil, nil, fmt.Errorf("更新订单失败: %w", err)
	}

	var fails []CascadeError
	if increase > 0 {
		fails = s.deductIngredients(o, increase)
	}
	return o, fails, nil
}

// deductIngredients 按配比直扣物料库存,不写物料台账,先胶料后化料。
// 任一物料扣减失败即中止,已扣的保持已扣,未走到的不再扣。
func (s *OrderService) deductIngredients(o *entity.Order, increase float64) []CascadeError {
	ings := make([]entity.OrderIngredient, 0, len(o.RubberIngredients)+len(o.ChemicalIngredients))
	ings = append(ings, o.RubberIngredients...)
	ings = append(ings, o.ChemicalIngredients...)
	for _, ing := range ings {
		perUnit := ing.Weight / o.Quantity
		toDeduct := perUnit * increase
		if err := s.materialSvc.Deduct(ing.Name, toDeduct); err != nil {
			s.logger.Warn("订单扣料失败",
				zap.String("order", o.OrderID),
				zap.String("material", ing.Name),
				zap.Float64("quantity", toDeduct),
				zap.Error(err))
			return []CascadeError{{Kind: "material", Key: ing.Name, Err: err}}
		}
	}
	return nil
}

func (s *OrderService) getByID(id string) (*entity.Order, error) {
	o, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 订单 %s", ErrNotFound, id)
		}
		return nil, err
	}
	return o, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
