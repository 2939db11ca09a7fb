package entity

import (
	"time"
)

// OrderStatus 订单状态
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusInProcess = "in process"
	OrderStatusInTransit = "in transit"
)

// OrderPriority 订单优先级
const (
	OrderPriorityLow    = "low"
	OrderPriorityNormal = "normal"
	OrderPriorityHigh   = "high"
)

// OrderAction 发运动作
const (
	OrderActionMoveToDispatch = "Move to Dispatch"
	OrderActionShipped        = "Shipped"
	OrderActionDelivered      = "Delivered"
)

// 三个状态字段各自独立校验，值之间没有流转约束
var (
	OrderStatuses   = []string{OrderStatusPending, OrderStatusCompleted, OrderStatusInProcess, OrderStatusInTransit}
	OrderPriorities = []string{OrderPriorityLow, OrderPriorityNormal, OrderPriorityHigh}
	OrderActions    = []string{OrderActionMoveToDispatch, OrderActionShipped, OrderActionDelivered}
)

// OrderIngredient 下单时的用料快照，后续修改原材料不回溯
type OrderIngredient struct {
	Name   string  `json:"name"`
	Ratio  float64 `json:"ratio"`
	Weight float64 `json:"weight"`
}

// Order 客户订单
type Order struct {
	ID                  string            `json:"id" gorm:"primaryKey;size:36"`
	OrderID             string            `json:"orderId" gorm:"size:32;not null;index"`
	CustomerName        string            `json:"customerName" gorm:"size:128;not null"`
	ItemName            string            `json:"itemName" gorm:"size:128;not null"`
	WeightPerProduct    float64           `json:"weightPerProduct" gorm:"type:decimal(14,4);not null"`
	Quantity            float64           `json:"quantity" gorm:"type:decimal(14,4);not null"`
	Manufactured        float64           `json:"manufactured" gorm:"type:decimal(14,4);not null;default:0"`
	Rejected            float64           `json:"rejected" gorm:"type:decimal(14,4);not null;default:0"`
	RubberIngredients   []OrderIngredient `json:"rubberIngredients" gorm:"serializer:json;type:jsonb"`
	ChemicalIngredients []OrderIngredient `json:"chemicalIngredients" gorm:"serializer:json;type:jsonb"`
	DeliveryDate        string            `json:"deliveryDate" gorm:"size:32"`
	Remarks             string            `json:"remarks" gorm:"type:text"`
	Status              string            `json:"status" gorm:"size:20;not null;default:pending"`
	Priority            string            `json:"priority" gorm:"size:20;not null;default:normal"`
	Action              string            `json:"action" gorm:"size:32;not null;default:'Move to Dispatch'"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

func (Order) TableName() string {
	return "stock_orders"
}
