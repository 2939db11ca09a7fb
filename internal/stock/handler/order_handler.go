package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/manish-terminal/elastomech/internal/stock/entity"
	"github.com/manish-terminal/elastomech/internal/stock/repository"
	"github.com/manish-terminal/elastomech/internal/stock/service"
)

// OrderHandler 订单接口
type OrderHandler struct {
	svc *service.OrderService
}

func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// List GET /api/orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.svc.List(repository.OrderListParams{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Action:   c.Query("action"),
	})
	if err != nil {
		InternalError(c, "获取订单列表失败: "+err.Error())
		return
	}
	Success(c, gin.H{"items": orders})
}

// Create POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	o, err := h.svc.Create(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, o)
}

// Get GET /api/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, o)
}

// Update PUT /api/orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	var req service.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	o, fails, err := h.svc.Update(c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"order": o, "errors": service.CascadeMessages(fails)})
}

// NextDispatchID GET /api/orders/next-dispatch-id
func (h *OrderHandler) NextDispatchID(c *gin.Context) {
	id, err := h.svc.NextDispatchID()
	if err != nil {
		InternalError(c, "生成派工单号失败: "+err.Error())
		return
	}
	Success(c, gin.H{"dispatchId": id})
}

// Dispatch GET /api/dispatch 发运看板,action 未指定时默认看已移入发运的订单
func (h *OrderHandler) Dispatch(c *gin.Context) {
	action := c.Query("action")
	if action == "" {
		action = entity.OrderActionMoveToDispatch
	}
	orders, err := h.svc.List(repository.OrderListParams{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Action:   action,
	})
	if err != nil {
		InternalError(c, "获取发运看板失败: "+err.Error())
		return
	}
	Success(c, gin.H{"items": orders})
}
