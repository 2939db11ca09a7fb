package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/manish-terminal/elastomech/internal/stock/service"
)

// FormulaHandler 配方接口
type FormulaHandler struct {
	svc *service.FormulaService
}

func NewFormulaHandler(svc *service.FormulaService) *FormulaHandler {
	return &FormulaHandler{svc: svc}
}

// List GET /api/formulas
func (h *FormulaHandler) List(c *gin.Context) {
	items, err := h.svc.List()
	if err != nil {
		InternalError(c, "获取配方列表失败: "+err.Error())
		return
	}
	Success(c, gin.H{"items": items})
}

// Create POST /api/formulas
func (h *FormulaHandler) Create(c *gin.Context) {
	var req service.CreateFormulaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	f, err := h.svc.Create(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, f)
}

// Get GET /api/formulas/:id
func (h *FormulaHandler) Get(c *gin.Context) {
	f, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, f)
}

// Update PUT /api/formulas/:id
func (h *FormulaHandler) Update(c *gin.Context) {
	var req service.UpdateFormulaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	f, err := h.svc.Update(c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, f)
}

// Delete DELETE /api/formulas/:id
func (h *FormulaHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"deleted": c.Param("id")})
}

// LogMixing POST /api/formulas/:id/log
func (h *FormulaHandler) LogMixing(c *gin.Context) {
	var req service.MixingLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	log, fails, err := h.svc.LogMixing(c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, gin.H{"log": log, "errors": service.CascadeMessages(fails)})
}

// LogFromProduct POST /api/formulas/:id/log-from-product
func (h *FormulaHandler) LogFromProduct(c *gin.Context) {
	var req service.ProductUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	log, err := h.svc.LogFromProduct(c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, log)
}

// LogsByName GET /api/formulas/logs/:name
func (h *FormulaHandler) LogsByName(c *gin.Context) {
	logs, err := h.svc.LogsByName(c.Param("name"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": logs})
}
