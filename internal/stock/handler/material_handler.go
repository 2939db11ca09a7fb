package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/manish-terminal/elastomech/internal/stock/service"
)

// MaterialHandler 原材料接口
type MaterialHandler struct {
	svc *service.MaterialService
}

func NewMaterialHandler(svc *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{svc: svc}
}

// List GET /api/items
func (h *MaterialHandler) List(c *gin.Context) {
	items, err := h.svc.List()
	if err != nil {
		InternalError(c, "获取原材料列表失败: "+err.Error())
		return
	}
	Success(c, gin.H{"items": items})
}

// Create POST /api/items
func (h *MaterialHandler) Create(c *gin.Context) {
	var req service.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	m, err := h.svc.Create(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, m)
}

// Get GET /api/items/:name
func (h *MaterialHandler) Get(c *gin.Context) {
	m, err := h.svc.GetByName(c.Param("name"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, m)
}

// Update PUT /api/items/:name
func (h *MaterialHandler) Update(c *gin.Context) {
	var req service.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	m, err := h.svc.Update(c.Param("name"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, m)
}

// Delete DELETE /api/items/:name
func (h *MaterialHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("name")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"deleted": c.Param("name")})
}

// AppendLog POST /api/items/:name/logs
func (h *MaterialHandler) AppendLog(c *gin.Context) {
	var req service.LogDelta
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	log, err := h.svc.AppendLog(c.Param("name"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, log)
}

// Logs GET /api/items/:name/logs
func (h *MaterialHandler) Logs(c *gin.Context) {
	m, err := h.svc.GetByName(c.Param("name"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": m.Logs})
}
