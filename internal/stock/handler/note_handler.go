package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/manish-terminal/elastomech/internal/stock/service"
)

// NoteHandler 车间便签接口
type NoteHandler struct {
	svc *service.NoteService
}

func NewNoteHandler(svc *service.NoteService) *NoteHandler {
	return &NoteHandler{svc: svc}
}

func (h *NoteHandler) List(c *gin.Context) {
	notes, err := h.svc.List()
	if err != nil {
		InternalError(c, "获取便签列表失败: "+err.Error())
		return
	}
	Success(c, gin.H{"items": notes})
}

func (h *NoteHandler) Create(c *gin.Context) {
	var req service.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	n, err := h.svc.Create(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, n)
}

func (h *NoteHandler) Update(c *gin.Context) {
	var req service.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	n, err := h.svc.Update(c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, n)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"deleted": c.Param("id")})
}
