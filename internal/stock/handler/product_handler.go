package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/manish-terminal/elastomech/internal/stock/service"
)

// ProductHandler 产品接口
type ProductHandler struct {
	svc *service.ProductService
}

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// List GET /api/products
func (h *ProductHandler) List(c *gin.Context) {
	items, err := h.svc.List()
	if err != nil {
		InternalError(c, "获取产品列表失败: "+err.Error())
		return
	}
	Success(c, gin.H{"items": items})
}

// Create POST /api/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	p, err := h.svc.Create(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, p)
}

// Get GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, p)
}

// LogTransaction POST /api/products/:id/log
func (h *ProductHandler) LogTransaction(c *gin.Context) {
	var req service.LogDelta
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	log, fails, err := h.svc.LogTransaction(c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, gin.H{"log": log, "errors": service.CascadeMessages(fails)})
}

// Logs GET /api/products/:id/logs
func (h *ProductHandler) Logs(c *gin.Context) {
	logs, err := h.svc.Logs(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"items": logs})
}

// UploadImage POST /api/products/:id/image
func (h *ProductHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "请上传图片文件")
		return
	}
	defer file.Close()

	objectName, err := h.svc.UploadImage(c.Request.Context(), c.Param("id"),
		file, header.Size, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"image": objectName})
}
