package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/manish-terminal/elastomech/internal/stock/service"
)

// Handlers 处理器集合
type Handlers struct {
	Auth     *AuthHandler
	Material *MaterialHandler
	Formula  *FormulaHandler
	Product  *ProductHandler
	Order    *OrderHandler
	Note     *NoteHandler
	Report   *ReportHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:     NewAuthHandler(svc.Auth),
		Material: NewMaterialHandler(svc.Material),
		Formula:  NewFormulaHandler(svc.Formula),
		Product:  NewProductHandler(svc.Product),
		Order:    NewOrderHandler(svc.Order),
		Note:     NewNoteHandler(svc.Note),
		Report:   NewReportHandler(svc.Report),
	}
}

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 参数错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// Unauthorized 未授权响应
func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

// Forbidden 禁止访问响应
func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

// NotFound 资源不存在响应
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// Conflict 库存冲突响应
func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

// InternalError 服务器错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// HandleError 按错误类别映射响应
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrInsufficientStock):
		Conflict(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

// GetUserID 从上下文获取用户ID
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}
