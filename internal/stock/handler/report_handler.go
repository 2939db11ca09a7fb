package handler

import (
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/manish-terminal/elastomech/internal/stock/service"
)

// ReportHandler 报表接口
type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Summary GET /api/reports/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	sum, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		InternalError(c, "生成总览失败: "+err.Error())
		return
	}
	Success(c, sum)
}

// ExportMaterialLogs GET /api/reports/materials/export
func (h *ReportHandler) ExportMaterialLogs(c *gin.Context) {
	f, filename, err := h.svc.ExportMaterialLogs()
	if err != nil {
		InternalError(c, "导出失败: "+err.Error())
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "写出文件失败: "+err.Error())
	}
}
