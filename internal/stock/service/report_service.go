package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/manish-terminal/elastomech/internal/stock/entity"
	"github.com/manish-terminal/elastomech/internal/stock/repository"
	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const summaryCacheKey = "reports:summary"
const summaryCacheTTL = 30 * time.Second

type ReportService struct {
	repos  *repository.Repositories
	rdb    *redis.Client
	logger *zap.Logger
}

func NewReportService(repos *repository.Repositories, rdb *redis.Client, logger *zap.Logger) *ReportService {
	return &ReportService{repos: repos, rdb: rdb, logger: logger}
}

// Summary 运营总览,短缓存
type Summary struct {
	Materials          int64             `json:"materials"`
	Formulas           int64             `json:"formulas"`
	Products           int64             `json:"products"`
	Orders             int64             `json:"orders"`
	PendingOrders      int64             `json:"pendingOrders"`
	CompletedOrders    int64             `json:"completedOrders"`
	ExhaustedMaterials []entity.Material `json:"exhaustedMaterials"`
	GeneratedAt        time.Time         `json:"generatedAt"`
}

func (s *ReportService) Summary(ctx context.Context) (*Summary, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, summaryCacheKey).Result(); err == nil {
			var cached Summary
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	sum := &Summary{GeneratedAt: time.Now()}
	var err error
	if sum.Materials, err = s.repos.Material.Count(); err != nil {
		return nil, fmt.Errorf("统计物料失败: %w", err)
	}
	if sum.Formulas, err = s.repos.Formula.Count(); err != nil {
		return nil, fmt.Errorf("统计配方失败: %w", err)
	}
	if sum.Products, err = s.repos.Product.Count(); err != nil {
		return nil, fmt.Errorf("统计产品失败: %w", err)
	}
	if sum.Orders, err = s.repos.Order.CountByStatus(""); err != nil {
		return nil, fmt.Errorf("统计订单失败: %w", err)
	}
	if sum.PendingOrders, err = s.repos.Order.CountByStatus(entity.OrderStatusPending); err != nil {
		return nil, fmt.Errorf("统计待处理订单失败: %w", err)
	}
	if sum.CompletedOrders, err = s.repos.Order.CountByStatus(entity.OrderStatusCompleted); err != nil {
		return nil, fmt.Errorf("统计已完成订单失败: %w", err)
	}
	exhausted, err := s.repos.Material.ListExhausted()
	if err != nil {
		return nil, fmt.Errorf("查询缺料失败: %w", err)
	}
	if exhausted == nil {
		exhausted = []entity.Material{}
	}
	sum.ExhaustedMaterials = exhausted

	if s.rdb != nil {
		if raw, err := json.Marshal(sum); err == nil {
			if err := s.rdb.Set(ctx, summaryCacheKey, raw, summaryCacheTTL).Err(); err != nil {
				s.logger.Warn("写入总览缓存失败", zap.Error(err))
			}
		}
	}
	return sum, nil
}

var materialExportHeaders = []string{
	"物料", "类别", "日期", "摘要", "入库", "出库", "结存", "备注",
}

// ExportMaterialLogs 导出全部物料台账为xlsx
func (s *ReportService) ExportMaterialLogs() (*excelize.File, string, error) {
	materials, err := s.repos.Material.List()
	if err != nil {
		return nil, "", fmt.Errorf("查询物料失败: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Material Logs"
	f.SetSheetName("Sheet1", sheet)

	// 表头样式: 加粗
	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range materialExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	row := 2
	for _, m := range materials {
		logs, err := s.repos.Material.GetLogs(m.ID)
		if err != nil {
			return nil, "", fmt.Errorf("查询物料台账失败: %w", err)
		}
		for _, log := range logs {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.Name)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Category)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), log.Date.Format("2006-01-02"))
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), log.Particulars)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), log.Inward)
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), log.Outward)
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), log.Balance)
			f.SetCellValue(sheet, fmt.Sprintf("H%d", row), log.Remarks)
			row++
		}
	}

	colWidths := []float64{20, 10, 12, 24, 10, 10, 10, 24}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("material_logs_%s.xlsx", time.Now().Format("20060102"))
	return f, filename, nil
}
