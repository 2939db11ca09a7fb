package service

import (
	"github.com/manish-terminal/elastomech/internal/config"
	"github.com/manish-terminal/elastomech/internal/stock/repository"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Services 服务集合
type Services struct {
	Auth     *AuthService
	Material *MaterialService
	Formula  *FormulaService
	Product  *ProductService
	Order    *OrderService
	Note     *NoteService
	Report   *ReportService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, rdb *redis.Client, minioClient *minio.Client, cfg *config.Config, logger *zap.Logger) *Services {
	materialSvc := NewMaterialService(repos.Material, logger)
	formulaSvc := NewFormulaService(repos.Formula, materialSvc, logger)

	return &Services{
		Auth:     NewAuthService(rdb, cfg, logger),
		Material: materialSvc,
		Formula:  formulaSvc,
		Product:  NewProductService(repos.Product, repos.Formula, formulaSvc, minioClient, cfg.MinIO.Bucket, logger),
		Order:    NewOrderService(repos.Order, materialSvc, logger),
		Note:     NewNoteService(repos.Note),
		Report:   NewReportService(repos, rdb, logger),
	}
}
