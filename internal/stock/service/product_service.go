package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/manish-terminal/elastomech/internal/stock/entity"
	"github.com/manish-terminal/elastomech/internal/stock/repository"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProductService struct {
	repo        *repository.ProductRepository
	formulaRepo *repository.FormulaRepository
	formulaSvc  *FormulaService
	minioClient *minio.Client
	bucket      string
	logger      *zap.Logger
}

func NewProductService(repo *repository.ProductRepository, formulaRepo *repository.FormulaRepository,
	formulaSvc *FormulaService, minioClient *minio.Client, bucket string, logger *zap.Logger) *ProductService {
	return &ProductService{
		repo:        repo,
		formulaRepo: formulaRepo,
		formulaSvc:  formulaSvc,
		minioClient: minioClient,
		bucket:      bucket,
		logger:      logger,
	}
}

type CreateProductRequest struct {
	ArticleName    string                      `json:"articleName" binding:"required"`
	Image          string                      `json:"image"`
	ArticleNo      string                      `json:"articleNo" binding:"required"`
	Manufacturing  string                      `json:"manufacturing" binding:"required,oneof=Moulding Extrusion"`
	MouldingTemp   string                      `json:"mouldingTemp"`
	Formulations   []entity.ProductFormulation `json:"formulations"`
	MouldNo        string                      `json:"mouldNo"`
	NoOfCavity     int                         `json:"noOfCavity"`
	CycleTime      float64                     `json:"cycleTime"`
	ExpectedCycles float64                     `json:"expectedCycles"`
	NoOfLabours    int                         `json:"noOfLabours"`
	Hardness       float64                     `json:"hardness"`
}

func (s *ProductService) Create(req CreateProductRequest) (*entity.Product, error) {
	// 校验配方引用，全部收集后一次报错
	var invalid []string
	for _, fm := range req.Formulations {
		if _, err := s.formulaRepo.GetByID(fm.FormulaID); err != nil {
			invalid = append(invalid, fm.FormulaID)
		}
	}
	if len(invalid) > 0 {
		return nil, fmt.Errorf("%w: 无效的配方引用 %s", ErrValidation, strings.Join(invalid, ", "))
	}

	p := &entity.Product{
		ID:             uuid.New().String(),
		ArticleName:    req.ArticleName,
		Image:          req.Image,
		ArticleNo:      req.ArticleNo,
		Manufacturing:  req.Manufacturing,
		MouldingTemp:   req.MouldingTemp,
		Formulations:   req.Formulations,
		MouldNo:        req.MouldNo,
		NoOfCavity:     req.NoOfCavity,
		CycleTime:      req.CycleTime,
		ExpectedCycles: req.ExpectedCycles,
		NoOfLabours:    req.NoOfLabours,
		Hardness:       req.Hardness,
		LastUpdated:    time.Now(),
	}
	if err := s.repo.Create(p); err != nil {
		return nil, fmt.Errorf("创建产品失败: %w", err)
	}
	return p, nil
}

func (s *ProductService) List() ([]entity.Product, error) {
	return s.repo.List()
}

func (s *ProductService) GetByID(id string) (*entity.Product, error) {
	return s.getByID(id)
}

// Logs 获取产品出入库台账
func (s *ProductService) Logs(id string) ([]entity.ProductLog, error) {
	p, err := s.getByID(id)
	if err != nil {
		return nil, err
	}
	logs, err := s.repo.GetLogs(p.ID)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []entity.ProductLog{}
	}
	return logs, nil
}

// LogTransaction 追加产品出入库台账。上一余额取最后一条台账，不截断负数。
// 产品台账落库后，按每个用料配方并发记录配方消耗（consumed = inward*fillWeight），
// 全部派发、统一收尾；失败只收集打日志，主操作照常返回成功。
func (s *ProductService) LogTransaction(id string, delta LogDelta) (*entity.ProductLog, []CascadeError, error) {
	if delta.Particulars == "" {
		return nil, nil, fmt.Errorf("%w: particulars 不能为空", ErrValidation)
	}
	if delta.Inward < 0 || delta.Outward < 0 {
		return nil, nil, fmt.Errorf("%w: inward/outward 不能为负", ErrValidation)
	}

	p, err := s.getByID(id)
	if err != nil {
		return nil, nil, err
	}

	last, err := s.repo.GetLastLog(p.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("读取产品台账失败: %w", err)
	}
	previous := 0.0
	if last != nil {
		previous = last.Balance
	}

	log := &entity.ProductLog{
		ProductID:   p.ID,
		Date:        time.Now(),
		Particulars: delta.Particulars,
		Inward:      delta.Inward,
		Outward:     delta.Outward,
		Balance:     nextBalance(previous, delta.Inward, delta.Outward),
		Remarks:     delta.Remarks,
	}
	p.Quantity = log.Balance
	if err := s.repo.AppendLog(p, log); err != nil {
		return nil, nil, fmt.Errorf("写入产品台账失败: %w", err)
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		fails []CascadeError
	)
	for _, fm := range p.Formulations {
		fm := fm
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.formulaSvc.LogFromProduct(fm.FormulaID, ProductUsageRequest{
				OrderNo:     p.ArticleNo,
				Particulars: delta.Particulars,
				Inward:      delta.Inward,
				Outward:     delta.Outward,
				FillWeight:  fm.FillWeight,
			})
			if err != nil {
				s.logger.Warn("产品消耗记账失败",
					zap.String("product", p.ArticleNo),
					zap.String("formula", fm.FormulaID),
					zap.Error(err))
				mu.Lock()
				fails = append(fails, CascadeError{Kind: "formula", Key: fm.FormulaID, Err: err})
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return log, fails, nil
}

// UploadImage 上传产品图片到对象存储并更新档案
func (s *ProductService) UploadImage(ctx context.Context, id string, reader io.Reader, size int64, filename, contentType string) (string, error) {
	if s.minioClient == nil {
		return "", fmt.Errorf("对象存储未配置")
	}

	p, err := s.getByID(id)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("products/%s/%s%s",
		time.Now().Format("2006/01/02"), uuid.New().String()[:8], filepath.Ext(filename))
	if _, err := s.minioClient.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("上传图片失败: %w", err)
	}

	p.Image = objectName
	if err := s.repo.Update(p); err != nil {
		return "", fmt.Errorf("更新产品失败: %w", err)
	}
	return objectName, nil
}

func (s *ProductService) getByID(id string) (*entity.Product, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 产品 %s", ErrNotFound, id)
		}
		return nil, err
	}
	return p, nil
}
