package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/manish-terminal/elastomech/internal/stock/entity"
	"github.com/manish-terminal/elastomech/internal/stock/repository"
	"gorm.io/gorm"
)

// NoteService 车间便签
type NoteService struct {
	repo *repository.NoteRepository
}

func NewNoteService(repo *repository.NoteRepository) *NoteService {
	return &NoteService{repo: repo}
}

type NoteRequest struct {
	Content string `json:"content" binding:"required"`
}

func (s *NoteService) Create(req NoteRequest) (*entity.Note, error) {
	n := &entity.Note{
		ID:      uuid.New().String(),
		Content: req.Content,
	}
	if err := s.repo.Create(n); err != nil {
		return nil, fmt.Errorf("创建便签失败: %w", err)
	}
	return n, nil
}

func (s *NoteService) List() ([]entity.Note, error) {
	notes, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []entity.Note{}
	}
	return notes, nil
}

func (s *NoteService) Update(id string, req NoteRequest) (*entity.Note, error) {
	n, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 便签 %s", ErrNotFound, id)
		}
		return nil, err
	}
	n.Content = req.Content
	if err := s.repo.Update(n); err != nil {
		return nil, fmt.Errorf("更新便签失败: %w", err)
	}
	return n, nil
}

func (s *NoteService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: 便签 %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}
