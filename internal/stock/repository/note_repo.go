package repository

import (
	"github.com/manish-terminal/elastomech/internal/stock/entity"
	"gorm.io/gorm"
)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) List() ([]entity.Note, error) {
	var items []entity.Note
	err := r.db.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *NoteRepository) GetByID(id string) (*entity.Note, error) {
	var n entity.Note
	err := r.db.Where("id = ?", id).First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NoteRepository) Create(n *entity.Note) error {
	return r.db.Create(n).Error
}

func (r *NoteRepository) Update(n *entity.Note) error {
	return r.db.Save(n).Error
}

func (r *NoteRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&entity.Note{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
