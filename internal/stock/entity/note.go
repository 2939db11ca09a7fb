package entity

import (
	"time"
)

// Note 车间便签
type Note struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Note) TableName() string {
	return "stock_notes"
}
