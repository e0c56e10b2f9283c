package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultColumnColor = "#f1f2f6"

type Column struct {
	ID       uuid.UUID   `gorm:"type:uuid;primaryKey"`
	BoardID  uuid.UUID   `gorm:"type:uuid;not null;index"`
	Title    string      `gorm:"not null"`
	Position int         `gorm:"not null"`
	CardIDs  []uuid.UUID `gorm:"type:text;serializer:json"`
	Color    string      `gorm:"not null"`
	// WIP limit, stored but not enforced.
	Limit     *int `gorm:"column:wip_limit"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Cards []Card `gorm:"-"`
}

func (c *Column) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Color == "" {
		c.Color = DefaultColumnColor
	}
	return nil
}
