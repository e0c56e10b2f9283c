package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Card struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"not null"`
	Description string
	ColumnID    uuid.UUID `gorm:"type:uuid;not null;index"`
	BoardID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Position    int       `gorm:"not null"`
	Priority    Priority  `gorm:"type:varchar(16);not null"`
	DueDate     *time.Time
	Labels      []Label         `gorm:"type:text;serializer:json"`
	Checklist   []ChecklistItem `gorm:"type:text;serializer:json"`
	Attachments []Attachment    `gorm:"type:text;serializer:json"`
	Comments    []Comment       `gorm:"type:text;serializer:json"`
	IsCompleted bool            `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Assignees []User `gorm:"many2many:card_assignees"`
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Priority == "" {
		c.Priority = PriorityMedium
	}
	return nil
}

type CardAssignee struct {
	CardID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (CardAssignee) TableName() string {
	return "card_assignees"
}
