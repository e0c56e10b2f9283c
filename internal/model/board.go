package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultBoardColor = "#ffffff"

// DefaultColumns are seeded into every new board, in this order.
var DefaultColumns = []string{"To Do", "In Progress", "Done"}

type Board struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title           string    `gorm:"not null"`
	Description     string
	OwnerID         uuid.UUID   `gorm:"type:uuid;not null;index"`
	BackgroundColor string      `gorm:"not null"`
	IsPublic        bool        `gorm:"not null"`
	Notes           string      `gorm:"type:text"`
	ColumnIDs       []uuid.UUID `gorm:"type:text;serializer:json"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Owner   User   `gorm:"foreignKey:OwnerID"`
	Members []User `gorm:"many2many:board_members"`

	// Columns is filled by the service in ColumnIDs order.
	Columns []Column `gorm:"-"`
}

func (b *Board) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.BackgroundColor == "" {
		b.BackgroundColor = DefaultBoardColor
	}
	return nil
}

// BoardMember связывает участника с доской. Владелец сюда не попадает.
type BoardMember struct {
	BoardID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (BoardMember) TableName() string {
	return "board_members"
}
