package model

import (
	"time"

	"github.com/google/uuid"
)

// Value types embedded in a card and stored as JSON alongside it.

type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type ChecklistItem struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Attachment struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type Comment struct {
	UserID    uuid.UUID `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`

	// Author is resolved on read and never persisted.
	Author *User `json:"-"`
}
