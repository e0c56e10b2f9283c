package handler

import (
	"time"

	"kanbanapi/internal/model"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

type BoardResponse struct {
	ID              uuid.UUID        `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Owner           *UserResponse    `json:"owner"`
	Members         []UserResponse   `json:"members"`
	ColumnIDs       []uuid.UUID      `json:"columnIds"`
	Columns         []ColumnResponse `json:"columns,omitempty"`
	BackgroundColor string           `json:"backgroundColor"`
	IsPublic        bool             `json:"isPublic"`
	Notes           string           `json:"notes"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

type ColumnResponse struct {
	ID        uuid.UUID      `json:"id"`
	Title     string         `json:"title"`
	BoardID   uuid.UUID      `json:"board"`
	Position  int            `json:"position"`
	CardIDs   []uuid.UUID    `json:"cardIds"`
	Cards     []CardResponse `json:"cards"`
	Color     string         `json:"color"`
	Limit     *int           `json:"limit"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type CommentResponse struct {
	UserID    uuid.UUID     `json:"userId"`
	User      *UserResponse `json:"user"`
	Text      string        `json:"text"`
	CreatedAt time.Time     `json:"createdAt"`
}

type CardResponse struct {
	ID          uuid.UUID             `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	ColumnID    uuid.UUID             `json:"column"`
	BoardID     uuid.UUID             `json:"board"`
	AssignedTo  []UserResponse        `json:"assignedTo"`
	Position    int                   `json:"position"`
	Priority    model.Priority        `json:"priority"`
	DueDate     *time.Time            `json:"dueDate"`
	Labels      []model.Label         `json:"labels"`
	Checklist   []model.ChecklistItem `json:"checklist"`
	Attachments []model.Attachment    `json:"attachments"`
	Comments    []CommentResponse     `json:"comments"`
	IsCompleted bool                  `json:"isCompleted"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func toUserResponse(u model.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

func toUserResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}

func toBoardResponse(b *model.Board) BoardResponse {
	resp := BoardResponse{
		ID:              b.ID,
		Title:           b.Title,
		Description:     b.Description,
		Members:         toUserResponses(b.Members),
		ColumnIDs:       orEmpty(b.ColumnIDs),
		BackgroundColor: b.BackgroundColor,
		IsPublic:        b.IsPublic,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.Owner.ID != uuid.Nil {
		owner := toUserResponse(b.Owner)
		resp.Owner = &owner
	}
	if b.Columns != nil {
		resp.Columns = toColumnResponses(b.Columns)
	}
	return resp
}

func toBoardResponses(boards []model.Board) []BoardResponse {
	out := make([]BoardResponse, len(boards))
	for i := range boards {
		out[i] = toBoardResponse(&boards[i])
	}
	return out
}

func toColumnResponse(c *model.Column) ColumnResponse {
	return ColumnResponse{
		ID:        c.ID,
		Title:     c.Title,
		BoardID:   c.BoardID,
		Position:  c.Position,
		CardIDs:   orEmpty(c.CardIDs),
		Cards:     toCardResponses(c.Cards),
		Color:     c.Color,
		Limit:     c.Limit,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toColumnResponses(columns []model.Column) []ColumnResponse {
	out := make([]ColumnResponse, len(columns))
	for i := range columns {
		out[i] = toColumnResponse(&columns[i])
	}
	return out
}

func toCardResponse(c *model.Card) CardResponse {
	comments := make([]CommentResponse, len(c.Comments))
	for i, cm := range c.Comments {
		comments[i] = CommentResponse{UserID: cm.UserID, Text: cm.Text, CreatedAt: cm.CreatedAt}
		if cm.Author != nil {
			author := toUserResponse(*cm.Author)
			comments[i].User = &author
		}
	}
	return CardResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		ColumnID:    c.ColumnID,
		BoardID:     c.BoardID,
		AssignedTo:  toUserResponses(c.Assignees),
		Position:    c.Position,
		Priority:    c.Priority,
		DueDate:     c.DueDate,
		Labels:      orEmpty(c.Labels),
		Checklist:   orEmpty(c.Checklist),
		Attachments: orEmpty(c.Attachments),
		Comments:    comments,
		IsCompleted: c.IsCompleted,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCardResponses(cards []model.Card) []CardResponse {
	out := make([]CardResponse, len(cards))
	for i := range cards {
		out[i] = toCardResponse(&cards[i])
	}
	return out
}
