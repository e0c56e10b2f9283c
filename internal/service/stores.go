package service

import (
	"context"

	"kanbanapi/internal/model"
	"kanbanapi/internal/repository"

	"github.com/google/uuid"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error)
	Search(ctx context.Context, query string, excludeID uuid.UUID, limit int) ([]model.User, error)
	UpdateUsername(ctx context.Context, id uuid.UUID, username string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error
}

type BoardStore interface {
	Create(ctx context.Context, board *model.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Board, error)
	Update(ctx context.Context, board *model.Board) error
	UpdateNotes(ctx context.Context, board *model.Board) error
	SaveColumnIDs(ctx context.Context, board *model.Board) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MemberStore interface {
	Add(ctx context.Context, boardID, userID uuid.UUID) error
	AddMany(ctx context.Context, boardID uuid.UUID, userIDs []uuid.UUID) error
	Remove(ctx context.Context, boardID, userID uuid.UUID) error
}

type ColumnStore interface {
	Create(ctx context.Context, column *model.Column) error
	CreateBatch(ctx context.Context, columns []model.Column) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Column, error)
	GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error)
	Update(ctx context.Context, column *model.Column) error
	SaveCardIDs(ctx context.Context, column *model.Column) error
	UpdatePosition(ctx context.Context, boardID, id uuid.UUID, position int) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error
	NextPosition(ctx context.Context, boardID uuid.UUID) (int, error)
}

type CardStore interface {
	Create(ctx context.Context, card *model.Card) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error)
	GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Card, error)
	GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Card, error)
	Update(ctx context.Context, card *model.Card, withAssignees bool) error
	Move(ctx context.Context, card *model.Card) error
	SaveComments(ctx context.Context, card *model.Card) error
	SaveChecklist(ctx context.Context, card *model.Card) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByColumnID(ctx context.Context, columnID uuid.UUID) error
	DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error
	NextPosition(ctx context.Context, columnID uuid.UUID) (int, error)
}

var (
	_ UserStore   = (*repository.UserRepository)(nil)
	_ BoardStore  = (*repository.BoardRepository)(nil)
	_ MemberStore = (*repository.MemberRepository)(nil)
	_ ColumnStore = (*repository.ColumnRepository)(nil)
	_ CardStore   = (*repository.CardRepository)(nil)
)

// Stores groups the repositories shared by all services.
type Stores struct {
	Users   UserStore
	Boards  BoardStore
	Members MemberStore
	Columns ColumnStore
	Cards   CardStore
}
