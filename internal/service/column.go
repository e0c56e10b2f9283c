package service

import (
	"context"
	"log/slog"
	"strings"

	"kanbanapi/internal/access"
	"kanbanapi/internal/model"

	"github.com/google/uuid"
)

type ColumnService struct {
	stores Stores
	logger *slog.Logger
}

func NewColumnService(stores Stores, logger *slog.Logger) *ColumnService {
	return &ColumnService{stores: stores, logger: logger}
}

type CreateColumnInput struct {
	Title string
	Color string
	Limit *int
}

type ColumnPatch struct {
	Title    *string       `json:"title"`
	Color    *string       `json:"color"`
	Limit    Nullable[int] `json:"limit" swaggertype:"integer"`
	Position *int          `json:"position"`
}

// ColumnOrder is one entry of a reorder request.
type ColumnOrder struct {
	ID       uuid.UUID `json:"id"`
	Position int       `json:"position"`
}

// List returns the board's columns by position, each with its cards.
func (s *ColumnService) List(ctx context.Context, boardID, actor uuid.UUID) ([]model.Column, error) {
	board, err := s.stores.loadBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if !access.CanRead(actor, board) {
		return nil, accessDenied("Access denied")
	}
	return s.listWithCards(ctx, boardID)
}

func (s *ColumnService) listWithCards(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	columns, err := s.stores.Columns.GetByBoardID(ctx, boardID)
	if err != nil {
		return nil, internal("Failed to retrieve columns", err)
	}
	cards, err := s.stores.Cards.GetByBoardID(ctx, boardID)
	if err != nil {
		return nil, internal("Failed to retrieve cards", err)
	}
	byID := indexCards(cards)
	for i := range columns {
		columns[i].Cards = orderCards(columns[i].CardIDs, byID)
	}
	return columns, nil
}

func (s *ColumnService) Create(ctx context.Context, boardID, actor uuid.UUID, in CreateColumnInput) (*model.Column, error) {
	board, err := s.stores.loadBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite(actor, board) {
		return nil, accessDenied("Access denied")
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalid("Title is required")
	}

	position, err := s.stores.Columns.NextPosition(ctx, boardID)
	if err != nil {
		return nil, internal("Failed to determine column position", err)
	}

	column := &model.Column{
		BoardID:  boardID,
		Title:    title,
		Position: position,
		Color:    in.Color,
		Limit:    in.Limit,
	}
	if err := s.stores.Columns.Create(ctx, column); err != nil {
		return nil, internal("Failed to create column", err)
	}

	board.ColumnIDs = pushID(board.ColumnIDs, column.ID)
	if err := s.stores.Boards.SaveColumnIDs(ctx, board); err != nil {
		return nil, internal("Failed to link column to board", err)
	}
	return column, nil
}

// boardOf resolves the column and the board it lives on, in that order.
func (s *ColumnService) boardOf(ctx context.Context, id uuid.UUID) (*model.Column, *model.Board, error) {
	column, err := s.stores.loadColumn(ctx, id, "Column not found")
	if err != nil {
		return nil, nil, err
	}
	board, err := s.stores.loadBoard(ctx, column.BoardID)
	if err != nil {
		return nil, nil, err
	}
	return column, board, nil
}

func (s *ColumnService) Update(ctx context.Context, id, actor uuid.UUID, patch ColumnPatch) (*model.Column, error) {
	column, board, err := s.boardOf(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite(actor, board) {
		return nil, accessDenied("Access denied")
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, invalid("Title is required")
		}
		column.Title = title
	}
	if patch.Color != nil {
		column.Color = *patch.Color
		if column.Color == "" {
			column.Color = model.DefaultColumnColor
		}
	}
	if patch.Limit.Set {
		column.Limit = patch.Limit.Ptr()
	}
	if patch.Position != nil {
		column.Position = *patch.Position
	}

	if err := s.stores.Columns.Update(ctx, column); err != nil {
		return nil, internal("Failed to update column", err)
	}

	cards, err := s.stores.Cards.GetByColumnID(ctx, column.ID)
	if err != nil {
		return nil, internal("Failed to retrieve cards", err)
	}
	column.Cards = orderCards(column.CardIDs, indexCards(cards))
	return column, nil
}

// Delete removes the column's cards, unlinks it from the board and deletes it.
func (s *ColumnService) Delete(ctx context.Context, id, actor uuid.UUID) error {
	column, board, err := s.boardOf(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanWrite(actor, board) {
		return accessDenied("Access denied")
	}

	if err := s.stores.Cards.DeleteByColumnID(ctx, column.ID); err != nil {
		return internal("Failed to delete column cards", err)
	}
	board.ColumnIDs = pullID(board.ColumnIDs, column.ID)
	if err := s.stores.Boards.SaveColumnIDs(ctx, board); err != nil {
		return internal("Failed to unlink column from board", err)
	}
	if err := s.stores.Columns.Delete(ctx, column.ID); err != nil {
		return internal("Failed to delete column", err)
	}

	s.logger.Info("column deleted", "column_id", column.ID, "board_id", board.ID)
	return nil
}

// Reorder applies each position independently. Ids that are not columns of
// this board are ignored; a failure stops the loop with earlier updates kept.
func (s *ColumnService) Reorder(ctx context.Context, boardID, actor uuid.UUID, orders []ColumnOrder) ([]model.Column, error) {
	board, err := s.stores.loadBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite(actor, board) {
		return nil, accessDenied("Access denied")
	}

	for _, o := range orders {
		if err := s.stores.Columns.UpdatePosition(ctx, boardID, o.ID, o.Position); err != nil {
			return nil, internal("Failed to reorder columns", err)
		}
	}
	return s.listWithCards(ctx, boardID)
}
