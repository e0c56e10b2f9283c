package service

import (
	"context"
	"log/slog"
	"strings"

	"kanbanapi/internal/access"
	"kanbanapi/internal/model"

	"github.com/google/uuid"
)

type BoardService struct {
	stores Stores
	logger *slog.Logger
}

func NewBoardService(stores Stores, logger *slog.Logger) *BoardService {
	return &BoardService{stores: stores, logger: logger}
}

type CreateBoardInput struct {
	Title           string
	Description     string
	BackgroundColor string
	IsPublic        bool
	Notes           string
	Members         []uuid.UUID
}

// BoardPatch lists the fields an owner may change. Nil means unchanged.
type BoardPatch struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	BackgroundColor *string `json:"backgroundColor"`
	IsPublic        *bool   `json:"isPublic"`
	Notes           *string `json:"notes"`
}

// Create stores a new board owned by actor, seeds the default columns and
// returns it with owner, members and columns expanded.
func (s *BoardService) Create(ctx context.Context, actor uuid.UUID, in CreateBoardInput) (*model.Board, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalid("Title is required")
	}

	members, err := s.resolveNewMembers(ctx, actor, in.Members)
	if err != nil {
		return nil, err
	}

	board := &model.Board{
		Title:           title,
		Description:     in.Description,
		OwnerID:         actor,
		BackgroundColor: in.BackgroundColor,
		IsPublic:        in.IsPublic,
		Notes:           in.Notes,
	}
	if err := s.stores.Boards.Create(ctx, board); err != nil {
		return nil, internal("Failed to create board", err)
	}
	if err := s.stores.Members.AddMany(ctx, board.ID, members); err != nil {
		return nil, internal("Failed to add board members", err)
	}

	columns := make([]model.Column, len(model.DefaultColumns))
	for i, title := range model.DefaultColumns {
		columns[i] = model.Column{BoardID: board.ID, Title: title, Position: i}
	}
	if err := s.stores.Columns.CreateBatch(ctx, columns); err != nil {
		return nil, internal("Failed to create default columns", err)
	}
	for _, c := range columns {
		board.ColumnIDs = pushID(board.ColumnIDs, c.ID)
	}
	if err := s.stores.Boards.SaveColumnIDs(ctx, board); err != nil {
		return nil, internal("Failed to link default columns", err)
	}

	s.logger.Info("board created", "board_id", board.ID, "owner_id", actor, "members", len(members))

	created, err := s.stores.loadBoard(ctx, board.ID)
	if err != nil {
		return nil, err
	}
	if err := s.stores.expandBoard(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// resolveNewMembers drops duplicates and checks that every id is an existing
// user other than the owner.
func (s *BoardService) resolveNewMembers(ctx context.Context, owner uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	var unique []uuid.UUID
	for _, id := range ids {
		if id == owner {
			return nil, invalid("Cannot add board owner as a member")
		}
		if !containsID(unique, id) {
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return nil, nil
	}

	users, err := s.stores.Users.GetByIDs(ctx, unique)
	if err != nil {
		return nil, internal("Failed to retrieve users", err)
	}
	if len(users) != len(unique) {
		return nil, invalid("User not found")
	}
	return unique, nil
}

// List returns the boards actor owns or is a member of. Public boards of
// other users are not included.
func (s *BoardService) List(ctx context.Context, actor uuid.UUID) ([]model.Board, error) {
	boards, err := s.stores.Boards.ListForUser(ctx, actor)
	if err != nil {
		return nil, internal("Failed to retrieve boards", err)
	}
	return boards, nil
}

func (s *BoardService) Get(ctx context.Context, id, actor uuid.UUID) (*model.Board, error) {
	board, err := s.stores.loadBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanRead(actor, board) {
		return nil, accessDenied("Access denied")
	}
	if err := s.stores.expandBoard(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *BoardService) Update(ctx context.Context, id, actor uuid.UUID, patch BoardPatch) (*model.Board, error) {
	board, err := s.stores.loadBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanUpdateBoardMeta(actor, board) {
		return nil, accessDenied("Only board owner can update board")
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, invalid("Title is required")
		}
		board.Title = title
	}
	if patch.Description != nil {
		board.Description = *patch.Description
	}
	if patch.BackgroundColor != nil {
		board.BackgroundColor = *patch.BackgroundColor
		if board.BackgroundColor == "" {
			board.BackgroundColor = model.DefaultBoardColor
		}
	}
	if patch.IsPublic != nil {
		board.IsPublic = *patch.IsPublic
	}
	if patch.Notes != nil {
		board.Notes = *patch.Notes
	}

	if err := s.stores.Boards.Update(ctx, board); err != nil {
		return nil, internal("Failed to update board", err)
	}
	return s.stores.loadBoard(ctx, id)
}

// Delete removes the board's cards, then its columns, then the board.
// The steps are not atomic; a failure part way leaves the earlier steps applied.
func (s *BoardService) Delete(ctx context.Context, id, actor uuid.UUID) error {
	board, err := s.stores.loadBoard(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanDeleteBoard(actor, board) {
		return accessDenied("Only board owner can delete board")
	}

	if err := s.stores.Cards.DeleteByBoardID(ctx, id); err != nil {
		return internal("Failed to delete board cards", err)
	}
	if err := s.stores.Columns.DeleteByBoardID(ctx, id); err != nil {
		return internal("Failed to delete board columns", err)
	}
	if err := s.stores.Boards.Delete(ctx, id); err != nil {
		return internal("Failed to delete board", err)
	}

	s.logger.Info("board deleted", "board_id", id, "owner_id", actor)
	return nil
}

func (s *BoardService) AddMember(ctx context.Context, id, actor, userID uuid.UUID) (*model.Board, error) {
	board, err := s.stores.loadBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanManageMembers(actor, board) {
		return nil, accessDenied("Only board owner can add members")
	}

	user, err := s.stores.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, internal("Failed to retrieve user", err)
	}
	if user == nil {
		return nil, invalid("User not found")
	}
	if access.IsOwner(userID, board) {
		return nil, invalid("Cannot add board owner as a member")
	}
	if access.IsMember(userID, board) {
		return nil, invalid("User is already a member of this board")
	}

	if err := s.stores.Members.Add(ctx, id, userID); err != nil {
		return nil, internal("Failed to add member", err)
	}
	return s.stores.loadBoard(ctx, id)
}

// RemoveMember is idempotent: removing a non-member succeeds.
func (s *BoardService) RemoveMember(ctx context.Context, id, actor, userID uuid.UUID) (*model.Board, error) {
	board, err := s.stores.loadBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanManageMembers(actor, board) {
		return nil, accessDenied("Only board owner can remove members")
	}

	if err := s.stores.Members.Remove(ctx, id, userID); err != nil {
		return nil, internal("Failed to remove member", err)
	}
	return s.stores.loadBoard(ctx, id)
}

func (s *BoardService) GetNotes(ctx context.Context, id, actor uuid.UUID) (string, error) {
	board, err := s.stores.loadBoard(ctx, id)
	if err != nil {
		return "", err
	}
	if !access.CanRead(actor, board) {
		return "", accessDenied("Access denied")
	}
	return board.Notes, nil
}

func (s *BoardService) UpdateNotes(ctx context.Context, id, actor uuid.UUID, notes string) (string, error) {
	board, err := s.stores.loadBoard(ctx, id)
	if err != nil {
		return "", err
	}
	if !access.CanUpdateNotes(actor, board) {
		return "", accessDenied("Access denied")
	}

	board.Notes = notes
	if err := s.stores.Boards.UpdateNotes(ctx, board); err != nil {
		return "", internal("Failed to update notes", err)
	}
	return board.Notes, nil
}
