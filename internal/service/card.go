package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"kanbanapi/internal/access"
	"kanbanapi/internal/model"

	"github.com/google/uuid"
)

type CardService struct {
	stores Stores
	logger *slog.Logger
	now    func() time.Time
}

func NewCardService(stores Stores, logger *slog.Logger) *CardService {
	return &CardService{stores: stores, logger: logger, now: time.Now}
}

type CreateCardInput struct {
	Title       string
	Description string
	Priority    model.Priority
	DueDate     *time.Time
	AssignedTo  []uuid.UUID
	Labels      []model.Label
}

// CardPatch lists the fields that may be changed through Update. Column,
// board, position and comments have their own operations.
type CardPatch struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Priority    *model.Priority        `json:"priority"`
	DueDate     Nullable[Date]         `json:"dueDate" swaggertype:"string" format:"date-time"`
	AssignedTo  *[]uuid.UUID           `json:"assignedTo"`
	Labels      *[]model.Label         `json:"labels"`
	Checklist   *[]model.ChecklistItem `json:"checklist"`
	Attachments *[]model.Attachment    `json:"attachments"`
	IsCompleted *bool                  `json:"isCompleted"`
}

func (s *CardService) List(ctx context.Context, columnID, actor uuid.UUID) ([]model.Card, error) {
	column, err := s.stores.loadColumn(ctx, columnID, "Column not found")
	if err != nil {
		return nil, err
	}
	board, err := s.stores.loadBoard(ctx, column.BoardID)
	if err != nil {
		return nil, err
	}
	if !access.CanRead(actor, board) {
		return nil, accessDenied("Access denied")
	}

	cards, err := s.stores.Cards.GetByColumnID(ctx, columnID)
	if err != nil {
		return nil, internal("Failed to retrieve cards", err)
	}
	if err := s.stores.attachAuthors(ctx, cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// boardOf resolves the card and its board, in that order.
func (s *CardService) boardOf(ctx context.Context, id uuid.UUID) (*model.Card, *model.Board, error) {
	card, err := s.stores.loadCard(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	board, err := s.stores.loadBoard(ctx, card.BoardID)
	if err != nil {
		return nil, nil, err
	}
	return card, board, nil
}

// writable resolves the card and checks the actor may modify it.
func (s *CardService) writable(ctx context.Context, id, actor uuid.UUID) (*model.Card, *model.Board, error) {
	card, board, err := s.boardOf(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !access.CanWrite(actor, board) {
		return nil, nil, accessDenied("Access denied")
	}
	return card, board, nil
}

func (s *CardService) Get(ctx context.Context, id, actor uuid.UUID) (*model.Card, error) {
	card, board, err := s.boardOf(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanRead(actor, board) {
		return nil, accessDenied("Access denied")
	}
	return s.withAuthors(ctx, card)
}

func (s *CardService) withAuthors(ctx context.Context, card *model.Card) (*model.Card, error) {
	cards := []model.Card{*card}
	if err := s.stores.attachAuthors(ctx, cards); err != nil {
		return nil, err
	}
	return &cards[0], nil
}

// reload fetches the stored card again with assignees and comment authors.
func (s *CardService) reload(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	card, err := s.stores.loadCard(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withAuthors(ctx, card)
}

func (s *CardService) resolveAssignees(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	var unique []uuid.UUID
	for _, id := range ids {
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
		return nil, invalid("Assigned user not found")
	}
	return users, nil
}

func (s *CardService) Create(ctx context.Context, columnID, actor uuid.UUID, in CreateCardInput) (*model.Card, error) {
	column, err := s.stores.loadColumn(ctx, columnID, "Column not found")
	if err != nil {
		return nil, err
	}
	board, err := s.stores.loadBoard(ctx, column.BoardID)
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
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, invalid("Priority must be one of low, medium, high, urgent")
	}
	assignees, err := s.resolveAssignees(ctx, in.AssignedTo)
	if err != nil {
		return nil, err
	}

	position, err := s.stores.Cards.NextPosition(ctx, columnID)
	if err != nil {
		return nil, internal("Failed to determine card position", err)
	}

	card := &model.Card{
		Title:       title,
		Description: in.Description,
		ColumnID:    columnID,
		BoardID:     column.BoardID,
		Position:    position,
		Priority:    priority,
		DueDate:     in.DueDate,
		Labels:      in.Labels,
		Assignees:   assignees,
	}
	if err := s.stores.Cards.Create(ctx, card); err != nil {
		return nil, internal("Failed to create card", err)
	}

	column.CardIDs = pushID(column.CardIDs, card.ID)
	if err := s.stores.Columns.SaveCardIDs(ctx, column); err != nil {
		return nil, internal("Failed to link card to column", err)
	}
	return s.reload(ctx, card.ID)
}

func (s *CardService) Update(ctx context.Context, id, actor uuid.UUID, patch CardPatch) (*model.Card, error) {
	card, _, err := s.writable(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, invalid("Title is required")
		}
		card.Title = title
	}
	if patch.Description != nil {
		card.Description = *patch.Description
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, invalid("Priority must be one of low, medium, high, urgent")
		}
		card.Priority = *patch.Priority
	}
	if patch.DueDate.Set {
		if patch.DueDate.Valid {
			card.DueDate = patch.DueDate.Value.TimePtr()
		} else {
			card.DueDate = nil
		}
	}
	if patch.AssignedTo != nil {
		assignees, err := s.resolveAssignees(ctx, *patch.AssignedTo)
		if err != nil {
			return nil, err
		}
		card.Assignees = assignees
	}
	if patch.Labels != nil {
		card.Labels = *patch.Labels
	}
	if patch.Checklist != nil {
		card.Checklist = *patch.Checklist
	}
	if patch.Attachments != nil {
		card.Attachments = *patch.Attachments
	}
	if patch.IsCompleted != nil {
		card.IsCompleted = *patch.IsCompleted
	}

	if err := s.stores.Cards.Update(ctx, card, patch.AssignedTo != nil); err != nil {
		return nil, internal("Failed to update card", err)
	}
	return s.reload(ctx, id)
}

// Delete unlinks the card from its column, then deletes it.
func (s *CardService) Delete(ctx context.Context, id, actor uuid.UUID) error {
	card, _, err := s.writable(ctx, id, actor)
	if err != nil {
		return err
	}

	column, err := s.stores.Columns.GetByID(ctx, card.ColumnID)
	if err != nil {
		return internal("Failed to retrieve column", err)
	}
	if column != nil {
		column.CardIDs = pullID(column.CardIDs, card.ID)
		if err := s.stores.Columns.SaveCardIDs(ctx, column); err != nil {
			return internal("Failed to unlink card from column", err)
		}
	}
	if err := s.stores.Cards.Delete(ctx, card.ID); err != nil {
		return internal("Failed to delete card", err)
	}
	return nil
}

// Move relinks the card from its current column to newColumnID and stores
// the new position (0 when not given). Positions of other cards are left alone.
func (s *CardService) Move(ctx context.Context, id, actor, newColumnID uuid.UUID, newPosition *int) (*model.Card, error) {
	card, err := s.stores.loadCard(ctx, id)
	if err != nil {
		return nil, err
	}
	target, err := s.stores.loadColumn(ctx, newColumnID, "Target column not found")
	if err != nil {
		return nil, err
	}
	board, err := s.stores.loadBoard(ctx, card.BoardID)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite(actor, board) {
		return nil, accessDenied("Access denied")
	}
	if target.BoardID != card.BoardID {
		return nil, invalid("Cannot move card to a column of another board")
	}

	if card.ColumnID != target.ID {
		source, err := s.stores.Columns.GetByID(ctx, card.ColumnID)
		if err != nil {
			return nil, internal("Failed to retrieve column", err)
		}
		if source != nil {
			source.CardIDs = pullID(source.CardIDs, card.ID)
			if err := s.stores.Columns.SaveCardIDs(ctx, source); err != nil {
				return nil, internal("Failed to unlink card from column", err)
			}
		}
	}
	target.CardIDs = pushID(pullID(target.CardIDs, card.ID), card.ID)
	if err := s.stores.Columns.SaveCardIDs(ctx, target); err != nil {
		return nil, internal("Failed to link card to column", err)
	}

	card.ColumnID = target.ID
	card.Position = 0
	if newPosition != nil {
		card.Position = *newPosition
	}
	if err := s.stores.Cards.Move(ctx, card); err != nil {
		return nil, internal("Failed to move card", err)
	}
	return s.reload(ctx, id)
}

func (s *CardService) AddComment(ctx context.Context, id, actor uuid.UUID, text string) (*model.Card, error) {
	card, _, err := s.writable(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("Comment text is required")
	}

	card.Comments = append(card.Comments, model.Comment{
		UserID:    actor,
		Text:      text,
		CreatedAt: s.now(),
	})
	if err := s.stores.Cards.SaveComments(ctx, card); err != nil {
		return nil, internal("Failed to add comment", err)
	}
	return s.reload(ctx, id)
}

// UpdateChecklistItem sets the completed flag of item index. An index out of
// range changes nothing and returns the card as stored.
func (s *CardService) UpdateChecklistItem(ctx context.Context, id, actor uuid.UUID, index int, completed bool) (*model.Card, error) {
	card, _, err := s.writable(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if index >= 0 && index < len(card.Checklist) {
		card.Checklist[index].Completed = completed
		if err := s.stores.Cards.SaveChecklist(ctx, card); err != nil {
			return nil, internal("Failed to update checklist", err)
		}
	}
	return s.withAuthors(ctx, card)
}
