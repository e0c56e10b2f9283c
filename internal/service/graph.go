package service

import (
	"context"
	"errors"

	"kanbanapi/internal/model"
	"kanbanapi/internal/repository"

	"github.com/google/uuid"
)

// Helpers for walking board -> column -> card links.

func (s Stores) loadBoard(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	board, err := s.Boards.GetByID(ctx, id)
	if err != nil {
		return nil, internal("Failed to retrieve board", err)
	}
	if board == nil {
		return nil, notFound("Board not found")
	}
	return board, nil
}

func (s Stores) loadColumn(ctx context.Context, id uuid.UUID, missing string) (*model.Column, error) {
	column, err := s.Columns.GetByID(ctx, id)
	if err != nil {
		return nil, internal("Failed to retrieve column", err)
	}
	if column == nil {
		return nil, notFound(missing)
	}
	return column, nil
}

func (s Stores) loadCard(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	card, err := s.Cards.GetByID(ctx, id)
	if errors.Is(err, repository.ErrCardNotFound) {
		return nil, notFound("Card not found")
	}
	if err != nil {
		return nil, internal("Failed to retrieve card", err)
	}
	return card, nil
}

// expandBoard fills board.Columns in ColumnIDs order, each with its cards in
// CardIDs order. Dangling ids are skipped.
func (s Stores) expandBoard(ctx context.Context, board *model.Board) error {
	columns, err := s.Columns.GetByIDs(ctx, board.ColumnIDs)
	if err != nil {
		return internal("Failed to retrieve columns", err)
	}
	cards, err := s.Cards.GetByBoardID(ctx, board.ID)
	if err != nil {
		return internal("Failed to retrieve cards", err)
	}

	byID := make(map[uuid.UUID]model.Column, len(columns))
	for _, c := range columns {
		byID[c.ID] = c
	}
	cardsByID := indexCards(cards)

	board.Columns = make([]model.Column, 0, len(board.ColumnIDs))
	for _, id := range board.ColumnIDs {
		column, ok := byID[id]
		if !ok {
			continue
		}
		column.Cards = orderCards(column.CardIDs, cardsByID)
		board.Columns = append(board.Columns, column)
	}
	return nil
}

// attachAuthors resolves the user behind every comment of the given cards.
func (s Stores) attachAuthors(ctx context.Context, cards []model.Card) error {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, card := range cards {
		for _, c := range card.Comments {
			if !seen[c.UserID] {
				seen[c.UserID] = true
				ids = append(ids, c.UserID)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	users, err := s.Users.GetByIDs(ctx, ids)
	if err != nil {
		return internal("Failed to retrieve comment authors", err)
	}
	byID := make(map[uuid.UUID]*model.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	for i := range cards {
		for j := range cards[i].Comments {
			cards[i].Comments[j].Author = byID[cards[i].Comments[j].UserID]
		}
	}
	return nil
}

func indexCards(cards []model.Card) map[uuid.UUID]model.Card {
	byID := make(map[uuid.UUID]model.Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}
	return byID
}

func orderCards(ids []uuid.UUID, byID map[uuid.UUID]model.Card) []model.Card {
	cards := make([]model.Card, 0, len(ids))
	for _, id := range ids {
		if card, ok := byID[id]; ok {
			cards = append(cards, card)
		}
	}
	return cards
}

func pushID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	return append(ids, id)
}

// pullID removes every occurrence of id.
func pullID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
