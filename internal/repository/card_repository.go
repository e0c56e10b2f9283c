package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kanbanapi/internal/model"
)

type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

// Create adds a new card together with its assignee links
func (r *CardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(card).Error; err != nil {
			return err
		}
		return replaceAssignees(tx, card.ID, card.Assignees)
	})
}

// GetByID retrieves a card by its ID, assignees included
func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	var card model.Card
	result := r.db.WithContext(ctx).Preload("Assignees").First(&card, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, result.Error
	}
	return &card, nil
}

// GetByColumnID retrieves all cards in a specific column ordered by position
func (r *CardRepository) GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Card, error) {
	var cards []model.Card
	result := r.db.WithContext(ctx).
		Preload("Assignees").
		Where("column_id = ?", columnID).
		Order("position").
		Find(&cards)
	if result.Error != nil {
		return nil, result.Error
	}
	return cards, nil
}

// GetByBoardID retrieves every card of a board
func (r *CardRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Card, error) {
	var cards []model.Card
	result := r.db.WithContext(ctx).
		Preload("Assignees").
		Where("board_id = ?", boardID).
		Order("position").
		Find(&cards)
	if result.Error != nil {
		return nil, result.Error
	}
	return cards, nil
}

// Update writes the editable fields of a card. Assignees are replaced only
// when withAssignees is set.
func (r *CardRepository) Update(ctx context.Context, card *model.Card, withAssignees bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(card).
			Select("Title", "Description", "Priority", "DueDate", "Labels", "Checklist",
				"Attachments", "IsCompleted", "UpdatedAt").
			Updates(card).Error
		if err != nil {
			return err
		}
		if !withAssignees {
			return nil
		}
		return replaceAssignees(tx, card.ID, card.Assignees)
	})
}

// Move stores the card's column and position
func (r *CardRepository) Move(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Model(card).Select("ColumnID", "Position", "UpdatedAt").Updates(card).Error
}

func (r *CardRepository) SaveComments(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Model(card).Select("Comments", "UpdatedAt").Updates(card).Error
}

func (r *CardRepository) SaveChecklist(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Model(card).Select("Checklist", "UpdatedAt").Updates(card).Error
}

// Delete removes a card by its ID
func (r *CardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("card_id = ?", id).Delete(&model.CardAssignee{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&model.Card{}).Error
}

func (r *CardRepository) DeleteByColumnID(ctx context.Context, columnID uuid.UUID) error {
	return r.deleteWhere(ctx, "column_id = ?", columnID)
}

func (r *CardRepository) DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error {
	return r.deleteWhere(ctx, "board_id = ?", boardID)
}

func (r *CardRepository) deleteWhere(ctx context.Context, cond string, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	cardIDs := r.db.Model(&model.Card{}).Select("id").Where(cond, id)
	if err := db.Where("card_id IN (?)", cardIDs).Delete(&model.CardAssignee{}).Error; err != nil {
		return err
	}
	return db.Where(cond, id).Delete(&model.Card{}).Error
}

// NextPosition returns max(position)+1 over the column's cards, or 0 when empty
func (r *CardRepository) NextPosition(ctx context.Context, columnID uuid.UUID) (int, error) {
	var next struct {
		Next int
	}
	err := r.db.WithContext(ctx).Model(&model.Card{}).
		Select("COALESCE(MAX(position) + 1, 0) AS next").
		Where("column_id = ?", columnID).
		Scan(&next).Error

	return next.Next, err
}

func replaceAssignees(tx *gorm.DB, cardID uuid.UUID, users []model.User) error {
	if err := tx.Where("card_id = ?", cardID).Delete(&model.CardAssignee{}).Error; err != nil {
		return err
	}
	if len(users) == 0 {
		return nil
	}
	links := make([]model.CardAssignee, 0, len(users))
	for _, u := range users {
		links = append(links, model.CardAssignee{CardID: cardID, UserID: u.ID})
	}
	return tx.Create(&links).Error
}
