package repository

import (
	"context"
	"errors"

	"kanbanapi/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(board).Error
}

// GetByID loads the board with its owner and members.
func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Members").
		Where("id = ?", id).
		First(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Return nil, nil to indicate that the board was not found
		}
		return nil, err
	}
	return &board, nil
}

// ListForUser returns boards the user owns or is a member of, oldest first.
func (r *BoardRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	memberOf := r.db.Model(&model.BoardMember{}).Select("board_id").Where("user_id = ?", userID)

	var boards []model.Board
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Members").
		Where("owner_id = ?", userID).
		Or("id IN (?)", memberOf).
		Order("created_at").
		Find(&boards).Error
	return boards, err
}

// Update writes the owner-editable fields of the board.
func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Model(board).
		Select("Title", "Description", "BackgroundColor", "IsPublic", "Notes", "UpdatedAt").
		Updates(board).Error
}

func (r *BoardRepository) UpdateNotes(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Model(board).Select("Notes", "UpdatedAt").Updates(board).Error
}

func (r *BoardRepository) SaveColumnIDs(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Model(board).Select("ColumnIDs", "UpdatedAt").Updates(board).Error
}

// Delete removes the board row and its membership rows. Columns and cards
// are not touched here.
func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("board_id = ?", id).Delete(&model.BoardMember{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&model.Board{}).Error
}
