package repository

import (
	"context"
	"errors"

	"kanbanapi/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ColumnRepository struct {
	db *gorm.DB
}

func NewColumnRepository(db *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

func (r *ColumnRepository) Create(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Create(column).Error
}

// CreateBatch inserts the columns in a single statement.
func (r *ColumnRepository) CreateBatch(ctx context.Context, columns []model.Column) error {
	if len(columns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&columns).Error
}

func (r *ColumnRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	var column model.Column
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&column).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &column, nil
}

func (r *ColumnRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Column, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var columns []model.Column
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&columns).Error
	return columns, err
}

func (r *ColumnRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("position").Find(&columns).Error
	return columns, err
}

func (r *ColumnRepository) Update(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Model(column).
		Select("Title", "Color", "Limit", "Position", "UpdatedAt").
		Updates(column).Error
}

func (r *ColumnRepository) SaveCardIDs(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Model(column).Select("CardIDs", "UpdatedAt").Updates(column).Error
}

// UpdatePosition moves one column of the board. Ids that belong to another
// board match no row and are ignored.
func (r *ColumnRepository) UpdatePosition(ctx context.Context, boardID, id uuid.UUID, position int) error {
	return r.db.WithContext(ctx).Model(&model.Column{}).
		Where("id = ? AND board_id = ?", id, boardID).
		Update("position", position).Error
}

func (r *ColumnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Column{}).Error
}

func (r *ColumnRepository) DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("board_id = ?", boardID).Delete(&model.Column{}).Error
}

// NextPosition returns max(position)+1 over the board's columns, or 0 when it has none.
func (r *ColumnRepository) NextPosition(ctx context.Context, boardID uuid.UUID) (int, error) {
	var next struct {
		Next int
	}
	err := r.db.WithContext(ctx).Model(&model.Column{}).
		Select("COALESCE(MAX(position) + 1, 0) AS next").
		Where("board_id = ?", boardID).
		Scan(&next).Error

	return next.Next, err
}
