package repository

import (
	"context"

	"kanbanapi/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Add добавляет пользователя в участники доски
func (r *MemberRepository) Add(ctx context.Context, boardID, userID uuid.UUID) error {
	member := model.BoardMember{
		BoardID: boardID,
		UserID:  userID,
	}
	return r.db.WithContext(ctx).Create(&member).Error
}

// AddMany добавляет сразу нескольких участников
func (r *MemberRepository) AddMany(ctx context.Context, boardID uuid.UUID, userIDs []uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	members := make([]model.BoardMember, 0, len(userIDs))
	for _, id := range userIDs {
		members = append(members, model.BoardMember{BoardID: boardID, UserID: id})
	}
	return r.db.WithContext(ctx).Create(&members).Error
}

// Remove удаляет участника; отсутствие записи не считается ошибкой
func (r *MemberRepository) Remove(ctx context.Context, boardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&model.BoardMember{}).Error
}
