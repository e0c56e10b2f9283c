// Package access decides what a user may do with a board and everything on it.
// Boards passed in must have Members loaded.
package access

import (
	"github.com/google/uuid"

	"kanbanapi/internal/model"
)

func IsOwner(actor uuid.UUID, board *model.Board) bool {
	return board.OwnerID == actor
}

func IsMember(actor uuid.UUID, board *model.Board) bool {
	for _, m := range board.Members {
		if m.ID == actor {
			return true
		}
	}
	return false
}

// CanRead covers viewing the board, its columns, cards and notes.
func CanRead(actor uuid.UUID, board *model.Board) bool {
	return IsOwner(actor, board) || IsMember(actor, board) || board.IsPublic
}

// CanWrite covers creating, editing and deleting columns and cards.
func CanWrite(actor uuid.UUID, board *model.Board) bool {
	return IsOwner(actor, board) || IsMember(actor, board)
}

func CanManageMembers(actor uuid.UUID, board *model.Board) bool {
	return IsOwner(actor, board)
}

func CanUpdateBoardMeta(actor uuid.UUID, board *model.Board) bool {
	return IsOwner(actor, board)
}

func CanDeleteBoard(actor uuid.UUID, board *model.Board) bool {
	return IsOwner(actor, board)
}

// CanUpdateNotes is CanWrite: public visitors can read notes but not edit them.
func CanUpdateNotes(actor uuid.UUID, board *model.Board) bool {
	return CanWrite(actor, board)
}
