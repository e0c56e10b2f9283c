package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"kanbanapi/internal/model"
)

func TestPredicates(t *testing.T) {
	owner := uuid.New()
	member := uuid.New()
	stranger := uuid.New()

	private := &model.Board{OwnerID: owner, Members: []model.User{{ID: member}}}
	public := &model.Board{OwnerID: owner, Members: []model.User{{ID: member}}, IsPublic: true}

	tests := []struct {
		name      string
		actor     uuid.UUID
		board     *model.Board
		read      bool
		write     bool
		ownerOnly bool
	}{
		{"owner of private board", owner, private, true, true, true},
		{"member of private board", member, private, true, true, false},
		{"stranger on private board", stranger, private, false, false, false},
		{"stranger on public board", stranger, public, true, false, false},
		{"member of public board", member, public, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.read, CanRead(tt.actor, tt.board))
			assert.Equal(t, tt.write, CanWrite(tt.actor, tt.board))
			assert.Equal(t, tt.write, CanUpdateNotes(tt.actor, tt.board))
			assert.Equal(t, tt.ownerOnly, CanManageMembers(tt.actor, tt.board))
			assert.Equal(t, tt.ownerOnly, CanUpdateBoardMeta(tt.actor, tt.board))
			assert.Equal(t, tt.ownerOnly, CanDeleteBoard(tt.actor, tt.board))
		})
	}
}

func TestCanWriteImpliesCanRead(t *testing.T) {
	owner := uuid.New()
	board := &model.Board{OwnerID: owner, Members: []model.User{{ID: uuid.New()}}}

	for _, actor := range []uuid.UUID{owner, board.Members[0].ID, uuid.New()} {
		if CanWrite(actor, board) {
			assert.True(t, CanRead(actor, board))
		}
	}
}
