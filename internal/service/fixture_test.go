package service_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"kanbanapi/internal/auth"
	"kanbanapi/internal/database"
	"kanbanapi/internal/model"
	"kanbanapi/internal/repository"
	"kanbanapi/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fixture struct {
	ctx     context.Context
	db      *gorm.DB
	stores  service.Stores
	boards  *service.BoardService
	columns *service.ColumnService
	cards   *service.CardService
	users   *service.UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), gormlogger.Silent)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	stores := service.Stores{
		Users:   repository.NewUserRepository(db),
		Boards:  repository.NewBoardRepository(db),
		Members: repository.NewMemberRepository(db),
		Columns: repository.NewColumnRepository(db),
		Cards:   repository.NewCardRepository(db),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		ctx:     context.Background(),
		db:      db,
		stores:  stores,
		boards:  service.NewBoardService(stores, logger),
		columns: service.NewColumnService(stores, logger),
		cards:   service.NewCardService(stores, logger),
		users:   service.NewUserService(stores.Users, auth.NewTokenManager("test-secret", time.Hour), logger),
	}
}

func (f *fixture) user(t *testing.T, username string) model.User {
	t.Helper()
	u := model.User{Username: username, Email: username + "@example.com", HashedPassword: "x"}
	require.NoError(t, f.stores.Users.Create(f.ctx, &u))
	return u
}

func (f *fixture) board(t *testing.T, owner uuid.UUID, members ...uuid.UUID) *model.Board {
	t.Helper()
	b, err := f.boards.Create(f.ctx, owner, service.CreateBoardInput{Title: "Roadmap", Members: members})
	require.NoError(t, err)
	return b
}

func (f *fixture) card(t *testing.T, actor, columnID uuid.UUID, title string) *model.Card {
	t.Helper()
	c, err := f.cards.Create(f.ctx, columnID, actor, service.CreateCardInput{Title: title})
	require.NoError(t, err)
	return c
}

func (f *fixture) count(t *testing.T, m any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Where(query, args...).Count(&n).Error)
	return n
}

func requireKind(t *testing.T, err error, kind service.Kind, message string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, service.KindOf(err), err.Error())
	if message != "" {
		var svcErr *service.Error
		require.ErrorAs(t, err, &svcErr)
		require.Equal(t, message, svcErr.Message)
	}
}
