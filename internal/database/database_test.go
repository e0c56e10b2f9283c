package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestDialector(t *testing.T) {
	assert.Equal(t, "postgres", Dialector("postgres://u:p@localhost:5432/kanban").Name())
	assert.Equal(t, "postgres", Dialector("host=localhost user=kanban dbname=kanban").Name())
	assert.Equal(t, "sqlite", Dialector("kanban.db").Name())
}

func TestMigrate_SQLite(t *testing.T) {
	db, err := Open("file::memory:", gormlogger.Silent)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "boards", "board_members", "columns", "cards", "card_assignees"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
