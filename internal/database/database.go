package database

import (
	"fmt"
	"strings"

	"kanbanapi/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Dialector picks the driver from the DSN: postgres URLs and key=value
// strings go to postgres, anything else is treated as a sqlite file.
func Dialector(dsn string) gorm.Dialector {
	switch {
	case strings.HasPrefix(dsn, "postgres://"),
		strings.HasPrefix(dsn, "postgresql://"),
		strings.Contains(dsn, "host="):
		return postgres.Open(dsn)
	default:
		return sqlite.Open(dsn)
	}
}

func Open(dsn string, level gormlogger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(Dialector(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema. Join tables are registered first
// so the many2many relations use the explicit link models.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&model.Board{}, "Members", &model.BoardMember{}); err != nil {
		return fmt.Errorf("setup board_members: %w", err)
	}
	if err := db.SetupJoinTable(&model.Card{}, "Assignees", &model.CardAssignee{}); err != nil {
		return fmt.Errorf("setup card_assignees: %w", err)
	}
	return db.AutoMigrate(
		&model.User{},
		&model.Board{},
		&model.BoardMember{},
		&model.Column{},
		&model.Card{},
		&model.CardAssignee{},
	)
}
