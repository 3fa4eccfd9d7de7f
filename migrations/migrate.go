// Package migrations содержит схему БД в виде Go миграций goose.
package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Dir каталог миграций относительно корня сервиса
const Dir = "migrations"

// ErrUnknownCommand возвращается для неподдерживаемой команды
var ErrUnknownCommand = errors.New("migrations: unknown command")

// Run выполняет команду goose: up, down или status
func Run(ctx context.Context, db *sql.DB, command string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrations: set dialect: %w", err)
	}

	switch command {
	case "up":
		return goose.UpContext(ctx, db, Dir)
	case "down":
		return goose.DownContext(ctx, db, Dir)
	case "status":
		return goose.StatusContext(ctx, db, Dir)
	default:
		return fmt.Errorf("%w: %q (expected up, down or status)", ErrUnknownCommand, command)
	}
}
