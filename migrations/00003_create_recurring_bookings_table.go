package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateRecurringBookingsTable, downCreateRecurringBookingsTable)
}

func upCreateRecurringBookingsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE recurring_bookings (
			id BIGSERIAL PRIMARY KEY,
			coach_id BIGINT NOT NULL REFERENCES coaches(id),
			member_id BIGINT NOT NULL,
			room_id BIGINT NOT NULL,
			day_of_week SMALLINT NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
			start_time TIME NOT NULL,
			end_time TIME NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			CHECK (end_time > start_time)
		);
		CREATE INDEX idx_recurring_bookings_active ON recurring_bookings (active) WHERE active;
	`

	_, err := tx.ExecContext(ctx, query)
	return err
}

func downCreateRecurringBookingsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS recurring_bookings;`)
	return err
}
