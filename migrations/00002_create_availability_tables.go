package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateAvailabilityTables, downCreateAvailabilityTables)
}

func upCreateAvailabilityTables(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE weekly_availability_rules (
			id BIGSERIAL PRIMARY KEY,
			coach_id BIGINT NOT NULL REFERENCES coaches(id) ON DELETE CASCADE,
			room_id BIGINT NOT NULL REFERENCES rooms(id),
			day_of_week SMALLINT NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
			start_time TIME NOT NULL,
			end_time TIME NOT NULL,
			session_kind TEXT NOT NULL CHECK (session_kind IN ('INDIVIDUAL', 'GROUP')),
			capacity INT NOT NULL DEFAULT 0,
			slot_duration_minutes INT NOT NULL DEFAULT 60,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			CHECK (end_time > start_time)
		);
		CREATE INDEX idx_rules_coach_day ON weekly_availability_rules (coach_id, day_of_week);

		CREATE TABLE blocked_slots (
			id BIGSERIAL PRIMARY KEY,
			coach_id BIGINT NOT NULL REFERENCES coaches(id) ON DELETE CASCADE,
			start_time TIMESTAMP WITH TIME ZONE NOT NULL,
			end_time TIMESTAMP WITH TIME ZONE NOT NULL,
			reason TEXT,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			CHECK (end_time > start_time)
		);
		CREATE INDEX idx_blocked_slots_coach_range ON blocked_slots (coach_id, start_time, end_time);

		CREATE TABLE availability_additions (
			id BIGSERIAL PRIMARY KEY,
			coach_id BIGINT NOT NULL REFERENCES coaches(id) ON DELETE CASCADE,
			room_id BIGINT NOT NULL REFERENCES rooms(id),
			start_time TIMESTAMP WITH TIME ZONE NOT NULL,
			end_time TIMESTAMP WITH TIME ZONE NOT NULL,
			session_kind TEXT NOT NULL DEFAULT 'INDIVIDUAL' CHECK (session_kind IN ('INDIVIDUAL', 'GROUP')),
			capacity INT NOT NULL DEFAULT 0,
			slot_duration_minutes INT NOT NULL DEFAULT 60,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			CHECK (end_time > start_time)
		);
		CREATE INDEX idx_additions_coach_range ON availability_additions (coach_id, start_time, end_time);
	`

	_, err := tx.ExecContext(ctx, query)
	return err
}

func downCreateAvailabilityTables(ctx context.Context, tx *sql.Tx) error {
	query := `
		DROP TABLE IF EXISTS availability_additions;
		DROP TABLE IF EXISTS blocked_slots;
		DROP TABLE IF EXISTS weekly_availability_rules;
	`
	_, err := tx.ExecContext(ctx, query)
	return err
}
