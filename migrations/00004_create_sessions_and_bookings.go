package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateSessionsAndBookings, downCreateSessionsAndBookings)
}

func upCreateSessionsAndBookings(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE training_sessions (
			id BIGSERIAL PRIMARY KEY,
			coach_id BIGINT NOT NULL REFERENCES coaches(id),
			room_id BIGINT NOT NULL REFERENCES rooms(id),
			start_time TIMESTAMP WITH TIME ZONE NOT NULL,
			end_time TIMESTAMP WITH TIME ZONE NOT NULL,
			session_kind TEXT NOT NULL CHECK (session_kind IN ('INDIVIDUAL', 'GROUP')),
			capacity INT NOT NULL DEFAULT 1,
			status TEXT NOT NULL DEFAULT 'scheduled' CHECK (status IN ('scheduled', 'completed', 'cancelled')),
			recurring_booking_id BIGINT REFERENCES recurring_bookings(id),
			member_id BIGINT,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			CHECK (end_time > start_time)
		);

		-- ключ идемпотентности генерации: одна сессия на вхождение шаблона (в любом статусе)
		CREATE UNIQUE INDEX uq_sessions_recurring_start
			ON training_sessions (recurring_booking_id, start_time)
			WHERE recurring_booking_id IS NOT NULL;

		CREATE INDEX idx_sessions_coach_range ON training_sessions (coach_id, start_time, end_time) WHERE status <> 'cancelled';
		CREATE INDEX idx_sessions_room_range ON training_sessions (room_id, start_time, end_time) WHERE status <> 'cancelled';
		CREATE INDEX idx_sessions_scheduled_end ON training_sessions (end_time) WHERE status = 'scheduled';

		CREATE TABLE bookings (
			id BIGSERIAL PRIMARY KEY,
			session_id BIGINT NOT NULL REFERENCES training_sessions(id) ON DELETE CASCADE,
			member_id BIGINT NOT NULL,
			status TEXT NOT NULL DEFAULT 'CONFIRMED'
				CHECK (status IN ('CONFIRMED', 'CANCELLED_BY_MEMBER', 'CANCELLED_BY_COACH')),
			cancellation_reason TEXT,
			cancelled_at TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		);

		CREATE UNIQUE INDEX uq_bookings_session_member ON bookings (session_id, member_id);
		CREATE INDEX idx_bookings_member ON bookings (member_id);
	`

	_, err := tx.ExecContext(ctx, query)
	return err
}

func downCreateSessionsAndBookings(ctx context.Context, tx *sql.Tx) error {
	query := `
		DROP TABLE IF EXISTS bookings;
		DROP TABLE IF EXISTS training_sessions;
	`
	_, err := tx.ExecContext(ctx, query)
	return err
}
