package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
)

// AvailabilityRepository интерфейс репозитория правил и исключений
type AvailabilityRepository interface {
	CreateRule(ctx context.Context, rule *domain.WeeklyAvailabilityRule) (*domain.WeeklyAvailabilityRule, error)
	DeleteRule(ctx context.Context, coachID, ruleID int64) error
	ListRulesByCoaches(ctx context.Context, coachIDs []int64) ([]*domain.WeeklyAvailabilityRule, error)
	CreateBlock(ctx context.Context, block *domain.BlockedSlot) (*domain.BlockedSlot, error)
	DeleteBlock(ctx context.Context, coachID, blockID int64) error
	CreateAddition(ctx context.Context, a *domain.AvailabilityAddition) (*domain.AvailabilityAddition, error)
	DeleteAddition(ctx context.Context, coachID, additionID int64) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// DirectoryRepository интерфейс справочника тренеров и залов
type DirectoryRepository interface {
	GetCoach(ctx context.Context, id int64) (*domain.Coach, error)
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
