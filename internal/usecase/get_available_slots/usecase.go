package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CoachScheduler/internal/domain"
	"github.com/m04kA/SMC-CoachScheduler/internal/scheduling"
)

// UseCase use case для получения доступных слотов по нескольким тренерам и диапазону дат
type UseCase struct {
	availabilityRepo AvailabilityRepository
	sessionRepo      SessionRepository
	bookingRepo      BookingRepository
	directoryRepo    DirectoryRepository
	location         *time.Location
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	sessionRepo SessionRepository,
	bookingRepo BookingRepository,
	directoryRepo DirectoryRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		sessionRepo:      sessionRepo,
		bookingRepo:      bookingRepo,
		directoryRepo:    directoryRepo,
		location:         location,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Данные загружаются одним снимком на весь диапазон, дальше расчет идет чистыми функциями.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	coachIDs, from, to, err := validateRequest(req, uc.location)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: coaches=%v, from=%s, to=%s",
		coachIDs, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	rangeWindow := domain.Window{Start: from, End: domain.DayBounds(to, uc.location).End}

	// 2. Справочник тренеров (неизвестные тренеры просто не дают слотов)
	coaches, err := uc.directoryRepo.GetCoachesByIDs(ctx, coachIDs)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get coaches: %v", err)
		return nil, fmt.Errorf("%w: failed to get coaches: %v", ErrInternal, err)
	}

	if len(coaches) == 0 {
		return &Response{Slots: []Slot{}}, nil
	}

	names := make(map[int64]string, len(coaches))
	knownIDs := make([]int64, 0, len(coaches))
	for _, c := range coaches {
		names[c.ID] = c.Name
		knownIDs = append(knownIDs, c.ID)
	}

	// 3. Снимки правил и исключений
	snapshots, err := uc.loadSnapshots(ctx, knownIDs, rangeWindow)
	if err != nil {
		return nil, err
	}

	// 4. Занятость тренеров и задействованных залов
	occupancy, err := uc.loadOccupancy(ctx, knownIDs, roomsOf(snapshots), rangeWindow)
	if err != nil {
		return nil, err
	}

	// 5. Расчет слотов по дням
	now := uc.timeProvider.Now()
	slots := make([]domain.AvailableSlot, 0)

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		for _, coachID := range knownIDs {
			intervals := scheduling.ResolveDay(snapshots[coachID], day, uc.location)
			for _, slot := range scheduling.SliceSlots(intervals, occupancy) {
				if !slot.StartTime.After(now) {
					continue
				}
				slots = append(slots, slot)
			}
		}
	}

	scheduling.SortSlots(slots)

	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		result = append(result, fromDomainSlot(s, names[s.CoachID]))
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for %d coaches", len(result), len(knownIDs))

	return &Response{Slots: result}, nil
}

// loadSnapshots загружает правила, блокировки и добавления и раскладывает их по тренерам
func (uc *UseCase) loadSnapshots(ctx context.Context, coachIDs []int64, w domain.Window) (map[int64]scheduling.Snapshot, error) {
	rules, err := uc.availabilityRepo.ListRulesByCoaches(ctx, coachIDs)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
	}

	blocks, err := uc.availabilityRepo.ListBlocksInRange(ctx, coachIDs, w)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}

	additions, err := uc.availabilityRepo.ListAdditionsInRange(ctx, coachIDs, w)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get additions: %v", err)
		return nil, fmt.Errorf("%w: failed to get additions: %v", ErrInternal, err)
	}

	snapshots := make(map[int64]scheduling.Snapshot, len(coachIDs))
	for _, id := range coachIDs {
		snapshots[id] = scheduling.Snapshot{CoachID: id}
	}

	for _, r := range rules {
		snap := snapshots[r.CoachID]
		snap.Rules = append(snap.Rules, r)
		snapshots[r.CoachID] = snap
	}
	for _, b := range blocks {
		snap := snapshots[b.CoachID]
		snap.Blocks = append(snap.Blocks, b)
		snapshots[b.CoachID] = snap
	}
	for _, a := range additions {
		snap := snapshots[a.CoachID]
		snap.Additions = append(snap.Additions, a)
		snapshots[a.CoachID] = snap
	}

	return snapshots, nil
}

// loadOccupancy загружает активные сессии и количество записей на них
func (uc *UseCase) loadOccupancy(ctx context.Context, coachIDs, roomIDs []int64, w domain.Window) (scheduling.Occupancy, error) {
	sessions, err := uc.sessionRepo.ListActiveInRange(ctx, coachIDs, roomIDs, w)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get sessions: %v", err)
		return scheduling.Occupancy{}, fmt.Errorf("%w: failed to get sessions: %v", ErrInternal, err)
	}

	groupIDs := make([]int64, 0)
	for _, s := range sessions {
		if s.SessionKind == domain.KindGroup {
			groupIDs = append(groupIDs, s.ID)
		}
	}

	counts, err := uc.bookingRepo.CountConfirmedBySessions(ctx, groupIDs)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to count bookings: %v", err)
		return scheduling.Occupancy{}, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	return scheduling.Occupancy{Sessions: sessions, BookedCounts: counts}, nil
}

// roomsOf собирает залы из правил и добавлений всех снимков
func roomsOf(snapshots map[int64]scheduling.Snapshot) []int64 {
	seen := make(map[int64]struct{})
	rooms := make([]int64, 0)

	add := func(id int64) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		rooms = append(rooms, id)
	}

	for _, snap := range snapshots {
		for _, r := range snap.Rules {
			add(r.RoomID)
		}
		for _, a := range snap.Additions {
			add(a.RoomID)
		}
	}

	return rooms
}
