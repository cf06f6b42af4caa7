package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"freebusy/config"
	"freebusy/internal/domain"
)

type fakeAvailabilityRepo struct {
	schedules map[int64]*domain.WeeklySchedule
	getErr    error
	saveErr   error
	saveCalls int
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{schedules: make(map[int64]*domain.WeeklySchedule)}
}

func (r *fakeAvailabilityRepo) GetByUserID(ctx context.Context, userID int64) (*domain.WeeklySchedule, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.schedules[userID], nil
}

func (r *fakeAvailabilityRepo) Save(ctx context.Context, userID int64, schedule domain.WeeklySchedule) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saveCalls++
	stored := schedule
	r.schedules[userID] = &stored
	return nil
}

func (r *fakeAvailabilityRepo) Delete(ctx context.Context, userID int64) error {
	delete(r.schedules, userID)
	return nil
}

func newTestAvailabilityService(repo *fakeAvailabilityRepo) *AvailabilityServiceImpl {
	cfg := config.ScheduleConfig{
		SlotIncrementMinutes: 15,
		DefaultLocale:        "ru",
	}
	return NewAvailabilityService(repo, cfg, zap.NewNop())
}

func TestGetFallsBackToDefaultSchedule(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	s := newTestAvailabilityService(repo)

	schedule, err := s.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if len(schedule[0]) != 0 || len(schedule[6]) != 0 {
		t.Error("default schedule must have empty weekends")
	}
	for day := 1; day <= 5; day++ {
		if len(schedule[day]) != 1 {
			t.Errorf("day %d: want one seeded range, got %d", day, len(schedule[day]))
		}
	}
	if repo.saveCalls != 0 {
		t.Error("the default schedule must not be persisted until the first mutation")
	}
}

func TestGetReturnsStoredSchedule(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	stored := domain.DefaultWeeklySchedule()
	if err := stored.DisableDay(1); err != nil {
		t.Fatal(err)
	}
	repo.schedules[7] = &stored

	s := newTestAvailabilityService(repo)
	schedule, err := s.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(schedule[1]) != 0 {
		t.Error("stored schedule must win over the default")
	}
}

func TestGetPropagatesRepoError(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	repo.getErr = errors.New("connection reset")

	s := newTestAvailabilityService(repo)
	if _, err := s.Get(context.Background(), 1); err == nil {
		t.Fatal("want error from repository, got nil")
	}
}

func TestMutationsPersistResult(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	s := newTestAvailabilityService(repo)
	ctx := context.Background()

	schedule, err := s.EnableDay(ctx, 1, 0)
	if err != nil {
		t.Fatalf("EnableDay: %v", err)
	}
	if len(schedule[0]) != 1 {
		t.Fatalf("day 0 not enabled: %v", schedule[0])
	}
	if repo.saveCalls != 1 {
		t.Fatalf("want 1 save, got %d", repo.saveCalls)
	}

	schedule, err = s.AppendRange(ctx, 1, 0)
	if err != nil {
		t.Fatalf("AppendRange: %v", err)
	}
	if len(schedule[0]) != 2 {
		t.Fatalf("want 2 ranges after append, got %d", len(schedule[0]))
	}

	schedule, err = s.RemoveRange(ctx, 1, 0, 0)
	if err != nil {
		t.Fatalf("RemoveRange: %v", err)
	}
	if len(schedule[0]) != 1 || schedule[0][0].Start != domain.NewTimeOfDay(17, 0, 0) {
		t.Errorf("removal kept the wrong range: %v", schedule[0])
	}

	schedule, err = s.DisableDay(ctx, 1, 0)
	if err != nil {
		t.Fatalf("DisableDay: %v", err)
	}
	if len(schedule[0]) != 0 {
		t.Error("day 0 still enabled after DisableDay")
	}

	stored := repo.schedules[1]
	if stored == nil || len(stored[0]) != 0 {
		t.Error("last mutation was not persisted")
	}
}

func TestMutationErrorsAreNotPersisted(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	s := newTestAvailabilityService(repo)

	if _, err := s.RemoveRange(context.Background(), 1, 1, 99); !errors.Is(err, domain.ErrRangeIndexOutOfRange) {
		t.Fatalf("want ErrRangeIndexOutOfRange, got %v", err)
	}
	if repo.saveCalls != 0 {
		t.Error("failed mutation must not write anything")
	}

	if _, err := s.EnableDay(context.Background(), 1, 9); !errors.Is(err, domain.ErrDayIndexOutOfRange) {
		t.Fatalf("want ErrDayIndexOutOfRange, got %v", err)
	}
}

func TestSaveNormalizesNilDays(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	s := newTestAvailabilityService(repo)

	var schedule domain.WeeklySchedule
	if err := s.Save(context.Background(), 3, schedule); err != nil {
		t.Fatalf("Save: %v", err)
	}

	stored := repo.schedules[3]
	for day := 0; day < domain.DaysPerWeek; day++ {
		if stored[day] == nil {
			t.Errorf("day %d stored as nil, want empty bucket", day)
		}
	}
}

func TestSlotOptions(t *testing.T) {
	s := newTestAvailabilityService(newFakeAvailabilityRepo())

	options := s.SlotOptions(nil, nil, "ru")
	if len(options) != 96 {
		t.Fatalf("want 96 options, got %d", len(options))
	}
	if options[0].Value != "00:00:00" || options[0].Label != "00:00" {
		t.Errorf("first option = %+v, want value 00:00:00 / label 00:00", options[0])
	}

	after := domain.NewTimeOfDay(9, 0, 0)
	options = s.SlotOptions(&after, nil, "en")
	if options[0].Value != "09:15:00" || options[0].Label != "9:15 AM" {
		t.Errorf("first option after 09:00 = %+v, want 09:15:00 / 9:15 AM", options[0])
	}

	// Empty tag falls back to the configured default locale (ru).
	options = s.SlotOptions(nil, nil, "")
	if options[0].Label != "00:00" {
		t.Errorf("default locale label = %q, want 00:00", options[0].Label)
	}
}

func TestWeekdayNames(t *testing.T) {
	s := newTestAvailabilityService(newFakeAvailabilityRepo())

	names := s.WeekdayNames("en")
	if names[0] != "Sunday" || names[6] != "Saturday" {
		t.Errorf("en names misaligned: %v", names)
	}

	names = s.WeekdayNames("")
	if names[0] != "Воскресенье" {
		t.Errorf("default locale names misaligned: %v", names)
	}
}
