package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"freebusy/config"
	"freebusy/internal/domain"
	"freebusy/internal/locale"
	"freebusy/internal/repository"
)

type AvailabilityServiceImpl struct {
	repo   repository.AvailabilityRepository
	cfg    config.ScheduleConfig
	logger *zap.Logger
}

func NewAvailabilityService(repo repository.AvailabilityRepository, cfg config.ScheduleConfig, logger *zap.Logger) *AvailabilityServiceImpl {
	return &AvailabilityServiceImpl{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// Get возвращает расписание пользователя; если сохраненного расписания нет,
// подставляется расписание по умолчанию (будни 09:00-17:00). Оно не сохраняется
// до первого явного изменения.
func (s *AvailabilityServiceImpl) Get(ctx context.Context, userID int64) (domain.WeeklySchedule, error) {
	schedule, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("ошибка получения расписания доступности", zap.Int64("userId", userID), zap.Error(err))
		return domain.WeeklySchedule{}, fmt.Errorf("ошибка получения расписания доступности: %w", err)
	}

	if schedule == nil {
		return domain.DefaultWeeklySchedule(), nil
	}

	return *schedule, nil
}

func (s *AvailabilityServiceImpl) Save(ctx context.Context, userID int64, schedule domain.WeeklySchedule) error {
	schedule.Normalize()

	err := s.repo.Save(ctx, userID, schedule)
	if err != nil {
		s.logger.Error("ошибка сохранения расписания доступности", zap.Int64("userId", userID), zap.Error(err))
		return fmt.Errorf("ошибка сохранения расписания доступности: %w", err)
	}

	return nil
}

func (s *AvailabilityServiceImpl) EnableDay(ctx context.Context, userID int64, day int) (domain.WeeklySchedule, error) {
	return s.mutate(ctx, userID, func(w *domain.WeeklySchedule) error {
		return w.EnableDay(day)
	})
}

func (s *AvailabilityServiceImpl) DisableDay(ctx context.Context, userID int64, day int) (domain.WeeklySchedule, error) {
	return s.mutate(ctx, userID, func(w *domain.WeeklySchedule) error {
		return w.DisableDay(day)
	})
}

func (s *AvailabilityServiceImpl) AppendRange(ctx context.Context, userID int64, day int) (domain.WeeklySchedule, error) {
	return s.mutate(ctx, userID, func(w *domain.WeeklySchedule) error {
		return w.AppendRange(day)
	})
}

func (s *AvailabilityServiceImpl) RemoveRange(ctx context.Context, userID int64, day, index int) (domain.WeeklySchedule, error) {
	return s.mutate(ctx, userID, func(w *domain.WeeklySchedule) error {
		return w.RemoveRange(day, index)
	})
}

// ReplaceRanges целиком заменяет интервалы одного дня данными клиента,
// без валидации содержимого.
func (s *AvailabilityServiceImpl) ReplaceRanges(ctx context.Context, userID int64, day int, ranges []domain.TimeRange) (domain.WeeklySchedule, error) {
	return s.mutate(ctx, userID, func(w *domain.WeeklySchedule) error {
		return w.ReplaceRanges(day, ranges)
	})
}

// mutate применяет операцию к текущему расписанию (или к расписанию по
// умолчанию, если сохраненного нет) и пишет результат обратно целиком.
func (s *AvailabilityServiceImpl) mutate(ctx context.Context, userID int64, op func(*domain.WeeklySchedule) error) (domain.WeeklySchedule, error) {
	schedule, err := s.Get(ctx, userID)
	if err != nil {
		return domain.WeeklySchedule{}, err
	}

	if err := op(&schedule); err != nil {
		return domain.WeeklySchedule{}, err
	}

	if err := s.Save(ctx, userID, schedule); err != nil {
		return domain.WeeklySchedule{}, err
	}

	return schedule, nil
}

// SlotOptions возвращает каталог времен для пикеров, отфильтрованный по
// необязательным границам: строго позже after и строго раньше before.
// Каждый пункт несет машинное значение-ключ и локализованную подпись.
func (s *AvailabilityServiceImpl) SlotOptions(after, before *domain.TimeOfDay, localeTag string) []domain.SlotOption {
	if localeTag == "" {
		localeTag = s.cfg.DefaultLocale
	}

	catalog := domain.SlotCatalog(s.cfg.SlotIncrementMinutes)
	filtered := domain.FilterSlots(catalog, after, before)

	options := make([]domain.SlotOption, 0, len(filtered))
	for _, t := range filtered {
		options = append(options, domain.SlotOption{
			Value: t.String(),
			Label: locale.FormatLabel(t, localeTag),
		})
	}

	return options
}

func (s *AvailabilityServiceImpl) WeekdayNames(localeTag string) [domain.DaysPerWeek]string {
	if localeTag == "" {
		localeTag = s.cfg.DefaultLocale
	}
	return locale.WeekdayNames(localeTag)
}
