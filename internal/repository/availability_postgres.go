package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"freebusy/internal/domain"
)

type AvailabilityRepo struct {
	db *pgxpool.Pool
}

func NewAvailabilityRepository(db *pgxpool.Pool) *AvailabilityRepo {
	return &AvailabilityRepo{
		db: db,
	}
}

func (r *AvailabilityRepo) GetByUserID(ctx context.Context, userID int64) (*domain.WeeklySchedule, error) {
	query := `
		SELECT schedule
		FROM availability
		WHERE user_id = $1
	`

	var raw []byte
	err := r.db.QueryRow(ctx, query, userID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения расписания доступности: %w", err)
	}

	var schedule domain.WeeklySchedule
	if err := json.Unmarshal(raw, &schedule); err != nil {
		return nil, fmt.Errorf("ошибка десериализации расписания доступности: %w", err)
	}
	schedule.Normalize()

	return &schedule, nil
}

// Save сохраняет недельное расписание целиком, одной строкой на пользователя.
// Частичные изменения отдельных дней никогда не пишутся: весь 7-дневный блок
// уходит в базу как единое значение, последняя запись побеждает.
func (r *AvailabilityRepo) Save(ctx context.Context, userID int64, schedule domain.WeeklySchedule) error {
	raw, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("ошибка сериализации расписания доступности: %w", err)
	}

	query := `
		INSERT INTO availability (user_id, schedule, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET schedule = EXCLUDED.schedule, updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.Exec(ctx, query, userID, raw, time.Now())
	if err != nil {
		return fmt.Errorf("ошибка сохранения расписания доступности: %w", err)
	}

	return nil
}

func (r *AvailabilityRepo) Delete(ctx context.Context, userID int64) error {
	query := `DELETE FROM availability WHERE user_id = $1`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления расписания доступности: %w", err)
	}

	return nil
}
