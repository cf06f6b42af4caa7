package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"freebusy/internal/domain"
)

type Repositories struct {
	User         UserRepository
	Auth         AuthRepository
	Availability AvailabilityRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Auth:         NewAuthRepository(db),
		Availability: NewAvailabilityRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, id int64, user domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateProfilePhoto(ctx context.Context, id int64, photoURL string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
}

type AvailabilityRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.WeeklySchedule, error)
	Save(ctx context.Context, userID int64, schedule domain.WeeklySchedule) error
	Delete(ctx context.Context, userID int64) error
}
