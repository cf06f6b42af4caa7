package service

import (
	"context"

	"go.uber.org/zap"

	"freebusy/config"
	"freebusy/internal/domain"
	"freebusy/internal/repository"
	"freebusy/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
}

type Services struct {
	User         UserService
	Auth         AuthService
	Availability AvailabilityService
}

func NewServices(deps Deps) *Services {
	return &Services{
		User:         NewUserService(deps.Repos.User, deps.FileStorage, deps.Logger),
		Auth:         NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Logger),
		Availability: NewAvailabilityService(deps.Repos.Availability, deps.Config.Schedule, deps.Logger),
	}
}

type UserService interface {
	Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error
	UploadProfilePhoto(ctx context.Context, id int64, photo []byte, filename string) (string, error)
	DeleteProfilePhoto(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AvailabilityService interface {
	Get(ctx context.Context, userID int64) (domain.WeeklySchedule, error)
	Save(ctx context.Context, userID int64, schedule domain.WeeklySchedule) error
	EnableDay(ctx context.Context, userID int64, day int) (domain.WeeklySchedule, error)
	DisableDay(ctx context.Context, userID int64, day int) (domain.WeeklySchedule, error)
	AppendRange(ctx context.Context, userID int64, day int) (domain.WeeklySchedule, error)
	RemoveRange(ctx context.Context, userID int64, day, index int) (domain.WeeklySchedule, error)
	ReplaceRanges(ctx context.Context, userID int64, day int, ranges []domain.TimeRange) (domain.WeeklySchedule, error)
	SlotOptions(after, before *domain.TimeOfDay, localeTag string) []domain.SlotOption
	WeekdayNames(localeTag string) [domain.DaysPerWeek]string
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (int64, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
}
