package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// SeedService bootstraps reference data: departments and the initial admin
// account. Guarded by a shared token so it can stay mounted in non-dev
// environments without being an open door.
type SeedService interface {
	SeedDepartments(ctx context.Context, token string, departments []models.Department) (int64, error)
	SeedAdmin(ctx context.Context, token, name, email, password string) error
}

type seedService struct {
	departments repository.DepartmentRepository
	users       repository.UserRepository
	enabled     bool
	token       string
	logger      zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(departments repository.DepartmentRepository, users repository.UserRepository, enabled bool, token string, logger zerolog.Logger) SeedService {
	return &seedService{
		departments: departments,
		users:       users,
		enabled:     enabled,
		token:       token,
		logger:      logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) SeedDepartments(ctx context.Context, token string, departments []models.Department) (int64, error) {
	if !s.enabled {
		return 0, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return 0, ErrSeedUnauthorized
	}

	for i := range departments {
		departments[i].Name = strings.TrimSpace(departments[i].Name)
		departments[i].Code = strings.ToUpper(strings.TrimSpace(departments[i].Code))
	}

	affected, err := s.departments.UpsertBatch(ctx, departments)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("affected", affected).Msg("departments seeded")
	return affected, nil
}

func (s *seedService) SeedAdmin(ctx context.Context, token, name, email, password string) error {
	if !s.enabled {
		return ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return ErrSeedUnauthorized
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := s.users.Create(ctx, &admin); err != nil {
		return err
	}

	s.logger.Info().Str("email", email).Msg("admin account seeded")
	return nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return false
	}
	provided := strings.TrimSpace(token)
	if len(expected) != len(provided) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}
