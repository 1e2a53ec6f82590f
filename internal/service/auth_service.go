package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/dto"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/observability"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/repository"
)

const resetTokenTTL = 10 * time.Minute

// ClientMeta carries transport-level request metadata into audit entries.
type ClientMeta struct {
	IPAddress string
	UserAgent string
}

// AuthService validates credentials, issues session tokens and runs the
// password reset flow.
type AuthService interface {
	SignIn(ctx context.Context, payload dto.SignInRequest, meta ClientMeta) (dto.SignInResponse, error)
	SignOut(ctx context.Context, actorID uint, meta ClientMeta)
	RequestReset(ctx context.Context, payload dto.RequestResetRequest) error
	ResetPassword(ctx context.Context, payload dto.ResetPasswordRequest) error
}

type authService struct {
	users     repository.UserRepository
	resets    repository.PasswordResetRepository
	validator *validator.Validate
	audit     AuditRecorder
	notifier  Notifier
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the authentication service.
func NewAuthService(
	users repository.UserRepository,
	resets repository.PasswordResetRepository,
	validate *validator.Validate,
	audit AuditRecorder,
	notifier Notifier,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		users:     users,
		resets:    resets,
		validator: validate,
		audit:     audit,
		notifier:  notifier,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) SignIn(ctx context.Context, payload dto.SignInRequest, meta ClientMeta) (dto.SignInResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SignInResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SignInResponse{}, ErrInvalidCredentials
		}
		return dto.SignInResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return dto.SignInResponse{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return dto.SignInResponse{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:   user.ID,
		Action:    models.AuditActionLogin,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})

	return dto.SignInResponse{
		Token:        token,
		Role:         user.Role,
		RedirectHint: redirectHint(user.Role),
		User:         dto.NewUserResponse(user),
	}, nil
}

func (s *authService) SignOut(ctx context.Context, actorID uint, meta ClientMeta) {
	s.audit.Record(ctx, AuditEntry{
		ActorID:   actorID,
		Action:    models.AuditActionLogout,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})
}

// RequestReset issues a single-use token valid for ten minutes. An unknown
// email succeeds silently so the endpoint cannot be used to enumerate
// accounts.
func (s *authService) RequestReset(ctx context.Context, payload dto.RequestResetRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if err := s.resets.InvalidateForUser(ctx, user.ID); err != nil {
		return err
	}

	reset := models.PasswordReset{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(resetTokenTTL),
	}
	if err := s.resets.Create(ctx, &reset); err != nil {
		return err
	}

	event := NotificationEvent{
		Kind:           EventPasswordReset,
		RecipientID:    user.ID,
		RecipientEmail: user.Email,
		Subject:        "Password reset",
		Body:           "Use the attached token within 10 minutes to reset your password.",
		ResetToken:     reset.Token,
		SentAt:         s.now(),
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		observability.NotifyFailures().WithLabelValues(event.Kind).Inc()
		s.logger.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to deliver reset token")
	}

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, payload dto.ResetPasswordRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	reset, err := s.resets.GetByToken(ctx, payload.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if !reset.Usable(s.now()) {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.Update(ctx, reset.UserID, map[string]interface{}{"password_hash": string(hash)}); err != nil {
		return err
	}

	return s.resets.MarkUsed(ctx, reset.ID, s.now())
}

func (s *authService) issueToken(user models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	if user.DepartmentID != nil {
		claims["department_id"] = *user.DepartmentID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func redirectHint(role string) string {
	switch role {
	case models.RoleAdmin:
		return "/admin"
	case models.RolePrincipal:
		return "/principal"
	case models.RoleHOD:
		return "/hod"
	default:
		return "/faculty"
	}
}
