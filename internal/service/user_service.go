package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/authz"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/dto"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/repository"
)

// UserService orchestrates account management. Admin has full CRUD; HOD may
// create Faculty accounts in their own department; everyone may read and
// change their own profile password.
type UserService interface {
	Create(ctx context.Context, actor authz.Actor, payload dto.UserCreateRequest, meta ClientMeta) (dto.UserResponse, error)
	Get(ctx context.Context, actor authz.Actor, id uint) (dto.UserResponse, error)
	List(ctx context.Context, actor authz.Actor, req dto.UserListRequest) (dto.UserListResponse, error)
	Update(ctx context.Context, actor authz.Actor, id uint, payload dto.UserUpdateRequest, meta ClientMeta) (dto.UserResponse, error)
	Delete(ctx context.Context, actor authz.Actor, id uint, meta ClientMeta) error
	ChangePassword(ctx context.Context, actorID uint, payload dto.ChangePasswordRequest) error
}

type userService struct {
	repo        repository.UserRepository
	departments repository.DepartmentRepository
	validator   *validator.Validate
	audit       AuditRecorder
	logger      zerolog.Logger
}

// NewUserService constructs the account management service.
func NewUserService(
	repo repository.UserRepository,
	departments repository.DepartmentRepository,
	validate *validator.Validate,
	audit AuditRecorder,
	logger zerolog.Logger,
) UserService {
	return &userService{
		repo:        repo,
		departments: departments,
		validator:   validate,
		audit:       audit,
		logger:      logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) Create(ctx context.Context, actor authz.Actor, payload dto.UserCreateRequest, meta ClientMeta) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	if err := authz.CanCreateUser(actor, payload.Role, payload.DepartmentID); err != nil {
		return dto.UserResponse{}, err
	}

	// Department presence is role-conditional.
	if models.RequiresDepartment(payload.Role) {
		if payload.DepartmentID == nil {
			return dto.UserResponse{}, fmt.Errorf("%w: %s accounts require a department", ErrInvalidInput, payload.Role)
		}
		if _, err := s.departments.GetByID(ctx, *payload.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.UserResponse{}, fmt.Errorf("%w: department does not exist", ErrInvalidInput)
			}
			return dto.UserResponse{}, err
		}
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return dto.UserResponse{}, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserResponse{}, err
	}

	user := models.User{
		Name:         strings.TrimSpace(payload.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         payload.Role,
	}
	if models.RequiresDepartment(payload.Role) {
		user.DepartmentID = payload.DepartmentID
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.UserResponse{}, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return dto.UserResponse{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:      actor.ID,
		Action:       models.AuditActionCreateUser,
		TargetUserID: &user.ID,
		Details: map[string]interface{}{
			"email": user.Email,
			"role":  user.Role,
		},
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})

	return dto.NewUserResponse(user), nil
}

func (s *userService) Get(ctx context.Context, actor authz.Actor, id uint) (dto.UserResponse, error) {
	if err := authz.CanManageUser(actor, id); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrNotFound
		}
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *userService) List(ctx context.Context, actor authz.Actor, req dto.UserListRequest) (dto.UserListResponse, error) {
	filter := repository.UserFilter{
		Role:     req.Role,
		Search:   strings.TrimSpace(req.Search),
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	// Role scope narrows before explicit filters apply.
	switch actor.Role {
	case models.RoleAdmin, models.RolePrincipal:
		filter.DepartmentID = req.DepartmentID
	case models.RoleHOD:
		filter.DepartmentID = actor.DepartmentID
	default:
		return dto.UserListResponse{}, fmt.Errorf("%w: insufficient permissions", authz.ErrForbidden)
	}

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.UserListResponse{}, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewUserResponse(user))
	}

	pagination := dto.PaginationMeta{
		Page:       maxInt(req.Page, 1),
		PageSize:   req.PageSize,
		TotalItems: total,
	}
	if req.PageSize > 0 {
		pagination.TotalPages = int(math.Ceil(float64(total) / float64(req.PageSize)))
	} else {
		pagination.TotalPages = 1
	}

	return dto.UserListResponse{Items: responses, Pagination: pagination}, nil
}

func (s *userService) Update(ctx context.Context, actor authz.Actor, id uint, payload dto.UserUpdateRequest, meta ClientMeta) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}
	if actor.Role != models.RoleAdmin {
		return dto.UserResponse{}, fmt.Errorf("%w: insufficient permissions", authz.ErrForbidden)
	}

	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrNotFound
		}
		return dto.UserResponse{}, err
	}

	updates := make(map[string]interface{})
	changed := make([]string, 0)

	if payload.Name != nil {
		updates["name"] = strings.TrimSpace(*payload.Name)
		changed = append(changed, "name")
	}
	if payload.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*payload.Email))
		changed = append(changed, "email")
	}
	if payload.Role != nil {
		updates["role"] = *payload.Role
		changed = append(changed, "role")
		if models.RequiresDepartment(*payload.Role) && payload.DepartmentID == nil && before.DepartmentID == nil {
			return dto.UserResponse{}, fmt.Errorf("%w: %s accounts require a department", ErrInvalidInput, *payload.Role)
		}
	}
	if payload.DepartmentID != nil {
		if _, err := s.departments.GetByID(ctx, *payload.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.UserResponse{}, fmt.Errorf("%w: department does not exist", ErrInvalidInput)
			}
			return dto.UserResponse{}, err
		}
		updates["department_id"] = *payload.DepartmentID
		changed = append(changed, "department_id")
	}

	if len(updates) == 0 {
		return dto.NewUserResponse(before), nil
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrNotFound
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.UserResponse{}, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return dto.UserResponse{}, err
	}

	after, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:      actor.ID,
		Action:       models.AuditActionUpdateUser,
		TargetUserID: &id,
		Details: map[string]interface{}{
			"changed_fields": changed,
			"before_role":    before.Role,
			"after_role":     after.Role,
		},
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})

	return dto.NewUserResponse(after), nil
}

func (s *userService) Delete(ctx context.Context, actor authz.Actor, id uint, meta ClientMeta) error {
	if err := authz.CanDeleteUser(actor, id); err != nil {
		return err
	}

	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:      actor.ID,
		Action:       models.AuditActionDeleteUser,
		TargetUserID: &id,
		Details: map[string]interface{}{
			"email": target.Email,
			"role":  target.Role,
		},
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})

	return nil
}

func (s *userService) ChangePassword(ctx context.Context, actorID uint, payload dto.ChangePasswordRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	user, err := s.repo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.Update(ctx, actorID, map[string]interface{}{"password_hash": string(hash)})
}
