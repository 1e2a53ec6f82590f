package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/authz"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/dto"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/repository"
)

// DepartmentService manages the department reference data. Departments are
// created by Principal or Admin and never deleted.
type DepartmentService interface {
	Create(ctx context.Context, actor authz.Actor, payload dto.DepartmentCreateRequest) (dto.DepartmentResponse, error)
	Get(ctx context.Context, id uint) (dto.DepartmentResponse, error)
	List(ctx context.Context) ([]dto.DepartmentResponse, error)
}

type departmentService struct {
	repo      repository.DepartmentRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewDepartmentService constructs the department service.
func NewDepartmentService(repo repository.DepartmentRepository, validate *validator.Validate, logger zerolog.Logger) DepartmentService {
	return &departmentService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "department_service").Logger(),
	}
}

func (s *departmentService) Create(ctx context.Context, actor authz.Actor, payload dto.DepartmentCreateRequest) (dto.DepartmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DepartmentResponse{}, err
	}
	if err := authz.CanCreateDepartment(actor); err != nil {
		return dto.DepartmentResponse{}, err
	}

	department := models.Department{
		Name: strings.TrimSpace(payload.Name),
		Code: strings.ToUpper(strings.TrimSpace(payload.Code)),
	}

	if err := s.repo.Create(ctx, &department); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.DepartmentResponse{}, fmt.Errorf("%w: department name or code already exists", ErrConflict)
		}
		return dto.DepartmentResponse{}, err
	}

	return dto.NewDepartmentResponse(department), nil
}

func (s *departmentService) Get(ctx context.Context, id uint) (dto.DepartmentResponse, error) {
	department, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DepartmentResponse{}, ErrNotFound
		}
		return dto.DepartmentResponse{}, err
	}
	return dto.NewDepartmentResponse(department), nil
}

func (s *departmentService) List(ctx context.Context) ([]dto.DepartmentResponse, error) {
	departments, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.DepartmentResponse, 0, len(departments))
	for _, department := range departments {
		responses = append(responses, dto.NewDepartmentResponse(department))
	}
	return responses, nil
}
