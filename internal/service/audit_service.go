package service

import (
	"context"
	"math"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/dto"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/observability"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/repository"
)

// AuditPageSize is the fixed page size for audit trail listings.
const AuditPageSize = 20

// AuditEntry captures the details required to persist one audit record.
type AuditEntry struct {
	ActorID      uint
	Action       string
	TargetUserID *uint
	Details      map[string]interface{}
	IPAddress    string
	UserAgent    string
}

// AuditRecorder defines the append-only side of the audit trail.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

// AuditService exposes recording and paginated reads of the audit trail.
type AuditService interface {
	AuditRecorder
	List(ctx context.Context, req dto.AuditListRequest) (dto.AuditListResponse, error)
	Recent(ctx context.Context, limit int) ([]dto.AuditEntryResponse, error)
}

type auditService struct {
	repo   repository.AuditLogRepository
	logger zerolog.Logger
}

// NewAuditService constructs the audit trail service.
func NewAuditService(repo repository.AuditLogRepository, logger zerolog.Logger) AuditService {
	return &auditService{
		repo:   repo,
		logger: logger.With().Str("component", "audit_service").Logger(),
	}
}

// Record persists an audit entry best-effort. A failed write never blocks or
// reverts the triggering operation; it is logged and surfaced as a metric.
func (s *auditService) Record(ctx context.Context, entry AuditEntry) {
	model := models.AuditLog{
		ActorID:      entry.ActorID,
		Action:       entry.Action,
		TargetUserID: entry.TargetUserID,
		Details:      toJSONMap(entry.Details),
		IPAddress:    entry.IPAddress,
		UserAgent:    entry.UserAgent,
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		observability.AuditWriteFailures().Inc()
		s.logger.Warn().Err(err).
			Str("action", entry.Action).
			Uint("actor_id", entry.ActorID).
			Msg("failed to persist audit entry")
	}
}

func (s *auditService) List(ctx context.Context, req dto.AuditListRequest) (dto.AuditListResponse, error) {
	filter := repository.AuditLogFilter{
		Page:     req.Page,
		PageSize: AuditPageSize,
		Action:   req.Action,
	}
	if req.ActorID > 0 {
		filter.ActorID = &req.ActorID
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.AuditListResponse{}, err
	}

	responses := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.NewAuditEntryResponse(entry))
	}

	pagination := dto.PaginationMeta{
		Page:       maxInt(req.Page, 1),
		PageSize:   AuditPageSize,
		TotalItems: total,
		TotalPages: int(math.Ceil(float64(total) / float64(AuditPageSize))),
	}

	return dto.AuditListResponse{Items: responses, Pagination: pagination}, nil
}

func (s *auditService) Recent(ctx context.Context, limit int) ([]dto.AuditEntryResponse, error) {
	entries, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.NewAuditEntryResponse(entry))
	}
	return responses, nil
}

func toJSONMap(details map[string]interface{}) datatypes.JSONMap {
	if details == nil {
		return datatypes.JSONMap{}
	}
	payload := datatypes.JSONMap{}
	for key, value := range details {
		payload[key] = value
	}
	return payload
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
