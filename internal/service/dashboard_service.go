package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/dto"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/repository"
)

const dashboardRecentAuditLimit = 5

// DashboardService aggregates the admin landing page counters.
type DashboardService interface {
	GetDashboard(ctx context.Context) (dto.DashboardResponse, error)
}

type dashboardService struct {
	users        repository.UserRepository
	departments  repository.DepartmentRepository
	achievements repository.AchievementRepository
	audit        AuditService
	cache        *redis.Client
	cacheTTL     time.Duration
	logger       zerolog.Logger
	now          func() time.Time
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(
	users repository.UserRepository,
	departments repository.DepartmentRepository,
	achievements repository.AchievementRepository,
	audit AuditService,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		users:        users,
		departments:  departments,
		achievements: achievements,
		audit:        audit,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger.With().Str("component", "dashboard_service").Logger(),
		now:          time.Now,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (dto.DashboardResponse, error) {
	const cacheKey = "dashboard:admin"

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.DashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	roleCounts, err := s.users.CountByRole(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	usersByRole := make(map[string]int64, len(roleCounts))
	var totalUsers int64
	for _, rc := range roleCounts {
		usersByRole[rc.Role] = rc.Count
		totalUsers += rc.Count
	}

	departmentCount, err := s.departments.Count(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	statusCounts, err := s.achievements.CountByStatus(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	recent, err := s.audit.Recent(ctx, dashboardRecentAuditLimit)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	response := dto.DashboardResponse{
		UsersByRole:          usersByRole,
		TotalUsers:           totalUsers,
		TotalDepartments:     departmentCount,
		AchievementsByStatus: statusCounts,
		RecentAudit:          recent,
		GeneratedAt:          s.now(),
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}
