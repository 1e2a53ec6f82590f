package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/authz"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/dto"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/observability"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/repository"
)

// Report period granularities.
const (
	PeriodMonthly  = "monthly"
	PeriodSemester = "semester"
	PeriodYearly   = "yearly"
)

// ReportService aggregates achievements into reports. The actor's role scope
// always narrows the candidate set before any explicit filter applies.
type ReportService interface {
	BuildReport(ctx context.Context, actor authz.Actor, req dto.ReportRequest) (dto.ReportResponse, error)
	PeriodReport(ctx context.Context, actor authz.Actor, req dto.ReportRequest, period string) (dto.PeriodReportResponse, error)
	DepartmentComparison(ctx context.Context, actor authz.Actor, req dto.ReportRequest) (dto.DepartmentComparisonResponse, error)
	BulkDepartmentReport(ctx context.Context, actor authz.Actor, departmentID uint) (dto.BulkReportResponse, error)
}

type reportService struct {
	achievements repository.AchievementRepository
	users        repository.UserRepository
	departments  repository.DepartmentRepository
	cache        *redis.Client
	cacheTTL     time.Duration
	logger       zerolog.Logger
	now          func() time.Time
}

// NewReportService constructs the aggregation engine.
func NewReportService(
	achievements repository.AchievementRepository,
	users repository.UserRepository,
	departments repository.DepartmentRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) ReportService {
	return &reportService{
		achievements: achievements,
		users:        users,
		departments:  departments,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger.With().Str("component", "report_service").Logger(),
		now:          time.Now,
	}
}

func (s *reportService) BuildReport(ctx context.Context, actor authz.Actor, req dto.ReportRequest) (dto.ReportResponse, error) {
	tracer := otel.Tracer("github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/service/report")
	ctx, span := tracer.Start(ctx, "report.aggregate")
	span.SetAttributes(attribute.String("report.role", actor.Role))
	defer span.End()

	cacheable := s.cache != nil && isUnfiltered(req) && authz.AchievementScope(actor).All
	const cacheKey = "report:institute:summary"

	if cacheable {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.ReportResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				span.SetAttributes(attribute.Bool("report.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read report cache")
		}
	}

	rows, err := s.fetchRows(ctx, actor, req)
	if err != nil {
		span.RecordError(err)
		return dto.ReportResponse{}, err
	}

	responses := make([]dto.AchievementResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, dto.NewAchievementResponse(row))
	}

	response := dto.ReportResponse{
		Rows:        responses,
		Counts:      classifyAll(rows),
		GeneratedAt: s.now(),
	}

	observability.ReportBuilds().Inc()
	observability.ReportRows().Add(float64(len(rows)))
	span.SetAttributes(attribute.Int("report.rows", len(rows)))

	if cacheable {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store report cache")
			}
		}
	}

	return response, nil
}

func (s *reportService) PeriodReport(ctx context.Context, actor authz.Actor, req dto.ReportRequest, period string) (dto.PeriodReportResponse, error) {
	switch period {
	case PeriodMonthly, PeriodSemester, PeriodYearly:
	default:
		return dto.PeriodReportResponse{}, fmt.Errorf("%w: unknown period %q", ErrInvalidInput, period)
	}

	rows, err := s.fetchRows(ctx, actor, req)
	if err != nil {
		return dto.PeriodReportResponse{}, err
	}

	type bucketKey struct {
		year int
		sub  int
	}
	order := make([]bucketKey, 0)
	grouped := map[bucketKey][]models.Achievement{}

	for _, row := range rows {
		// Calendar extraction happens in the server's local time zone.
		local := row.AchievementDate.Local()
		key := bucketKey{year: local.Year()}
		switch period {
		case PeriodMonthly:
			key.sub = int(local.Month())
		case PeriodSemester:
			// Odd semester runs July through December, even January
			// through June.
			if local.Month() >= time.July {
				key.sub = 1
			} else {
				key.sub = 2
			}
		}
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], row)
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].year != order[j].year {
			return order[i].year < order[j].year
		}
		return order[i].sub < order[j].sub
	})

	buckets := make([]dto.PeriodBucket, 0, len(order))
	for _, key := range order {
		bucket := dto.PeriodBucket{
			Year:   key.year,
			Counts: classifyAll(grouped[key]),
		}
		switch period {
		case PeriodMonthly:
			bucket.Month = key.sub
			bucket.Label = fmt.Sprintf("%d-%02d", key.year, key.sub)
		case PeriodSemester:
			if key.sub == 1 {
				bucket.Label = fmt.Sprintf("%d odd", key.year)
			} else {
				bucket.Label = fmt.Sprintf("%d even", key.year)
			}
		default:
			bucket.Label = fmt.Sprintf("%d", key.year)
		}
		buckets = append(buckets, bucket)
	}

	return dto.PeriodReportResponse{
		Period:  period,
		Buckets: buckets,
		Counts:  classifyAll(rows),
	}, nil
}

func (s *reportService) DepartmentComparison(ctx context.Context, actor authz.Actor, req dto.ReportRequest) (dto.DepartmentComparisonResponse, error) {
	rows, err := s.fetchRows(ctx, actor, req)
	if err != nil {
		return dto.DepartmentComparisonResponse{}, err
	}

	// Group on the denormalized department id, preserving first-seen order
	// so equal totals keep a deterministic ranking.
	order := make([]uint, 0)
	grouped := map[uint][]models.Achievement{}
	names := map[uint]string{}

	for _, row := range rows {
		if _, seen := grouped[row.DepartmentID]; !seen {
			order = append(order, row.DepartmentID)
			names[row.DepartmentID] = "Unknown"
			if row.Department != nil {
				names[row.DepartmentID] = row.Department.Name
			}
		}
		grouped[row.DepartmentID] = append(grouped[row.DepartmentID], row)
	}

	departments := make([]dto.DepartmentComparisonRow, 0, len(order))
	for _, id := range order {
		departments = append(departments, dto.DepartmentComparisonRow{
			DepartmentID:   id,
			DepartmentName: names[id],
			Counts:         classifyAll(grouped[id]),
		})
	}

	sort.SliceStable(departments, func(i, j int) bool {
		return departments[i].Counts.Total > departments[j].Counts.Total
	})

	return dto.DepartmentComparisonResponse{
		Departments: departments,
		Counts:      classifyAll(rows),
	}, nil
}

func (s *reportService) BulkDepartmentReport(ctx context.Context, actor authz.Actor, departmentID uint) (dto.BulkReportResponse, error) {
	scope := authz.AchievementScope(actor)
	switch {
	case scope.All:
	case scope.DepartmentID != nil && *scope.DepartmentID == departmentID:
	default:
		return dto.BulkReportResponse{}, fmt.Errorf("%w: insufficient permissions", authz.ErrForbidden)
	}

	department, err := s.departments.GetByID(ctx, departmentID)
	if err != nil {
		return dto.BulkReportResponse{}, ErrNotFound
	}

	faculty, _, err := s.users.List(ctx, repository.UserFilter{
		Role:         models.RoleFaculty,
		DepartmentID: &departmentID,
	})
	if err != nil {
		return dto.BulkReportResponse{}, err
	}

	sections := make([]dto.FacultySection, 0, len(faculty))
	for _, member := range faculty {
		memberID := member.ID
		rows, _, err := s.achievements.List(ctx, repository.AchievementFilter{
			FacultyID: &memberID,
			Preload:   true,
		})
		if err != nil {
			return dto.BulkReportResponse{}, err
		}

		responses := make([]dto.AchievementResponse, 0, len(rows))
		for _, row := range rows {
			responses = append(responses, dto.NewAchievementResponse(row))
		}

		sections = append(sections, dto.FacultySection{
			FacultyID:   member.ID,
			FacultyName: member.Name,
			Rows:        responses,
			Counts:      classifyAll(rows),
		})
	}

	return dto.BulkReportResponse{
		DepartmentID:   department.ID,
		DepartmentName: department.Name,
		Sections:       sections,
	}, nil
}

func (s *reportService) fetchRows(ctx context.Context, actor authz.Actor, req dto.ReportRequest) ([]models.Achievement, error) {
	filter, err := scopedFilter(actor, req.DepartmentID, req.FacultyID)
	if err != nil {
		return nil, err
	}
	filter.Category = categoryFilter(req.Category)
	filter.Preload = true

	if filter.From, err = parseOptionalDate(req.From); err != nil {
		return nil, fmt.Errorf("%w: from must be YYYY-MM-DD", ErrInvalidInput)
	}
	if filter.To, err = parseOptionalDate(req.To); err != nil {
		return nil, fmt.Errorf("%w: to must be YYYY-MM-DD", ErrInvalidInput)
	}

	rows, _, err := s.achievements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func isUnfiltered(req dto.ReportRequest) bool {
	return req.From == "" && req.To == "" && categoryFilter(req.Category) == "" &&
		req.DepartmentID == nil && req.FacultyID == nil
}

// classifyAll buckets each row with a case-insensitive substring match
// against the category, in a fixed priority order. A row matching no bucket
// contributes to Total only.
func classifyAll(rows []models.Achievement) dto.CategoryCounts {
	counts := dto.CategoryCounts{}
	for _, row := range rows {
		counts.Total++
		category := strings.ToLower(row.Category)
		switch {
		case strings.Contains(category, "publication"):
			counts.Publications++
		case strings.Contains(category, "patent"):
			counts.Patents++
		case strings.Contains(category, "award"):
			counts.Awards++
		case strings.Contains(category, "fdp"):
			counts.FDPs++
			if strings.Contains(strings.ToLower(row.SubCategory), "organised") {
				counts.FDPsOrganised++
			} else {
				counts.FDPsAttended++
			}
		case strings.Contains(category, "workshop"):
			counts.Workshops++
		case strings.Contains(category, "project"):
			counts.Projects++
		}
	}
	return counts
}
