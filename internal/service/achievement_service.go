package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/authz"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/dto"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/observability"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/repository"
)

const achievementDateLayout = "2006-01-02"

// AchievementService owns the achievement lifecycle: submission, edit,
// decision and removal. Every read is scoped through the authorization
// policy before rows leave the service.
type AchievementService interface {
	Submit(ctx context.Context, facultyID uint, payload dto.AchievementCreateRequest) (dto.AchievementResponse, error)
	Edit(ctx context.Context, id, facultyID uint, payload dto.AchievementUpdateRequest) (dto.AchievementResponse, error)
	Decide(ctx context.Context, id uint, actor authz.Actor, payload dto.DecisionRequest) (dto.AchievementResponse, error)
	Delete(ctx context.Context, id uint, actor authz.Actor) error
	Get(ctx context.Context, id uint, actor authz.Actor) (dto.AchievementResponse, error)
	List(ctx context.Context, actor authz.Actor, req dto.AchievementListRequest) (dto.AchievementListResponse, error)
}

type achievementService struct {
	repo      repository.AchievementRepository
	users     repository.UserRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	notifier  Notifier
	audit     AuditRecorder
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAchievementService constructs the lifecycle engine.
func NewAchievementService(
	repo repository.AchievementRepository,
	users repository.UserRepository,
	validate *validator.Validate,
	notifier Notifier,
	audit AuditRecorder,
	logger zerolog.Logger,
) AchievementService {
	return &achievementService{
		repo:      repo,
		users:     users,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		notifier:  notifier,
		audit:     audit,
		logger:    logger.With().Str("component", "achievement_service").Logger(),
		now:       time.Now,
	}
}

func (s *achievementService) Submit(ctx context.Context, facultyID uint, payload dto.AchievementCreateRequest) (dto.AchievementResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AchievementResponse{}, err
	}
	if !models.ValidCategory(payload.Category) {
		return dto.AchievementResponse{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, payload.Category)
	}

	achievementDate, err := parseDate(payload.AchievementDate)
	if err != nil {
		return dto.AchievementResponse{}, fmt.Errorf("%w: achievement_date must be YYYY-MM-DD", ErrInvalidInput)
	}

	faculty, err := s.users.GetByID(ctx, facultyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AchievementResponse{}, ErrNotFound
		}
		return dto.AchievementResponse{}, err
	}
	if faculty.DepartmentID == nil {
		return dto.AchievementResponse{}, fmt.Errorf("%w: account has no department", ErrInvalidInput)
	}

	achievement := models.Achievement{
		Title:           s.sanitizer.Sanitize(strings.TrimSpace(payload.Title)),
		Description:     s.sanitizer.Sanitize(strings.TrimSpace(payload.Description)),
		Category:        payload.Category,
		SubCategory:     strings.TrimSpace(payload.SubCategory),
		AchievementDate: achievementDate,
		Duration:        strings.TrimSpace(payload.Duration),
		FundedBy:        strings.TrimSpace(payload.FundedBy),
		GrantAmount:     payload.GrantAmount,
		FacultyID:       faculty.ID,
		DepartmentID:    *faculty.DepartmentID,
		Status:          models.AchievementStatusPending,
		ProofURL:        strings.TrimSpace(payload.ProofURL),
	}

	if achievement.StartDate, err = parseOptionalDate(payload.StartDate); err != nil {
		return dto.AchievementResponse{}, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if achievement.EndDate, err = parseOptionalDate(payload.EndDate); err != nil {
		return dto.AchievementResponse{}, fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrInvalidInput)
	}

	if err := s.repo.Create(ctx, &achievement); err != nil {
		return dto.AchievementResponse{}, err
	}

	s.notifyHOD(ctx, faculty, achievement)

	achievement.Faculty = &faculty
	achievement.Department = faculty.Department
	return dto.NewAchievementResponse(achievement), nil
}

func (s *achievementService) Edit(ctx context.Context, id, facultyID uint, payload dto.AchievementUpdateRequest) (dto.AchievementResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AchievementResponse{}, err
	}

	achievement, err := s.repo.GetByIDAndOwner(ctx, id, facultyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AchievementResponse{}, ErrNotFound
		}
		return dto.AchievementResponse{}, err
	}

	if payload.Title != nil {
		achievement.Title = s.sanitizer.Sanitize(strings.TrimSpace(*payload.Title))
	}
	if payload.Description != nil {
		achievement.Description = s.sanitizer.Sanitize(strings.TrimSpace(*payload.Description))
	}
	if payload.Category != nil {
		if !models.ValidCategory(*payload.Category) {
			return dto.AchievementResponse{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *payload.Category)
		}
		achievement.Category = *payload.Category
	}
	if payload.SubCategory != nil {
		achievement.SubCategory = strings.TrimSpace(*payload.SubCategory)
	}
	if payload.AchievementDate != nil {
		parsed, err := parseDate(*payload.AchievementDate)
		if err != nil {
			return dto.AchievementResponse{}, fmt.Errorf("%w: achievement_date must be YYYY-MM-DD", ErrInvalidInput)
		}
		achievement.AchievementDate = parsed
	}
	if payload.StartDate != nil {
		if achievement.StartDate, err = parseOptionalDate(*payload.StartDate); err != nil {
			return dto.AchievementResponse{}, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrInvalidInput)
		}
	}
	if payload.EndDate != nil {
		if achievement.EndDate, err = parseOptionalDate(*payload.EndDate); err != nil {
			return dto.AchievementResponse{}, fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrInvalidInput)
		}
	}
	if payload.Duration != nil {
		achievement.Duration = strings.TrimSpace(*payload.Duration)
	}
	if payload.FundedBy != nil {
		achievement.FundedBy = strings.TrimSpace(*payload.FundedBy)
	}
	if payload.GrantAmount != nil {
		achievement.GrantAmount = payload.GrantAmount
	}
	if payload.ProofURL != nil && strings.TrimSpace(*payload.ProofURL) != "" {
		achievement.ProofURL = strings.TrimSpace(*payload.ProofURL)
	}

	// An edited achievement must be re-reviewed: status returns to pending
	// and the previous decision is cleared, whatever it was.
	achievement.Status = models.AchievementStatusPending
	achievement.RejectionReason = nil
	achievement.ApprovedBy = nil
	achievement.ApprovedAt = nil

	if err := s.repo.Update(ctx, &achievement); err != nil {
		return dto.AchievementResponse{}, err
	}

	return dto.NewAchievementResponse(achievement), nil
}

func (s *achievementService) Decide(ctx context.Context, id uint, actor authz.Actor, payload dto.DecisionRequest) (dto.AchievementResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AchievementResponse{}, err
	}

	achievement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AchievementResponse{}, ErrNotFound
		}
		return dto.AchievementResponse{}, err
	}

	if err := authz.CanDecideAchievement(actor, achievement.DepartmentID); err != nil {
		return dto.AchievementResponse{}, err
	}

	now := s.now()
	deciderID := actor.ID
	auditAction := models.AuditActionApproveAchievement

	switch payload.Outcome {
	case dto.DecisionApprove:
		achievement.Status = models.AchievementStatusApproved
		achievement.RejectionReason = nil
	case dto.DecisionReject:
		reason := s.sanitizer.Sanitize(strings.TrimSpace(payload.Reason))
		if reason == "" {
			return dto.AchievementResponse{}, ErrRejectReasonRequired
		}
		achievement.Status = models.AchievementStatusRejected
		achievement.RejectionReason = &reason
		auditAction = models.AuditActionRejectAchievement
	default:
		return dto.AchievementResponse{}, fmt.Errorf("%w: unknown outcome %q", ErrInvalidInput, payload.Outcome)
	}

	achievement.ApprovedBy = &deciderID
	achievement.ApprovedAt = &now

	if err := s.repo.Update(ctx, &achievement); err != nil {
		return dto.AchievementResponse{}, err
	}

	observability.Decisions().WithLabelValues(payload.Outcome).Inc()

	details := map[string]interface{}{
		"achievement_id": achievement.ID,
		"title":          achievement.Title,
		"outcome":        payload.Outcome,
	}
	if achievement.RejectionReason != nil {
		details["reason"] = *achievement.RejectionReason
	}
	s.audit.Record(ctx, AuditEntry{
		ActorID:      actor.ID,
		Action:       auditAction,
		TargetUserID: &achievement.FacultyID,
		Details:      details,
	})

	s.notifyOwner(ctx, achievement, payload.Outcome)

	return dto.NewAchievementResponse(achievement), nil
}

func (s *achievementService) Delete(ctx context.Context, id uint, actor authz.Actor) error {
	if actor.Role == models.RoleAdmin {
		if err := s.repo.Delete(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return nil
	}

	if err := s.repo.DeleteByIDAndOwner(ctx, id, actor.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *achievementService) Get(ctx context.Context, id uint, actor authz.Actor) (dto.AchievementResponse, error) {
	achievement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AchievementResponse{}, ErrNotFound
		}
		return dto.AchievementResponse{}, err
	}

	// Out-of-scope reads look identical to missing records.
	if !authz.AchievementScope(actor).Allows(achievement) {
		return dto.AchievementResponse{}, ErrNotFound
	}

	return dto.NewAchievementResponse(achievement), nil
}

func (s *achievementService) List(ctx context.Context, actor authz.Actor, req dto.AchievementListRequest) (dto.AchievementListResponse, error) {
	filter, err := scopedFilter(actor, req.DepartmentID, req.FacultyID)
	if err != nil {
		return dto.AchievementListResponse{}, err
	}
	filter.Category = categoryFilter(req.Category)
	filter.Status = req.Status
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	filter.Preload = true

	if filter.From, err = parseOptionalDate(req.From); err != nil {
		return dto.AchievementListResponse{}, fmt.Errorf("%w: from must be YYYY-MM-DD", ErrInvalidInput)
	}
	if filter.To, err = parseOptionalDate(req.To); err != nil {
		return dto.AchievementListResponse{}, fmt.Errorf("%w: to must be YYYY-MM-DD", ErrInvalidInput)
	}

	achievements, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.AchievementListResponse{}, err
	}

	responses := make([]dto.AchievementResponse, 0, len(achievements))
	for _, achievement := range achievements {
		responses = append(responses, dto.NewAchievementResponse(achievement))
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

	return dto.AchievementListResponse{Items: responses, Pagination: pagination}, nil
}

// scopedFilter translates the actor's scope plus any explicit narrowing into
// a repository filter. Explicit filters can only narrow, never widen: a HOD
// asking for another department's rows gets an empty, not a wider, result.
func scopedFilter(actor authz.Actor, departmentID, facultyID *uint) (repository.AchievementFilter, error) {
	scope := authz.AchievementScope(actor)
	filter := repository.AchievementFilter{}

	switch {
	case scope.All:
		filter.DepartmentID = departmentID
		filter.FacultyID = facultyID
	case scope.DepartmentID != nil:
		filter.DepartmentID = scope.DepartmentID
		filter.FacultyID = facultyID
	case scope.FacultyID != nil:
		filter.FacultyID = scope.FacultyID
	default:
		return repository.AchievementFilter{}, fmt.Errorf("%w: insufficient permissions", authz.ErrForbidden)
	}

	return filter, nil
}

// categoryFilter maps the "all" wildcard to an unfiltered query.
func categoryFilter(category string) string {
	category = strings.TrimSpace(category)
	if strings.EqualFold(category, "all") {
		return ""
	}
	return category
}

func (s *achievementService) notifyHOD(ctx context.Context, faculty models.User, achievement models.Achievement) {
	hod, err := s.users.FindHOD(ctx, achievement.DepartmentID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn().Err(err).Uint("department_id", achievement.DepartmentID).Msg("failed to look up HOD for submission notification")
		}
		return
	}

	event := NotificationEvent{
		Kind:           EventNewSubmission,
		RecipientID:    hod.ID,
		RecipientEmail: hod.Email,
		Subject:        "New achievement submission",
		Body:           fmt.Sprintf("%s submitted %q for review.", faculty.Name, achievement.Title),
		AchievementID:  &achievement.ID,
		SentAt:         s.now(),
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		observability.NotifyFailures().WithLabelValues(event.Kind).Inc()
		s.logger.Warn().Err(err).Str("kind", event.Kind).Msg("failed to deliver notification")
	}
}

func (s *achievementService) notifyOwner(ctx context.Context, achievement models.Achievement, outcome string) {
	owner, err := s.users.GetByID(ctx, achievement.FacultyID)
	if err != nil {
		s.logger.Warn().Err(err).Uint("faculty_id", achievement.FacultyID).Msg("failed to look up owner for decision notification")
		return
	}

	kind := EventAchievementApproved
	body := fmt.Sprintf("Your achievement %q was approved.", achievement.Title)
	if outcome == dto.DecisionReject {
		kind = EventAchievementRejected
		reason := ""
		if achievement.RejectionReason != nil {
			reason = *achievement.RejectionReason
		}
		body = fmt.Sprintf("Your achievement %q was rejected: %s", achievement.Title, reason)
	}

	event := NotificationEvent{
		Kind:           kind,
		RecipientID:    owner.ID,
		RecipientEmail: owner.Email,
		Subject:        "Achievement review decision",
		Body:           body,
		AchievementID:  &achievement.ID,
		SentAt:         s.now(),
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		observability.NotifyFailures().WithLabelValues(event.Kind).Inc()
		s.logger.Warn().Err(err).Str("kind", event.Kind).Msg("failed to deliver notification")
	}
}

func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation(achievementDateLayout, strings.TrimSpace(value), time.Local)
}

func parseOptionalDate(value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := parseDate(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
