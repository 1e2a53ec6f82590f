package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/authz"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/dto"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/repository"
)

func newAchievementTestService(t *testing.T) (AchievementService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	validate := validator.New(validator.WithRequiredStructEnabled())
	repo := repository.NewAchievementRepository(db)
	users := repository.NewUserRepository(db)
	audit := NewAuditService(repository.NewAuditLogRepository(db), zerolog.Nop())
	svc := NewAchievementService(repo, users, validate, NewLogNotifier(zerolog.Nop()), audit, zerolog.Nop())
	return svc, db
}

func TestAchievementSubmitStartsPending(t *testing.T) {
	svc, db := newAchievementTestService(t)
	department := seedDepartment(t, db, "Computer Engineering", "COMP")
	faculty := seedUser(t, db, "Asha Rao", "asha@example.edu", models.RoleFaculty, ptrUint(department.ID))

	result, err := svc.Submit(context.Background(), faculty.ID, dto.AchievementCreateRequest{
		Title:           "Survey of stream processing",
		Description:     "Published in a peer reviewed journal",
		Category:        models.CategoryPublication,
		AchievementDate: "2026-03-15",
	})
	require.NoError(t, err)
	require.Equal(t, models.AchievementStatusPending, result.Status)
	require.Equal(t, department.ID, result.DepartmentID)
	require.Equal(t, faculty.ID, result.FacultyID)
}

func TestAchievementSubmitRejectsUnknownCategory(t *testing.T) {
	svc, db := newAchievementTestService(t)
	department := seedDepartment(t, db, "Computer Engineering", "COMP")
	faculty := seedUser(t, db, "Asha Rao", "asha@example.edu", models.RoleFaculty, ptrUint(department.ID))

	_, err := svc.Submit(context.Background(), faculty.ID, dto.AchievementCreateRequest{
		Title:           "Something",
		Description:     "Something else",
		Category:        "Bogus",
		AchievementDate: "2026-03-15",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAchievementEditResetsDecision(t *testing.T) {
	svc, db := newAchievementTestService(t)
	department := seedDepartment(t, db, "Computer Engineering", "COMP")
	faculty := seedUser(t, db, "Asha Rao", "asha@example.edu", models.RoleFaculty, ptrUint(department.ID))
	achievement := seedAchievement(t, db, faculty, "Old title", models.CategoryAward, time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local))

	reason := "missing proof"
	deciderID := uint(99)
	decidedAt := time.Now()
	achievement.Status = models.AchievementStatusRejected
	achievement.RejectionReason = &reason
	achievement.ApprovedBy = &deciderID
	achievement.ApprovedAt = &decidedAt
	require.NoError(t, db.Save(&achievement).Error)

	title := "New title"
	result, err := svc.Edit(context.Background(), achievement.ID, faculty.ID, dto.AchievementUpdateRequest{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "New title", result.Title)
	require.Equal(t, models.AchievementStatusPending, result.Status)
	require.Nil(t, result.RejectionReason)
	require.Nil(t, result.ApprovedBy)
	require.Nil(t, result.ApprovedAt)
	require.Equal(t, "Asha Rao", result.FacultyName)
	require.Equal(t, "Computer Engineering", result.DepartmentName)
}

func TestAchievementEditByNonOwnerLooksMissing(t *testing.T) {
	svc, db := newAchievementTestService(t)
	department := seedDepartment(t, db, "Computer Engineering", "COMP")
	owner := seedUser(t, db, "Asha Rao", "asha@example.edu", models.RoleFaculty, ptrUint(department.ID))
	other := seedUser(t, db, "Ravi Nair", "ravi@example.edu", models.RoleFaculty, ptrUint(department.ID))
	achievement := seedAchievement(t, db, owner, "Paper", models.CategoryPublication, time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local))

	title := "Hijacked"
	_, err := svc.Edit(context.Background(), achievement.ID, other.ID, dto.AchievementUpdateRequest{Title: &title})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAchievementDecideApprove(t *testing.T) {
	svc, db := newAchievementTestService(t)
	department := seedDepartment(t, db, "Computer Engineering", "COMP")
	faculty := seedUser(t, db, "Asha Rao", "asha@example.edu", models.RoleFaculty, ptrUint(department.ID))
	hod := seedUser(t, db, "Meera Iyer", "meera@example.edu", models.RoleHOD, ptrUint(department.ID))
	achievement := seedAchievement(t, db, faculty, "Paper", models.CategoryPublication, time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local))

	actor := authz.Actor{ID: hod.ID, Role: models.RoleHOD, DepartmentID: ptrUint(department.ID)}
	result, err := svc.Decide(context.Background(), achievement.ID, actor, dto.DecisionRequest{Outcome: dto.DecisionApprove})
	require.NoError(t, err)
	require.Equal(t, models.AchievementStatusApproved, result.Status)
	require.Nil(t, result.RejectionReason)
	require.NotNil(t, result.ApprovedBy)
	require.Equal(t, hod.ID, *result.ApprovedBy)
	require.NotNil(t, result.ApprovedAt)
}

func TestAchievementApproveTwiceOnlyBumpsTimestamp(t *testing.T) {
	svc, db := newAchievementTestService(t)
	department := seedDepartment(t, db, "Computer Engineering", "COMP")
	faculty := seedUser(t, db, "Asha Rao", "asha@example.edu", models.RoleFaculty, ptrUint(department.ID))
	hod := seedUser(t, db, "Meera Iyer", "meera@example.edu", models.RoleHOD, ptrUint(department.ID))
	achievement := seedAchievement(t, db, faculty, "Paper", models.CategoryPublication, time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local))

	clock := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc.(*achievementService).now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	actor := authz.Actor{ID: hod.ID, Role: models.RoleHOD, DepartmentID: ptrUint(department.ID)}
	first, err := svc.Decide(context.Background(), achievement.ID, actor, dto.DecisionRequest{Outcome: dto.DecisionApprove})
	require.NoError(t, err)

	second, err := svc.Decide(context.Background(), achievement.ID, actor, dto.DecisionRequest{Outcome: dto.DecisionApprove})
	require.NoError(t, err)
	require.Equal(t, models.AchievementStatusApproved, second.Status)
	require.Nil(t, second.RejectionReason)
	require.Equal(t, *first.ApprovedBy, *second.ApprovedBy)
	require.True(t, second.ApprovedAt.After(*first.ApprovedAt))
}

func TestAchievementRejectRequiresReason(t *testing.T) {
	svc, db := newAchievementTestService(t)
	department := seedDepartment(t, db, "Computer Engineering", "COMP")
	faculty := seedUser(t, db, "Asha Rao", "asha@example.edu", models.RoleFaculty, ptrUint(department.ID))
	achievement := seedAchievement(t, db, faculty, "Paper", models.CategoryPublication, time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local))

	admin := authz.Actor{ID: 1, Role: models.RoleAdmin}
	_, err := svc.Decide(context.Background(), achievement.ID, admin, dto.DecisionRequest{Outcome: dto.DecisionReject, Reason: "   "})
	require.ErrorIs(t, err, ErrRejectReasonRequired)

	result, err := svc.Decide(context.Background(), achievement.ID, admin, dto.DecisionRequest{Outcome: dto.DecisionReject, Reason: "insufficient evidence"})
	require.NoError(t, err)
	require.Equal(t, models.AchievementStatusRejected, result.Status)
	require.NotNil(t, result.RejectionReason)
	require.Equal(t, "insufficient evidence", *result.RejectionReason)
}

func TestAchievementDecideOutsideDepartmentForbidden(t *testing.T) {
	svc, db := newAchievementTestService(t)
	department := seedDepartment(t, db, "Computer Engineering", "COMP")
	otherDept := seedDepartment(t, db, "Information Technology", "IT")
	faculty := seedUser(t, db, "Asha Rao", "asha@example.edu", models.RoleFaculty, ptrUint(department.ID))
	achievement := seedAchievement(t, db, faculty, "Paper", models.CategoryPublication, time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local))

	actor := authz.Actor{ID: 50, Role: models.RoleHOD, DepartmentID: ptrUint(otherDept.ID)}
	_, err := svc.Decide(context.Background(), achievement.ID, actor, dto.DecisionRequest{Outcome: dto.DecisionApprove})
	require.ErrorIs(t, err, authz.ErrForbidden)
}

func TestAchievementGetOutOfScopeLooksMissing(t *testing.T) {
	svc, db := newAchievementTestService(t)
	department := seedDepartment(t, db, "Computer Engineering", "COMP")
	owner := seedUser(t, db, "Asha Rao", "asha@example.edu", models.RoleFaculty, ptrUint(department.ID))
	other := seedUser(t, db, "Ravi Nair", "ravi@example.edu", models.RoleFaculty, ptrUint(department.ID))
	achievement := seedAchievement(t, db, owner, "Paper", models.CategoryPublication, time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local))

	_, err := svc.Get(context.Background(), achievement.ID, authz.Actor{ID: other.ID, Role: models.RoleFaculty, DepartmentID: ptrUint(department.ID)})
	require.ErrorIs(t, err, ErrNotFound)

	result, err := svc.Get(context.Background(), achievement.ID, authz.Actor{ID: owner.ID, Role: models.RoleFaculty, DepartmentID: ptrUint(department.ID)})
	require.NoError(t, err)
	require.Equal(t, achievement.ID, result.ID)
}

func TestAchievementDeleteByNonOwnerLooksMissing(t *testing.T) {
	svc, db := newAchievementTestService(t)
	department := seedDepartment(t, db, "Computer Engineering", "COMP")
	owner := seedUser(t, db, "Asha Rao", "asha@example.edu", models.RoleFaculty, ptrUint(department.ID))
	other := seedUser(t, db, "Ravi Nair", "ravi@example.edu", models.RoleFaculty, ptrUint(department.ID))
	achievement := seedAchievement(t, db, owner, "Paper", models.CategoryPublication, time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local))

	err := svc.Delete(context.Background(), achievement.ID, authz.Actor{ID: other.ID, Role: models.RoleFaculty})
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(context.Background(), achievement.ID, authz.Actor{ID: owner.ID, Role: models.RoleFaculty}))
}

func TestAchievementListScopes(t *testing.T) {
	svc, db := newAchievementTestService(t)
	comp := seedDepartment(t, db, "Computer Engineering", "COMP")
	it := seedDepartment(t, db, "Information Technology", "IT")
	compFaculty := seedUser(t, db, "Asha Rao", "asha@example.edu", models.RoleFaculty, ptrUint(comp.ID))
	itFaculty := seedUser(t, db, "Ravi Nair", "ravi@example.edu", models.RoleFaculty, ptrUint(it.ID))
	seedAchievement(t, db, compFaculty, "Comp paper", models.CategoryPublication, time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local))
	seedAchievement(t, db, itFaculty, "IT paper", models.CategoryPublication, time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local))

	admin := authz.Actor{ID: 1, Role: models.RoleAdmin}
	all, err := svc.List(context.Background(), admin, dto.AchievementListRequest{})
	require.NoError(t, err)
	require.Len(t, all.Items, 2)

	hod := authz.Actor{ID: 40, Role: models.RoleHOD, DepartmentID: ptrUint(comp.ID)}
	scoped, err := svc.List(context.Background(), hod, dto.AchievementListRequest{})
	require.NoError(t, err)
	require.Len(t, scoped.Items, 1)
	require.Equal(t, "Comp paper", scoped.Items[0].Title)

	// A HOD asking for another department's rows narrows to nothing rather
	// than widening the scope.
	crossed, err := svc.List(context.Background(), hod, dto.AchievementListRequest{DepartmentID: ptrUint(it.ID)})
	require.NoError(t, err)
	require.Len(t, crossed.Items, 1)
	require.Equal(t, comp.ID, crossed.Items[0].DepartmentID)

	owner, err := svc.List(context.Background(), authz.Actor{ID: itFaculty.ID, Role: models.RoleFaculty, DepartmentID: ptrUint(it.ID)}, dto.AchievementListRequest{})
	require.NoError(t, err)
	require.Len(t, owner.Items, 1)
	require.Equal(t, "IT paper", owner.Items[0].Title)
}
