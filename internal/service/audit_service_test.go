package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/dto"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/repository"
)

type failingAuditRepo struct{}

func (failingAuditRepo) Create(context.Context, *models.AuditLog) error {
	return errors.New("disk full")
}

func (failingAuditRepo) List(context.Context, repository.AuditLogFilter) ([]models.AuditLog, int64, error) {
	return nil, 0, nil
}

func (failingAuditRepo) Recent(context.Context, int) ([]models.AuditLog, error) {
	return nil, nil
}

func TestAuditRecordNeverPanicsOnFailure(t *testing.T) {
	svc := NewAuditService(failingAuditRepo{}, zerolog.Nop())

	// A failed write is swallowed; the caller has no error path to handle.
	svc.Record(context.Background(), AuditEntry{ActorID: 1, Action: models.AuditActionLogin})
}

func TestAuditListPaginatesFixedPageSize(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewAuditLogRepository(db)
	svc := NewAuditService(repo, zerolog.Nop())

	actor := seedUser(t, db, "Root Admin", "admin@example.edu", models.RoleAdmin, nil)

	for i := 0; i < AuditPageSize+5; i++ {
		svc.Record(context.Background(), AuditEntry{
			ActorID: actor.ID,
			Action:  models.AuditActionLogin,
			Details: map[string]interface{}{"n": i},
		})
	}

	first, err := svc.List(context.Background(), dto.AuditListRequest{Page: 1})
	require.NoError(t, err)
	require.Len(t, first.Items, AuditPageSize)
	require.Equal(t, int64(AuditPageSize+5), first.Pagination.TotalItems)
	require.Equal(t, 2, first.Pagination.TotalPages)

	second, err := svc.List(context.Background(), dto.AuditListRequest{Page: 2})
	require.NoError(t, err)
	require.Len(t, second.Items, 5)
}

func TestAuditListFiltersByAction(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuditService(repository.NewAuditLogRepository(db), zerolog.Nop())
	actor := seedUser(t, db, "Root Admin", "admin@example.edu", models.RoleAdmin, nil)

	svc.Record(context.Background(), AuditEntry{ActorID: actor.ID, Action: models.AuditActionLogin})
	svc.Record(context.Background(), AuditEntry{ActorID: actor.ID, Action: models.AuditActionCreateUser})

	result, err := svc.List(context.Background(), dto.AuditListRequest{Page: 1, Action: models.AuditActionCreateUser})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.Equal(t, models.AuditActionCreateUser, result.Items[0].Action)
}

func TestAuditRecent(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuditService(repository.NewAuditLogRepository(db), zerolog.Nop())
	actor := seedUser(t, db, "Root Admin", "admin@example.edu", models.RoleAdmin, nil)

	for i := 0; i < 8; i++ {
		svc.Record(context.Background(), AuditEntry{ActorID: actor.ID, Action: models.AuditActionLogin})
	}

	recent, err := svc.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
}
