package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/repository"
)

func TestSeedServiceTokenGuard(t *testing.T) {
	db := openTestDB(t)
	svc := NewSeedService(repository.NewDepartmentRepository(db), repository.NewUserRepository(db), true, "secret", zerolog.Nop())

	_, err := svc.SeedDepartments(context.Background(), "wrong", []models.Department{{Name: "Computer Engineering", Code: "comp"}})
	require.ErrorIs(t, err, ErrSeedUnauthorized)

	affected, err := svc.SeedDepartments(context.Background(), "secret", []models.Department{{Name: "Computer Engineering", Code: "comp"}})
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	var department models.Department
	require.NoError(t, db.Where("code = ?", "COMP").First(&department).Error)

	// Re-seeding the same code is idempotent.
	affected, err = svc.SeedDepartments(context.Background(), "secret", []models.Department{{Name: "Computer Engineering", Code: "COMP"}})
	require.NoError(t, err)
	require.Zero(t, affected)
}

func TestSeedServiceDisabled(t *testing.T) {
	db := openTestDB(t)
	svc := NewSeedService(repository.NewDepartmentRepository(db), repository.NewUserRepository(db), false, "secret", zerolog.Nop())

	_, err := svc.SeedDepartments(context.Background(), "secret", nil)
	require.ErrorIs(t, err, ErrSeedDisabled)

	err = svc.SeedAdmin(context.Background(), "secret", "Root Admin", "admin@example.edu", "bootstrap-pw")
	require.ErrorIs(t, err, ErrSeedDisabled)
}

func TestSeedAdminIdempotent(t *testing.T) {
	db := openTestDB(t)
	svc := NewSeedService(repository.NewDepartmentRepository(db), repository.NewUserRepository(db), true, "secret", zerolog.Nop())

	require.NoError(t, svc.SeedAdmin(context.Background(), "secret", "Root Admin", "Admin@Example.edu", "bootstrap-pw"))
	require.NoError(t, svc.SeedAdmin(context.Background(), "secret", "Root Admin", "admin@example.edu", "bootstrap-pw"))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error)
	require.Equal(t, int64(1), count)
}
