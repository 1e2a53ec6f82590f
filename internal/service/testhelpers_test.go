package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
)

const testPassword = "correct-horse-battery"

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Department{},
		&models.User{},
		&models.Achievement{},
		&models.AuditLog{},
		&models.PasswordReset{},
	))
	return db
}

func ptrUint(v uint) *uint { return &v }

func seedDepartment(t *testing.T, db *gorm.DB, name, code string) models.Department {
	t.Helper()
	department := models.Department{Name: name, Code: code}
	require.NoError(t, db.Create(&department).Error)
	return department
}

func seedUser(t *testing.T, db *gorm.DB, name, email, role string, departmentID *uint) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		DepartmentID: departmentID,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedAchievement(t *testing.T, db *gorm.DB, owner models.User, title, category string, date time.Time) models.Achievement {
	t.Helper()
	require.NotNil(t, owner.DepartmentID)
	achievement := models.Achievement{
		Title:           title,
		Description:     "seeded for test",
		Category:        category,
		AchievementDate: date,
		FacultyID:       owner.ID,
		DepartmentID:    *owner.DepartmentID,
		Status:          models.AchievementStatusPending,
	}
	require.NoError(t, db.Create(&achievement).Error)
	return achievement
}
