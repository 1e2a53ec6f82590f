package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/dto"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/repository"
)

const testJWTSecret = "test-secret"

func newAuthTestService(t *testing.T) (AuthService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	validate := validator.New(validator.WithRequiredStructEnabled())
	audit := NewAuditService(repository.NewAuditLogRepository(db), zerolog.Nop())
	svc := NewAuthService(
		repository.NewUserRepository(db),
		repository.NewPasswordResetRepository(db),
		validate,
		audit,
		NewLogNotifier(zerolog.Nop()),
		testJWTSecret,
		time.Hour,
		zerolog.Nop(),
	)
	return svc, db
}

func TestSignInIssuesScopedToken(t *testing.T) {
	svc, db := newAuthTestService(t)
	department := seedDepartment(t, db, "Computer Engineering", "COMP")
	hod := seedUser(t, db, "Meera Iyer", "meera@example.edu", models.RoleHOD, ptrUint(department.ID))

	result, err := svc.SignIn(context.Background(), dto.SignInRequest{Email: hod.Email, Password: testPassword}, ClientMeta{IPAddress: "10.0.0.1"})
	require.NoError(t, err)
	require.Equal(t, models.RoleHOD, result.Role)
	require.Equal(t, "/hod", result.RedirectHint)
	require.Equal(t, hod.Email, result.User.Email)

	token, err := jwt.Parse(result.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, models.RoleHOD, claims["role"])
	require.Equal(t, float64(department.ID), claims["department_id"])

	var auditCount int64
	require.NoError(t, db.Model(&models.AuditLog{}).Where("action = ?", models.AuditActionLogin).Count(&auditCount).Error)
	require.Equal(t, int64(1), auditCount)
}

func TestSignInWrongPassword(t *testing.T) {
	svc, db := newAuthTestService(t)
	department := seedDepartment(t, db, "Computer Engineering", "COMP")
	user := seedUser(t, db, "Asha Rao", "asha@example.edu", models.RoleFaculty, ptrUint(department.ID))

	_, err := svc.SignIn(context.Background(), dto.SignInRequest{Email: user.Email, Password: "wrong"}, ClientMeta{})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(context.Background(), dto.SignInRequest{Email: "nobody@example.edu", Password: "wrong"}, ClientMeta{})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, db := newAuthTestService(t)
	department := seedDepartment(t, db, "Computer Engineering", "COMP")
	user := seedUser(t, db, "Asha Rao", "asha@example.edu", models.RoleFaculty, ptrUint(department.ID))

	require.NoError(t, svc.RequestReset(context.Background(), dto.RequestResetRequest{Email: user.Email}))

	var reset models.PasswordReset
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&reset).Error)

	require.NoError(t, svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Token: reset.Token, NewPassword: "brand-new-password"}))

	// The new password works, the token is spent.
	_, err := svc.SignIn(context.Background(), dto.SignInRequest{Email: user.Email, Password: "brand-new-password"}, ClientMeta{})
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Token: reset.Token, NewPassword: "another-password"})
	require.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestRequestResetUnknownEmailIsSilent(t *testing.T) {
	svc, db := newAuthTestService(t)
	require.NoError(t, svc.RequestReset(context.Background(), dto.RequestResetRequest{Email: "ghost@example.edu"}))

	var count int64
	require.NoError(t, db.Model(&models.PasswordReset{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, db := newAuthTestService(t)
	department := seedDepartment(t, db, "Computer Engineering", "COMP")
	user := seedUser(t, db, "Asha Rao", "asha@example.edu", models.RoleFaculty, ptrUint(department.ID))

	reset := models.PasswordReset{
		UserID:    user.ID,
		Token:     "stale-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, db.Create(&reset).Error)

	err := svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Token: reset.Token, NewPassword: "whatever-else"})
	require.ErrorIs(t, err, ErrInvalidResetToken)
}
