package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
)

const jwtTestSecret = "jwt-test-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func jwtApp() *fiber.App {
	app := fiber.New()
	app.Get("/whoami", JWTProtected(jwtTestSecret), func(c *fiber.Ctx) error {
		payload := fiber.Map{
			"user_id": c.Locals("user_id"),
			"role":    c.Locals("user_role"),
		}
		if departmentID, ok := c.Locals("department_id").(uint); ok {
			payload["department_id"] = departmentID
		}
		return c.JSON(payload)
	})
	return app
}

func TestJWTProtectedSetsIdentityLocals(t *testing.T) {
	app := jwtApp()
	token := signedToken(t, jwtTestSecret, jwt.MapClaims{
		"sub":           float64(7),
		"role":          models.RoleHOD,
		"department_id": float64(3),
		"exp":           time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, float64(7), body["user_id"])
	require.Equal(t, models.RoleHOD, body["role"])
	require.Equal(t, float64(3), body["department_id"])
}

func TestJWTProtectedRejectsBadTokens(t *testing.T) {
	app := jwtApp()

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Token abc"},
		{"wrong secret", "Bearer " + signedToken(t, "other-secret", jwt.MapClaims{"sub": float64(1)})},
		{"expired", "Bearer " + signedToken(t, jwtTestSecret, jwt.MapClaims{
			"sub": float64(1),
			"exp": time.Now().Add(-time.Minute).Unix(),
		})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}
