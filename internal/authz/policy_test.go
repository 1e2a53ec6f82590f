package authz

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func TestAchievementScope(t *testing.T) {
	tests := []struct {
		name  string
		actor Actor
		check func(t *testing.T, scope Scope)
	}{
		{
			name:  "admin sees everything",
			actor: Actor{ID: 1, Role: models.RoleAdmin},
			check: func(t *testing.T, scope Scope) {
				require.True(t, scope.All)
			},
		},
		{
			name:  "principal sees everything",
			actor: Actor{ID: 2, Role: models.RolePrincipal},
			check: func(t *testing.T, scope Scope) {
				require.True(t, scope.All)
			},
		},
		{
			name:  "hod restricted to department",
			actor: Actor{ID: 3, Role: models.RoleHOD, DepartmentID: uintPtr(7)},
			check: func(t *testing.T, scope Scope) {
				require.False(t, scope.All)
				require.NotNil(t, scope.DepartmentID)
				require.Equal(t, uint(7), *scope.DepartmentID)
			},
		},
		{
			name:  "faculty restricted to own rows",
			actor: Actor{ID: 4, Role: models.RoleFaculty, DepartmentID: uintPtr(7)},
			check: func(t *testing.T, scope Scope) {
				require.False(t, scope.All)
				require.NotNil(t, scope.FacultyID)
				require.Equal(t, uint(4), *scope.FacultyID)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, AchievementScope(tc.actor))
		})
	}
}

func TestScopeAllows(t *testing.T) {
	achievement := models.Achievement{FacultyID: 4, DepartmentID: 7}

	require.True(t, Scope{All: true}.Allows(achievement))
	require.True(t, Scope{DepartmentID: uintPtr(7)}.Allows(achievement))
	require.False(t, Scope{DepartmentID: uintPtr(8)}.Allows(achievement))
	require.True(t, Scope{FacultyID: uintPtr(4)}.Allows(achievement))
	require.False(t, Scope{FacultyID: uintPtr(5)}.Allows(achievement))
	require.False(t, Scope{}.Allows(achievement))
}

func TestCanDecideAchievement(t *testing.T) {
	require.NoError(t, CanDecideAchievement(Actor{Role: models.RoleAdmin}, 7))
	require.NoError(t, CanDecideAchievement(Actor{Role: models.RoleHOD, DepartmentID: uintPtr(7)}, 7))

	err := CanDecideAchievement(Actor{Role: models.RoleHOD, DepartmentID: uintPtr(8)}, 7)
	require.ErrorIs(t, err, ErrForbidden)

	err = CanDecideAchievement(Actor{Role: models.RolePrincipal}, 7)
	require.ErrorIs(t, err, ErrForbidden)

	err = CanDecideAchievement(Actor{Role: models.RoleFaculty, DepartmentID: uintPtr(7)}, 7)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestCanCreateUser(t *testing.T) {
	hod := Actor{ID: 3, Role: models.RoleHOD, DepartmentID: uintPtr(7)}

	tests := []struct {
		name         string
		actor        Actor
		role         string
		departmentID *uint
		wantErr      bool
		wantReason   string
	}{
		{name: "admin creates anyone", actor: Actor{Role: models.RoleAdmin}, role: models.RoleAdmin},
		{name: "principal creates hod", actor: Actor{Role: models.RolePrincipal}, role: models.RoleHOD, departmentID: uintPtr(7)},
		{name: "principal cannot create admin", actor: Actor{Role: models.RolePrincipal}, role: models.RoleAdmin, wantErr: true},
		{name: "hod creates faculty in own department", actor: hod, role: models.RoleFaculty, departmentID: uintPtr(7)},
		{name: "hod cannot create hod", actor: hod, role: models.RoleHOD, departmentID: uintPtr(7), wantErr: true, wantReason: "can only create Faculty accounts"},
		{name: "hod cannot create in other department", actor: hod, role: models.RoleFaculty, departmentID: uintPtr(8), wantErr: true, wantReason: "can only create users in your own department"},
		{name: "faculty cannot create users", actor: Actor{Role: models.RoleFaculty}, role: models.RoleFaculty, departmentID: uintPtr(7), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CanCreateUser(tc.actor, tc.role, tc.departmentID)
			if !tc.wantErr {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrForbidden)
			if tc.wantReason != "" {
				require.Contains(t, err.Error(), tc.wantReason)
			}
		})
	}
}

func TestCanDeleteUser(t *testing.T) {
	admin := Actor{ID: 1, Role: models.RoleAdmin}

	require.NoError(t, CanDeleteUser(admin, 2))
	require.ErrorIs(t, CanDeleteUser(admin, 1), ErrInvalidOperation)
	require.ErrorIs(t, CanDeleteUser(Actor{ID: 3, Role: models.RoleHOD}, 4), ErrForbidden)
}

func TestCanManageUser(t *testing.T) {
	require.NoError(t, CanManageUser(Actor{ID: 1, Role: models.RoleAdmin}, 9))
	require.NoError(t, CanManageUser(Actor{ID: 4, Role: models.RoleFaculty}, 4))
	require.ErrorIs(t, CanManageUser(Actor{ID: 4, Role: models.RoleFaculty}, 5), ErrForbidden)
}

func TestCanViewAudit(t *testing.T) {
	require.NoError(t, CanViewAudit(Actor{Role: models.RoleAdmin}))
	require.ErrorIs(t, CanViewAudit(Actor{Role: models.RolePrincipal}), ErrForbidden)
}
