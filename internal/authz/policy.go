// Package authz holds the role-based authorization policy. Every rule is a
// pure function of the actor identity and the resource, so the same decision
// is reached no matter which endpoint consults it.
package authz

import (
	"errors"
	"fmt"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
)

var (
	// ErrForbidden indicates the authenticated actor is not allowed to
	// perform the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidOperation indicates an operation that no role may perform,
	// such as an admin deleting their own account.
	ErrInvalidOperation = errors.New("invalid operation")
)

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID           uint
	Role         string
	DepartmentID *uint
}

// Scope narrows a read or report query to the records the actor's role
// entitles them to. Exactly one of the narrowing fields is set for
// non-institute-wide roles.
type Scope struct {
	// All grants institute-wide visibility.
	All bool
	// DepartmentID restricts to a single department.
	DepartmentID *uint
	// FacultyID restricts to records owned by a single faculty member.
	FacultyID *uint
}

// AchievementScope returns the server-side filter applied to every
// achievement read. HOD reads are always department-scoped here; no endpoint
// may widen the scope afterwards.
func AchievementScope(actor Actor) Scope {
	switch actor.Role {
	case models.RoleAdmin, models.RolePrincipal:
		return Scope{All: true}
	case models.RoleHOD:
		return Scope{DepartmentID: actor.DepartmentID}
	default:
		id := actor.ID
		return Scope{FacultyID: &id}
	}
}

// Allows reports whether the achievement falls inside the scope.
func (s Scope) Allows(ach models.Achievement) bool {
	switch {
	case s.All:
		return true
	case s.DepartmentID != nil:
		return ach.DepartmentID == *s.DepartmentID
	case s.FacultyID != nil:
		return ach.FacultyID == *s.FacultyID
	default:
		return false
	}
}

// CanDecideAchievement checks whether the actor may approve or reject an
// achievement belonging to the given department.
func CanDecideAchievement(actor Actor, departmentID uint) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleHOD:
		if actor.DepartmentID != nil && *actor.DepartmentID == departmentID {
			return nil
		}
		return fmt.Errorf("%w: achievement belongs to another department", ErrForbidden)
	default:
		return fmt.Errorf("%w: only HOD or Admin may decide achievements", ErrForbidden)
	}
}

// CanCreateUser checks whether the actor may create an account with the given
// role and department. The two HOD violations surface distinct reasons.
func CanCreateUser(actor Actor, newRole string, newDepartmentID *uint) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RolePrincipal:
		if newRole == models.RoleFaculty || newRole == models.RoleHOD {
			return nil
		}
		return fmt.Errorf("%w: Principal may only create Faculty and HOD accounts", ErrForbidden)
	case models.RoleHOD:
		if newRole != models.RoleFaculty {
			return fmt.Errorf("%w: can only create Faculty accounts", ErrForbidden)
		}
		if actor.DepartmentID == nil || newDepartmentID == nil || *newDepartmentID != *actor.DepartmentID {
			return fmt.Errorf("%w: can only create users in your own department", ErrForbidden)
		}
		return nil
	default:
		return fmt.Errorf("%w: insufficient permissions", ErrForbidden)
	}
}

// CanManageUser checks whether the actor may update or read another account.
// Any actor may manage their own profile.
func CanManageUser(actor Actor, targetID uint) error {
	if actor.Role == models.RoleAdmin || actor.ID == targetID {
		return nil
	}
	return fmt.Errorf("%w: insufficient permissions", ErrForbidden)
}

// CanDeleteUser checks whether the actor may delete the target account.
// Admin deletes anyone but themselves.
func CanDeleteUser(actor Actor, targetID uint) error {
	if actor.Role != models.RoleAdmin {
		return fmt.Errorf("%w: insufficient permissions", ErrForbidden)
	}
	if actor.ID == targetID {
		return fmt.Errorf("%w: admin cannot delete own account", ErrInvalidOperation)
	}
	return nil
}

// CanCreateDepartment checks whether the actor may create a department.
func CanCreateDepartment(actor Actor) error {
	if actor.Role == models.RoleAdmin || actor.Role == models.RolePrincipal {
		return nil
	}
	return fmt.Errorf("%w: insufficient permissions", ErrForbidden)
}

// CanViewAudit checks whether the actor may read the audit trail.
func CanViewAudit(actor Actor) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	return fmt.Errorf("%w: insufficient permissions", ErrForbidden)
}
