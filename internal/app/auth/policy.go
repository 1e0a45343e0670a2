package auth

import (
	"fmt"

	"github.com/mkaya/campusdesk/internal/app/models"
	"github.com/mkaya/campusdesk/internal/pkg/apperrors"
)

// Identity is the authenticated (id, role) pair for the current request.
// It is carried explicitly through every authorization check rather than
// held as process state, so concurrent sessions cannot observe each other.
type Identity struct {
	ID   string
	Name string
	Role models.Role
}

// Action names a permission-checked operation. OwnerScoped actions are
// additionally restricted to the identity's own records.
type Action struct {
	Name        string
	OwnerScoped bool
}

// The full action set. Owner scoping is an explicit flag here, not a
// naming convention.
var (
	ActionViewStudents   = Action{Name: "view_students"}
	ActionViewAttendance = Action{Name: "view_attendance"}
	ActionEditAttendance = Action{Name: "edit_attendance"}
	ActionViewGrades     = Action{Name: "view_grades"}
	ActionEditGrades     = Action{Name: "edit_grades"}
	ActionViewDeadlines  = Action{Name: "view_deadlines"}
	ActionEditDeadlines  = Action{Name: "edit_deadlines"}
	ActionViewSurveys    = Action{Name: "view_surveys"}
	ActionViewModules    = Action{Name: "view_modules"}

	ActionViewOwnData      = Action{Name: "view_own_data", OwnerScoped: true}
	ActionSubmitSurvey     = Action{Name: "submit_survey", OwnerScoped: true}
	ActionViewOwnDeadlines = Action{Name: "view_own_deadlines", OwnerScoped: true}
	ActionViewOwnGrades    = Action{Name: "view_own_grades", OwnerScoped: true}
)

// Policy maps roles to their permitted actions. Admin is a wildcard and
// has no entry here.
type Policy struct {
	grants map[models.Role][]Action
}

// NewPolicy creates the fixed role permission table.
func NewPolicy() *Policy {
	return &Policy{
		grants: map[models.Role][]Action{
			models.RoleModuleStaff: {
				ActionViewStudents, ActionViewAttendance, ActionEditAttendance,
				ActionViewGrades, ActionEditGrades, ActionViewDeadlines, ActionEditDeadlines,
			},
			models.RoleWelfareStaff: {
				ActionViewStudents, ActionViewAttendance, ActionViewSurveys,
				ActionViewGrades, ActionViewDeadlines,
			},
			models.RoleStudent: {
				ActionViewOwnData, ActionSubmitSurvey, ActionViewOwnDeadlines,
				ActionViewOwnGrades, ActionViewModules,
			},
		},
	}
}

// Check reports whether ident may perform action. For owner-scoped actions
// a non-empty ownerID must match the identity's own id.
func (p *Policy) Check(ident *Identity, action Action, ownerID string) bool {
	if ident == nil {
		return false
	}

	if ident.Role == models.RoleAdmin {
		return true
	}

	granted := false
	for _, a := range p.grants[ident.Role] {
		if a.Name == action.Name {
			granted = true
			break
		}
	}
	if !granted {
		return false
	}

	if action.OwnerScoped && ownerID != "" && ownerID != ident.ID {
		return false
	}

	return true
}

// Require returns a permission-denied error when Check fails.
func (p *Policy) Require(ident *Identity, action Action, ownerID string) error {
	if ident == nil {
		return apperrors.NewForbiddenError("not authenticated")
	}
	if !p.Check(ident, action, ownerID) {
		return apperrors.NewForbiddenError(
			fmt.Sprintf("user %q with role %q does not have permission to: %s", ident.ID, ident.Role, action.Name))
	}
	return nil
}

// RequireRole is the coarse per-operation gate: ident must hold one of
// the allowed roles. Unlike Check, admin is not implicitly allowed and
// must be listed by the caller.
func RequireRole(ident *Identity, allowed ...models.Role) error {
	if ident == nil {
		return apperrors.NewForbiddenError("not authenticated")
	}
	for _, r := range allowed {
		if ident.Role == r {
			return nil
		}
	}
	return apperrors.NewForbiddenError(
		fmt.Sprintf("role %q not authorized, requires one of %v", ident.Role, allowed))
}

// RequireOwn enforces the self-service rule: students may only act on
// their own records. Staff and admin identities pass through.
func RequireOwn(ident *Identity, studentID string) error {
	if ident == nil {
		return apperrors.NewForbiddenError("not authenticated")
	}
	if ident.Role == models.RoleStudent && ident.ID != studentID {
		return apperrors.NewForbiddenError("students can only access their own data")
	}
	return nil
}
