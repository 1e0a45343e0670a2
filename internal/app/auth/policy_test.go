package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaya/campusdesk/internal/app/models"
	"github.com/mkaya/campusdesk/internal/pkg/apperrors"
)

func ident(id string, role models.Role) *Identity {
	return &Identity{ID: id, Name: "Test User", Role: role}
}

func TestCheckUnauthenticatedAlwaysDenied(t *testing.T) {
	p := NewPolicy()

	assert.False(t, p.Check(nil, ActionViewStudents, ""))
	assert.False(t, p.Check(nil, ActionViewOwnData, "ST001"))
}

func TestCheckAdminWildcard(t *testing.T) {
	p := NewPolicy()
	admin := ident("AD001", models.RoleAdmin)

	assert.True(t, p.Check(admin, ActionEditGrades, ""))
	assert.True(t, p.Check(admin, ActionViewSurveys, ""))
	// Admin bypasses owner scoping too
	assert.True(t, p.Check(admin, ActionViewOwnGrades, "ST001"))
}

func TestCheckEditGradesRoleMatrix(t *testing.T) {
	p := NewPolicy()

	assert.True(t, p.Check(ident("MS001", models.RoleModuleStaff), ActionEditGrades, ""))
	assert.True(t, p.Check(ident("AD001", models.RoleAdmin), ActionEditGrades, ""))
	assert.False(t, p.Check(ident("WS001", models.RoleWelfareStaff), ActionEditGrades, ""))
	assert.False(t, p.Check(ident("ST001", models.RoleStudent), ActionEditGrades, ""))
	assert.False(t, p.Check(nil, ActionEditGrades, ""))
}

func TestCheckWelfareStaffReadOnly(t *testing.T) {
	p := NewPolicy()
	ws := ident("WS001", models.RoleWelfareStaff)

	assert.True(t, p.Check(ws, ActionViewStudents, ""))
	assert.True(t, p.Check(ws, ActionViewSurveys, ""))
	assert.True(t, p.Check(ws, ActionViewAttendance, ""))
	assert.False(t, p.Check(ws, ActionEditAttendance, ""))
	assert.False(t, p.Check(ws, ActionEditDeadlines, ""))
}

func TestCheckOwnerScopedActions(t *testing.T) {
	p := NewPolicy()
	student := ident("ST001", models.RoleStudent)

	// Own records are fine, other students' records are not
	assert.True(t, p.Check(student, ActionViewOwnGrades, "ST001"))
	assert.False(t, p.Check(student, ActionViewOwnGrades, "ST002"))
	assert.True(t, p.Check(student, ActionSubmitSurvey, "ST001"))
	assert.False(t, p.Check(student, ActionSubmitSurvey, "ST002"))

	// Missing owner id is treated as acting on self
	assert.True(t, p.Check(student, ActionViewOwnData, ""))
}

func TestCheckActionOutsideRoleSet(t *testing.T) {
	p := NewPolicy()
	student := ident("ST001", models.RoleStudent)

	// A student never gets staff actions, even against their own id
	assert.False(t, p.Check(student, ActionViewStudents, ""))
	assert.False(t, p.Check(student, ActionEditAttendance, "ST001"))
}

func TestRequireReturnsPermissionDenied(t *testing.T) {
	p := NewPolicy()

	err := p.Require(nil, ActionViewStudents, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
	assert.Contains(t, err.Error(), "not authenticated")

	err = p.Require(ident("ST001", models.RoleStudent), ActionEditGrades, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
	assert.Contains(t, err.Error(), "edit_grades")

	require.NoError(t, p.Require(ident("MS001", models.RoleModuleStaff), ActionEditGrades, ""))
}

func TestRequireRole(t *testing.T) {
	require.NoError(t, RequireRole(ident("MS001", models.RoleModuleStaff), models.RoleModuleStaff, models.RoleAdmin))
	require.NoError(t, RequireRole(ident("AD001", models.RoleAdmin), models.RoleModuleStaff, models.RoleAdmin))

	err := RequireRole(ident("WS001", models.RoleWelfareStaff), models.RoleModuleStaff, models.RoleAdmin)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	err = RequireRole(nil, models.RoleAdmin)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
}

func TestRequireOwn(t *testing.T) {
	require.NoError(t, RequireOwn(ident("ST001", models.RoleStudent), "ST001"))
	require.NoError(t, RequireOwn(ident("WS001", models.RoleWelfareStaff), "ST001"))
	require.NoError(t, RequireOwn(ident("AD001", models.RoleAdmin), "ST001"))

	err := RequireOwn(ident("ST001", models.RoleStudent), "ST002")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
}
