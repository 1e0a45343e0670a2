package integrity

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaya/campusdesk/internal/app/models"
)

// fakeUserStore satisfies Querier with an in-memory user_id -> role map.
type fakeUserStore map[string]models.Role

type fakeRow struct {
	role models.Role
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*models.Role)) = r.role
	return nil
}

func (s fakeUserStore) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	role, ok := s[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{role: role}
}

func campusUsers() fakeUserStore {
	return fakeUserStore{
		"AD001": models.RoleAdmin,
		"MS001": models.RoleModuleStaff,
		"WS001": models.RoleWelfareStaff,
		"ST001": models.RoleStudent,
	}
}

func TestCheckRefAcceptsMatchingRole(t *testing.T) {
	guard := NewRoleGuard()
	users := campusUsers()

	require.NoError(t, guard.CheckRef(context.Background(), users, "student", "stud_id", "ST001"))
	require.NoError(t, guard.CheckRef(context.Background(), users, "module", "welfare_staff_id", "WS001"))
	require.NoError(t, guard.CheckRef(context.Background(), users, "module", "module_staff_id", "MS001"))
}

func TestCheckRefRejectsNonStudent(t *testing.T) {
	guard := NewRoleGuard()
	users := campusUsers()

	// Every non-student role must be rejected for a stud_id column
	for _, id := range []string{"AD001", "MS001", "WS001"} {
		err := guard.CheckStudentRef(context.Background(), users, "student", id)
		require.Error(t, err, "user %s", id)

		var violation *RoleViolation
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, "student", violation.Table)
		assert.Equal(t, "stud_id", violation.Column)
		assert.Equal(t, id, violation.UserID)
		assert.Equal(t, models.RoleStudent, violation.Expected)
		assert.NotEqual(t, models.RoleStudent, violation.Actual)
	}
}

func TestCheckRefRejectsMissingUser(t *testing.T) {
	guard := NewRoleGuard()
	users := campusUsers()

	err := guard.CheckStudentRef(context.Background(), users, "attendance", "GHOST")
	require.Error(t, err)

	var violation *RoleViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "GHOST", violation.UserID)
	assert.Empty(t, violation.Actual)
	assert.Contains(t, violation.Error(), "does not exist")
}

func TestCheckRefUnknownColumn(t *testing.T) {
	guard := NewRoleGuard()

	err := guard.CheckRef(context.Background(), campusUsers(), "course", "course_id", "CS101")
	require.Error(t, err)

	var violation *RoleViolation
	assert.False(t, strings.Contains(err.Error(), "expected role"))
	assert.NotErrorAs(t, err, &violation)
}

func TestCheckModuleStaff(t *testing.T) {
	guard := NewRoleGuard()
	users := campusUsers()

	// MOD1: correctly assigned staff
	require.NoError(t, guard.CheckModuleStaff(context.Background(), users, "WS001", "MS001"))

	// MOD2: roles swapped; the welfare reference fails first
	err := guard.CheckModuleStaff(context.Background(), users, "MS001", "WS001")
	require.Error(t, err)

	var violation *RoleViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "welfare_staff_id", violation.Column)
	assert.Equal(t, models.RoleWelfareStaff, violation.Expected)
	assert.Equal(t, models.RoleModuleStaff, violation.Actual)
}

func TestCheckRefFailureIsIdempotent(t *testing.T) {
	guard := NewRoleGuard()
	users := campusUsers()

	first := guard.CheckStudentRef(context.Background(), users, "module_grades", "WS001")
	second := guard.CheckStudentRef(context.Background(), users, "module_grades", "WS001")

	require.Error(t, first)
	require.Error(t, second)
	assert.Equal(t, first.Error(), second.Error())
}

func TestRulesCoverGovernedColumns(t *testing.T) {
	studentTables := []string{"student", "attendance", "surveys", "module_grades", "deadlines"}
	for _, table := range studentTables {
		rule, ok := ruleFor(table, "stud_id")
		require.True(t, ok, "missing rule for %s.stud_id", table)
		assert.Equal(t, models.RoleStudent, rule.Required)
	}

	welfare, ok := ruleFor("module", "welfare_staff_id")
	require.True(t, ok)
	assert.Equal(t, models.RoleWelfareStaff, welfare.Required)

	staff, ok := ruleFor("module", "module_staff_id")
	require.True(t, ok)
	assert.Equal(t, models.RoleModuleStaff, staff.Required)

	assert.Len(t, Rules, 7)
}

func TestTriggerStatementsDeriveFromRules(t *testing.T) {
	stmts := TriggerStatements()

	// Function, drop and create per rule
	require.Len(t, stmts, len(Rules)*3)

	joined := strings.Join(stmts, "\n")
	for _, rule := range Rules {
		assert.Contains(t, joined, "enforce_"+rule.Table+"_"+rule.Column+"_role")
		assert.Contains(t, joined, rule.Table+"_"+rule.Column+"_role_check")
		assert.Contains(t, joined, "<> '"+string(rule.Required)+"'")
	}
	assert.Contains(t, joined, "BEFORE INSERT OR UPDATE ON module")
	assert.Contains(t, joined, "BEFORE INSERT OR UPDATE ON deadlines")
}
