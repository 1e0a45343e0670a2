package integrity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mkaya/campusdesk/internal/app/models"
)

// RoleRule binds a user-reference column to the role the referenced user
// must hold for the write to be valid.
type RoleRule struct {
	Table    string
	Column   string
	Required models.Role
}

// Rules is the authoritative rule table. The database triggers are
// generated from this same slice (see TriggerStatements), so the two
// enforcement layers cannot drift apart.
var Rules = []RoleRule{
	{Table: "module", Column: "welfare_staff_id", Required: models.RoleWelfareStaff},
	{Table: "module", Column: "module_staff_id", Required: models.RoleModuleStaff},
	{Table: "student", Column: "stud_id", Required: models.RoleStudent},
	{Table: "attendance", Column: "stud_id", Required: models.RoleStudent},
	{Table: "surveys", Column: "stud_id", Required: models.RoleStudent},
	{Table: "module_grades", Column: "stud_id", Required: models.RoleStudent},
	{Table: "deadlines", Column: "stud_id", Required: models.RoleStudent},
}

// RoleViolation reports a write that would break the referenced-role
// invariant. It is not retryable; the caller must fix the input.
type RoleViolation struct {
	Table    string
	Column   string
	UserID   string
	Expected models.Role
	Actual   models.Role // empty when the referenced user does not exist
}

// Error implements the error interface
func (e *RoleViolation) Error() string {
	if e.Actual == "" {
		return fmt.Sprintf("invalid %s.%s: user %q does not exist (expected role %s)",
			e.Table, e.Column, e.UserID, e.Expected)
	}
	return fmt.Sprintf("invalid %s.%s: user %q has role %s, expected %s",
		e.Table, e.Column, e.UserID, e.Actual, e.Expected)
}

// Querier is the minimal query surface the guard needs. Both pgx.Tx and
// *pgxpool.Pool satisfy it; passing the transaction keeps the role lookup
// and the dependent write atomic.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RoleGuard validates user references against the rule table.
type RoleGuard struct{}

// NewRoleGuard creates a new RoleGuard
func NewRoleGuard() *RoleGuard {
	return &RoleGuard{}
}

// ruleFor returns the rule governing table.column, if any.
func ruleFor(table, column string) (RoleRule, bool) {
	for _, r := range Rules {
		if r.Table == table && r.Column == column {
			return r, true
		}
	}
	return RoleRule{}, false
}

// CheckRef validates that the user referenced by table.column holds the
// role the rule table requires. It must run on the same transaction as
// the dependent write.
func (g *RoleGuard) CheckRef(ctx context.Context, q Querier, table, column, userID string) error {
	rule, ok := ruleFor(table, column)
	if !ok {
		return fmt.Errorf("no role rule for %s.%s", table, column)
	}

	var role models.Role
	err := q.QueryRow(ctx, `SELECT role FROM users WHERE user_id = $1`, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &RoleViolation{Table: table, Column: column, UserID: userID, Expected: rule.Required}
		}
		return fmt.Errorf("failed to look up role for %s.%s: %w", table, column, err)
	}

	if role != rule.Required {
		return &RoleViolation{Table: table, Column: column, UserID: userID, Expected: rule.Required, Actual: role}
	}

	return nil
}

// CheckStudentRef validates a stud_id reference for the given table.
func (g *RoleGuard) CheckStudentRef(ctx context.Context, q Querier, table, studentID string) error {
	return g.CheckRef(ctx, q, table, "stud_id", studentID)
}

// CheckModuleStaff validates both staff references of a module row.
// The welfare reference is checked first, matching the trigger order.
func (g *RoleGuard) CheckModuleStaff(ctx context.Context, q Querier, welfareStaffID, moduleStaffID string) error {
	if err := g.CheckRef(ctx, q, "module", "welfare_staff_id", welfareStaffID); err != nil {
		return err
	}
	return g.CheckRef(ctx, q, "module", "module_staff_id", moduleStaffID)
}

// TriggerStatements renders the database-side enforcement layer from the
// rule table: one plpgsql function and one BEFORE INSERT OR UPDATE trigger
// per governed column. Applied by the migrator after schema migrations.
func TriggerStatements() []string {
	var stmts []string
	for _, r := range Rules {
		fn := fmt.Sprintf("enforce_%s_%s_role", r.Table, r.Column)
		trigger := fmt.Sprintf("%s_%s_role_check", r.Table, r.Column)

		stmts = append(stmts, fmt.Sprintf(`CREATE OR REPLACE FUNCTION %s() RETURNS trigger AS $$
DECLARE
	ref_role varchar(20);
BEGIN
	SELECT role INTO ref_role FROM users WHERE user_id = NEW.%s;
	IF ref_role IS NULL OR ref_role <> '%s' THEN
		RAISE EXCEPTION 'invalid %s: user is not %s';
	END IF;
	RETURN NEW;
END;
$$ LANGUAGE plpgsql;`, fn, r.Column, r.Required, r.Column, r.Required))

		stmts = append(stmts, fmt.Sprintf(`DROP TRIGGER IF EXISTS %s ON %s;`, trigger, r.Table))
		stmts = append(stmts, fmt.Sprintf(`CREATE TRIGGER %s BEFORE INSERT OR UPDATE ON %s FOR EACH ROW EXECUTE FUNCTION %s();`,
			trigger, r.Table, fn))
	}
	return stmts
}
