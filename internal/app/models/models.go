package models

// Role defines the user role stored in the users.role column.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleModuleStaff  Role = "module_staff"
	RoleWelfareStaff Role = "welfare_staff"
	RoleStudent      Role = "student"
)

// AllRoles lists every role the schema accepts.
var AllRoles = []Role{RoleAdmin, RoleModuleStaff, RoleWelfareStaff, RoleStudent}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleModuleStaff, RoleWelfareStaff, RoleStudent:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
