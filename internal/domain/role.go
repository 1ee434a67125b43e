package domain

// Role is the closed set of account kinds. Table and column dispatch happens
// through typed repositories keyed on this enum, never by formatting a role
// string into SQL.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}
