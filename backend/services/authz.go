package services

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleParent  Role = "parent"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleTeacher, RoleParent:
		return Role(s), nil
	}
	return "", BadRequest("unknown role " + s)
}

type RoleSet []Role

func (s RoleSet) Contains(r Role) bool {
	for _, v := range s {
		if v == r {
			return true
		}
	}
	return false
}

// ModerationRoles may hide, review and ban. Other role gates resolve through
// the role-specific profile lookup instead.
var ModerationRoles = RoleSet{RoleTeacher, RoleParent}

func Authorize(r Role, allowed RoleSet) error {
	if !allowed.Contains(r) {
		return Forbidden("role " + string(r) + " may not perform this action")
	}
	return nil
}
