package models

// Role decides which side of the app a user sees.
type Role string

const (
	RoleCitizen Role = "CITIZEN"
	RoleAdmin   Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleCitizen || r == RoleAdmin
}
