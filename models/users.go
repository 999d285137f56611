package models

// Role determines which order and payment actions a user may request.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleMember  Role = "MEMBER"
)

// User is the profile returned by GET /me. The portal keeps a read-only copy
// for the lifetime of a session.
type User struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Country  string `json:"country"`
}
