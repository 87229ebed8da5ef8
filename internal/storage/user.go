package storage

import "time"

const (
	RoleProduction  = "production"
	RoleMaintenance = "maintenance"
	RoleQualite     = "qualite"
	RoleManager     = "manager"
)

var Roles = []string{RoleProduction, RoleMaintenance, RoleQualite, RoleManager}

func IsRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserInfo is a user without its hash, safe to return to clients.
type UserInfo struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) Info() UserInfo {
	return UserInfo{Username: u.Username, Role: u.Role, CreatedAt: u.CreatedAt}
}
