package models

import "time"

type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleManager || r == RoleAdmin
}

// Departments is the fixed key set for organization-level rollups.
var Departments = []string{"Engineering", "Marketing", "Sales", "HR"}

func ValidDepartment(d string) bool {
	for _, dept := range Departments {
		if dept == d {
			return true
		}
	}
	return false
}

type User struct {
	ID         string    `bson:"_id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Email      string    `bson:"email" json:"email"`
	Role       Role      `bson:"role" json:"role"`
	ManagerID  string    `bson:"manager_id,omitempty" json:"managerId,omitempty"`
	TeamID     string    `bson:"team_id,omitempty" json:"teamId,omitempty"`
	Department string    `bson:"department,omitempty" json:"department,omitempty"`
	AvatarURL  string    `bson:"avatar_url,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}
