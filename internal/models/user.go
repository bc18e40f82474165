package models

// Role is the coarse authorization level of a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// UserModel represents a registered author.
type UserModel struct {
	Base
	Username string `json:"username" gorm:"uniqueIndex;size:64;not null"`
	Email    string `json:"email"    gorm:"uniqueIndex;size:191;not null"`
	Password string `json:"-"        gorm:"not null"`
	Role     Role   `json:"role"     gorm:"size:16;default:USER"`
}

func (UserModel) TableName() string { return "users" }

// IsAdmin reports whether the user holds the elevated role.
func (u *UserModel) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// ActorID returns the user's id, or zero for an anonymous actor.
func (u *UserModel) ActorID() uint {
	if u == nil {
		return 0
	}
	return u.ID
}
