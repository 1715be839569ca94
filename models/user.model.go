package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:'Member'" json:"role"`
	Dept         string `gorm:"default:'General'" json:"dept"`
	AvatarURL    string `gorm:"column:avatar_url;default:''" json:"avatarUrl"`
}

// Profile is the wire shape of a user. The password hash never leaves the
// store layer.
type Profile struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Dept      string `json:"dept"`
	AvatarURL string `json:"avatarUrl"`
}

// ToProfile strips a user row down to its public fields
func (u *User) ToProfile() Profile {
	return Profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Dept:      u.Dept,
		AvatarURL: u.AvatarURL,
	}
}
