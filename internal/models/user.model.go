package models

import "time"

// User carries a closed set of role flags. Authorization for every engine
// operation is a direct check against these flags, not a dynamic lookup.
type User struct {
	BaseUUIDModel
	Username     string     `gorm:"type:text;uniqueIndex;not null" json:"username"`
	Email        *string    `gorm:"type:text;uniqueIndex"          json:"email"`
	DisplayName  string     `gorm:"type:text"                      json:"displayName"`
	PasswordHash string     `gorm:"type:text;not null"             json:"-"`
	IsAdmin      bool       `gorm:"type:bool;default:false"        json:"isAdmin"`
	IsCleaner    bool       `gorm:"type:bool;default:false"        json:"isCleaner"`
	IsRequester  bool       `gorm:"type:bool;default:false"        json:"isRequester"`
	IsActive     bool       `gorm:"type:bool;default:true"         json:"isActive"`
	LastLoginAt  *time.Time `gorm:"type:timestamp"                 json:"lastLoginAt,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserProfile is the public representation of a user.
type UserProfile struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"displayName"`
	Email       *string `json:"email,omitempty"`
	IsAdmin     bool    `json:"isAdmin"`
	IsCleaner   bool    `json:"isCleaner"`
	IsRequester bool    `json:"isRequester"`
	IsActive    bool    `json:"isActive"`
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:          u.ID.String(),
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		IsAdmin:     u.IsAdmin,
		IsCleaner:   u.IsCleaner,
		IsRequester: u.IsRequester,
		IsActive:    u.IsActive,
	}
}
