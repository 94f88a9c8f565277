package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser    UserRole = "user"
	RoleCurator UserRole = "curator"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	ID                uint           `json:"id" gorm:"primarykey"`
	Username          string         `json:"username" gorm:"uniqueIndex;not null"`
	Email             string         `json:"email" gorm:"uniqueIndex;not null"`
	Password          string         `json:"-" gorm:"not null"`
	Role              UserRole       `json:"role" gorm:"default:'user'"`
	DailyEmailEnabled bool           `json:"daily_email_enabled" gorm:"default:false"`
	IsActive          bool           `json:"is_active" gorm:"default:true"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsCurator reports whether the user may edit cards and tags.
func (u *User) IsCurator() bool {
	return u.Role == RoleCurator || u.Role == RoleAdmin
}
