package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/localnerve/jam-build-breezemeta/internal/metadata"
)

// RoleKind classifies a Role
type RoleKind int32

const (
	RoleKindAdmin RoleKind = iota
	RoleKindUser
)

// EnumMembers lists the RoleKind values in declaration order
func (RoleKind) EnumMembers() []metadata.EnumMember {
	return []metadata.EnumMember{
		{Name: "Admin", Value: int64(RoleKindAdmin)},
		{Name: "User", Value: int64(RoleKindUser)},
	}
}

// Audit carries the bookkeeping columns shared by account tables
type Audit struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Role is granted to users through UserRole
type Role struct {
	RoleID      int32      `gorm:"primaryKey"`
	Name        string     `gorm:"size:50;not null"`
	Description *string    `gorm:"size:2000"`
	Kind        RoleKind   `gorm:"not null;default:0"`
	UserRoles   []UserRole `gorm:"foreignKey:RoleID;references:RoleID"`
}

// User is an account holder
type User struct {
	UserID            int64   `gorm:"primaryKey"`
	UserName          string  `gorm:"size:100;not null;uniqueIndex"`
	Email             *string `gorm:"size:255"`
	PreferredRoleKind *RoleKind
	Audit
	UserRoles []UserRole `gorm:"foreignKey:UserID;references:UserID"`
}

// UserRole joins users to roles
type UserRole struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"not null"`
	RoleID int32 `gorm:"not null"`
	User   *User `gorm:"foreignKey:UserID;references:UserID;belongsTo"`
	Role   *Role `gorm:"foreignKey:RoleID;references:RoleID;belongsTo"`
}
