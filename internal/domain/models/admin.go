package models

import "time"

// Admin roles. Only one master is expected to exist, created once at setup;
// both roles currently carry identical route access.
const (
	RoleMaster = "master"
	RoleAdmin  = "admin"
)

// Admin represents a back-office operator account
type Admin struct {
	BaseModel
	Username  string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Password  string     `gorm:"type:varchar(100);not null" json:"-"` // bcrypt hash, never serialized
	Role      string     `gorm:"type:varchar(20);default:'admin'" json:"role"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}
