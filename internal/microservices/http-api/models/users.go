package models

import (
	"time"
)

type User struct {
	Base
	Name      string     `gorm:"not null" json:"name"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	Role      Role       `gorm:"type:varchar(16);default:'user';not null" json:"role"`
	Verified  bool       `gorm:"not null;default:false" json:"verified"`
	Active    bool       `gorm:"not null;default:true" json:"active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

func (User) TableName() string {
	return "users"
}
