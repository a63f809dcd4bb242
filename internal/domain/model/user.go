package model

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleOfficer Role = "officer"
)

// スタッフユーザー。ログインの主体。
// PasswordHashはJSONに絶対出さない。
type User struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'officer'"`
	CreatedAt    time.Time `json:"created_at"`
}
