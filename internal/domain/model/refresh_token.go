package model

import "time"

// リフレッシュトークン（DB保存）。
// 有効期限は作成時に固定され、以後延長しない。
// revoked=true になったら期限内でも使えない。
type RefreshToken struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	Token     string    `json:"-" gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	Revoked   bool      `json:"revoked" gorm:"not null;default:false"`
}
