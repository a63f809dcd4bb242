package model

import "time"

// 操作の種類。
type AuditAction string

const (
	//ログイン成功。
	AuditActionLogin AuditAction = "login"
	//管理者によるスタッフユーザー作成。
	AuditActionCreateUser AuditAction = "create_user"
)

// 監査ログ。「誰が」「何を」したかを残す。
type AuditLog struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID string      `gorm:"type:uuid;not null;index" json:"actor_user_id"`
	Action      AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`
	Details     string      `gorm:"type:text" json:"details"`
	CreatedAt   time.Time   `gorm:"not null;index" json:"created_at"`
}
