package models

import "time"

// AuditLog represents the audit_logs table
// Used for tracking session events per profile
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Profile   string    `gorm:"size:64;index" json:"profile"`
	Action    string    `gorm:"size:100;not null" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}

const (
	AuditActionLogin          = "login"
	AuditActionRegister       = "register"
	AuditActionLogout         = "logout"
	AuditActionSessionExpired = "session_expired"
)
