package models

import "time"

// SessionToken represents the session_tokens table.
// One row per (profile, name); names are access_token and refresh_token.
type SessionToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Profile   string    `gorm:"size:64;not null;uniqueIndex:idx_session_profile_name" json:"profile"`
	Name      string    `gorm:"size:32;not null;uniqueIndex:idx_session_profile_name" json:"name"`
	Value     string    `gorm:"type:text;not null" json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for SessionToken model
func (SessionToken) TableName() string {
	return "session_tokens"
}
