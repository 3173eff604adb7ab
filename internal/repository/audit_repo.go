package repository

import (
	"time"

	"hospital-inventory-dashboard/internal/models"

	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateAuditLog creates a new audit log entry
func (r *AuditRepository) CreateAuditLog(profile string, action string, details string) error {
	log := &models.AuditLog{
		Profile: profile,
		Action:  action,
		Details: details,
	}
	return r.db.Create(log).Error
}

// ListByProfile returns a profile's events, newest first
func (r *AuditRepository) ListByProfile(profile string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []models.AuditLog
	err := r.db.Where("profile = ?", profile).
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// DeleteOlderThan removes events created before cutoff
func (r *AuditRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.AuditLog{})
	return result.RowsAffected, result.Error
}
