package repository

import (
	"errors"
	"fmt"

	"hospital-inventory-dashboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// FindToken returns the stored value, or "" when the profile has none
func (r *SessionRepository) FindToken(profile, name string) (string, error) {
	var token models.SessionToken
	err := r.db.Where("profile = ? AND name = ?", profile, name).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("find %s for profile %s: %w", name, profile, err)
	}
	return token.Value, nil
}

// UpsertToken overwrites the named token for a profile
func (r *SessionRepository) UpsertToken(profile, name, value string) error {
	token := &models.SessionToken{Profile: profile, Name: name, Value: value}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(token).Error
	if err != nil {
		return fmt.Errorf("store %s for profile %s: %w", name, profile, err)
	}
	return nil
}

// DeleteTokens removes every token of a profile; deleting nothing is not an error
func (r *SessionRepository) DeleteTokens(profile string) error {
	if err := r.db.Where("profile = ?", profile).Delete(&models.SessionToken{}).Error; err != nil {
		return fmt.Errorf("clear session for profile %s: %w", profile, err)
	}
	return nil
}
