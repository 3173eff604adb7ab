package session

import (
	"hospital-inventory-dashboard/internal/repository"
)

// ProfileStore is the durable Store: tokens live in the session database
// under a profile key (a dashboard browser cookie or a CLI profile name).
type ProfileStore struct {
	repo    *repository.SessionRepository
	profile string
}

func NewProfileStore(repo *repository.SessionRepository, profile string) *ProfileStore {
	return &ProfileStore{repo: repo, profile: profile}
}

func (s *ProfileStore) Profile() string { return s.profile }

func (s *ProfileStore) AccessToken() (string, error) {
	return s.repo.FindToken(s.profile, AccessTokenKey)
}

func (s *ProfileStore) RefreshToken() (string, error) {
	return s.repo.FindToken(s.profile, RefreshTokenKey)
}

func (s *ProfileStore) SetAccessToken(token string) error {
	return s.repo.UpsertToken(s.profile, AccessTokenKey, token)
}

func (s *ProfileStore) SetRefreshToken(token string) error {
	return s.repo.UpsertToken(s.profile, RefreshTokenKey, token)
}

func (s *ProfileStore) Clear() error {
	return s.repo.DeleteTokens(s.profile)
}
