package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenStore persists one bearer token per browser session key.
type TokenStore interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, token string) error
	Delete(ctx context.Context, key string) error
}

type GormTokenStore struct {
	DB *gorm.DB
}

func NewGormTokenStore(db *gorm.DB) *GormTokenStore {
	return &GormTokenStore{DB: db}
}

func (s *GormTokenStore) Load(ctx context.Context, key string) (string, bool, error) {
	var row models.StoredToken
	err := s.DB.WithContext(ctx).Where("session_key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load token: %w", err)
	}
	return row.Token, true, nil
}

// Save inserts or replaces the token stored under key.
func (s *GormTokenStore) Save(ctx context.Context, key, token string) error {
	row := models.StoredToken{SessionKey: key, Token: token}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Delete is a no-op when nothing is stored under key.
func (s *GormTokenStore) Delete(ctx context.Context, key string) error {
	if err := s.DB.WithContext(ctx).Where("session_key = ?", key).Delete(&models.StoredToken{}).Error; err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
