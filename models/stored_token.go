package models

import "time"

// StoredToken keeps the bearer token of one browser session so it survives a
// portal restart.
type StoredToken struct {
	SessionKey string    `gorm:"primaryKey;type:varchar(64)"`
	Token      string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}
