package domain

import "time"

type User struct {
	ID                string             `json:"id" gorm:"primaryKey"`
	Email             string             `json:"email" gorm:"uniqueIndex;not null"`
	Password          string             `json:"-"` // Never return password in JSON
	Name              string             `json:"name"`
	Picture           string             `json:"picture,omitempty"`
	Provider          string             `json:"provider"` // "email" or "google"
	IsActive          bool               `json:"is_active" gorm:"default:true"`
	GoogleCredentials *GoogleCredentials `json:"-" gorm:"type:jsonb"`
	GmailSyncEnabled  bool               `json:"gmail_sync_enabled" gorm:"default:false"`
	LastSyncTimestamp *string            `json:"last_sync_timestamp,omitempty"` // ISO-8601
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

type RefreshToken struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at"`
}
