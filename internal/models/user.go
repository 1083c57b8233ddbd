package models

import "time"

// User represents an account that owns bridges.
type User struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Username string `gorm:"type:text;not null;uniqueIndex"` // Unique login name.
	Email    string `gorm:"type:text"`                      // Contact email.
	Password string `gorm:"type:text;not null"`             // Hashed password.

	Disabled bool `gorm:"not null;default:false"` // Blocks sign-in when true.
	IsAdmin  bool `gorm:"not null;default:false"` // Grants access to the admin API.

	Bridges []Bridge `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"` // Owned bridges.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
