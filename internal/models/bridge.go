package models

import "time"

// Bridge is a user-owned style guide that aggregates colors, icons, fonts and images.
type Bridge struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"` // Primary key.
	UserID uint64 `gorm:"not null;index" json:"user_id"`      // Owning user ID.

	Name string `gorm:"type:text;not null" json:"name"`                     // Display name.
	Slug string `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"` // Public URL slug.

	SectionGroups []SectionGroup `gorm:"foreignKey:BridgeID;constraint:OnDelete:CASCADE" json:"-"`
	Sections      []Section      `gorm:"foreignKey:BridgeID;constraint:OnDelete:CASCADE" json:"sections"`
	Icons         []Icon         `gorm:"foreignKey:BridgeID;constraint:OnDelete:CASCADE" json:"icons"`
	Images        []Image        `gorm:"foreignKey:BridgeID;constraint:OnDelete:CASCADE" json:"images"`
	Fonts         []Font         `gorm:"foreignKey:BridgeID;constraint:OnDelete:CASCADE" json:"fonts"`
	Colors        []Color        `gorm:"foreignKey:BridgeID;constraint:OnDelete:CASCADE" json:"colors"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"` // Last update timestamp.
}

// OwnedBy reports whether the bridge belongs to the given user.
func (b *Bridge) OwnedBy(userID uint64) bool {
	return b != nil && userID != 0 && b.UserID == userID
}
