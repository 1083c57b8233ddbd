package models

import (
	"github.com/brandbridge/bridgeboard/internal/palette"
	"gorm.io/gorm"
)

// Color is a swatch stored in a bridge's colors section.
type Color struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	BridgeID  uint64 `gorm:"not null;index" json:"bridge_id"`
	SectionID uint64 `gorm:"not null;index" json:"section_id"`

	Name  string `gorm:"type:text;not null;default:''" json:"name"`
	Hex   string `gorm:"type:varchar(6);not null" json:"hex"`             // Six lowercase hex digits, no '#'.
	RGB   string `gorm:"column:rgb;type:varchar(16);not null" json:"rgb"` // "r g b".
	Order int    `gorm:"column:sort_order;not null;default:0" json:"order"`

	InfoColor string `gorm:"-" json:"info_color"` // Readable text color over the swatch.
}

// AfterFind fills the computed InfoColor.
func (c *Color) AfterFind(*gorm.DB) error {
	c.InfoColor = palette.InfoColor(c.Hex)
	return nil
}

// AfterCreate fills the computed InfoColor.
func (c *Color) AfterCreate(*gorm.DB) error {
	c.InfoColor = palette.InfoColor(c.Hex)
	return nil
}

// Icon is an uploaded icon. File processing happens elsewhere.
type Icon struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	BridgeID  uint64 `gorm:"not null;index" json:"bridge_id"`
	SectionID uint64 `gorm:"not null;index" json:"section_id"`

	Name string `gorm:"type:text;not null;default:''" json:"name"`
	Path string `gorm:"type:text;not null;default:''" json:"path"`

	Converted []IconConverted `gorm:"foreignKey:IconID;constraint:OnDelete:CASCADE" json:"converted"`
}

// IconConverted is a derived rendition of an icon.
type IconConverted struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	IconID uint64 `gorm:"not null;index" json:"icon_id"`
	Format string `gorm:"type:varchar(16);not null" json:"format"`
	Path   string `gorm:"type:text;not null" json:"path"`
}

// Image is an uploaded image.
type Image struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	BridgeID  uint64 `gorm:"not null;index" json:"bridge_id"`
	SectionID uint64 `gorm:"not null;index" json:"section_id"`

	Name string `gorm:"type:text;not null;default:''" json:"name"`
	Path string `gorm:"type:text;not null;default:''" json:"path"`

	Converted []ImageConverted `gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE" json:"converted"`
}

// ImageConverted is a derived rendition of an image.
type ImageConverted struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ImageID uint64 `gorm:"not null;index" json:"image_id"`
	Format  string `gorm:"type:varchar(16);not null" json:"format"`
	Path    string `gorm:"type:text;not null" json:"path"`
}

// FontFamily groups font variants.
type FontFamily struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:text;not null;uniqueIndex" json:"name"`
}

// FontVariant is one weight/style of a font family.
type FontVariant struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	FontFamilyID uint64 `gorm:"not null;index" json:"font_family_id"`
	Name         string `gorm:"type:text;not null" json:"name"`
	Weight       int    `gorm:"not null;default:400" json:"weight"`
	Style        string `gorm:"type:varchar(16);not null;default:'normal'" json:"style"`

	FontFamily *FontFamily `gorm:"foreignKey:FontFamilyID" json:"font_family,omitempty"`
}

// Font attaches a font variant to a bridge.
type Font struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	BridgeID      uint64 `gorm:"not null;index" json:"bridge_id"`
	SectionID     uint64 `gorm:"not null;index" json:"section_id"`
	FontVariantID uint64 `gorm:"not null;index" json:"font_variant_id"`

	Variant *FontVariant `gorm:"foreignKey:FontVariantID" json:"variant,omitempty"`
}
