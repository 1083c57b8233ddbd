package models

// Section type names. The order of SectionTypeNames is the scaffolding order.
const (
	SectionTypeColors = "colors"
	SectionTypeIcons  = "icons"
	SectionTypeFonts  = "fonts"
	SectionTypeImages = "images"
)

// SectionTypeNames lists every known section type.
var SectionTypeNames = []string{
	SectionTypeColors,
	SectionTypeIcons,
	SectionTypeFonts,
	SectionTypeImages,
}

// SectionType is immutable reference data naming a kind of bridge content.
type SectionType struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`                 // Primary key.
	Name string `gorm:"type:varchar(64);not null;uniqueIndex" json:"name"` // Type name.
}

// SectionGroup is a named, ordered container for one section type within a bridge.
type SectionGroup struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	BridgeID      uint64 `gorm:"not null;index" json:"bridge_id"`
	SectionTypeID uint64 `gorm:"not null;index" json:"section_type_id"`

	Name        string `gorm:"type:text;not null" json:"name"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
	Order       int    `gorm:"column:sort_order;not null;default:1" json:"order"`

	SectionType *SectionType `gorm:"foreignKey:SectionTypeID" json:"-"`
	Sections    []Section    `gorm:"foreignKey:SectionGroupID;constraint:OnDelete:CASCADE" json:"-"`
}

// Section holds the content of one section group.
type Section struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	BridgeID       uint64 `gorm:"not null;index" json:"bridge_id"`
	SectionTypeID  uint64 `gorm:"not null;index" json:"section_type_id"`
	SectionGroupID uint64 `gorm:"not null;index" json:"section_group_id"`

	Name  string `gorm:"type:text;not null;default:''" json:"name"`
	Order int    `gorm:"column:sort_order;not null;default:1" json:"order"`
}
