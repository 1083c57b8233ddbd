package bridge

import (
	"context"
	"errors"

	"github.com/brandbridge/bridgeboard/internal/models"
	"gorm.io/gorm"
)

// SectionTypeRow is a section type left-joined against one bridge's section groups.
type SectionTypeRow struct {
	ID               uint64  `json:"id"`
	GroupName        *string `json:"group_name"`
	GroupDescription *string `json:"group_description"`
	Name             string  `json:"name"`
	GroupID          *uint64 `json:"group_id"`
}

// Repository loads and stores bridge aggregates. It never checks ownership.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// graph preloads the full relation tree of a bridge.
func (r *Repository) graph(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC, id ASC") }).
		Preload("Icons").
		Preload("Icons.Converted").
		Preload("Images").
		Preload("Images.Converted").
		Preload("Fonts").
		Preload("Fonts.Variant").
		Preload("Fonts.Variant.FontFamily").
		Preload("Colors", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC, id ASC") })
}

// ListForUser returns every bridge owned by userID with its relation graph.
func (r *Repository) ListForUser(ctx context.Context, userID uint64) ([]models.Bridge, error) {
	bridges := make([]models.Bridge, 0)
	if errFind := r.graph(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&bridges).Error; errFind != nil {
		return nil, errFind
	}
	return bridges, nil
}

// GetByID returns the bridge with its relation graph, or ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id uint64) (*models.Bridge, error) {
	var b models.Bridge
	if errFind := r.graph(ctx).First(&b, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errFind
	}
	return &b, nil
}

// Find returns the bare bridge row, or ErrNotFound.
func (r *Repository) Find(ctx context.Context, id uint64) (*models.Bridge, error) {
	var b models.Bridge
	if errFind := r.db.WithContext(ctx).First(&b, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errFind
	}
	return &b, nil
}

// Create inserts b and fills its ID.
func (r *Repository) Create(ctx context.Context, b *models.Bridge) error {
	return r.db.WithContext(ctx).Omit("SectionGroups", "Sections", "Icons", "Images", "Fonts", "Colors").Create(b).Error
}

// Save updates the name and slug of b.
func (r *Repository) Save(ctx context.Context, b *models.Bridge) error {
	return r.db.WithContext(ctx).Model(b).Select("name", "slug", "updated_at").Updates(b).Error
}

// Delete removes b and everything it owns in one transaction.
func (r *Repository) Delete(ctx context.Context, b *models.Bridge) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		icons := tx.Model(&models.Icon{}).Select("id").Where("bridge_id = ?", b.ID)
		if err := tx.Where("icon_id IN (?)", icons).Delete(&models.IconConverted{}).Error; err != nil {
			return err
		}
		images := tx.Model(&models.Image{}).Select("id").Where("bridge_id = ?", b.ID)
		if err := tx.Where("image_id IN (?)", images).Delete(&models.ImageConverted{}).Error; err != nil {
			return err
		}
		for _, child := range []any{
			&models.Icon{},
			&models.Image{},
			&models.Font{},
			&models.Color{},
			&models.Section{},
			&models.SectionGroup{},
		} {
			if err := tx.Where("bridge_id = ?", b.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Bridge{}, b.ID).Error
	})
}

// SectionTypes returns all known section types.
func (r *Repository) SectionTypes(ctx context.Context) ([]models.SectionType, error) {
	types := make([]models.SectionType, 0, len(models.SectionTypeNames))
	if errFind := r.db.WithContext(ctx).Order("id ASC").Find(&types).Error; errFind != nil {
		return nil, errFind
	}
	return types, nil
}

// SectionTypesForBridge returns every section type with the matching group of bridgeID, if any.
func (r *Repository) SectionTypesForBridge(ctx context.Context, bridgeID uint64) ([]SectionTypeRow, error) {
	rows := make([]SectionTypeRow, 0, len(models.SectionTypeNames))
	errScan := r.db.WithContext(ctx).
		Table("section_types").
		Select("section_types.id AS id, section_groups.name AS group_name, section_groups.description AS group_description, section_types.name AS name, section_groups.id AS group_id").
		Joins("LEFT JOIN section_groups ON section_groups.section_type_id = section_types.id AND section_groups.bridge_id = ?", bridgeID).
		Order("section_types.id ASC, section_groups.id ASC").
		Scan(&rows).Error
	if errScan != nil {
		return nil, errScan
	}
	return rows, nil
}

// SectionOfType returns the first section of the given type in bridgeID, or ErrNotFound.
func (r *Repository) SectionOfType(ctx context.Context, bridgeID uint64, typeName string) (*models.Section, error) {
	var section models.Section
	errFind := r.db.WithContext(ctx).
		Joins("JOIN section_types ON section_types.id = sections.section_type_id").
		Where("sections.bridge_id = ? AND section_types.name = ?", bridgeID, typeName).
		Order("sections.sort_order ASC, sections.id ASC").
		First(&section).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errFind
	}
	return &section, nil
}

// Colors returns the colors of bridgeID in display order.
func (r *Repository) Colors(ctx context.Context, bridgeID uint64) ([]models.Color, error) {
	var colors []models.Color
	if errFind := r.db.WithContext(ctx).Where("bridge_id = ?", bridgeID).Order("sort_order ASC, id ASC").Find(&colors).Error; errFind != nil {
		return nil, errFind
	}
	return colors, nil
}

// CreateColor inserts c.
func (r *Repository) CreateColor(ctx context.Context, c *models.Color) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// DeleteColor removes colorID from bridgeID, returning ErrNotFound when no row matched.
func (r *Repository) DeleteColor(ctx context.Context, bridgeID, colorID uint64) error {
	res := r.db.WithContext(ctx).Where("id = ? AND bridge_id = ?", colorID, bridgeID).Delete(&models.Color{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetColorOrder stores position as the sort order of colorID.
func (r *Repository) SetColorOrder(ctx context.Context, colorID uint64, position int) error {
	return r.db.WithContext(ctx).Model(&models.Color{}).Where("id = ?", colorID).Update("sort_order", position).Error
}
