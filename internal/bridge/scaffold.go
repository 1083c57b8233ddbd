package bridge

import (
	"context"
	"fmt"

	"github.com/brandbridge/bridgeboard/internal/models"
	"gorm.io/gorm"
)

// Scaffolder creates the default section groups of a new bridge.
type Scaffolder struct {
	typeNames []string
}

// NewScaffolder returns a scaffolder for every known section type.
func NewScaffolder() *Scaffolder {
	return &Scaffolder{typeNames: models.SectionTypeNames}
}

// Scaffold creates one section group and one empty section per section type.
// It must run inside the transaction that created b; any error aborts the whole bridge.
func (s *Scaffolder) Scaffold(ctx context.Context, tx *gorm.DB, b *models.Bridge) error {
	for _, name := range s.typeNames {
		var sectionType models.SectionType
		if errFind := tx.WithContext(ctx).Where("name = ?", name).First(&sectionType).Error; errFind != nil {
			return fmt.Errorf("load section type %s: %w", name, errFind)
		}

		group := models.SectionGroup{
			BridgeID:      b.ID,
			SectionTypeID: sectionType.ID,
			Name:          sectionType.Name,
			Description:   "",
			Order:         1,
		}
		if errCreate := tx.WithContext(ctx).Create(&group).Error; errCreate != nil {
			return fmt.Errorf("create %s section group: %w", name, errCreate)
		}

		section := models.Section{
			BridgeID:       b.ID,
			SectionTypeID:  sectionType.ID,
			SectionGroupID: group.ID,
			Order:          1,
		}
		if errCreate := tx.WithContext(ctx).Create(&section).Error; errCreate != nil {
			return fmt.Errorf("create %s section: %w", name, errCreate)
		}
	}
	return nil
}
