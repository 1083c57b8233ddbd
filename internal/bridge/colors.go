package bridge

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/brandbridge/bridgeboard/internal/models"
	"github.com/brandbridge/bridgeboard/internal/palette"
	"gorm.io/gorm"
)

// AddColor appends a swatch to the colors section of an owned bridge.
func (s *Service) AddColor(ctx context.Context, userID, bridgeID uint64, hex, name string) (*models.Bridge, error) {
	b, err := s.owned(ctx, userID, bridgeID)
	if err != nil {
		return nil, err
	}
	swatch, errParse := palette.Parse(hex)
	if errParse != nil {
		return nil, invalid("hex", "hex must be a 3 or 6 digit color")
	}
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, invalid("name", "name may not be greater than 255 characters")
	}

	section, errSection := s.repo.SectionOfType(ctx, b.ID, models.SectionTypeColors)
	if errSection != nil {
		return nil, serverError("load colors section", errSection)
	}
	existing, errColors := s.repo.Colors(ctx, b.ID)
	if errColors != nil {
		return nil, serverError("load colors", errColors)
	}

	// existing is sorted by sort_order; append after the last swatch.
	order := 0
	if n := len(existing); n > 0 {
		order = existing[n-1].Order + 1
	}
	color := models.Color{
		BridgeID:  b.ID,
		SectionID: section.ID,
		Name:      name,
		Hex:       swatch.Hex,
		RGB:       swatch.RGB,
		Order:     order,
	}
	if errCreate := s.repo.CreateColor(ctx, &color); errCreate != nil {
		return nil, serverError("create color", errCreate)
	}
	return s.reload(ctx, b.ID)
}

// DeleteColor removes one swatch. Colors of other bridges are reported as not found.
func (s *Service) DeleteColor(ctx context.Context, userID, bridgeID, colorID uint64) (*models.Bridge, error) {
	b, err := s.owned(ctx, userID, bridgeID)
	if err != nil {
		return nil, err
	}
	if errDelete := s.repo.DeleteColor(ctx, b.ID, colorID); errDelete != nil {
		if errors.Is(errDelete, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, serverError("delete color", errDelete)
	}
	return s.reload(ctx, b.ID)
}

// ReorderColors stores ids as the new display order. ids must be exactly the bridge's colors.
func (s *Service) ReorderColors(ctx context.Context, userID, bridgeID uint64, ids []uint64) (*models.Bridge, error) {
	b, err := s.owned(ctx, userID, bridgeID)
	if err != nil {
		return nil, err
	}
	existing, errColors := s.repo.Colors(ctx, b.ID)
	if errColors != nil {
		return nil, serverError("load colors", errColors)
	}
	known := make(map[uint64]struct{}, len(existing))
	for _, c := range existing {
		known[c.ID] = struct{}{}
	}
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return nil, ErrNotFound
		}
		if _, dup := seen[id]; dup {
			return nil, invalid("ids", "ids must not repeat")
		}
		seen[id] = struct{}{}
	}
	if len(seen) != len(known) {
		return nil, invalid("ids", "ids must list every color of the bridge")
	}

	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for position, id := range ids {
			if errOrder := repo.SetColorOrder(ctx, id, position); errOrder != nil {
				return errOrder
			}
		}
		return nil
	})
	if errTx != nil {
		return nil, serverError("reorder colors", errTx)
	}
	return s.reload(ctx, b.ID)
}
