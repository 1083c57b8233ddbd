package bridge

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/brandbridge/bridgeboard/internal/models"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const (
	// fallbackSlug is used when a name has no sluggable characters.
	fallbackSlug = "bridge"
	// maxSlugBase leaves room for the suffix inside the 255 char column.
	maxSlugBase  = 240
	suffixLength = 5
)

// SlugGenerator turns bridge names into unique URL slugs.
type SlugGenerator struct {
	now    func() time.Time
	offset func(n int) int
}

// NewSlugGenerator returns a generator using the wall clock and math/rand.
func NewSlugGenerator() *SlugGenerator {
	return &SlugGenerator{now: time.Now, offset: rand.IntN}
}

// Slugify lowercases, transliterates and hyphenates candidate.
func Slugify(candidate string) string {
	s := slug.Make(candidate)
	if len(s) > maxSlugBase {
		s = slug.Make(s[:maxSlugBase])
	}
	if s == "" {
		return fallbackSlug
	}
	return s
}

// Suffix appends a 5 character hex tag taken from an md5 of the current time at a random offset.
// The tag is for collision avoidance only and carries no uniqueness guarantee.
func (g *SlugGenerator) Suffix(base string) string {
	sum := md5.Sum([]byte(strconv.FormatInt(g.now().UnixNano(), 10)))
	digest := hex.EncodeToString(sum[:])
	start := g.offset(len(digest) - suffixLength)
	return base + "-" + digest[start:start+suffixLength]
}

// Generate slugifies candidate and suffixes it when another bridge already uses it.
// excludeID skips the bridge being renamed; pass 0 for new bridges.
func (g *SlugGenerator) Generate(ctx context.Context, db *gorm.DB, candidate string, excludeID uint64) (string, error) {
	base := Slugify(candidate)
	taken, err := slugTaken(ctx, db, base, excludeID)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}
	return g.Suffix(base), nil
}

func slugTaken(ctx context.Context, db *gorm.DB, s string, excludeID uint64) (bool, error) {
	q := db.WithContext(ctx).Model(&models.Bridge{}).Where("slug = ?", s)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if errCount := q.Count(&count).Error; errCount != nil {
		return false, errCount
	}
	return count > 0, nil
}
