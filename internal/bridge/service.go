package bridge

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	dbutil "github.com/brandbridge/bridgeboard/internal/db"
	"github.com/brandbridge/bridgeboard/internal/models"
	"github.com/brandbridge/bridgeboard/internal/notify"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	maxNameLength = 255
	// maxSlugAttempts bounds retries after a unique slug violation.
	maxSlugAttempts = 3
)

// Detail is a single bridge plus its section types joined against the bridge's groups.
type Detail struct {
	Bridge       *models.Bridge   `json:"bridge"`
	SectionTypes []SectionTypeRow `json:"section_types"`
}

// Overview is every bridge of a user plus all section types.
type Overview struct {
	Bridges      []models.Bridge      `json:"bridges"`
	SectionTypes []models.SectionType `json:"section_types"`
}

// Service orchestrates bridge workflows and enforces ownership.
type Service struct {
	db         *gorm.DB
	repo       *Repository
	slugs      *SlugGenerator
	scaffolder *Scaffolder
	notifier   *notify.Notifier
}

// Option customises a Service.
type Option func(*Service)

// WithNotifier sets the notifier used after name and slug updates.
func WithNotifier(n *notify.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithSlugGenerator replaces the default slug generator.
func WithSlugGenerator(g *SlugGenerator) Option {
	return func(s *Service) { s.slugs = g }
}

// WithScaffolder replaces the default section scaffolder.
func WithScaffolder(sc *Scaffolder) Option {
	return func(s *Service) { s.scaffolder = sc }
}

// NewService constructs a Service over conn.
func NewService(conn *gorm.DB, opts ...Option) *Service {
	s := &Service{
		db:         conn,
		repo:       NewRepository(conn),
		slugs:      NewSlugGenerator(),
		scaffolder: NewScaffolder(),
		notifier:   notify.NewNotifier(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Repository exposes the underlying repository.
func (s *Service) Repository() *Repository {
	return s.repo
}

// List returns the user's bridges and all section types.
func (s *Service) List(ctx context.Context, userID uint64) (*Overview, error) {
	bridges, errList := s.repo.ListForUser(ctx, userID)
	if errList != nil {
		return nil, serverError("list bridges", errList)
	}
	types, errTypes := s.repo.SectionTypes(ctx)
	if errTypes != nil {
		return nil, serverError("list section types", errTypes)
	}
	return &Overview{Bridges: bridges, SectionTypes: types}, nil
}

// Get returns one owned bridge with its section type rows.
func (s *Service) Get(ctx context.Context, userID, id uint64) (*Detail, error) {
	b, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	full, errReload := s.reload(ctx, b.ID)
	if errReload != nil {
		return nil, errReload
	}
	rows, errRows := s.repo.SectionTypesForBridge(ctx, b.ID)
	if errRows != nil {
		return nil, serverError("load section types", errRows)
	}
	return &Detail{Bridge: full, SectionTypes: rows}, nil
}

// Create makes a bridge and its default sections in one transaction.
func (s *Service) Create(ctx context.Context, userID uint64, name string) (*models.Bridge, error) {
	name, errName := validateName(name)
	if errName != nil {
		return nil, errName
	}

	slugValue, errSlug := s.slugs.Generate(ctx, s.db, name, 0)
	if errSlug != nil {
		return nil, serverError("generate slug", errSlug)
	}

	var created models.Bridge
	for attempt := 1; ; attempt++ {
		created = models.Bridge{UserID: userID, Name: name, Slug: slugValue}
		errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if errCreate := s.repo.WithTx(tx).Create(ctx, &created); errCreate != nil {
				return errCreate
			}
			return s.scaffolder.Scaffold(ctx, tx, &created)
		})
		if errTx == nil {
			break
		}
		if !dbutil.IsUniqueViolation(errTx) || attempt >= maxSlugAttempts {
			return nil, serverError("create bridge", errTx)
		}
		log.Debugf("bridge: slug %q taken, retrying", slugValue)
		slugValue = s.slugs.Suffix(Slugify(name))
	}

	return s.reload(ctx, created.ID)
}

// UpdateName renames an owned bridge. The slug is left unchanged.
func (s *Service) UpdateName(ctx context.Context, userID, id uint64, name string) (*models.Bridge, error) {
	b, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	name, errName := validateName(name)
	if errName != nil {
		return nil, errName
	}
	b.Name = name
	if errSave := s.repo.Save(ctx, b); errSave != nil {
		return nil, serverError("save bridge", errSave)
	}
	s.notifier.Emit(notify.NewEvent(notify.EventBridgeUpdated, b.ID, userID, b.Slug))
	return s.reload(ctx, b.ID)
}

// UpdateSlug sets a new slug seeded from requested, suffixed if another bridge holds it.
func (s *Service) UpdateSlug(ctx context.Context, userID, id uint64, requested string) (*models.Bridge, error) {
	b, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(requested) == "" {
		return nil, invalid("slug", "slug is required")
	}

	slugValue, errSlug := s.slugs.Generate(ctx, s.db, requested, b.ID)
	if errSlug != nil {
		return nil, serverError("generate slug", errSlug)
	}
	for attempt := 1; ; attempt++ {
		b.Slug = slugValue
		errSave := s.repo.Save(ctx, b)
		if errSave == nil {
			break
		}
		if !dbutil.IsUniqueViolation(errSave) || attempt >= maxSlugAttempts {
			return nil, serverError("save slug", errSave)
		}
		slugValue = s.slugs.Suffix(Slugify(requested))
	}

	s.notifier.Emit(notify.NewEvent(notify.EventBridgeUpdated, b.ID, userID, b.Slug))
	return s.reload(ctx, b.ID)
}

// Delete removes an owned bridge and returns what the user has left.
func (s *Service) Delete(ctx context.Context, userID, id uint64) (*Overview, error) {
	b, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if errDelete := s.repo.Delete(ctx, b); errDelete != nil {
		return nil, serverError("delete bridge", errDelete)
	}
	return s.List(ctx, userID)
}

// owned loads a bridge and hides it unless userID owns it.
func (s *Service) owned(ctx context.Context, userID, id uint64) (*models.Bridge, error) {
	b, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, serverError("load bridge", err)
	}
	if !b.OwnedBy(userID) {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *Service) reload(ctx context.Context, id uint64) (*models.Bridge, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, serverError("reload bridge", err)
	}
	return b, nil
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", invalid("name", "name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", invalid("name", "name may not be greater than 255 characters")
	}
	return name, nil
}
