// Package watcher keeps in-memory state in step with the database.
package watcher

import (
	"context"
	"time"

	internalsettings "github.com/brandbridge/bridgeboard/internal/settings"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultSettingsInterval = time.Minute

// SettingsWatcher periodically reloads the DB settings snapshot.
type SettingsWatcher struct {
	db       *gorm.DB
	interval time.Duration
	tick     func() // Test hook run after each reload attempt.
}

// NewSettingsWatcher returns a watcher reloading every interval. Non-positive intervals use one minute.
func NewSettingsWatcher(db *gorm.DB, interval time.Duration) *SettingsWatcher {
	if db == nil {
		return nil
	}
	if interval <= 0 {
		interval = defaultSettingsInterval
	}
	return &SettingsWatcher{db: db, interval: interval}
}

// Start launches the reload loop in a background goroutine.
func (w *SettingsWatcher) Start(ctx context.Context) {
	if w == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	go w.run(ctx)
	log.Infof("settings watcher started (interval=%s)", w.interval)
}

func (w *SettingsWatcher) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.reloadOnce(ctx)
		}
	}
}

func (w *SettingsWatcher) reloadOnce(ctx context.Context) {
	if errRefresh := internalsettings.RefreshDBConfigSnapshot(ctx, w.db); errRefresh != nil && ctx.Err() == nil {
		log.WithError(errRefresh).Warn("settings watcher: reload failed")
	}
	if w.tick != nil {
		w.tick()
	}
}
