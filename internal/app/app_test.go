package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/brandbridge/bridgeboard/internal/bridge"
	"github.com/brandbridge/bridgeboard/internal/config"
	"github.com/brandbridge/bridgeboard/internal/db"
	"github.com/brandbridge/bridgeboard/internal/models"
	"github.com/brandbridge/bridgeboard/internal/notify"
	"github.com/gin-gonic/gin"
)

func TestMigrateUsesConfiguredDSN(t *testing.T) {
	t.Setenv(config.EnvDSN, "")
	dir := t.TempDir()
	dsn := filepath.Join(dir, "nested", "bridgeboard.db")
	configPath := filepath.Join(dir, "config.yaml")
	if errWrite := os.WriteFile(configPath, []byte(fmt.Sprintf("database:\n  dsn: %q\n", dsn)), 0o600); errWrite != nil {
		t.Fatalf("write config: %v", errWrite)
	}

	if errMigrate := Migrate(context.Background(), config.AppConfig{ConfigPath: configPath}); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	conn, errOpen := db.Open(dsn)
	if errOpen != nil {
		t.Fatalf("reopen: %v", errOpen)
	}
	defer closeDB(conn)
	var count int64
	if errCount := conn.Model(&models.SectionType{}).Count(&count).Error; errCount != nil {
		t.Fatalf("count section types: %v", errCount)
	}
	if count != int64(len(models.SectionTypeNames)) {
		t.Fatalf("expected seeded section types, got %d", count)
	}
}

func TestNewEngineServesHealthz(t *testing.T) {
	conn, errOpen := db.Open(filepath.Join(t.TempDir(), "engine.db"))
	if errOpen != nil {
		t.Fatalf("open: %v", errOpen)
	}
	defer closeDB(conn)
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	gin.SetMode(gin.TestMode)
	engine := NewEngine(conn, config.JWTConfig{Secret: "s", Expiry: time.Hour}, bridge.NewService(conn))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bridges", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bridges without token status %d", rec.Code)
	}
}

func TestBuildPublisher(t *testing.T) {
	disabled, errDisabled := buildPublisher(config.RedisConfig{})
	if errDisabled != nil || disabled != nil {
		t.Fatalf("expected disabled publisher, got %v %v", disabled, errDisabled)
	}

	mr := miniredis.RunT(t)
	publisher, errBuild := buildPublisher(config.RedisConfig{URL: "redis://" + mr.Addr(), Channel: "bridges"})
	if errBuild != nil {
		t.Fatalf("build publisher: %v", errBuild)
	}
	redisPublisher, ok := publisher.(*notify.RedisPublisher)
	if !ok {
		t.Fatalf("unexpected publisher type %T", publisher)
	}
	_ = redisPublisher.Close()

	if _, errBad := buildPublisher(config.RedisConfig{URL: "not-a-url"}); errBad == nil {
		t.Fatalf("expected error for bad redis url")
	}
}

func TestPromoteAdmin(t *testing.T) {
	t.Setenv(config.EnvDSN, "")
	dir := t.TempDir()
	dsn := filepath.Join(dir, "promote.db")
	configPath := filepath.Join(dir, "config.yaml")
	if errWrite := os.WriteFile(configPath, []byte(fmt.Sprintf("database:\n  dsn: %q\n", dsn)), 0o600); errWrite != nil {
		t.Fatalf("write config: %v", errWrite)
	}
	appCfg := config.AppConfig{ConfigPath: configPath}
	if errMigrate := Migrate(context.Background(), appCfg); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	conn, errOpen := db.Open(dsn)
	if errOpen != nil {
		t.Fatalf("open: %v", errOpen)
	}
	defer closeDB(conn)
	if errCreate := conn.Create(&models.User{Username: "owner", Password: "x"}).Error; errCreate != nil {
		t.Fatalf("create user: %v", errCreate)
	}

	if errPromote := PromoteAdmin(context.Background(), appCfg, "owner"); errPromote != nil {
		t.Fatalf("promote: %v", errPromote)
	}
	var user models.User
	if errFind := conn.Where("username = ?", "owner").First(&user).Error; errFind != nil {
		t.Fatalf("reload: %v", errFind)
	}
	if !user.IsAdmin {
		t.Fatalf("user not promoted")
	}
	if errMissing := PromoteAdmin(context.Background(), appCfg, "ghost"); errMissing == nil {
		t.Fatalf("expected error for unknown user")
	}
}
