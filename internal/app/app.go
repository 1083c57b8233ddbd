package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/brandbridge/bridgeboard/internal/bridge"
	"github.com/brandbridge/bridgeboard/internal/config"
	"github.com/brandbridge/bridgeboard/internal/db"
	internalhttp "github.com/brandbridge/bridgeboard/internal/http"
	"github.com/brandbridge/bridgeboard/internal/http/api/admin"
	"github.com/brandbridge/bridgeboard/internal/http/api/front"
	"github.com/brandbridge/bridgeboard/internal/logging"
	"github.com/brandbridge/bridgeboard/internal/models"
	"github.com/brandbridge/bridgeboard/internal/notify"
	internalsettings "github.com/brandbridge/bridgeboard/internal/settings"
	"github.com/brandbridge/bridgeboard/internal/watcher"
	"github.com/brandbridge/bridgeboard/internal/webui"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate opens the database and runs migrations.
func Migrate(ctx context.Context, cfg config.AppConfig) error {
	configPath := config.ResolveConfigPath(cfg.ConfigPath)
	dsn, err := config.LoadDatabaseDSN(configPath)
	if err != nil {
		return err
	}
	conn, err := db.Open(dsn)
	if err != nil {
		return err
	}
	defer closeDB(conn)
	if errMigrate := db.Migrate(conn.WithContext(ctx)); errMigrate != nil {
		return errMigrate
	}
	log.Infof("migrated %s database", db.DialectName(conn))
	return nil
}

// PromoteAdmin grants the admin flag to an existing user.
func PromoteAdmin(ctx context.Context, cfg config.AppConfig, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username is required")
	}
	configPath := config.ResolveConfigPath(cfg.ConfigPath)
	dsn, err := config.LoadDatabaseDSN(configPath)
	if err != nil {
		return err
	}
	conn, err := db.Open(dsn)
	if err != nil {
		return err
	}
	defer closeDB(conn)

	res := conn.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		Updates(map[string]any{"is_admin": true, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return fmt.Errorf("promote %s: %w", username, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %s not found", username)
	}
	log.Infof("user %s is now an admin", username)
	return nil
}

// RunServer boots the bridge API and blocks until ctx is cancelled.
func RunServer(ctx context.Context, cfg config.AppConfig) error {
	configPath := config.ResolveConfigPath(cfg.ConfigPath)
	appCfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if errValidate := appCfg.Validate(); errValidate != nil {
		return errValidate
	}
	logCloser, errLog := logging.Setup(appCfg.Log)
	if errLog != nil {
		return errLog
	}
	defer func() { _ = logCloser.Close() }()

	conn, err := db.Open(appCfg.Database.DSN)
	if err != nil {
		return err
	}
	defer closeDB(conn)
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	if errRefresh := internalsettings.RefreshDBConfigSnapshot(ctx, conn); errRefresh != nil {
		return fmt.Errorf("load settings: %w", errRefresh)
	}
	watcher.NewSettingsWatcher(conn, appCfg.Server.SettingsRefresh).Start(ctx)

	publisher, errPublisher := buildPublisher(appCfg.Redis)
	if errPublisher != nil {
		return errPublisher
	}
	if closer, ok := publisher.(interface{ Close() error }); ok {
		defer func() { _ = closer.Close() }()
	}
	svc := bridge.NewService(conn, bridge.WithNotifier(notify.NewNotifier(publisher)))

	gin.SetMode(gin.ReleaseMode)
	engine := NewEngine(conn, appCfg.JWT, svc)
	if dir := strings.TrimSpace(appCfg.Server.WebDir); dir != "" {
		bundle, errLoad := webui.Load(dir)
		if errLoad != nil {
			return errLoad
		}
		webui.Register(engine, bundle)
	}

	server := &http.Server{
		Addr:              appCfg.Server.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Infof("starting bridgeboard on %s with config=%s", appCfg.Server.Addr, configPath)
		if errServe := server.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			errCh <- errServe
		}
		close(errCh)
	}()

	select {
	case errServe := <-errCh:
		return errServe
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appCfg.Server.ShutdownTimeout)
	defer cancel()
	log.Info("shutting down")
	if errShutdown := server.Shutdown(shutdownCtx); errShutdown != nil {
		return fmt.Errorf("shutdown: %w", errShutdown)
	}
	return <-errCh
}

// NewEngine builds the gin engine with middleware and API routes.
func NewEngine(conn *gorm.DB, jwtCfg config.JWTConfig, svc *bridge.Service) *gin.Engine {
	engine := gin.New()
	engine.Use(internalhttp.RecoveryMiddleware(), internalhttp.RequestLogMiddleware())
	front.RegisterFrontRoutes(engine, conn, jwtCfg, svc)
	admin.RegisterAdminRoutes(engine, conn, jwtCfg)
	return engine
}

// buildPublisher connects to redis when configured. A nil publisher disables notifications.
func buildPublisher(cfg config.RedisConfig) (notify.Publisher, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		log.Info("redis url not set, bridge notifications disabled")
		return nil, nil
	}
	publisher, err := notify.NewRedisPublisher(cfg.URL, cfg.Channel)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return publisher, nil
}

func closeDB(conn *gorm.DB) {
	sqlDB, errDB := conn.DB()
	if errDB != nil {
		return
	}
	if errClose := sqlDB.Close(); errClose != nil {
		log.WithError(errClose).Warn("close database")
	}
}
