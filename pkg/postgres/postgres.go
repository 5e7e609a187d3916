package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type Config struct {
	URL     string `mapstructure:"url"`
	SSLMode string `mapstructure:"ssl_mode"`
}

func NewConnection(ctx context.Context, cfg Config, logger *zap.Logger) (db *gorm.DB, err error) {
	dsn := buildDSN(cfg)

	gormLogger := gormLogger.New(&zapWriter{logger: logger},
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		})

	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get underlying DB", zap.Error(err))
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Error("Database ping failed", zap.Error(err))
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Successfully connected to PostgreSQL database")

	return db.WithContext(ctx), nil
}

// buildDSN passes the connection URL through, appending the configured
// sslmode when the URL does not carry one. The original deployment ran
// against a managed Postgres with a self-signed certificate, so the default
// is require (encrypted, not verified) rather than verify-full.
func buildDSN(cfg Config) string {
	dsn := cfg.URL
	if strings.Contains(dsn, "sslmode=") {
		return dsn
	}

	mode := cfg.SSLMode
	if mode == "" {
		mode = "require"
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "sslmode=" + mode
}

type zapWriter struct {
	logger *zap.Logger
}

func (z *zapWriter) Printf(format string, args ...interface{}) {
	z.logger.Info(fmt.Sprintf(format, args...))
}
