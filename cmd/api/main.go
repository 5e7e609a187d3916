package main

import (
	"context"
	"time"

	playgroundValidator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cloudpay/paymentledger/internal/api"
	v1 "github.com/cloudpay/paymentledger/internal/api/v1"
	"github.com/cloudpay/paymentledger/internal/api/validator"
	"github.com/cloudpay/paymentledger/internal/config"
	apierrors "github.com/cloudpay/paymentledger/internal/errors"
	"github.com/cloudpay/paymentledger/internal/metrics"
	"github.com/cloudpay/paymentledger/internal/repository"
	"github.com/cloudpay/paymentledger/internal/service"
	"github.com/cloudpay/paymentledger/pkg/postgres"
)

const collectInterval = 15 * time.Second

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			metrics.NewMetrics,
			newValidator,
			validator.NewXValidator,
			newDatabase,
			newFiberApp,
			repository.NewPaymentRepository,
			service.NewPaymentService,
			v1.NewHandler,
			metrics.NewDatabaseMetricsCollector,
			metrics.NewSystemCollector,
		),
		fx.Invoke(startServer),
	).Run()
}

func newValidator() *playgroundValidator.Validate {
	return playgroundValidator.New()
}

func newDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	return postgres.NewConnection(context.Background(), cfg.Database, logger)
}

func newFiberApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: apierrors.ErrorHandler(),
	})
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, db *gorm.DB,
	m *metrics.Metrics, dbCollector *metrics.DatabaseMetricsCollector,
	sysCollector *metrics.SystemCollector, logger *zap.Logger, lc fx.Lifecycle) {

	app.Use(cors.New())
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))
	api.SetupRoutes(app, handler)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Table bootstrap runs to completion before the listener
			// accepts traffic. A failure is logged for operators and the
			// process still serves; requests then surface datastore errors.
			if err := repository.Migrate(db.WithContext(ctx)); err != nil {
				logger.Error("Table bootstrap failed", zap.Error(err))
			} else {
				logger.Info("Payments table ready")
			}

			dbCollector.Start(collectInterval)
			sysCollector.Start(collectInterval)

			go func() {
				if err := app.Listen(":" + cfg.API.Port); err != nil {
					logger.Error("Server stopped", zap.Error(err))
				}
			}()

			logger.Info("Payment ledger listening", zap.String("port", cfg.API.Port))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			dbCollector.Stop()
			sysCollector.Stop()
			return app.ShutdownWithContext(ctx)
		},
	})
}
