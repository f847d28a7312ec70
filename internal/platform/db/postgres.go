package db

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/quicklist/marketplace/internal/models"
	cfgpkg "github.com/quicklist/marketplace/pkg/config"
	gormzap "github.com/quicklist/marketplace/pkg/gormlog"
)

func NewDB(l *zap.SugaredLogger, cfg *cfgpkg.Config) (*gorm.DB, error) {
	if cfg.Database.DSN == "" {
		l.Error("database DSN is empty")
		return nil, gorm.ErrInvalidDB
	}
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{Logger: gormzap.New(l)})
	if err != nil {
		l.Errorf("failed to connect database: %v", err)
		return nil, err
	}
	l.Infow("connected to postgres via DSN")
	return db, nil
}

var Module = fx.Options(
	fx.Provide(NewDB),
	fx.Invoke(AutoMigrate),
	fx.Invoke(registerDBClose),
)

// AutoMigrate runs GORM migrations on startup
func AutoMigrate(l *zap.SugaredLogger, db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Listing{},
		&models.Upsell{},
		&models.RevenueEntry{},
		&models.Category{},
		&models.CandidateProfile{},
		&models.ServiceOrder{},
	); err != nil {
		l.Errorf("automigrate failed: %v", err)
		return err
	}
	// GORM tags cannot express a partial unique index. This one serializes
	// concurrent activations: only one active boost per (listing, type).
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_listing_upsell
		 ON upsell (listing_id, upsell_type) WHERE status = 'active'`,
	).Error; err != nil {
		l.Errorf("failed to create partial unique index: %v", err)
		return err
	}
	l.Infow("automigrate completed")
	return nil
}

// registerDBClose ensures the underlying *sql.DB is closed on shutdown
func registerDBClose(lc fx.Lifecycle, l *zap.SugaredLogger, gdb *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				l.Warnw("gorm: get sql.DB failed", "err", err)
				return nil
			}
			l.Infow("closing postgres connection pool")
			return sqlDB.Close()
		},
	})
}
