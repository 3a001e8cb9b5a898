package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"leadcapture/internal/config"
	"leadcapture/internal/domain"
	"leadcapture/internal/logger"
	"leadcapture/internal/metrics"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
	connMaxIdleTime = 10 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Open connects to the configured database, tunes the pool and bootstraps the
// submission tables.
func Open(cfg config.DatabaseConfig, log logrus.FieldLogger) (*gorm.DB, error) {
	log = log.WithField("component", "db")

	var dialector gorm.Dialector
	if cfg.IsPostgres() {
		log.Info("connecting to PostgreSQL database")
		dialector = postgres.Open(cfg.GetPostgresDSN())
	} else {
		log.Info("connecting to SQLite database")
		var err error
		dialector, err = sqliteDialector(cfg.GetSQLitePath())
		if err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(dialector, gormConfig(log))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.IsPostgres() {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetMaxIdleConns(maxIdleConns)
		sqlDB.SetConnMaxLifetime(connMaxLifetime)
		sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
		log.WithFields(logrus.Fields{"max_open": maxOpenConns, "max_idle": maxIdleConns}).Info("connection pool configured")
	} else {
		// SQLite serialises writers; one connection avoids SQLITE_BUSY.
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	if err := HealthCheck(context.Background(), db); err != nil {
		return nil, fmt.Errorf("database connection test failed: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database connected and migrated successfully")
	return db, nil
}

func sqliteDialector(path string) (gorm.Dialector, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	return sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path,
		Conn:       sqlDB,
	}, nil
}

func gormConfig(log logrus.FieldLogger) *gorm.Config {
	return &gorm.Config{
		Logger: logger.Gorm(log),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Migrate creates or updates the submission tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.Contact{},
		&domain.Consultation{},
		&domain.ServiceInquiry{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// HealthCheck pings the database with a bounded timeout.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	err = sqlDB.PingContext(ctx)
	metrics.RecordDBQuery("ping", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	metrics.UpdateDBConnections(sqlDB.Stats().OpenConnections)
	return nil
}

// Close closes the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
