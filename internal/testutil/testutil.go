// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"leadcapture/internal/config"
	"leadcapture/internal/database"
)

var memoryDBs atomic.Int64

// NullLogger returns a logger that discards output and a hook recording every entry.
func NullLogger() (*logrus.Logger, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}

// SetupTestDB opens a private in-memory SQLite database with the submission
// tables migrated. It is closed when t finishes.
func SetupTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	log, _ := test.NewNullLogger()
	name := fmt.Sprintf("file:leads_test_%d?mode=memory&cache=shared", memoryDBs.Add(1))
	db, err := database.Open(config.DatabaseConfig{URL: name}, log)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// SetupMockDB returns a gorm handle over sqlmock using the postgres dialector.
func SetupMockDB(t testing.TB) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("failed to create sql mock: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("failed to open gorm over sql mock: %v", err)
	}
	return db, mock
}
