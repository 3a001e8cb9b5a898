package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"leadcapture/internal/database"
	"leadcapture/internal/domain"
	"leadcapture/internal/testutil"
)

func TestOpenMigratesSubmissionTables(t *testing.T) {
	db := testutil.SetupTestDB(t)

	for _, model := range []any{&domain.Contact{}, &domain.Consultation{}, &domain.ServiceInquiry{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
	assert.True(t, db.Migrator().HasColumn(&domain.Contact{}, "admin_notified_at"))
	assert.True(t, db.Migrator().HasColumn(&domain.ServiceInquiry{}, "quote_sent_at"))
	assert.NoError(t, database.HealthCheck(context.Background(), db))
}

func TestHealthCheckReportsPingFailure(t *testing.T) {
	db, mock := testutil.SetupMockDB(t)

	mock.ExpectPing().WillReturnError(assert.AnError)
	err := database.HealthCheck(context.Background(), db)

	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
