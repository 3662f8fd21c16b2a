package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.MatchExpectationsInOrder(false)
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock, func() { sqlDB.Close() }
}

func TestServiceDashboard(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	db, mock, closeDB := newMockDB(t)
	defer closeDB()

	raised := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "rmas"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "rma_number", "status", "site_name", "estimated_cost", "rma_raised_date"}).
			AddRow("8c3e0c3c-7f5a-4a53-9d56-1f0b7f1e6a01", "RMA-1", "Under Review", "PVR Juhu", "120.00", raised).
			AddRow("8c3e0c3c-7f5a-4a53-9d56-1f0b7f1e6a02", "RMA-2", "Completed", "PVR Juhu", "80.00", raised))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "dtrs" WHERE call_status IN`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "ascomp_reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))

	d, err := NewService(db).Dashboard(context.Background(), Filter{})
	require.NoError(t, err)

	assert.Equal(t, 2, d.TotalRMAs)
	assert.Equal(t, 1, d.OpenRMAs)
	assert.Equal(t, "200", d.TotalCost.String())
	assert.Equal(t, int64(4), d.OpenDTRs)
	assert.Equal(t, int64(9), d.Reports)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceDashboardError(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	db, mock, closeDB := newMockDB(t)
	defer closeDB()

	boom := errors.New("connection reset")
	mock.ExpectQuery(`SELECT \* FROM "rmas"`).WillReturnError(boom)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "dtrs"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "ascomp_reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := NewService(db).Dashboard(context.Background(), Filter{})
	assert.ErrorIs(t, err, boom)
}
