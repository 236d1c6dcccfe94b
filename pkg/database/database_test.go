package database

import (
	"testing"

	"vidtube/internal/pkg/config"
	"vidtube/pkg/metrics"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host: "db", User: "app", Password: "secret", DBName: "vidtube", Port: "5432", SSLMode: "disable", TimeZone: "UTC",
	})
	assert.Equal(t, "host=db user=app password=secret dbname=vidtube port=5432 sslmode=disable TimeZone=UTC", dsn)
}

func TestRegisterMetrics(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	require.NoError(t, RegisterMetrics(db, metrics.NewMetricsCollector(prometheus.NewRegistry())))
	assert.NoError(t, RegisterMetrics(db.Session(&gorm.Session{NewDB: true}), nil))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "videos"`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	var n int64
	require.NoError(t, db.Table("videos").Count(&n).Error)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
