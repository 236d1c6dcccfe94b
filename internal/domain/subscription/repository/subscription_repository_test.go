package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepo(t *testing.T) (SubscriptionRepository, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewSubscriptionRepository(db), mock
}

func TestChannels(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT count\(\*\) FROM subscriptions AS s JOIN users u ON u\.id = s\.channel_id WHERE s\.subscriber_id = \$1`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT u\.id, u\.username, u\.full_name, u\.avatar_url, s\.created_at AS subscribed_at FROM subscriptions AS s JOIN users u ON u\.id = s\.channel_id WHERE s\.subscriber_id = \$1 ORDER BY s\.created_at DESC, s\.id DESC LIMIT \$2`).
		WithArgs("u-1", 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "full_name", "avatar_url", "subscribed_at"}).
			AddRow("u-2", "bob", "Bob B", "https://cdn/b.png", at))

	page, err := repo.Channels(context.Background(), "u-1", 1, 10)

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "bob", page.Items[0].Username)
	assert.Equal(t, at, page.Items[0].SubscribedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggle_Unsubscribes(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`DELETE FROM "subscriptions" WHERE subscriber_id = \$1 AND channel_id = \$2`).
		WithArgs("u-1", "u-2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	subscribed, err := repo.Toggle(context.Background(), "u-1", "u-2")

	require.NoError(t, err)
	assert.False(t, subscribed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
