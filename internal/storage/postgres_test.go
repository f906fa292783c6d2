package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestPostgresStore(t *testing.T, ttl time.Duration) (*PostgresStore, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	s := NewPostgresStore(db, ttl)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, mock
}

func TestPostgresStore_Get(t *testing.T) {
	ctx := context.Background()
	s, mock := newTestPostgresStore(t, 0)

	mock.ExpectQuery(`SELECT \* FROM "kv_entries" WHERE key = \$1 AND \(expires_at IS NULL OR expires_at > \$2\)`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "expires_at", "updated_at"}).
			AddRow("merchants", []byte(`[{"id":"m1"}]`), nil, time.Now()))
	got, err := s.Get(ctx, "merchants")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"m1"}]`, string(got))

	mock.ExpectQuery(`SELECT \* FROM "kv_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "expires_at", "updated_at"}))
	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectQuery(`SELECT \* FROM "kv_entries"`).WillReturnError(errors.New("connection reset"))
	_, err = s.Get(ctx, "merchants")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SetUpserts(t *testing.T) {
	ctx := context.Background()
	s, mock := newTestPostgresStore(t, 0)

	mock.ExpectExec(`INSERT INTO "kv_entries" .* ON CONFLICT \("key"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Set(ctx, "merchants", []byte(`[]`)))

	mock.ExpectExec(`INSERT INTO "kv_entries"`).WillReturnError(errors.New("disk full"))
	assert.Error(t, s.Set(ctx, "merchants", []byte(`[]`)))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Remove(t *testing.T) {
	s, mock := newTestPostgresStore(t, 0)

	mock.ExpectExec(`DELETE FROM "kv_entries" WHERE key = \$1`).
		WithArgs("widget_config:m1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Remove(context.Background(), "widget_config:m1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_PurgeExpired(t *testing.T) {
	s, mock := newTestPostgresStore(t, time.Hour)

	mock.ExpectExec(`DELETE FROM "kv_entries" WHERE expires_at IS NOT NULL AND expires_at <= \$1`).
		WithArgs(s.now()).
		WillReturnResult(sqlmock.NewResult(0, 3))
	n, err := s.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_RunPurgeStopsOnCancel(t *testing.T) {
	s, mock := newTestPostgresStore(t, time.Hour)
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 100; i++ {
		mock.ExpectExec(`DELETE FROM "kv_entries"`).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.RunPurge(ctx, time.Millisecond, log)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunPurge did not return after cancel")
	}
}
