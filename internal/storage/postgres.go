package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is one row of the Postgres-backed store
type KVEntry struct {
	Key       string         `gorm:"primaryKey;size:255"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null"`
	ExpiresAt *time.Time     `gorm:"index"`
	UpdatedAt time.Time
}

// TableName returns the table name for the KVEntry model
func (KVEntry) TableName() string {
	return "kv_entries"
}

// PostgresStore persists entries in a single jsonb table through gorm.
// Values must be valid JSON.
type PostgresStore struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewPostgresStore creates the store. Callers run AutoMigrate(&KVEntry{})
// during bootstrap.
func NewPostgresStore(db *gorm.DB, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: db, ttl: ttl, now: time.Now}
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry KVEntry
	err := p.db.WithContext(ctx).
		Where("key = ? AND (expires_at IS NULL OR expires_at > ?)", key, p.now()).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres get %q: %w", key, err)
	}
	return []byte(entry.Value), nil
}

func (p *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	entry := KVEntry{
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedAt: p.now(),
	}
	if p.ttl > 0 {
		expires := p.now().Add(p.ttl)
		entry.ExpiresAt = &expires
	}
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("postgres set %q: %w", key, err)
	}
	return nil
}

func (p *PostgresStore) Remove(ctx context.Context, key string) error {
	if err := p.db.WithContext(ctx).Where("key = ?", key).Delete(&KVEntry{}).Error; err != nil {
		return fmt.Errorf("postgres delete %q: %w", key, err)
	}
	return nil
}

// PurgeExpired deletes rows whose expiry has passed.
func (p *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	result := p.db.WithContext(ctx).Where("expires_at IS NOT NULL AND expires_at <= ?", p.now()).Delete(&KVEntry{})
	return result.RowsAffected, result.Error
}

// RunPurge deletes expired rows on every tick until ctx is cancelled.
func (p *PostgresStore) RunPurge(ctx context.Context, interval time.Duration, logger *logrus.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log := logger.WithField("component", "storage.postgres")
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.PurgeExpired(ctx)
			if err != nil {
				log.WithError(err).Warn("Failed to purge expired entries")
				continue
			}
			if n > 0 {
				log.WithField("removed", n).Debug("Purged expired entries")
			}
		}
	}
}
