package widget

import (
	"context"

	"storefront-service/internal/storage"
)

// ConfigKey is the storage key of a merchant's widget configuration.
func ConfigKey(merchantID string) string {
	return "widget_config:" + merchantID
}

// Repository persists widget configurations per merchant.
type Repository struct {
	kv storage.Store
}

func NewRepository(kv storage.Store) *Repository {
	return &Repository{kv: kv}
}

// Get returns the saved configuration, or the defaults when none exists.
func (r *Repository) Get(ctx context.Context, merchantID string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := storage.GetJSON(ctx, r.kv, ConfigKey(merchantID), &cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Save validates and stores cfg.
func (r *Repository) Save(ctx context.Context, merchantID string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return storage.SetJSON(ctx, r.kv, ConfigKey(merchantID), cfg)
}
