package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"storefront-service/internal/models"
	"storefront-service/internal/storage"
)

// MerchantsKey is the storage key of the merchant list.
const MerchantsKey = "merchants"

var (
	ErrMerchantNotFound = errors.New("merchant not found")
	ErrDuplicateEmail   = errors.New("merchant email already registered")
)

// MerchantRecord is the persisted form of a merchant, including the
// password hash that is never returned over the API.
type MerchantRecord struct {
	models.Merchant
	PasswordHash string `json:"passwordHash"`
}

// MerchantRepository defines the interface for merchant persistence
type MerchantRepository interface {
	Create(ctx context.Context, record *MerchantRecord) error
	GetByID(ctx context.Context, id string) (*MerchantRecord, error)
	GetByEmail(ctx context.Context, email string) (*MerchantRecord, error)
	Update(ctx context.Context, record *MerchantRecord) error
	List(ctx context.Context) ([]MerchantRecord, error)
}

type merchantRepository struct {
	mu sync.Mutex
	kv storage.Store
}

// NewMerchantRepository creates a new merchant repository
func NewMerchantRepository(kv storage.Store) MerchantRepository {
	return &merchantRepository{kv: kv}
}

// NormalizeEmail is the comparison form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *merchantRepository) load(ctx context.Context) ([]MerchantRecord, error) {
	var records []MerchantRecord
	if _, err := storage.GetJSON(ctx, r.kv, MerchantsKey, &records); err != nil {
		return nil, fmt.Errorf("failed to load merchants: %w", err)
	}
	return records, nil
}

func (r *merchantRepository) save(ctx context.Context, records []MerchantRecord) error {
	if err := storage.SetJSON(ctx, r.kv, MerchantsKey, records); err != nil {
		return fmt.Errorf("failed to save merchants: %w", err)
	}
	return nil
}

func (r *merchantRepository) Create(ctx context.Context, record *MerchantRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return err
	}
	email := NormalizeEmail(record.Email)
	for _, existing := range records {
		if NormalizeEmail(existing.Email) == email {
			return ErrDuplicateEmail
		}
	}
	record.Email = email
	return r.save(ctx, append(records, *record))
}

func (r *merchantRepository) GetByID(ctx context.Context, id string) (*MerchantRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, ErrMerchantNotFound
}

func (r *merchantRepository) GetByEmail(ctx context.Context, email string) (*MerchantRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	email = NormalizeEmail(email)
	for i := range records {
		if NormalizeEmail(records[i].Email) == email {
			return &records[i], nil
		}
	}
	return nil, ErrMerchantNotFound
}

// Update replaces the stored record with the same ID.
func (r *merchantRepository) Update(ctx context.Context, record *MerchantRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return err
	}
	record.Email = NormalizeEmail(record.Email)
	idx := -1
	for i := range records {
		if records[i].ID == record.ID {
			idx = i
			continue
		}
		if NormalizeEmail(records[i].Email) == record.Email {
			return ErrDuplicateEmail
		}
	}
	if idx < 0 {
		return ErrMerchantNotFound
	}
	records[idx] = *record
	return r.save(ctx, records)
}

func (r *merchantRepository) List(ctx context.Context) ([]MerchantRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}
