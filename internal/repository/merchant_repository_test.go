package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/models"
	"storefront-service/internal/storage"
)

func newRecord(id, email string) *MerchantRecord {
	return &MerchantRecord{
		Merchant: models.Merchant{
			ID:        id,
			Name:      "Owner " + id,
			Email:     email,
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
		},
		PasswordHash: "hash-" + id,
	}
}

func TestMerchantRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMerchantRepository(storage.NewMemoryStore(0))

	require.NoError(t, repo.Create(ctx, newRecord("m1", "  Shop@Example.com ")))

	byID, err := repo.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "shop@example.com", byID.Email)
	assert.Equal(t, "hash-m1", byID.PasswordHash)

	byEmail, err := repo.GetByEmail(ctx, "SHOP@example.com")
	require.NoError(t, err)
	assert.Equal(t, "m1", byEmail.ID)

	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrMerchantNotFound)
}

func TestMerchantRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMerchantRepository(storage.NewMemoryStore(0))

	require.NoError(t, repo.Create(ctx, newRecord("m1", "a@example.com")))
	err := repo.Create(ctx, newRecord("m2", "A@Example.com"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMerchantRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewMerchantRepository(storage.NewMemoryStore(0))
	require.NoError(t, repo.Create(ctx, newRecord("m1", "a@example.com")))
	require.NoError(t, repo.Create(ctx, newRecord("m2", "b@example.com")))

	rec, err := repo.GetByID(ctx, "m1")
	require.NoError(t, err)
	rec.BusinessName = "Renamed"
	require.NoError(t, repo.Update(ctx, rec))

	got, err := repo.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.BusinessName)

	rec.Email = "b@example.com"
	assert.ErrorIs(t, repo.Update(ctx, rec), ErrDuplicateEmail)

	assert.ErrorIs(t, repo.Update(ctx, newRecord("ghost", "g@example.com")), ErrMerchantNotFound)
}
