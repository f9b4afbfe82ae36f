package db

import (
	"context"
	"testing"
	"time"

	"github.com/gartstein/corpsec/internal/compliance/db/models"
	e "github.com/gartstein/corpsec/internal/compliance/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB initializes an in-memory SQLite database for testing.
func SetupTestDB(t *testing.T) *Repository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")

	err = db.AutoMigrate(&models.Snapshot{})
	require.NoError(t, err, "failed to migrate test database")

	return &Repository{db: db}
}

// TestLoadMissing verifies a missing key reports ErrNotFound.
func TestLoadMissing(t *testing.T) {
	repo := SetupTestDB(t)

	_, err := repo.Load(context.Background(), "companyData")
	assert.ErrorIs(t, err, e.ErrNotFound, "Load should return ErrNotFound for a missing key")
}

// TestSaveAndLoad checks a saved payload comes back unchanged.
func TestSaveAndLoad(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	payload := []byte(`{"version":1,"state":{}}`)
	require.NoError(t, repo.Save(ctx, "companyData", 1, payload), "Save should succeed")

	got, err := repo.Load(ctx, "companyData")
	assert.NoError(t, err, "Load should succeed")
	assert.Equal(t, payload, got, "payload should round-trip")
}

// TestSaveReplaces ensures a second save overwrites the first.
func TestSaveReplaces(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "companyData", 1, []byte("first")))
	require.NoError(t, repo.Save(ctx, "companyData", 1, []byte("second")))

	got, err := repo.Load(ctx, "companyData")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)

	var count int64
	require.NoError(t, repo.db.Model(&models.Snapshot{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "only one row per key")
}

// TestKeysAreIndependent checks snapshots under different keys do not collide.
func TestKeysAreIndependent(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "a", 1, []byte("A")))
	require.NoError(t, repo.Save(ctx, "b", 1, []byte("B")))

	got, err := repo.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("A"), got)
}

// TestDelete ensures a deleted key is gone and deleting again is harmless.
func TestDelete(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "companyData", 1, []byte("x")))
	require.NoError(t, repo.Delete(ctx, "companyData"))

	_, err := repo.Load(ctx, "companyData")
	assert.ErrorIs(t, err, e.ErrNotFound)
	assert.NoError(t, repo.Delete(ctx, "companyData"))
}

// TestNewRepositoryUnknownDriver verifies driver selection errors.
func TestNewRepositoryUnknownDriver(t *testing.T) {
	_, err := NewRepository(&Config{Driver: "mysql"})
	assert.EqualError(t, err, `unknown database driver "mysql"`)
}

// TestOpenUnknownDriverIsPermanent checks Open does not keep retrying a bad driver.
func TestOpenUnknownDriverIsPermanent(t *testing.T) {
	start := time.Now()
	_, err := Open(context.Background(), &Config{Driver: "mysql", MaxElapsed: time.Minute})
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

// TestOpenSQLiteFile opens a file-backed database and closes it.
func TestOpenSQLiteFile(t *testing.T) {
	cfg := &Config{Driver: DriverSQLite, Path: t.TempDir() + "/corpsec.db", MaxElapsed: time.Second}
	repo, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), "companyData", 1, []byte("x")))
	assert.NoError(t, repo.Close())
}
