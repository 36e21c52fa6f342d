package repositories

import (
	"os"
	"testing"

	"github.com/linkedup/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupProfileRepo(t *testing.T) *PostgresProfileRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	connStr := os.Getenv("POSTGRES_TEST_CONN_STR")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_CONN_STR not set")
	}

	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Profile{}))

	t.Cleanup(func() {
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Profile{})
	})

	return NewPostgresProfileRepository(db)
}

func TestProfileRepository_CreateAndGet(t *testing.T) {
	repo := setupProfileRepo(t)

	profile := &models.Profile{FirstName: "Grace", LastName: "Hopper", Title: "Rear Admiral"}
	require.NoError(t, repo.CreateProfile(profile))
	require.NotZero(t, profile.ID)

	stored, err := repo.GetProfileByID(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace", stored.FirstName)
	assert.Equal(t, "Rear Admiral", stored.Title)

	author := stored.Author()
	assert.Equal(t, "Grace", author.FirstName)
	assert.Equal(t, "Hopper", author.LastName)
}

func TestProfileRepository_Update(t *testing.T) {
	repo := setupProfileRepo(t)

	profile := &models.Profile{FirstName: "Ada", LastName: "Lovelace"}
	require.NoError(t, repo.CreateProfile(profile))

	profile.Title = "Engineer"
	require.NoError(t, repo.UpdateProfile(profile))

	stored, err := repo.GetProfileByID(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", stored.Title)
}

func TestProfileRepository_NotFound(t *testing.T) {
	repo := setupProfileRepo(t)

	_, err := repo.GetProfileByID(999999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
