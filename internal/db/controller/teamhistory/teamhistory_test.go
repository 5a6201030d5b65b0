package teamhistory

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	// Migrate the schema
	err = db.AutoMigrate(&models.TeamHistory{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestNilDB(t *testing.T) {
	_, err := HasOpen(nil, 1, 1)
	require.ErrorIs(t, err, ErrDBNil)

	err = Open(nil, 1, 1, time.Now())
	require.ErrorIs(t, err, ErrDBNil)

	err = CloseOpen(nil, 1, time.Now())
	require.ErrorIs(t, err, ErrDBNil)

	_, err = ListByUser(nil, 1)
	require.ErrorIs(t, err, ErrDBNil)
}

func TestLedgerLifecycle(t *testing.T) {
	db := setupTestDB(t)

	start := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	ok, err := HasOpen(db, 1, 10)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, Open(db, 1, 10, start))

	ok, err = HasOpen(db, 1, 10)
	require.NoError(t, err)
	assert.True(t, ok)

	// open on a different team is not reported for the first one
	ok, err = HasOpen(db, 1, 11)
	require.NoError(t, err)
	assert.False(t, ok)

	end := start.Add(30 * 24 * time.Hour)
	require.NoError(t, CloseOpen(db, 1, end))

	ok, err = HasOpen(db, 1, 10)
	require.NoError(t, err)
	assert.False(t, ok)

	rows, err := ListByUser(db, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].EndDate)
	assert.True(t, rows[0].EndDate.Equal(end))
}

func TestCloseOpenRepairsMultipleIntervals(t *testing.T) {
	db := setupTestDB(t)

	start := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	// two open intervals is a historic inconsistency, CloseOpen closes both
	require.NoError(t, Open(db, 1, 10, start))
	require.NoError(t, Open(db, 1, 11, start.Add(time.Hour)))

	require.NoError(t, CloseOpen(db, 1, start.Add(2*time.Hour)))

	rows, err := ListByUser(db, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	for _, row := range rows {
		assert.NotNil(t, row.EndDate)
	}
}

func TestListByUserOrdersOldestFirst(t *testing.T) {
	db := setupTestDB(t)

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, Open(db, 1, 11, start.Add(48*time.Hour)))
	require.NoError(t, CloseOpen(db, 1, start.Add(72*time.Hour)))
	require.NoError(t, Open(db, 1, 10, start))

	// another user's rows stay out of the listing
	require.NoError(t, Open(db, 2, 10, start))

	rows, err := ListByUser(db, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, uint(10), rows[0].TeamID)
	assert.Equal(t, uint(11), rows[1].TeamID)
}
