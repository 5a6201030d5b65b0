package region

import (
	"testing"

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
	err = db.AutoMigrate(&models.Region{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		regionName    string
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			regionName:    "North",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty name",
			dbParam:       db,
			regionName:    "",
			expectedError: ErrRegionNameEmpty,
		},
		{
			name:       "successful create",
			dbParam:    db,
			regionName: "North",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := Create(tc.dbParam, tc.regionName)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, r)
			} else {
				require.NoError(t, err)
				require.NotNil(t, r)
				assert.Equal(t, tc.regionName, r.Name)
				assert.NotZero(t, r.ID)
			}
		})
	}
}

func TestGetByID(t *testing.T) {
	db := setupTestDB(t)

	seeded, err := Create(db, "South")
	require.NoError(t, err)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		regionID      uint
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			regionID:      seeded.ID,
			expectedError: ErrDBNil,
		},
		{
			name:          "region not found",
			dbParam:       db,
			regionID:      999,
			expectedError: ErrRegionNotFound,
		},
		{
			name:     "successful get",
			dbParam:  db,
			regionID: seeded.ID,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := GetByID(tc.dbParam, tc.regionID)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, r)
			} else {
				require.NoError(t, err)
				require.NotNil(t, r)
				assert.Equal(t, "South", r.Name)
			}
		})
	}
}

func TestExists(t *testing.T) {
	db := setupTestDB(t)

	seeded, err := Create(db, "North")
	require.NoError(t, err)

	ok, err := Exists(db, seeded.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(db, 999)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Exists(nil, seeded.ID)
	require.ErrorIs(t, err, ErrDBNil)
}

func TestGetAll(t *testing.T) {
	db := setupTestDB(t)

	regions, err := GetAll(db)
	require.NoError(t, err)
	assert.Empty(t, regions)

	_, err = Create(db, "North")
	require.NoError(t, err)
	_, err = Create(db, "South")
	require.NoError(t, err)

	regions, err = GetAll(db)
	require.NoError(t, err)
	assert.Len(t, regions, 2)

	_, err = GetAll(nil)
	require.ErrorIs(t, err, ErrDBNil)
}
