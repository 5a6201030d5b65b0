package team

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
	err = db.AutoMigrate(&models.Region{}, &models.Team{}, &models.RabbitGroup{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedRegion(t *testing.T, db *gorm.DB) uint {
	t.Helper()

	r := models.Region{Name: "North"}
	require.NoError(t, db.Create(&r).Error)

	return r.ID
}

func TestCreateAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	regionID := seedRegion(t, db)

	_, err := Create(nil, regionID)
	require.ErrorIs(t, err, ErrDBNil)

	created, err := Create(db, regionID)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.True(t, created.Active)

	loaded, err := GetByID(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, regionID, loaded.RegionID)
	assert.True(t, loaded.Active)

	_, err = GetByID(db, 999)
	require.ErrorIs(t, err, ErrTeamNotFound)

	_, err = GetByID(nil, created.ID)
	require.ErrorIs(t, err, ErrDBNil)
}

func TestInactiveTeamPersistsInactive(t *testing.T) {
	db := setupTestDB(t)
	regionID := seedRegion(t, db)

	team := models.Team{RegionID: regionID, Active: false}
	require.NoError(t, db.Create(&team).Error)

	// the false value must survive the insert; a column default must
	// not win over an explicitly inactive team
	loaded, err := GetByID(db, team.ID)
	require.NoError(t, err)
	assert.False(t, loaded.Active)

	_, err = GetActiveByID(db, team.ID)
	require.ErrorIs(t, err, ErrTeamInactive)
}

func TestSetActive(t *testing.T) {
	db := setupTestDB(t)
	regionID := seedRegion(t, db)

	team, err := Create(db, regionID)
	require.NoError(t, err)

	require.NoError(t, SetActive(db, team.ID, false))

	_, err = GetActiveByID(db, team.ID)
	require.ErrorIs(t, err, ErrTeamInactive)

	require.NoError(t, SetActive(db, team.ID, true))

	reactivated, err := GetActiveByID(db, team.ID)
	require.NoError(t, err)
	assert.True(t, reactivated.Active)

	require.ErrorIs(t, SetActive(db, 999, true), ErrTeamNotFound)
	require.ErrorIs(t, SetActive(nil, team.ID, true), ErrDBNil)
}

func TestCountOutstandingGroups(t *testing.T) {
	db := setupTestDB(t)
	regionID := seedRegion(t, db)

	team, err := Create(db, regionID)
	require.NoError(t, err)

	for _, status := range []models.RabbitGroupStatus{
		models.GroupStatusAdoptable,
		models.GroupStatusInTreatment,
		models.GroupStatusAdopted,
		models.GroupStatusDeceased,
	} {
		g := models.RabbitGroup{RegionID: regionID, TeamID: &team.ID, Status: status}
		require.NoError(t, db.Create(&g).Error)
	}

	count, err := CountOutstandingGroups(db, team.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = CountOutstandingGroups(nil, team.ID)
	require.ErrorIs(t, err, ErrDBNil)
}
