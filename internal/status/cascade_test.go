package status

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/apperr"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/notify"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	// Migrate the schema
	err = db.AutoMigrate(
		&models.Region{},
		&models.Team{},
		&models.RabbitGroup{},
		&models.Rabbit{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// recordingSender captures the notifications a cascade emits.
type recordingSender struct {
	sent []*notify.Notification
}

func (r *recordingSender) Send(_ context.Context, n *notify.Notification) error {
	r.sent = append(r.sent, n)

	return nil
}

func seedRegion(t *testing.T, db *gorm.DB) *models.Region {
	t.Helper()

	region := &models.Region{Name: "North"}
	require.NoError(t, db.Create(region).Error)

	return region
}

func seedTeam(t *testing.T, db *gorm.DB, regionID uint) *models.Team {
	t.Helper()

	team := &models.Team{RegionID: regionID, Active: true}
	require.NoError(t, db.Create(team).Error)

	return team
}

func seedGroup(t *testing.T, db *gorm.DB, regionID uint, teamID *uint, status models.RabbitGroupStatus) *models.RabbitGroup {
	t.Helper()

	group := &models.RabbitGroup{RegionID: regionID, TeamID: teamID, Status: status}
	require.NoError(t, db.Create(group).Error)

	return group
}

func seedRabbit(t *testing.T, db *gorm.DB, groupID uint, status models.RabbitStatus) *models.Rabbit {
	t.Helper()

	r := &models.Rabbit{Name: "Flauschi", RabbitGroupID: groupID, Status: status}
	require.NoError(t, db.Create(r).Error)

	return r
}

func TestRabbitStatusChangedDerivesGroup(t *testing.T) {
	db := setupTestDB(t)
	cascade := NewCascade(nil)

	region := seedRegion(t, db)
	group := seedGroup(t, db, region.ID, nil, models.GroupStatusAdoptable)
	sick := seedRabbit(t, db, group.ID, models.StatusAdoptable)
	healthy := seedRabbit(t, db, group.ID, models.StatusAdoptable)

	err := cascade.RabbitStatusChanged(db, sick.ID, models.StatusInTreatment)
	require.NoError(t, err)

	var got models.RabbitGroup
	require.NoError(t, db.First(&got, group.ID).Error)
	assert.Equal(t, models.GroupStatusInTreatment, got.Status)

	// the other member keeps its own status
	var other models.Rabbit
	require.NoError(t, db.First(&other, healthy.ID).Error)
	assert.Equal(t, models.StatusAdoptable, other.Status)
}

func TestRabbitStatusChangedSameStatusIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	cascade := NewCascade(nil)

	region := seedRegion(t, db)
	group := seedGroup(t, db, region.ID, nil, models.GroupStatusInTreatment)
	r := seedRabbit(t, db, group.ID, models.StatusInTreatment)

	require.NoError(t, cascade.RabbitStatusChanged(db, r.ID, models.StatusInTreatment))

	var got models.RabbitGroup
	require.NoError(t, db.First(&got, group.ID).Error)
	assert.Equal(t, models.GroupStatusInTreatment, got.Status)
}

func TestRabbitStatusChangedPartialAdoptionConflictRollsBack(t *testing.T) {
	db := setupTestDB(t)
	cascade := NewCascade(nil)

	region := seedRegion(t, db)
	group := seedGroup(t, db, region.ID, nil, models.GroupStatusAdoptable)
	first := seedRabbit(t, db, group.ID, models.StatusAdoptable)
	seedRabbit(t, db, group.ID, models.StatusAdoptable)

	err := db.Transaction(func(tx *gorm.DB) error {
		return cascade.RabbitStatusChanged(tx, first.ID, models.StatusAdopted)
	})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err), "expected a conflict, got %v", err)

	// the transaction rolled back: nothing changed
	var got models.Rabbit
	require.NoError(t, db.First(&got, first.ID).Error)
	assert.Equal(t, models.StatusAdoptable, got.Status)

	var gotGroup models.RabbitGroup
	require.NoError(t, db.First(&gotGroup, group.ID).Error)
	assert.Equal(t, models.GroupStatusAdoptable, gotGroup.Status)
}

func TestRabbitStatusChangedAdoptionDateBookkeeping(t *testing.T) {
	db := setupTestDB(t)
	cascade := NewCascade(nil)

	region := seedRegion(t, db)
	group := seedGroup(t, db, region.ID, nil, models.GroupStatusAdoptable)
	r := seedRabbit(t, db, group.ID, models.StatusAdoptable)

	require.NoError(t, cascade.RabbitStatusChanged(db, r.ID, models.StatusAdopted))

	var adopted models.RabbitGroup
	require.NoError(t, db.First(&adopted, group.ID).Error)
	assert.Equal(t, models.GroupStatusAdopted, adopted.Status)
	require.NotNil(t, adopted.AdoptionDate, "entering adopted must stamp the adoption date")

	// leaving adopted clears the date again
	require.NoError(t, cascade.RabbitStatusChanged(db, r.ID, models.StatusAdoptable))

	var returned models.RabbitGroup
	require.NoError(t, db.First(&returned, group.ID).Error)
	assert.Equal(t, models.GroupStatusAdoptable, returned.Status)
	assert.Nil(t, returned.AdoptionDate)
}

func TestGroupStatusChangedPropagatesToMembers(t *testing.T) {
	db := setupTestDB(t)
	cascade := NewCascade(nil)

	region := seedRegion(t, db)
	group := seedGroup(t, db, region.ID, nil, models.GroupStatusIncoming)
	first := seedRabbit(t, db, group.ID, models.StatusIncoming)
	second := seedRabbit(t, db, group.ID, models.StatusIncoming)

	require.NoError(t, cascade.GroupStatusChanged(db, group.ID, models.GroupStatusAdoptable))

	var gotGroup models.RabbitGroup
	require.NoError(t, db.First(&gotGroup, group.ID).Error)
	assert.Equal(t, models.GroupStatusAdoptable, gotGroup.Status)

	for _, id := range []uint{first.ID, second.ID} {
		var got models.Rabbit
		require.NoError(t, db.First(&got, id).Error)
		assert.Equal(t, models.StatusAdoptable, got.Status)
	}
}

func TestGroupStatusChangedRejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	cascade := NewCascade(nil)

	region := seedRegion(t, db)
	group := seedGroup(t, db, region.ID, nil, models.GroupStatusAdoptable)
	r := seedRabbit(t, db, group.ID, models.StatusAdoptable)

	err := cascade.GroupStatusChanged(db, group.ID, models.RabbitGroupStatus("hibernating"))
	require.Error(t, err)
	assert.True(t, apperr.IsBadRequest(err), "expected a bad request, got %v", err)

	// neither side changed
	var gotGroup models.RabbitGroup
	require.NoError(t, db.First(&gotGroup, group.ID).Error)
	assert.Equal(t, models.GroupStatusAdoptable, gotGroup.Status)

	var got models.Rabbit
	require.NoError(t, db.First(&got, r.ID).Error)
	assert.Equal(t, models.StatusAdoptable, got.Status)
}

func TestMoveRabbitAcrossRegionsRejected(t *testing.T) {
	db := setupTestDB(t)
	cascade := NewCascade(nil)

	north := seedRegion(t, db)
	south := &models.Region{Name: "South"}
	require.NoError(t, db.Create(south).Error)

	origin := seedGroup(t, db, north.ID, nil, models.GroupStatusAdoptable)
	dest := seedGroup(t, db, south.ID, nil, models.GroupStatusAdoptable)
	r := seedRabbit(t, db, origin.ID, models.StatusAdoptable)

	err := cascade.MoveRabbit(context.Background(), db, r.ID, dest.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsBadRequest(err), "expected a bad request, got %v", err)

	var got models.Rabbit
	require.NoError(t, db.First(&got, r.ID).Error)
	assert.Equal(t, origin.ID, got.RabbitGroupID)
}

func TestMoveRabbitRecomputesBothGroups(t *testing.T) {
	db := setupTestDB(t)
	sender := &recordingSender{}
	cascade := NewCascade(sender)

	region := seedRegion(t, db)
	originTeam := seedTeam(t, db, region.ID)
	destTeam := seedTeam(t, db, region.ID)

	origin := seedGroup(t, db, region.ID, &originTeam.ID, models.GroupStatusInTreatment)
	dest := seedGroup(t, db, region.ID, &destTeam.ID, models.GroupStatusAdoptable)

	moved := seedRabbit(t, db, origin.ID, models.StatusInTreatment)
	seedRabbit(t, db, origin.ID, models.StatusAdoptable)
	seedRabbit(t, db, dest.ID, models.StatusAdoptable)

	require.NoError(t, cascade.MoveRabbit(context.Background(), db, moved.ID, dest.ID))

	// the new membership survives the group recomputes; saving a group
	// loaded with preloaded members must not write the members back
	var gotMoved models.Rabbit
	require.NoError(t, db.First(&gotMoved, moved.ID).Error)
	assert.Equal(t, dest.ID, gotMoved.RabbitGroupID)

	var gotOrigin, gotDest models.RabbitGroup
	require.NoError(t, db.First(&gotOrigin, origin.ID).Error)
	require.NoError(t, db.First(&gotDest, dest.ID).Error)

	// the sick rabbit left the origin and entered the destination
	assert.Equal(t, models.GroupStatusAdoptable, gotOrigin.Status)
	assert.Equal(t, models.GroupStatusInTreatment, gotDest.Status)

	// cross-team move notifies the receiving team about a new rabbit
	require.Len(t, sender.sent, 1)
	assert.Equal(t, notify.CategoryRabbitAssigned, sender.sent[0].Category)
	require.NotNil(t, sender.sent[0].TargetTeamID)
	assert.Equal(t, destTeam.ID, *sender.sent[0].TargetTeamID)
}

func TestMoveRabbitWithinTeamNotifiesMove(t *testing.T) {
	db := setupTestDB(t)
	sender := &recordingSender{}
	cascade := NewCascade(sender)

	region := seedRegion(t, db)
	team := seedTeam(t, db, region.ID)

	origin := seedGroup(t, db, region.ID, &team.ID, models.GroupStatusAdoptable)
	dest := seedGroup(t, db, region.ID, &team.ID, models.GroupStatusAdoptable)

	moved := seedRabbit(t, db, origin.ID, models.StatusAdoptable)
	seedRabbit(t, db, origin.ID, models.StatusAdoptable)
	seedRabbit(t, db, dest.ID, models.StatusAdoptable)

	require.NoError(t, cascade.MoveRabbit(context.Background(), db, moved.ID, dest.ID))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, notify.CategoryRabbitMoved, sender.sent[0].Category)
}

func TestMoveRabbitEmptiedOriginSkipsRecompute(t *testing.T) {
	db := setupTestDB(t)
	cascade := NewCascade(nil)

	region := seedRegion(t, db)
	origin := seedGroup(t, db, region.ID, nil, models.GroupStatusInTreatment)
	dest := seedGroup(t, db, region.ID, nil, models.GroupStatusInTreatment)

	moved := seedRabbit(t, db, origin.ID, models.StatusInTreatment)
	seedRabbit(t, db, dest.ID, models.StatusInTreatment)

	require.NoError(t, cascade.MoveRabbit(context.Background(), db, moved.ID, dest.ID))

	// the emptied origin keeps its last status
	var gotOrigin models.RabbitGroup
	require.NoError(t, db.First(&gotOrigin, origin.ID).Error)
	assert.Equal(t, models.GroupStatusInTreatment, gotOrigin.Status)

	var got models.Rabbit
	require.NoError(t, db.First(&got, moved.ID).Error)
	assert.Equal(t, dest.ID, got.RabbitGroupID)
}
