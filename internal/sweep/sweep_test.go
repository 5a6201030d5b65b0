package sweep

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/config"
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
		&models.User{},
		&models.RoleAssignment{},
		&models.RabbitGroup{},
		&models.Rabbit{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// recordingSender captures the notifications the sweep emits.
type recordingSender struct {
	sent []*notify.Notification
}

func (r *recordingSender) Send(_ context.Context, n *notify.Notification) error {
	r.sent = append(r.sent, n)

	return nil
}

type sweepWorld struct {
	db      *gorm.DB
	now     time.Time
	group   *models.RabbitGroup
	teamID  uint
	manager *models.User
}

func seedSweepWorld(t *testing.T) sweepWorld {
	t.Helper()

	db := setupTestDB(t)

	region := models.Region{Name: "North"}
	require.NoError(t, db.Create(&region).Error)

	team := models.Team{RegionID: region.ID, Active: true}
	require.NoError(t, db.Create(&team).Error)

	group := models.RabbitGroup{RegionID: region.ID, TeamID: &team.ID, Status: models.GroupStatusIncoming}
	require.NoError(t, db.Create(&group).Error)

	manager := models.User{UID: "uid-mgr", Email: "mgr@example.org", Active: true}
	require.NoError(t, db.Create(&manager).Error)

	assignment := models.NewRegionManagerAssignment(manager.ID, region.ID)
	require.NoError(t, db.Create(&assignment).Error)

	return sweepWorld{
		db:      db,
		now:     time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC),
		group:   &group,
		teamID:  team.ID,
		manager: &manager,
	}
}

func (w *sweepWorld) seedIncomingRabbit(t *testing.T, overdueBy time.Duration) *models.Rabbit {
	t.Helper()

	expected := w.now.Add(-overdueBy)
	r := &models.Rabbit{
		Name:                  "Hoppel",
		RabbitGroupID:         w.group.ID,
		Status:                models.StatusIncoming,
		ExpectedAdmissionDate: &expected,
	}
	require.NoError(t, w.db.Create(r).Error)

	return r
}

func newTestSweeper(w *sweepWorld, sender notify.Sender) *Sweeper {
	s := New(w.db, sender, config.Sweep{
		EscalateManagerAfter: 72 * time.Hour,
		AddEmailAfter:        168 * time.Hour,
	})
	s.now = func() time.Time { return w.now }

	return s
}

func TestSweepIgnoresFutureAdmissions(t *testing.T) {
	w := seedSweepWorld(t)
	sender := &recordingSender{}

	w.seedIncomingRabbit(t, -24*time.Hour) // expected tomorrow

	require.NoError(t, newTestSweeper(&w, sender).Run(context.Background()))
	assert.Empty(t, sender.sent)
}

func TestSweepNotifiesTeam(t *testing.T) {
	w := seedSweepWorld(t)
	sender := &recordingSender{}

	w.seedIncomingRabbit(t, 24*time.Hour)

	require.NoError(t, newTestSweeper(&w, sender).Run(context.Background()))

	require.Len(t, sender.sent, 1)
	n := sender.sent[0]
	assert.Equal(t, notify.CategoryAdmissionToConfirm, n.Category)
	require.NotNil(t, n.TargetTeamID)
	assert.Equal(t, w.teamID, *n.TargetTeamID)
	assert.Equal(t, []notify.Channel{notify.ChannelPush}, n.Channels)
}

func TestSweepEscalatesToRegionManager(t *testing.T) {
	w := seedSweepWorld(t)
	sender := &recordingSender{}

	w.seedIncomingRabbit(t, 96*time.Hour) // past the 72h escalation threshold

	require.NoError(t, newTestSweeper(&w, sender).Run(context.Background()))

	require.Len(t, sender.sent, 2)

	var teamTargets, userTargets int
	for _, n := range sender.sent {
		if n.TargetTeamID != nil {
			teamTargets++
		}

		if n.TargetUserID != nil {
			userTargets++
			assert.Equal(t, w.manager.ID, *n.TargetUserID)
		}
	}

	assert.Equal(t, 1, teamTargets)
	assert.Equal(t, 1, userTargets)
}

func TestSweepAddsEmailChannelWhenLongOverdue(t *testing.T) {
	w := seedSweepWorld(t)
	sender := &recordingSender{}

	w.seedIncomingRabbit(t, 200*time.Hour) // past the 168h email threshold

	require.NoError(t, newTestSweeper(&w, sender).Run(context.Background()))

	require.NotEmpty(t, sender.sent)
	for _, n := range sender.sent {
		assert.True(t, n.HasChannel(notify.ChannelEmail), "email channel expected for long overdue admissions")
		require.NotNil(t, n.Email)
	}
}

func TestSweepSkipsTeamlessGroupButStillEscalates(t *testing.T) {
	w := seedSweepWorld(t)
	sender := &recordingSender{}

	require.NoError(t, w.db.Model(w.group).Update("team_id", nil).Error)
	w.seedIncomingRabbit(t, 96*time.Hour)

	require.NoError(t, newTestSweeper(&w, sender).Run(context.Background()))

	require.Len(t, sender.sent, 1)
	require.NotNil(t, sender.sent[0].TargetUserID)
	assert.Equal(t, w.manager.ID, *sender.sent[0].TargetUserID)
}
