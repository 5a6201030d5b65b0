// Package sweep implements the daily admission-confirmation sweep: rabbits
// still marked incoming past their expected admission date generate
// reminders for the team in charge, escalating to the region managers and
// to email the longer the admission stays unconfirmed.
package sweep

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/config"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/controller/rabbit"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/controller/rabbitgroup"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/controller/user"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/notify"
)

var reminders = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "admission_sweep_reminders_total",
		Help: "Number of admission reminders emitted by the sweep, differentiated by target.",
	},
	[]string{"target"},
)

// Sweeper scans for overdue admissions and emits reminders.
type Sweeper struct {
	db     *gorm.DB
	sender notify.Sender
	cfg    config.Sweep

	now func() time.Time
}

// New creates a sweeper.
func New(db *gorm.DB, sender notify.Sender, cfg config.Sweep) *Sweeper {
	return &Sweeper{db: db, sender: sender, cfg: cfg, now: time.Now}
}

// Run executes one sweep pass. Per-rabbit failures are logged and do not
// abort the pass.
func (s *Sweeper) Run(ctx context.Context) error {
	now := s.now()

	overdue, err := rabbit.ListIncomingOverdue(s.db, now)
	if err != nil {
		return err
	}

	log.Info().Int("overdue", len(overdue)).Msg("admission sweep pass")

	for i := range overdue {
		if err := s.remind(ctx, now, &overdue[i]); err != nil {
			log.Error().Err(err).Uint("rabbit_id", overdue[i].ID).
				Msg("failed to emit admission reminder")
		}
	}

	return nil
}

func (s *Sweeper) remind(ctx context.Context, now time.Time, r *models.Rabbit) error {
	group, err := rabbitgroup.GetByID(s.db, r.RabbitGroupID)
	if err != nil {
		return err
	}

	lateness := now.Sub(*r.ExpectedAdmissionDate)

	channels := []notify.Channel{notify.ChannelPush}
	if s.cfg.AddEmailAfter > 0 && lateness >= s.cfg.AddEmailAfter {
		channels = append(channels, notify.ChannelEmail)
	}

	if group.TeamID != nil {
		n := notify.AdmissionToConfirm(r.ID, r.Name, channels).ForTeam(*group.TeamID)
		if err := s.sender.Send(ctx, n); err != nil {
			return err
		}

		reminders.WithLabelValues("team").Inc()
	} else {
		log.Warn().Uint("rabbit_id", r.ID).Uint("group_id", group.ID).
			Msg("overdue rabbit has no team in charge")
	}

	if s.cfg.EscalateManagerAfter > 0 && lateness < s.cfg.EscalateManagerAfter {
		return nil
	}

	managers, err := user.ListManagersForRegion(s.db, group.RegionID)
	if err != nil {
		return err
	}

	for i := range managers {
		n := notify.AdmissionToConfirm(r.ID, r.Name, channels).ForUser(managers[i].ID)
		if err := s.sender.Send(ctx, n); err != nil {
			log.Error().Err(err).Uint64("user_id", managers[i].ID).Uint("rabbit_id", r.ID).
				Msg("failed to notify region manager about overdue admission")

			continue
		}

		reminders.WithLabelValues("manager").Inc()
	}

	return nil
}
