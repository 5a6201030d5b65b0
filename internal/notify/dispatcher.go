package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/controller/pushtoken"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/controller/user"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
)

var deliveries = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "notification_deliveries_total",
		Help: "Number of notification deliveries, differentiated by category, channel and outcome.",
	},
	[]string{"category", "channel", "outcome"},
)

// Dispatcher resolves notification targets and fans deliveries out to the
// configured channels. Failures are logged, counted and swallowed: a broken
// device token or mail hiccup must never roll back the business operation
// that emitted the notification.
type Dispatcher struct {
	db    *gorm.DB
	push  PushClient
	email EmailClient
}

// NewDispatcher creates a dispatcher. The email client may be nil when the
// email channel is disabled.
func NewDispatcher(db *gorm.DB, push PushClient, email EmailClient) *Dispatcher {
	return &Dispatcher{db: db, push: push, email: email}
}

// Send resolves the notification target to concrete users and delivers on
// every requested channel. Only target resolution errors are returned.
func (d *Dispatcher) Send(ctx context.Context, n *Notification) error {
	targets, err := d.resolveTargets(n)
	if err != nil {
		return err
	}

	for i := range targets {
		if n.HasChannel(ChannelPush) && d.push != nil {
			d.sendPush(ctx, &targets[i], n)
		}

		if n.HasChannel(ChannelEmail) && d.email != nil {
			d.sendEmail(&targets[i], n)
		}
	}

	return nil
}

func (d *Dispatcher) resolveTargets(n *Notification) ([]models.User, error) {
	switch {
	case n.TargetTeamID != nil:
		users, err := user.ListActiveInTeam(d.db, *n.TargetTeamID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve team target: %w", err)
		}

		return users, nil
	case n.TargetUserID != nil:
		u, err := user.GetByID(d.db, *n.TargetUserID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user target: %w", err)
		}

		return []models.User{*u}, nil
	default:
		return nil, errors.New("notification has no target")
	}
}

// sendPush delivers to every device token of the user. A token the provider
// reports as not registered is deleted and processing continues with the
// remaining tokens.
func (d *Dispatcher) sendPush(ctx context.Context, target *models.User, n *Notification) {
	tokens, err := pushtoken.ListByUser(d.db, target.ID)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", target.ID).Msg("failed to load push tokens")
		return
	}

	for _, t := range tokens {
		err := d.push.SendToToken(ctx, t.Token, n)

		switch {
		case errors.Is(err, ErrTokenNotRegistered):
			if delErr := pushtoken.Delete(d.db, t.Token); delErr != nil {
				log.Error().Err(delErr).Uint64("user_id", target.ID).Msg("failed to delete stale push token")
			} else {
				log.Info().Uint64("user_id", target.ID).Msg("deleted stale push token")
			}

			deliveries.WithLabelValues(string(n.Category), string(ChannelPush), "stale_token").Inc()
		case err != nil:
			log.Error().Err(err).Uint64("user_id", target.ID).
				Str("category", string(n.Category)).Msg("push delivery failed")
			deliveries.WithLabelValues(string(n.Category), string(ChannelPush), "error").Inc()
		default:
			deliveries.WithLabelValues(string(n.Category), string(ChannelPush), "ok").Inc()
		}
	}
}

func (d *Dispatcher) sendEmail(target *models.User, n *Notification) {
	if n.Email == nil || target.Email == "" {
		return
	}

	if err := d.email.SendEmail(target.Email, n.Email.Subject, n.Email.Body); err != nil {
		log.Error().Err(err).Uint64("user_id", target.ID).
			Str("category", string(n.Category)).Msg("email delivery failed")
		deliveries.WithLabelValues(string(n.Category), string(ChannelEmail), "error").Inc()

		return
	}

	deliveries.WithLabelValues(string(n.Category), string(ChannelEmail), "ok").Inc()
}
