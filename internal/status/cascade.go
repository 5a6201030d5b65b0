package status

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/apperr"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/controller/rabbit"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/controller/rabbitgroup"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/notify"
)

// Cascade keeps rabbit and rabbit-group statuses consistent. Every write
// path that can change a rabbit's status or group membership goes through
// one of its methods; the propagation is explicit control flow, not a
// storage hook.
//
// The propagation is naturally mutually recursive (rabbit change -> group
// recompute -> member propagate -> rabbit change). The fromCascade flag on
// the internal apply functions is the re-entrancy guard: a write generated
// by the cascade never re-enters the cascade.
type Cascade struct {
	sender notify.Sender
}

// NewCascade creates a cascade. The sender may be nil to disable
// notifications.
func NewCascade(sender notify.Sender) *Cascade {
	return &Cascade{sender: sender}
}

// RabbitStatusChanged applies a new status to the rabbit and recomputes its
// group's status over the full current membership, with the changing
// rabbit's new status substituted in. It must run inside the caller's
// transaction; a Conflict aborts it.
func (c *Cascade) RabbitStatusChanged(tx *gorm.DB, rabbitID uint, newStatus models.RabbitStatus) error {
	if !newStatus.Valid() {
		return apperr.BadRequest("unknown rabbit status %q", string(newStatus))
	}

	r, err := rabbit.GetByID(tx, rabbitID)
	if err != nil {
		return apperr.Wrap(apperr.NotFound("rabbit %d not found", rabbitID), err)
	}

	if r.Status == newStatus {
		return nil
	}

	members, err := rabbit.ListByGroup(tx, r.RabbitGroupID)
	if err != nil {
		return err
	}

	// Proposed member set: the changing rabbit carries its new status.
	for i := range members {
		if members[i].ID == r.ID {
			members[i].Status = newStatus
		}
	}

	derived, err := GroupStatus(members)
	if err != nil {
		return err
	}

	r.Status = newStatus
	if err := rabbit.Save(tx, r); err != nil {
		return err
	}

	group, err := rabbitgroup.GetByID(tx, r.RabbitGroupID)
	if err != nil {
		return err
	}

	// fromCascade: the group write must not bounce back into the members.
	return c.applyGroupStatus(tx, group, derived, true)
}

// GroupStatusChanged applies a directly observed group status change (for
// example a bulk operator override) and propagates the new status to every
// member rabbit unconditionally.
func (c *Cascade) GroupStatusChanged(tx *gorm.DB, groupID uint, newStatus models.RabbitGroupStatus) error {
	if !newStatus.Valid() {
		return apperr.BadRequest("unknown group status %q", string(newStatus))
	}

	group, err := rabbitgroup.GetByID(tx, groupID)
	if err != nil {
		return apperr.Wrap(apperr.NotFound("rabbit group %d not found", groupID), err)
	}

	return c.applyGroupStatus(tx, group, newStatus, false)
}

// MoveRabbit moves the rabbit to the destination group and recomputes the
// status of the origin group (membership minus the moved rabbit) and then
// of the destination group (membership plus the moved rabbit). Each
// recomputation uses its own membership snapshot.
func (c *Cascade) MoveRabbit(ctx context.Context, tx *gorm.DB, rabbitID, destGroupID uint) error {
	r, err := rabbit.GetByID(tx, rabbitID)
	if err != nil {
		return apperr.Wrap(apperr.NotFound("rabbit %d not found", rabbitID), err)
	}

	if r.RabbitGroupID == destGroupID {
		return nil
	}

	origin, err := rabbitgroup.GetByID(tx, r.RabbitGroupID)
	if err != nil {
		return err
	}

	dest, err := rabbitgroup.GetByID(tx, destGroupID)
	if err != nil {
		return apperr.Wrap(apperr.NotFound("rabbit group %d not found", destGroupID), err)
	}

	if origin.RegionID != dest.RegionID {
		return apperr.BadRequest("cannot move rabbit across regions")
	}

	r.RabbitGroupID = dest.ID
	if err := rabbit.Save(tx, r); err != nil {
		return err
	}

	// Origin first, then destination.
	if err := c.recomputeGroup(tx, origin); err != nil {
		return err
	}

	if err := c.recomputeGroup(tx, dest); err != nil {
		return err
	}

	c.notifyMove(ctx, origin, dest, r.ID)

	return nil
}

// recomputeGroup re-derives a group's status from its current membership.
// An emptied origin group is left untouched; retiring it is the caller's
// concern.
func (c *Cascade) recomputeGroup(tx *gorm.DB, group *models.RabbitGroup) error {
	members, err := rabbit.ListByGroup(tx, group.ID)
	if err != nil {
		return err
	}

	if len(members) == 0 {
		log.Warn().Uint("group_id", group.ID).Msg("group has no rabbits left, skipping status recompute")
		return nil
	}

	derived, err := GroupStatus(members)
	if err != nil {
		return err
	}

	return c.applyGroupStatus(tx, group, derived, true)
}

// applyGroupStatus writes the group status. The adoptionDate bookkeeping is
// evaluated before the status write lands: entering Adopted stamps the
// date, leaving it clears the date. With fromCascade unset the new status
// is propagated to every member rabbit.
func (c *Cascade) applyGroupStatus(tx *gorm.DB, group *models.RabbitGroup, newStatus models.RabbitGroupStatus, fromCascade bool) error {
	if newStatus == models.GroupStatusAdopted {
		if group.AdoptionDate == nil {
			now := time.Now()
			group.AdoptionDate = &now
		}
	} else if group.AdoptionDate != nil {
		group.AdoptionDate = nil
	}

	group.Status = newStatus
	if err := rabbitgroup.Save(tx, group); err != nil {
		return err
	}

	if fromCascade {
		return nil
	}

	// Direct group-status write: propagate to members unconditionally,
	// guarded against bouncing back into the per-rabbit trigger.
	memberStatus := models.RabbitStatus(newStatus)

	members, err := rabbit.ListByGroup(tx, group.ID)
	if err != nil {
		return err
	}

	for i := range members {
		if members[i].Status == memberStatus {
			continue
		}

		members[i].Status = memberStatus
		if err := rabbit.Save(tx, &members[i]); err != nil {
			return err
		}
	}

	return nil
}

// notifyMove emits the assignment/move notification for a completed move.
// Delivery is fire-and-forget and never affects the transaction.
func (c *Cascade) notifyMove(ctx context.Context, origin, dest *models.RabbitGroup, rabbitID uint) {
	if c.sender == nil || dest.TeamID == nil {
		return
	}

	if dest.Team != nil && !dest.Team.Active {
		return
	}

	var n *notify.Notification
	if origin.TeamID != nil && *origin.TeamID == *dest.TeamID {
		n = notify.RabbitMoved(*dest.TeamID, rabbitID)
	} else {
		n = notify.RabbitAssigned(*dest.TeamID, rabbitID)
	}

	if err := c.sender.Send(ctx, n); err != nil {
		log.Error().Err(err).Uint("rabbit_id", rabbitID).Msg("failed to send move notification")
	}
}
