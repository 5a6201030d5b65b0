package permission

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/controller/team"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/controller/teamhistory"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/controller/user"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
)

// AddUserToTeam puts the user on the team and opens a tenure interval in the
// ledger. Re-adding a user to their current team is idempotent: no duplicate
// open interval is created.
func (s *Service) AddUserToTeam(tx *gorm.DB, u *models.User, t *models.Team) error {
	u.TeamID = &t.ID
	u.Team = t

	if err := user.Save(tx, u); err != nil {
		return err
	}

	open, err := teamhistory.HasOpen(tx, u.ID, t.ID)
	if err != nil {
		return err
	}

	if open {
		return nil
	}

	return teamhistory.Open(tx, u.ID, t.ID, time.Now())
}

// RemoveUserFromTeam takes the user off their team, closes every open tenure
// interval, and hands the team to the cleanup policy when no active members
// remain. A user without a team still gets their ledger repaired.
func (s *Service) RemoveUserFromTeam(tx *gorm.DB, u *models.User) error {
	if u.TeamID == nil {
		return teamhistory.CloseOpen(tx, u.ID, time.Now())
	}

	teamID := *u.TeamID

	u.TeamID = nil
	u.Team = nil

	if err := user.Save(tx, u); err != nil {
		return err
	}

	if err := teamhistory.CloseOpen(tx, u.ID, time.Now()); err != nil {
		return err
	}

	count, err := user.CountActiveInTeam(tx, teamID)
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	return s.policy.CleanupTeam(tx, teamID)
}

// CleanupPolicy decides what happens to a team once its last active member
// leaves. The choice is deliberately pluggable: shelters differ on whether an
// orphaned team should be archived outright or kept while animals remain in
// its care.
type CleanupPolicy interface {
	CleanupTeam(tx *gorm.DB, teamID uint) error
}

// DeactivateOrphanPolicy deactivates an orphaned team unless it still has
// rabbit groups in a non-terminal status; a team with animals in its care
// stays active so the groups remain visible to regional staff. This is the
// default policy.
type DeactivateOrphanPolicy struct{}

// CleanupTeam implements CleanupPolicy.
func (DeactivateOrphanPolicy) CleanupTeam(tx *gorm.DB, teamID uint) error {
	outstanding, err := team.CountOutstandingGroups(tx, teamID)
	if err != nil {
		return err
	}

	if outstanding > 0 {
		log.Info().Uint("team_id", teamID).Int64("outstanding_groups", outstanding).
			Msg("team has no active members but keeps outstanding rabbit groups, leaving active")

		return nil
	}

	return team.SetActive(tx, teamID, false)
}
