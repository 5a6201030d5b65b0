// Package permission implements the role mutation service: adding and
// removing roles for a user while keeping the relational model, the
// team-history ledger and the external identity provider's claims
// consistent.
//
// Every mutation runs as a single transaction. The identity provider is
// always reconciled, even when the local row change turned out to be a
// no-op: its claims, not the local rows, are what a token presents.
package permission

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/apperr"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/controller/region"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/controller/team"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/controller/user"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/identity"
)

// Service orchestrates role mutations.
type Service struct {
	db       *gorm.DB
	identity identity.Provider
	policy   CleanupPolicy
}

// NewService creates a permission service. A nil policy falls back to
// DeactivateOrphanPolicy.
func NewService(db *gorm.DB, provider identity.Provider, policy CleanupPolicy) *Service {
	if policy == nil {
		policy = DeactivateOrphanPolicy{}
	}

	return &Service{db: db, identity: provider, policy: policy}
}

// AddRoleToUser adds a role to the user. RegionID scopes RegionManager and
// RegionObserver assignments; for Volunteer the target team is resolved by
// precedence: explicit teamID, then a fresh team in the explicit region,
// then a fresh team in the user's current team's region.
func (s *Service) AddRoleToUser(ctx context.Context, userID uint64, role models.Role, regionID, teamID *uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.addRole(ctx, tx, userID, role, regionID, teamID)
	})
}

func (s *Service) addRole(ctx context.Context, tx *gorm.DB, userID uint64, role models.Role, regionID, teamID *uint) error {
	u, err := loadUser(tx, userID)
	if err != nil {
		return err
	}

	if !u.Active {
		return apperr.BadRequest("user %d is inactive", userID)
	}

	var (
		assignment models.RoleAssignment
		claimInfo  *uint
	)

	switch role {
	case models.RoleAdmin:
		assignment = models.NewAdminAssignment(userID)
	case models.RoleRegionManager, models.RoleRegionObserver:
		if regionID == nil {
			return apperr.BadRequest("role %s requires a region", role)
		}

		exists, err := region.Exists(tx, *regionID)
		if err != nil {
			return err
		}

		if !exists {
			return apperr.BadRequest("region %d does not exist", *regionID)
		}

		if role == models.RoleRegionManager {
			assignment = models.NewRegionManagerAssignment(userID, *regionID)
		} else {
			assignment = models.NewRegionObserverAssignment(userID, *regionID)
		}

		claimInfo = regionID
	case models.RoleVolunteer:
		t, err := s.resolveVolunteerTeam(tx, u, regionID, teamID)
		if err != nil {
			return err
		}

		// Close the previous membership before opening the new one.
		if u.TeamID != nil && *u.TeamID != t.ID {
			if err := s.RemoveUserFromTeam(tx, u); err != nil {
				return err
			}
		}

		if err := s.AddUserToTeam(tx, u, t); err != nil {
			return err
		}

		assignment = models.NewVolunteerAssignment(userID, t.ID)
		claimInfo = &t.ID
	default:
		return apperr.BadRequest("unknown role %q", string(role))
	}

	// Skip persisting a duplicate (role, scope) row.
	if u.HasAssignment(&assignment) {
		log.Debug().Uint64("user_id", userID).Str("role", string(role)).
			Msg("role assignment already present, skipping local row")
	} else if err := tx.Create(&assignment).Error; err != nil {
		return err
	}

	// Always reconcile the provider claims, new local row or not.
	if err := s.identity.AddRoleToUser(ctx, u.UID, role, claimInfo); err != nil {
		return err
	}

	return nil
}

// resolveVolunteerTeam picks the target team for a volunteer assignment.
func (s *Service) resolveVolunteerTeam(tx *gorm.DB, u *models.User, regionID, teamID *uint) (*models.Team, error) {
	switch {
	case teamID != nil:
		t, err := team.GetActiveByID(tx, *teamID)
		if errors.Is(err, team.ErrTeamNotFound) || errors.Is(err, team.ErrTeamInactive) {
			return nil, apperr.Wrap(apperr.BadRequest("team %d does not exist or is inactive", *teamID), err)
		}

		if err != nil {
			return nil, err
		}

		return t, nil
	case regionID != nil:
		exists, err := region.Exists(tx, *regionID)
		if err != nil {
			return nil, err
		}

		if !exists {
			return nil, apperr.BadRequest("region %d does not exist", *regionID)
		}

		return team.Create(tx, *regionID)
	case u.TeamID != nil:
		current, err := team.GetByID(tx, *u.TeamID)
		if err != nil {
			return nil, err
		}

		return team.Create(tx, current.RegionID)
	default:
		return nil, apperr.BadRequest("additional information required: team or region")
	}
}

// RemoveRoleFromUser removes a role from the user. RegionManager and
// RegionObserver rows are matched on the exact (role, region) pair; Admin
// and Volunteer removal drops every row of that role.
func (s *Service) RemoveRoleFromUser(ctx context.Context, userID uint64, role models.Role, regionID *uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.removeRole(ctx, tx, userID, role, regionID)
	})
}

func (s *Service) removeRole(ctx context.Context, tx *gorm.DB, userID uint64, role models.Role, regionID *uint) error {
	u, err := loadUser(tx, userID)
	if err != nil {
		return err
	}

	match := regionID
	if role == models.RoleAdmin || role == models.RoleVolunteer {
		match = nil // scope does not participate in matching
	}

	var matching []models.RoleAssignment
	for i := range u.Roles {
		if u.Roles[i].Matches(role, match) {
			matching = append(matching, u.Roles[i])
		}
	}

	// Volunteer removal always repairs team state, role row or not.
	if role == models.RoleVolunteer {
		if err := s.RemoveUserFromTeam(tx, u); err != nil {
			return err
		}
	}

	if len(matching) == 0 {
		log.Warn().Uint64("user_id", userID).Str("role", string(role)).
			Msg("no matching role assignment found, skipping local removal")
	} else {
		ids := make([]uint, 0, len(matching))
		for i := range matching {
			ids = append(ids, matching[i].ID)
		}

		if err := tx.Delete(&models.RoleAssignment{}, "id IN ?", ids).Error; err != nil {
			return err
		}
	}

	// Best-effort claim reconciliation: removal failures are logged, not
	// propagated, so a provider hiccup cannot block revoking local access.
	if err := s.identity.RemoveRoleFromUser(ctx, u.UID, role, regionID); err != nil {
		log.Error().Err(err).Uint64("user_id", userID).Str("role", string(role)).
			Msg("failed to reconcile role removal with identity provider")
	}

	return nil
}

// DeactivateUser disables the user. The user's team is deactivated as well
// when no other active members remain.
func (s *Service) DeactivateUser(ctx context.Context, userID uint64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		u, err := loadUser(tx, userID)
		if err != nil {
			return err
		}

		u.Active = false
		if err := user.Save(tx, u); err != nil {
			return err
		}

		if u.TeamID != nil {
			count, err := user.CountActiveInTeam(tx, *u.TeamID)
			if err != nil {
				return err
			}

			if count == 0 {
				if err := team.SetActive(tx, *u.TeamID, false); err != nil {
					return err
				}
			}
		}

		return s.identity.DeactivateUser(ctx, u.UID)
	})
}

// ActivateUser re-enables the user, reactivating the user's team
// unconditionally when there is one.
func (s *Service) ActivateUser(ctx context.Context, userID uint64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		u, err := loadUser(tx, userID)
		if err != nil {
			return err
		}

		u.Active = true
		if err := user.Save(tx, u); err != nil {
			return err
		}

		if u.TeamID != nil {
			if err := team.SetActive(tx, *u.TeamID, true); err != nil {
				return err
			}
		}

		return s.identity.ActivateUser(ctx, u.UID)
	})
}

func loadUser(tx *gorm.DB, userID uint64) (*models.User, error) {
	u, err := user.GetByID(tx, userID)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, apperr.Wrap(apperr.NotFound("user %d not found", userID), err)
	}

	if err != nil {
		return nil, err
	}

	return u, nil
}
