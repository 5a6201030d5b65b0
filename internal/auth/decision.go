package auth

import (
	"gorm.io/gorm"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/controller/rabbit"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/controller/rabbitgroup"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
)

// PhotoAccess is the three-valued access tier for rabbit photos.
type PhotoAccess int

const (
	// PhotoAccessDeny grants no photo access.
	PhotoAccessDeny PhotoAccess = iota
	// PhotoAccessOwn limits the caller to photos they uploaded themselves.
	// The limitation itself is enforced by the downstream storage rules.
	PhotoAccessOwn
	// PhotoAccessFull grants access to all photos of the rabbit.
	PhotoAccessFull
)

// String returns a short name for the access tier.
func (a PhotoAccess) String() string {
	switch a {
	case PhotoAccessOwn:
		return "own"
	case PhotoAccessFull:
		return "full"
	default:
		return "deny"
	}
}

// Engine is the access decision engine. It is read-only: every method
// answers an allow/deny question and never mutates state.
type Engine struct {
	db *gorm.DB
}

// NewEngine creates a new decision engine on top of the given store.
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// ValidateRabbitAccess decides whether the principal may view (or, with
// editable set, edit) the rabbit with the given id. The same decision
// procedure covers rabbits and their notes.
func (e *Engine) ValidateRabbitAccess(principal *UserDetails, rabbitID uint, editable bool) (bool, error) {
	// Admin short-circuits without a lookup.
	if principal.HasRole(models.RoleAdmin) {
		return true, nil
	}

	if principal.HasRole(models.RoleRegionManager) {
		ok, err := rabbit.ExistsInRegions(e.db, rabbitID, principal.ManagerRegions)
		if err != nil {
			return false, err
		}

		if ok {
			return true, nil
		}
	}

	// Observers are view-only; for editable access the role is treated as absent.
	if !editable && principal.HasRole(models.RoleRegionObserver) {
		ok, err := rabbit.ExistsInRegions(e.db, rabbitID, principal.ObserverRegions)
		if err != nil {
			return false, err
		}

		if ok {
			return true, nil
		}
	}

	if principal.HasRole(models.RoleVolunteer) && principal.TeamID != nil {
		ok, err := rabbit.ExistsInTeam(e.db, rabbitID, *principal.TeamID)
		if err != nil {
			return false, err
		}

		if ok {
			return true, nil
		}
	}

	return false, nil
}

// ValidateRabbitGroupAccess applies the decision procedure restricted to
// Admin and RegionManager: volunteers and observers have no group-level access.
func (e *Engine) ValidateRabbitGroupAccess(principal *UserDetails, groupID uint) (bool, error) {
	if principal.HasRole(models.RoleAdmin) {
		return true, nil
	}

	if principal.HasRole(models.RoleRegionManager) {
		return rabbitgroup.ExistsInRegions(e.db, groupID, principal.ManagerRegions)
	}

	return false, nil
}

// GrantPhotoAccess returns the photo access tier for the rabbit: regional
// roles with a matching region get Full, a volunteer with a team match gets
// Own, everyone else is denied.
func (e *Engine) GrantPhotoAccess(principal *UserDetails, rabbitID uint) (PhotoAccess, error) {
	if principal.HasRole(models.RoleAdmin) {
		return PhotoAccessFull, nil
	}

	if principal.HasRole(models.RoleRegionManager) {
		ok, err := rabbit.ExistsInRegions(e.db, rabbitID, principal.ManagerRegions)
		if err != nil {
			return PhotoAccessDeny, err
		}

		if ok {
			return PhotoAccessFull, nil
		}
	}

	if principal.HasRole(models.RoleRegionObserver) {
		ok, err := rabbit.ExistsInRegions(e.db, rabbitID, principal.ObserverRegions)
		if err != nil {
			return PhotoAccessDeny, err
		}

		if ok {
			return PhotoAccessFull, nil
		}
	}

	if principal.HasRole(models.RoleVolunteer) && principal.TeamID != nil {
		ok, err := rabbit.ExistsInTeam(e.db, rabbitID, *principal.TeamID)
		if err != nil {
			return PhotoAccessDeny, err
		}

		if ok {
			return PhotoAccessOwn, nil
		}
	}

	return PhotoAccessDeny, nil
}
