package models

import (
	"time"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/apperr"
)

// Role enumerates the roles a user can hold. A user may hold multiple
// roles simultaneously, each persisted as its own RoleAssignment row.
type Role string

const (
	// RoleAdmin grants unrestricted access to every entity.
	RoleAdmin Role = "admin"
	// RoleRegionManager grants view and edit access scoped to a region.
	RoleRegionManager Role = "region_manager"
	// RoleRegionObserver grants view-only access scoped to a region.
	RoleRegionObserver Role = "region_observer"
	// RoleVolunteer grants access scoped to the volunteer's own team.
	RoleVolunteer Role = "volunteer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleRegionManager, RoleRegionObserver, RoleVolunteer:
		return true
	default:
		return false
	}
}

// RoleAssignment is a persisted role held by a user, with its scope modeled
// as explicit per-role columns instead of a single overloaded value:
// RegionID is set for RegionManager/RegionObserver, TeamID for Volunteer,
// and neither for Admin. The (user, role, region, team) tuple is unique.
type RoleAssignment struct {
	// ID is the unique identifier for the assignment.
	ID uint `gorm:"primaryKey"`
	// UserID is the ID of the user holding the role.
	UserID uint64 `gorm:"not null;uniqueIndex:idx_role_assignment"`
	// Role is the role being assigned.
	Role Role `gorm:"type:varchar(32);not null;uniqueIndex:idx_role_assignment"`
	// RegionID scopes a RegionManager or RegionObserver assignment.
	RegionID *uint `gorm:"uniqueIndex:idx_role_assignment"`
	// TeamID scopes a Volunteer assignment.
	TeamID *uint `gorm:"uniqueIndex:idx_role_assignment"`
	// CreatedAt is the timestamp when the assignment was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the RoleAssignment model.
func (RoleAssignment) TableName() string {
	return "role_assignments"
}

// NewAdminAssignment creates an unscoped Admin assignment.
func NewAdminAssignment(userID uint64) RoleAssignment {
	return RoleAssignment{UserID: userID, Role: RoleAdmin}
}

// NewRegionManagerAssignment creates a RegionManager assignment scoped to a region.
func NewRegionManagerAssignment(userID uint64, regionID uint) RoleAssignment {
	return RoleAssignment{UserID: userID, Role: RoleRegionManager, RegionID: &regionID}
}

// NewRegionObserverAssignment creates a RegionObserver assignment scoped to a region.
func NewRegionObserverAssignment(userID uint64, regionID uint) RoleAssignment {
	return RoleAssignment{UserID: userID, Role: RoleRegionObserver, RegionID: &regionID}
}

// NewVolunteerAssignment creates a Volunteer assignment scoped to a team.
func NewVolunteerAssignment(userID uint64, teamID uint) RoleAssignment {
	return RoleAssignment{UserID: userID, Role: RoleVolunteer, TeamID: &teamID}
}

// Validate checks that the assignment carries exactly the scope its role requires.
func (a *RoleAssignment) Validate() error {
	switch a.Role {
	case RoleAdmin:
		if a.RegionID != nil || a.TeamID != nil {
			return apperr.BadRequest("admin role must not carry a region or team scope")
		}
	case RoleRegionManager, RoleRegionObserver:
		if a.RegionID == nil {
			return apperr.BadRequest("role %s requires a region", a.Role)
		}

		if a.TeamID != nil {
			return apperr.BadRequest("role %s must not carry a team scope", a.Role)
		}
	case RoleVolunteer:
		if a.TeamID == nil {
			return apperr.BadRequest("role %s requires a team", a.Role)
		}

		if a.RegionID != nil {
			return apperr.BadRequest("role %s must not carry a region scope", a.Role)
		}
	default:
		return apperr.BadRequest("unknown role %q", string(a.Role))
	}

	return nil
}

// Matches reports whether the assignment is of the given role, and when a
// region is given, whether it is scoped to that region. A nil region matches
// any scope.
func (a *RoleAssignment) Matches(role Role, regionID *uint) bool {
	if a.Role != role {
		return false
	}

	if regionID == nil {
		return true
	}

	return a.RegionID != nil && *a.RegionID == *regionID
}

// SameScope reports whether the assignment has the same role and scope as other.
func (a *RoleAssignment) SameScope(other *RoleAssignment) bool {
	return a.Role == other.Role &&
		equalUintPtr(a.RegionID, other.RegionID) &&
		equalUintPtr(a.TeamID, other.TeamID)
}

func equalUintPtr(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
