package auth

import (
	"github.com/go-playground/validator/v10"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/apperr"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
)

var validate = newValidator()

// UserDetails is the authorization principal: the authenticated caller's
// identity plus its roles and role-scoped authority.
type UserDetails struct {
	// UID is the identity provider's account identifier.
	UID string `validate:"required"`
	// Email is the verified email address from the token.
	Email string
	// Phone is the phone number from the token, if present.
	Phone string
	// Roles is the set of roles the token presents.
	Roles []models.Role `validate:"dive,role"`
	// ManagerRegions is the region authority of a RegionManager.
	ManagerRegions []uint
	// ObserverRegions is the region authority of a RegionObserver.
	ObserverRegions []uint
	// TeamID is the team of a Volunteer.
	TeamID *uint
}

// NewUserDetails constructs a principal and validates the role/scope
// invariants. It fails fast: a role without its required scope is rejected
// at construction time, not on first use.
func NewUserDetails(details UserDetails) (*UserDetails, error) {
	if err := validate.Struct(details); err != nil {
		return nil, apperr.BadRequest("invalid principal: %v", err)
	}

	if details.HasRole(models.RoleRegionManager) && len(details.ManagerRegions) == 0 {
		return nil, apperr.BadRequest("region manager principal requires manager regions")
	}

	if details.HasRole(models.RoleRegionObserver) && len(details.ObserverRegions) == 0 {
		return nil, apperr.BadRequest("region observer principal requires observer regions")
	}

	if details.HasRole(models.RoleVolunteer) && details.TeamID == nil {
		return nil, apperr.BadRequest("volunteer principal requires a team")
	}

	return &details, nil
}

// HasRole reports whether the principal presents the given role.
func (d *UserDetails) HasRole(role models.Role) bool {
	for _, r := range d.Roles {
		if r == role {
			return true
		}
	}

	return false
}

func newValidator() *validator.Validate {
	v := validator.New()

	// "role" restricts a field to the known role enum.
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return models.Role(fl.Field().String()).Valid()
	})

	return v
}
