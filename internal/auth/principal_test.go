package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/apperr"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
)

func uintPtr(v uint) *uint { return &v }

func TestNewUserDetails(t *testing.T) {
	testCases := []struct {
		name    string
		details UserDetails
		wantErr bool
	}{
		{
			name: "admin without scopes",
			details: UserDetails{
				UID:   "uid-1",
				Roles: []models.Role{models.RoleAdmin},
			},
		},
		{
			name: "manager with regions",
			details: UserDetails{
				UID:            "uid-2",
				Roles:          []models.Role{models.RoleRegionManager},
				ManagerRegions: []uint{1, 2},
			},
		},
		{
			name: "volunteer with team",
			details: UserDetails{
				UID:    "uid-3",
				Roles:  []models.Role{models.RoleVolunteer},
				TeamID: uintPtr(7),
			},
		},
		{
			name: "multiple roles with all scopes",
			details: UserDetails{
				UID:             "uid-4",
				Roles:           []models.Role{models.RoleRegionManager, models.RoleRegionObserver, models.RoleVolunteer},
				ManagerRegions:  []uint{1},
				ObserverRegions: []uint{2},
				TeamID:          uintPtr(3),
			},
		},
		{
			name: "no roles at all",
			details: UserDetails{
				UID: "uid-5",
			},
		},
		{
			name:    "missing uid",
			details: UserDetails{Roles: []models.Role{models.RoleAdmin}},
			wantErr: true,
		},
		{
			name: "unknown role",
			details: UserDetails{
				UID:   "uid-6",
				Roles: []models.Role{"janitor"},
			},
			wantErr: true,
		},
		{
			name: "manager without regions",
			details: UserDetails{
				UID:   "uid-7",
				Roles: []models.Role{models.RoleRegionManager},
			},
			wantErr: true,
		},
		{
			name: "observer without regions",
			details: UserDetails{
				UID:   "uid-8",
				Roles: []models.Role{models.RoleRegionObserver},
			},
			wantErr: true,
		},
		{
			name: "volunteer without team",
			details: UserDetails{
				UID:   "uid-9",
				Roles: []models.Role{models.RoleVolunteer},
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			principal, err := NewUserDetails(tc.details)

			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.IsBadRequest(err), "expected a bad request, got %v", err)
				assert.Nil(t, principal)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, principal)
			assert.Equal(t, tc.details.UID, principal.UID)
		})
	}
}

func TestHasRole(t *testing.T) {
	principal := &UserDetails{
		UID:            "uid-1",
		Roles:          []models.Role{models.RoleRegionManager, models.RoleVolunteer},
		ManagerRegions: []uint{1},
		TeamID:         uintPtr(4),
	}

	assert.True(t, principal.HasRole(models.RoleRegionManager))
	assert.True(t, principal.HasRole(models.RoleVolunteer))
	assert.False(t, principal.HasRole(models.RoleAdmin))
	assert.False(t, principal.HasRole(models.RoleRegionObserver))
}
