package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/apperr"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
)

func rabbitsWith(statuses ...models.RabbitStatus) []models.Rabbit {
	rabbits := make([]models.Rabbit, 0, len(statuses))
	for i, s := range statuses {
		rabbits = append(rabbits, models.Rabbit{ID: uint(i + 1), Status: s})
	}

	return rabbits
}

func TestGroupStatus(t *testing.T) {
	testCases := []struct {
		name         string
		rabbits      []models.Rabbit
		expected     models.RabbitGroupStatus
		wantConflict bool
	}{
		{
			name:         "no rabbits conflicts",
			rabbits:      nil,
			wantConflict: true,
		},
		{
			name:     "all incoming",
			rabbits:  rabbitsWith(models.StatusIncoming, models.StatusIncoming),
			expected: models.GroupStatusIncoming,
		},
		{
			name:     "all adoptable",
			rabbits:  rabbitsWith(models.StatusAdoptable, models.StatusAdoptable, models.StatusAdoptable),
			expected: models.GroupStatusAdoptable,
		},
		{
			name:     "one in treatment dominates",
			rabbits:  rabbitsWith(models.StatusAdoptable, models.StatusInTreatment),
			expected: models.GroupStatusInTreatment,
		},
		{
			name:     "treatment dominates incoming mix",
			rabbits:  rabbitsWith(models.StatusIncoming, models.StatusInTreatment, models.StatusAdoptable),
			expected: models.GroupStatusInTreatment,
		},
		{
			name:     "all adopted",
			rabbits:  rabbitsWith(models.StatusAdopted, models.StatusAdopted),
			expected: models.GroupStatusAdopted,
		},
		{
			name:     "all deceased",
			rabbits:  rabbitsWith(models.StatusDeceased),
			expected: models.GroupStatusDeceased,
		},
		{
			name:         "partial adoption conflicts",
			rabbits:      rabbitsWith(models.StatusAdopted, models.StatusAdoptable),
			wantConflict: true,
		},
		{
			name:         "partial deceased conflicts",
			rabbits:      rabbitsWith(models.StatusDeceased, models.StatusIncoming),
			wantConflict: true,
		},
		{
			name:         "deceased dominates adopted conflict",
			rabbits:      rabbitsWith(models.StatusDeceased, models.StatusAdopted),
			wantConflict: true,
		},
		{
			name:         "incoming and adoptable mix conflicts",
			rabbits:      rabbitsWith(models.StatusIncoming, models.StatusAdoptable),
			wantConflict: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			derived, err := GroupStatus(tc.rabbits)

			if tc.wantConflict {
				require.Error(t, err)
				assert.True(t, apperr.IsConflict(err), "expected a conflict, got %v", err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, derived)
		})
	}
}
