// Package status implements the rabbit / rabbit-group lifecycle state
// machine: the pure derivation of a group's status from its members and the
// cascade keeping both sides consistent on every mutation.
package status

import (
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/apperr"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
)

// GroupStatus derives the aggregate group status from the member rabbits'
// statuses. It is evaluated over the proposed member set, with any rabbit
// currently being changed already carrying its new status.
//
// Terminal statuses must be unanimous: a group mixing Deceased or Adopted
// rabbits with anything else is inconsistent and yields a Conflict.
func GroupStatus(rabbits []models.Rabbit) (models.RabbitGroupStatus, error) {
	if len(rabbits) == 0 {
		return "", apperr.Conflict("cannot derive a status for a group without rabbits")
	}

	var (
		deceased    int
		adopted     int
		adoptable   int
		inTreatment int
		incoming    int
	)

	for i := range rabbits {
		switch rabbits[i].Status {
		case models.StatusDeceased:
			deceased++
		case models.StatusAdopted:
			adopted++
		case models.StatusAdoptable:
			adoptable++
		case models.StatusInTreatment:
			inTreatment++
		case models.StatusIncoming:
			incoming++
		}
	}

	total := len(rabbits)

	switch {
	case deceased > 0:
		if deceased != total {
			return "", apperr.Conflict("all rabbits in the group must be deceased")
		}

		return models.GroupStatusDeceased, nil
	case adopted > 0:
		if adopted != total {
			return "", apperr.Conflict("all rabbits in the group must be adopted")
		}

		return models.GroupStatusAdopted, nil
	case adoptable == total:
		return models.GroupStatusAdoptable, nil
	case inTreatment > 0:
		return models.GroupStatusInTreatment, nil
	case incoming == total:
		return models.GroupStatusIncoming, nil
	default:
		// Unreachable by the intended status lattice; a mix such as
		// Incoming and Adoptable without any InTreatment ends up here.
		return "", apperr.Conflict("cannot determine group status")
	}
}
