package models

import "time"

// RabbitStatus is the lifecycle status of a single rabbit. The intended
// transitions are Incoming -> Adoptable <-> InTreatment, with Adopted and
// Deceased as terminal states.
type RabbitStatus string

const (
	// StatusIncoming means the rabbit is expected but not yet admitted.
	StatusIncoming RabbitStatus = "incoming"
	// StatusAdoptable means the rabbit is healthy and waiting for adoption.
	StatusAdoptable RabbitStatus = "adoptable"
	// StatusInTreatment means the rabbit is under medical treatment.
	StatusInTreatment RabbitStatus = "in_treatment"
	// StatusAdopted means the rabbit has been adopted (terminal).
	StatusAdopted RabbitStatus = "adopted"
	// StatusDeceased means the rabbit has died (terminal).
	StatusDeceased RabbitStatus = "deceased"
)

// Valid reports whether s is one of the known statuses.
func (s RabbitStatus) Valid() bool {
	switch s {
	case StatusIncoming, StatusAdoptable, StatusInTreatment, StatusAdopted, StatusDeceased:
		return true
	default:
		return false
	}
}

// Terminal reports whether s is a terminal status.
func (s RabbitStatus) Terminal() bool {
	return s == StatusAdopted || s == StatusDeceased
}

// Rabbit represents a single rabbit in the shelter's care. A rabbit
// belongs to exactly one rabbit group at a time.
//
// Medical fields are mutable only through the rabbit-note subsystem,
// never directly through rabbit updates.
type Rabbit struct {
	// ID is the unique identifier for the rabbit.
	ID uint `gorm:"primaryKey"`
	// Name is the rabbit's given name.
	Name string `gorm:"size:100;not null"`
	// Status is the rabbit's lifecycle status.
	Status RabbitStatus `gorm:"type:varchar(32);not null;default:'incoming'"`
	// RabbitGroupID is the group the rabbit currently belongs to.
	RabbitGroupID uint `gorm:"not null;index"`
	// ExpectedAdmissionDate is when the rabbit was expected to be admitted.
	// Rabbits still Incoming past this date are picked up by the admission sweep.
	ExpectedAdmissionDate *time.Time
	// Weight is the last recorded weight in kilograms.
	Weight *float64
	// ChipNumber is the microchip identifier, when chipped.
	ChipNumber string `gorm:"size:64"`
	// CastrationDate is when the rabbit was castrated, if it was.
	CastrationDate *time.Time
	// DewormingDate is when the rabbit was last dewormed.
	DewormingDate *time.Time
	// VaccinationDate is when the rabbit was last vaccinated.
	VaccinationDate *time.Time
	// CreatedAt is the timestamp when the rabbit was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the rabbit was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Rabbit model.
func (Rabbit) TableName() string {
	return "rabbits"
}
