package models

import "time"

// RabbitGroupStatus is the aggregate lifecycle status of a rabbit group.
// It is always a pure function of the member rabbits' statuses and is never
// set independently except through the derivation in the status package.
type RabbitGroupStatus string

const (
	// GroupStatusIncoming means every member rabbit is still incoming.
	GroupStatusIncoming RabbitGroupStatus = "incoming"
	// GroupStatusAdoptable means every member rabbit is adoptable.
	GroupStatusAdoptable RabbitGroupStatus = "adoptable"
	// GroupStatusInTreatment means at least one member rabbit is in treatment.
	GroupStatusInTreatment RabbitGroupStatus = "in_treatment"
	// GroupStatusAdopted means every member rabbit has been adopted (terminal).
	GroupStatusAdopted RabbitGroupStatus = "adopted"
	// GroupStatusDeceased means every member rabbit has died (terminal).
	GroupStatusDeceased RabbitGroupStatus = "deceased"
)

// Valid reports whether s is one of the known group statuses.
func (s RabbitGroupStatus) Valid() bool {
	switch s {
	case GroupStatusIncoming, GroupStatusAdoptable, GroupStatusInTreatment, GroupStatusAdopted, GroupStatusDeceased:
		return true
	default:
		return false
	}
}

// RabbitGroup is an inseparable cluster of rabbits sharing a lifecycle
// status. Groups are always adopted or retired together. An active group
// always has at least one rabbit.
type RabbitGroup struct {
	// ID is the unique identifier for the group.
	ID uint `gorm:"primaryKey"`
	// RegionID is the region owning this group.
	RegionID uint `gorm:"not null;index"`
	// Region is the owning region (enforced with a foreign key constraint).
	Region Region `gorm:"foreignKey:RegionID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE"`
	// TeamID is the team currently caring for this group, nil when unassigned.
	TeamID *uint `gorm:"index"`
	// Team is the caring team, when TeamID is set.
	Team *Team `gorm:"foreignKey:TeamID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE"`
	// Status mirrors the dominant status of the member rabbits.
	Status RabbitGroupStatus `gorm:"type:varchar(32);not null;default:'incoming'"`
	// AdoptionDate is set iff Status is adopted.
	AdoptionDate *time.Time
	// Rabbits are the member rabbits of this group.
	Rabbits []Rabbit `gorm:"foreignKey:RabbitGroupID;references:ID"`
	// CreatedAt is the timestamp when the group was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the group was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the RabbitGroup model.
func (RabbitGroup) TableName() string {
	return "rabbit_groups"
}
