package models

import "time"

// Team represents a volunteer group within a region. Teams hold rabbit
// groups and are the unit of access for volunteers.
//
// A team is deactivated, not deleted, when it has no active members left,
// unless it still has outstanding rabbits.
type Team struct {
	// ID is the unique identifier for the team.
	ID uint `gorm:"primaryKey"`
	// RegionID is the ID of the region owning this team.
	RegionID uint `gorm:"not null;index"`
	// Region is the owning region (enforced with a foreign key constraint).
	Region Region `gorm:"foreignKey:RegionID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE"`
	// Active indicates whether the team is active. Callers set it
	// explicitly on create; a column default would silently override a
	// false value in GORM's zero-value handling.
	Active bool `gorm:"not null"`
	// CreatedAt is the timestamp when the team was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the team was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Team model.
func (Team) TableName() string {
	return "teams"
}
