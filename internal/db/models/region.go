package models

import "time"

// Region represents a top-level organizational partition of the shelter.
// Regions own volunteer teams and rabbit groups, and scope the authority
// of Region Managers and Region Observers.
type Region struct {
	// ID is the unique identifier for the region.
	ID uint `gorm:"primaryKey"`
	// Name is the unique human-readable name of the region.
	Name string `gorm:"unique;size:100;not null"`
	// CreatedAt is the timestamp when the region was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the region was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Region model.
func (Region) TableName() string {
	return "regions"
}
