package models

import "time"

// TeamHistory is an append-only ledger row recording a user's tenure on a
// team. An open interval has a nil EndDate; at most one open interval may
// exist per user at any time. Rows are never mutated except to close the
// open interval.
type TeamHistory struct {
	// ID is the unique identifier for the history row.
	ID uint `gorm:"primaryKey"`
	// UserID is the ID of the user this tenure belongs to.
	UserID uint64 `gorm:"not null;index"`
	// TeamID is the ID of the team the user served on.
	TeamID uint `gorm:"not null;index"`
	// StartDate is when the membership was opened.
	StartDate time.Time `gorm:"not null"`
	// EndDate is when the membership was closed, nil while the membership is current.
	EndDate *time.Time
}

// TableName specifies the database table name for the TeamHistory model.
func (TeamHistory) TableName() string {
	return "team_histories"
}

// Open reports whether this interval is still open.
func (h *TeamHistory) Open() bool {
	return h.EndDate == nil
}
