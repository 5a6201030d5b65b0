package models

import "time"

// User represents a person known to the shelter back office: staff,
// region managers, observers and volunteers. Authentication happens at
// the external identity provider; the UID column links the local row to
// the provider's account.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// UID is the identity provider's account identifier for this user.
	UID string `gorm:"unique;size:128;not null"`
	// Email is the user's email address.
	Email string `gorm:"size:255;not null"`
	// Phone is the user's phone number.
	Phone string `gorm:"size:32"`
	// FirstName is the user's first or given name.
	FirstName string `gorm:"size:100"`
	// LastName is the user's last or family name.
	LastName string `gorm:"size:100"`
	// Active indicates whether the user account is active. Set explicitly
	// on create, same as Team.Active.
	Active bool `gorm:"not null"`
	// TeamID is the team the user currently serves on, nil when not a team member.
	// A user belongs to at most one team at a time.
	TeamID *uint `gorm:"index"`
	// Team is the associated team, when TeamID is set.
	Team *Team `gorm:"foreignKey:TeamID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE"`
	// Roles are the role assignments held by this user.
	Roles []RoleAssignment `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
	// DeletedAt is the soft delete timestamp (nil if not deleted, managed by GORM).
	DeletedAt *time.Time
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// HasAssignment reports whether the user already holds an assignment with
// the same role and scope.
func (u *User) HasAssignment(candidate *RoleAssignment) bool {
	for i := range u.Roles {
		if u.Roles[i].SameScope(candidate) {
			return true
		}
	}

	return false
}
