// Package identity wraps the external identity provider's claims admin API.
//
// The provider's custom claims are treated as the durable source of truth
// for what roles a principal presents; every role mutation reconciles them,
// even when the local row change was a no-op. Calls are idempotent and
// best-effort: the caller decides whether a failure aborts its transaction.
package identity

import (
	"context"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
)

// Provider is the identity-provider contract used by the permission service.
type Provider interface {
	// AddRoleToUser adds the role (with its optional scope value) to the
	// account's custom claims.
	AddRoleToUser(ctx context.Context, uid string, role models.Role, info *uint) error
	// RemoveRoleFromUser removes the role (with its optional scope value)
	// from the account's custom claims.
	RemoveRoleFromUser(ctx context.Context, uid string, role models.Role, info *uint) error
	// DeactivateUser disables the account at the provider.
	DeactivateUser(ctx context.Context, uid string) error
	// ActivateUser re-enables the account at the provider.
	ActivateUser(ctx context.Context, uid string) error
}
