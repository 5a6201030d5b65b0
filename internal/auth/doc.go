// Package auth provides the authorization core of the application.
//
// # Principal
//
// UserDetails is the authorization principal constructed from verified
// ID-token claims. Construction validates the role/scope invariants up
// front: a RegionManager principal must carry manager regions, a
// RegionObserver observer regions, and a Volunteer its team. A principal
// with a role but without its required scope never comes into existence.
//
// # Access Decision Engine
//
// The Engine answers "can principal P perform action A (view | edit) on
// entity E" without mutating state. Roles are checked in a fixed order to
// keep decisions deterministic for principals holding multiple roles:
//
//	Admin -> RegionManager -> RegionObserver (view only) -> Volunteer
//
// Admin short-circuits to allow without a lookup. The other roles delegate
// a scoped existence lookup to the db controllers; the engine only picks
// the constraint set, it never executes storage queries itself.
//
// An empty manager/observer region list is never treated as a wildcard.
//
// # Token verification
//
// Verifier validates ID tokens issued by the external identity provider
// against its OIDC issuer and maps the custom role claims onto UserDetails.
package auth
