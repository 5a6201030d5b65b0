package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/apperr"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/config"
	"github.com/GoShelter-Admin/GoShelter-Admin/internal/db/models"
)

const securetokenIssuer = "https://securetoken.google.com/%s"

// Verifier validates identity-provider ID tokens and maps their custom
// claims onto UserDetails principals.
type Verifier struct {
	verifier *oidc.IDTokenVerifier
}

// tokenClaims is the custom claims payload the identity provider attaches
// to ID tokens. The claims are the durable source of truth for "what roles
// does this principal currently present".
type tokenClaims struct {
	Email           string        `json:"email"`
	PhoneNumber     string        `json:"phone_number"`
	Roles           []models.Role `json:"roles"`
	ManagerRegions  []uint        `json:"managerRegions"`
	ObserverRegions []uint        `json:"observerRegions"`
	TeamID          *uint         `json:"teamId"`
}

// NewVerifier creates a token verifier against the provider's OIDC issuer.
func NewVerifier(ctx context.Context, cfg config.Identity) (*Verifier, error) {
	issuer := cfg.IssuerURL
	if issuer == "" {
		issuer = fmt.Sprintf(securetokenIssuer, cfg.ProjectID)
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID: cfg.ProjectID,
	})

	return &Verifier{verifier: verifier}, nil
}

// VerifyIDToken validates a raw ID token and constructs the principal from
// its claims. Principal validation applies: a token presenting a role
// without its required scope claim is rejected.
func (v *Verifier) VerifyIDToken(ctx context.Context, rawToken string) (*UserDetails, error) {
	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, apperr.Forbidden("invalid id token: %v", err)
	}

	var claims tokenClaims
	if err := token.Claims(&claims); err != nil {
		return nil, apperr.Forbidden("malformed token claims: %v", err)
	}

	return NewUserDetails(UserDetails{
		UID:             token.Subject,
		Email:           claims.Email,
		Phone:           claims.PhoneNumber,
		Roles:           claims.Roles,
		ManagerRegions:  claims.ManagerRegions,
		ObserverRegions: claims.ObserverRegions,
		TeamID:          claims.TeamID,
	})
}
