package config

import (
	"time"

	"github.com/GoShelter-Admin/GoShelter-Admin/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	Title     string
	DB        DB
	Log       logger.Log
	Identity  Identity
	Notify    Notify
	Sweep     Sweep
	Webserver Webserver
	Bootstrap Bootstrap
}

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	GormEngine string // "mysql" or "postgres"
}

// Identity holds the external identity provider settings. ID tokens are
// verified against the provider's OIDC issuer; claim mutations are sent to
// the admin endpoint.
type Identity struct {
	ProjectID     string // identity project used to derive the token issuer
	IssuerURL     string // override for the OIDC issuer (defaults to the securetoken issuer for ProjectID)
	AdminEndpoint string // base URL of the claims admin API
	APIKey        string // bearer key for the claims admin API
	Timeout       time.Duration
}

// Notify holds notification delivery settings.
type Notify struct {
	PushEndpoint  string // push provider send endpoint
	PushServerKey string // push provider server key
	PushTimeout   time.Duration

	EmailEnabled bool
	EmailFrom    string
	// Gmail OAuth client settings used by the email channel.
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
}

// Sweep holds the admission-confirmation sweep settings.
type Sweep struct {
	Schedule string // cron expression, e.g. "0 7 * * *"
	// EscalateManagerAfter is how long past the expected admission date the
	// sweep starts notifying the region manager as well as the team.
	EscalateManagerAfter time.Duration
	// AddEmailAfter is how long past the expected admission date the sweep
	// adds the email channel to the notification.
	AddEmailAfter time.Duration
}

// Webserver implement webserver settings.
type Webserver struct {
	Domain       string // domain name for the webserver
	Port         int    // listening port for the webserver
	ShutDownTime int    // wait time for shutdown
	URL          string // base url for the webserver
}

// Bootstrap describes the seed admin account created on first start.
type Bootstrap struct {
	AdminUID   string
	AdminEmail string
}
