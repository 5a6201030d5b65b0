package handler

const (
	// RootPath is the base path of the JSON API.
	RootPath = "/api/v1/"

	// ErrNilACDFatalLogMsg app config or db error message.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
