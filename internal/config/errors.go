package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrIdentityProjectEmpty error if config identity.projectID is empty.
	ErrIdentityProjectEmpty = errors.New("toml config identity.projectID can not be empty")

	// ErrSweepScheduleEmpty error if config sweep.schedule is empty.
	ErrSweepScheduleEmpty = errors.New("toml config sweep.schedule can not be empty")
)
