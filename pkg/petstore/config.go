package petstore

import (
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public Swagger pet-store deployment.
	DefaultBaseURL = "https://petstore.swagger.io/v2"
	DefaultTimeout = 5 * time.Second
)

// Config controls how the shared transport reaches the service.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RetryCount adds attempts after transport errors; zero means exactly one attempt.
	RetryCount int
	// LegacyUserPath makes GetUserByUsername call /user/user/{username}.
	LegacyUserPath bool
	// LogResponseHeaders logs response headers of pet calls at debug level.
	LogResponseHeaders bool
}

// DefaultConfig returns the configuration used when fields are left empty.
func DefaultConfig() Config {
	return Config{
		BaseURL:            DefaultBaseURL,
		Timeout:            DefaultTimeout,
		LogResponseHeaders: true,
	}
}

func (c Config) normalized() Config {
	c.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RetryCount < 0 {
		c.RetryCount = 0
	}
	return c
}
