package model

import (
	"fmt"
	"strings"
)

// ConfigurationError is returned for configuration values outside of the
// accepted set. It is reported before any data is fetched.
type ConfigurationError struct {
	Parameter string
	Value     string
	Allowed   []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("invalid value %q for %s", e.Value, e.Parameter)
	}
	return fmt.Sprintf("invalid value %q for %s (allowed: %s)",
		e.Value, e.Parameter, strings.Join(e.Allowed, ", "))
}
