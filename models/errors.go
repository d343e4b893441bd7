package models

import "fmt"

// LoadError indicates the data source rejected or returned a malformed
// graph. It is fatal to initialization: no partial rendering is attempted.
type LoadError struct {
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("load: %s", e.Reason)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ConfigError indicates an invalid configuration value, detected at
// configuration time rather than during the frame loop.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}
