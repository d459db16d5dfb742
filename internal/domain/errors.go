package domain

import "fmt"

// ValidationError reports input that does not name a valid target.
// It is always produced before any network call.
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("invalid target: %s", e.Reason)
	}
	return fmt.Sprintf("invalid target %q: %s", e.Input, e.Reason)
}

// NotFoundError reports that a resolved repository or user does not exist.
type NotFoundError struct {
	Target string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Target)
}

// UpstreamError is a non-404, non-2xx response from GitHub.
type UpstreamError struct {
	Target     string
	StatusCode int
	Status     string
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("github returned %s for %s", e.Status, e.Target)
	}
	return fmt.Sprintf("github returned %s for %s: %s", e.Status, e.Target, e.Message)
}

// TransportError means no response was received, including timeouts.
type TransportError struct {
	Target string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request for %s failed: %v", e.Target, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports a missing required setting.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("server misconfigured: %s is not set", e.Setting)
}
