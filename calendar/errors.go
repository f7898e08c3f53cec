package calendar

import "fmt"

// ConfigError marks an invalid run configuration: an unknown platform
// selector or a negative reminder lead time. It aborts a run before any
// fetching or event building happens.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return e.Reason
}

// NetworkError marks a contest list endpoint that could not be reached or
// answered with a non-2xx status. It is fatal only for its own platform.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("unable to reach %s: %s", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError marks a response body that was not in the expected shape.
// Like NetworkError it only fails the platform that produced it.
type ParseError struct {
	Platform string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected %s response: %s", e.Platform, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
