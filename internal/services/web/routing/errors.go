package routing

import "fmt"

// ConfigurationError reports a route registry that cannot be mounted.
type ConfigurationError struct {
	Path   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("route %q: %s", e.Path, e.Reason)
}
