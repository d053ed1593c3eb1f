package routing

import "strings"

// RouteType is the access category of a route. The zero value is
// unrecognized.
type RouteType string

const (
	// Authenticated routes require a signed-in member.
	Authenticated RouteType = "authenticated"
	// Unauthenticated routes are for anonymous visitors only.
	Unauthenticated RouteType = "unauthenticated"
)

// ParseRouteType parses a route type name. Unknown names yield the zero
// value.
func ParseRouteType(value string) RouteType {
	switch RouteType(strings.ToLower(strings.TrimSpace(value))) {
	case Authenticated:
		return Authenticated
	case Unauthenticated:
		return Unauthenticated
	default:
		return ""
	}
}

// Known reports whether t is one of the declared route types.
func (t RouteType) Known() bool {
	return t == Authenticated || t == Unauthenticated
}

func (t RouteType) String() string {
	if t == "" {
		return "unrecognized"
	}
	return string(t)
}
