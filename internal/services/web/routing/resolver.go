package routing

// Resolve returns the wrapper for routeType, or nil when the type is
// unrecognized. The same type always yields the same pointer.
func Resolve(routeType RouteType) *Wrapper {
	switch routeType {
	case Authenticated:
		return AuthenticatedWrapper
	case Unauthenticated:
		return UnauthenticatedWrapper
	default:
		return nil
	}
}
