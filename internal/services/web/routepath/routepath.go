// Package routepath stores canonical HTTP paths for the web service.
package routepath

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	Root          = "/"
	Login         = "/login"
	Logout        = "/logout"
	Health        = "/up"
	Metrics       = "/metrics"
	StaticPrefix  = "/static/"
	Roster        = "/roster"
	RosterProfile = "/roster/profile"
	RosterRemove  = "/roster/remove"
	RosterAdd     = "/roster/add"

	// Wildcard registers a catch-all route.
	Wildcard = "*"
)

const (
	OrganizationParam    = "org"
	IncludeChildrenParam = "children"
	UserParam            = "user"
	NextParam            = "next"
)

// RosterOrganization returns the roster route for one organization.
func RosterOrganization(slug string, includeChildren bool) string {
	query := url.Values{}
	if slug = strings.TrimSpace(slug); slug != "" {
		query.Set(OrganizationParam, slug)
	}
	if includeChildren {
		query.Set(IncludeChildrenParam, "1")
	}
	return withQuery(Roster, query)
}

// RemoveMember returns the form action removing a member from one
// organization.
func RemoveMember(slug string) string {
	return withQuery(RosterRemove, url.Values{OrganizationParam: {strings.TrimSpace(slug)}})
}

// AddMember returns the form action adding a member to one organization.
func AddMember(slug string) string {
	return withQuery(RosterAdd, url.Values{OrganizationParam: {strings.TrimSpace(slug)}})
}

// Profile returns the member profile route.
func Profile(userID int64) string {
	return withQuery(RosterProfile, url.Values{UserParam: {strconv.FormatInt(userID, 10)}})
}

// LoginWithNext returns the login route that returns to next after sign-in.
func LoginWithNext(next string) string {
	if !IsLocal(next) || next == Root {
		return Login
	}
	return withQuery(Login, url.Values{NextParam: {next}})
}

// IsLocal reports whether target is a same-site absolute path.
func IsLocal(target string) bool {
	target = strings.TrimSpace(target)
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return false
	}
	parsed, err := url.Parse(target)
	return err == nil && parsed.Scheme == "" && parsed.Host == ""
}

func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}
