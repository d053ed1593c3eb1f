package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports a lookup that matched no record.
var ErrNotFound = errors.New("record not found")

// Organization is a unit of the community hierarchy (division, squad, ...).
type Organization struct {
	ID       int64
	Name     string
	Slug     string
	ParentID int64
}

// Profile carries the forum-side fields of a member.
type Profile struct {
	AvatarURL        string
	LastActivityTime time.Time
}

// User is one roster member.
type User struct {
	ID         int64
	Username   string
	DateJoined time.Time
	Profile    Profile
}

// EventType classifies an excused event.
type EventType struct {
	ID   int64
	Name string
}

// EventExcuse records a member's excused absence from one event.
type EventExcuse struct {
	ID        int64
	UserID    int64
	EventDate time.Time
	EventType EventType
	Comments  string
}

// Membership binds a user to an organization.
type Membership struct {
	OrganizationID int64
	UserID         int64
}

// Role is a position in an organization. Ranked roles form the unit's chain
// of command, rank 1 being its leader; Rank 0 marks a staff role outside the
// chain. UserID 0 marks a vacant role.
type Role struct {
	ID             int64
	OrganizationID int64
	UserID         int64
	Name           string
	Rank           int
}

// Ranked reports whether r is part of the chain of command.
func (r Role) Ranked() bool {
	return r.Rank > 0
}

// Repository is the roster persistence contract.
type Repository interface {
	// ListOrganizations returns every organization ordered by name.
	ListOrganizations(ctx context.Context) ([]Organization, error)
	// ListMemberships returns every organization/user binding.
	ListMemberships(ctx context.Context) ([]Membership, error)
	// AddOrganizationUser binds a user to an organization; re-adding is a no-op.
	AddOrganizationUser(ctx context.Context, organizationID, userID int64) error
	// RemoveOrganizationUser unbinds a user; ErrNotFound when not bound.
	RemoveOrganizationUser(ctx context.Context, organizationID, userID int64) error
	// FindUser loads a member by id.
	FindUser(ctx context.Context, id int64) (User, error)
	// FindUserByUsername loads a member by case-insensitive username.
	FindUserByUsername(ctx context.Context, username string) (User, error)
	// ListUsers returns every member ordered by username.
	ListUsers(ctx context.Context) ([]User, error)
	// ListRoles returns every organization role, ranked roles first in rank
	// order within each organization.
	ListRoles(ctx context.Context) ([]Role, error)
	// ListEventExcuses returns a member's excuses ordered by event date, newest first.
	ListEventExcuses(ctx context.Context, userID int64) ([]EventExcuse, error)
}

// SessionRevocations persists signed-out session ids until they expire.
type SessionRevocations interface {
	RevokeSession(ctx context.Context, sessionID string, expiresAt time.Time) error
	IsSessionRevoked(ctx context.Context, sessionID string) (bool, error)
}
