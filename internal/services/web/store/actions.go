package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/unkso/titan/internal/services/web/storage"
)

// Action is a state transition request.
type Action interface {
	ActionType() string
}

// Hydrated replaces the whole state with a freshly loaded snapshot.
type Hydrated struct {
	State State
}

// MemberRemoved unbinds a user from an organization.
type MemberRemoved struct {
	OrganizationID int64
	UserID         int64
}

// MemberAdded binds a user to an organization.
type MemberAdded struct {
	OrganizationID int64
	UserID         int64
}

// ActionType implements Action.
func (Hydrated) ActionType() string { return "roster/hydrated" }

// ActionType implements Action.
func (MemberRemoved) ActionType() string { return "roster/member_removed" }

// ActionType implements Action.
func (MemberAdded) ActionType() string { return "roster/member_added" }

// Reduce applies action to state and returns the next state.
func Reduce(state State, action Action) (State, error) {
	switch a := action.(type) {
	case Hydrated:
		return a.State.clone(), nil
	case MemberRemoved:
		next := state.clone()
		members := next.Members[a.OrganizationID]
		kept := members[:0]
		for _, id := range members {
			if id != a.UserID {
				kept = append(kept, id)
			}
		}
		next.Members[a.OrganizationID] = kept
		return next, nil
	case MemberAdded:
		if _, ok := state.Organization(a.OrganizationID); !ok {
			return state, fmt.Errorf("organization %d: %w", a.OrganizationID, storage.ErrNotFound)
		}
		if _, ok := state.Users[a.UserID]; !ok {
			return state, fmt.Errorf("user %d: %w", a.UserID, storage.ErrNotFound)
		}
		if state.IsMember(a.OrganizationID, a.UserID) {
			return state, nil
		}
		next := state.clone()
		next.Members[a.OrganizationID] = append(next.Members[a.OrganizationID], a.UserID)
		sortMembers(next.Members[a.OrganizationID], next.Users)
		return next, nil
	default:
		return state, fmt.Errorf("unsupported action %T", action)
	}
}

func sortMembers(ids []int64, users map[int64]storage.User) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := strings.ToLower(users[ids[i]].Username), strings.ToLower(users[ids[j]].Username)
		if a != b {
			return a < b
		}
		return ids[i] < ids[j]
	})
}
