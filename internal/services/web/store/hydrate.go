package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/unkso/titan/internal/services/web/storage"
)

// Load reads a full roster snapshot from the repository.
func Load(ctx context.Context, repo storage.Repository) (State, error) {
	if repo == nil {
		return State{}, errors.New("roster repository is required")
	}
	orgs, err := repo.ListOrganizations(ctx)
	if err != nil {
		return State{}, fmt.Errorf("load organizations: %w", err)
	}
	users, err := repo.ListUsers(ctx)
	if err != nil {
		return State{}, fmt.Errorf("load users: %w", err)
	}
	memberships, err := repo.ListMemberships(ctx)
	if err != nil {
		return State{}, fmt.Errorf("load memberships: %w", err)
	}
	roles, err := repo.ListRoles(ctx)
	if err != nil {
		return State{}, fmt.Errorf("load roles: %w", err)
	}

	state := State{
		Organizations: orgs,
		Users:         make(map[int64]storage.User, len(users)),
		Members:       make(map[int64][]int64),
		Excuses:       make(map[int64][]storage.EventExcuse),
		Roles:         make(map[int64][]storage.Role),
	}
	for _, user := range users {
		state.Users[user.ID] = user
		excuses, err := repo.ListEventExcuses(ctx, user.ID)
		if err != nil {
			return State{}, fmt.Errorf("load excuses for user %d: %w", user.ID, err)
		}
		if len(excuses) > 0 {
			state.Excuses[user.ID] = excuses
		}
	}
	for _, m := range memberships {
		state.Members[m.OrganizationID] = append(state.Members[m.OrganizationID], m.UserID)
	}
	for id := range state.Members {
		sortMembers(state.Members[id], state.Users)
	}
	for _, role := range roles {
		state.Roles[role.OrganizationID] = append(state.Roles[role.OrganizationID], role)
	}
	return state, nil
}

// Hydrate loads the repository snapshot and dispatches it into s.
func Hydrate(ctx context.Context, s Store, repo storage.Repository) error {
	if s == nil {
		return errors.New("store is required")
	}
	state, err := Load(ctx, repo)
	if err != nil {
		return err
	}
	return s.Dispatch(ctx, Hydrated{State: state})
}

// PersistTo returns an Effect writing membership changes through repo.
func PersistTo(repo storage.Repository) Effect {
	return func(ctx context.Context, action Action) error {
		if repo == nil {
			return errors.New("roster repository is required")
		}
		switch a := action.(type) {
		case MemberRemoved:
			return repo.RemoveOrganizationUser(ctx, a.OrganizationID, a.UserID)
		case MemberAdded:
			return repo.AddOrganizationUser(ctx, a.OrganizationID, a.UserID)
		default:
			return nil
		}
	}
}
