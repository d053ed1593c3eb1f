package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/unkso/titan/internal/services/web/storage"
)

type fakeRepository struct {
	orgs        []storage.Organization
	users       []storage.User
	memberships []storage.Membership
	excuses     map[int64][]storage.EventExcuse
	roles       []storage.Role
	removeErr   error
	removed     []storage.Membership
	added       []storage.Membership
}

func (f *fakeRepository) ListOrganizations(context.Context) ([]storage.Organization, error) {
	return f.orgs, nil
}

func (f *fakeRepository) ListMemberships(context.Context) ([]storage.Membership, error) {
	return f.memberships, nil
}

func (f *fakeRepository) AddOrganizationUser(_ context.Context, organizationID, userID int64) error {
	f.added = append(f.added, storage.Membership{OrganizationID: organizationID, UserID: userID})
	return nil
}

func (f *fakeRepository) RemoveOrganizationUser(_ context.Context, organizationID, userID int64) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, storage.Membership{OrganizationID: organizationID, UserID: userID})
	return nil
}

func (f *fakeRepository) FindUser(_ context.Context, id int64) (storage.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return storage.User{}, storage.ErrNotFound
}

func (f *fakeRepository) FindUserByUsername(context.Context, string) (storage.User, error) {
	return storage.User{}, storage.ErrNotFound
}

func (f *fakeRepository) ListUsers(context.Context) ([]storage.User, error) {
	return f.users, nil
}

func (f *fakeRepository) ListRoles(context.Context) ([]storage.Role, error) {
	return f.roles, nil
}

func (f *fakeRepository) ListEventExcuses(_ context.Context, userID int64) ([]storage.EventExcuse, error) {
	return f.excuses[userID], nil
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		orgs: []storage.Organization{{ID: 1, Name: "Alpha", Slug: "alpha"}},
		users: []storage.User{
			{ID: 1, Username: "zulu"},
			{ID: 2, Username: "Alpha"},
			{ID: 3, Username: "mike"},
		},
		memberships: []storage.Membership{
			{OrganizationID: 1, UserID: 1},
			{OrganizationID: 1, UserID: 2},
		},
		excuses: map[int64][]storage.EventExcuse{
			2: {{ID: 1, UserID: 2, EventDate: time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC)}},
		},
		roles: []storage.Role{
			{ID: 1, OrganizationID: 1, UserID: 1, Name: "Commander", Rank: 1},
			{ID: 2, OrganizationID: 1, Name: "Quartermaster"},
		},
	}
}

func memberNames(state State, organizationID int64) []string {
	users := state.MembersOf(organizationID)
	names := make([]string, 0, len(users))
	for _, user := range users {
		names = append(names, user.Username)
	}
	return names
}

func TestHydrateLoadsSortedMembers(t *testing.T) {
	t.Parallel()

	s := New(State{}, nil)
	if err := Hydrate(context.Background(), s, newFakeRepository()); err != nil {
		t.Fatalf("Hydrate() error = %v", err)
	}
	state := s.GetState()
	got := memberNames(state, 1)
	if len(got) != 2 || got[0] != "Alpha" || got[1] != "zulu" {
		t.Fatalf("members = %v, want [Alpha zulu]", got)
	}
	if len(state.Excuses[2]) != 1 {
		t.Fatalf("excuses = %+v", state.Excuses)
	}
	if len(state.Roles[1]) != 2 {
		t.Fatalf("roles = %+v", state.Roles)
	}
}

func TestDispatchRemovesMemberThroughEffect(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	s := New(State{}, PersistTo(repo))
	if err := Hydrate(context.Background(), s, repo); err != nil {
		t.Fatalf("Hydrate() error = %v", err)
	}

	if err := s.Dispatch(context.Background(), MemberRemoved{OrganizationID: 1, UserID: 2}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(repo.removed) != 1 || repo.removed[0].UserID != 2 {
		t.Fatalf("removed = %+v", repo.removed)
	}
	if got := memberNames(s.GetState(), 1); len(got) != 1 || got[0] != "zulu" {
		t.Fatalf("members = %v, want [zulu]", got)
	}
}

func TestDispatchKeepsStateWhenEffectFails(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	repo.removeErr = errors.New("disk full")
	s := New(State{}, PersistTo(repo))
	if err := Hydrate(context.Background(), s, repo); err != nil {
		t.Fatalf("Hydrate() error = %v", err)
	}

	err := s.Dispatch(context.Background(), MemberRemoved{OrganizationID: 1, UserID: 2})
	if !errors.Is(err, repo.removeErr) {
		t.Fatalf("Dispatch() error = %v, want %v", err, repo.removeErr)
	}
	if got := memberNames(s.GetState(), 1); len(got) != 2 {
		t.Fatalf("members = %v, want unchanged", got)
	}
}

func TestDispatchAddsMemberInOrder(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	s := New(State{}, PersistTo(repo))
	if err := Hydrate(context.Background(), s, repo); err != nil {
		t.Fatalf("Hydrate() error = %v", err)
	}
	if err := s.Dispatch(context.Background(), MemberAdded{OrganizationID: 1, UserID: 3}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	got := memberNames(s.GetState(), 1)
	want := []string{"Alpha", "mike", "zulu"}
	if len(got) != len(want) {
		t.Fatalf("members = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("members = %v, want %v", got, want)
		}
	}
}

func TestDispatchRejectsUnknownMember(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	s := New(State{}, nil)
	if err := Hydrate(context.Background(), s, repo); err != nil {
		t.Fatalf("Hydrate() error = %v", err)
	}
	err := s.Dispatch(context.Background(), MemberAdded{OrganizationID: 1, UserID: 42})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Dispatch() error = %v, want ErrNotFound", err)
	}
}

func TestDispatchRejectsNilAction(t *testing.T) {
	t.Parallel()

	if err := New(State{}, nil).Dispatch(context.Background(), nil); err == nil {
		t.Fatal("expected nil action error")
	}
}

func TestSubscribeReceivesSnapshotsUntilUnsubscribed(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	s := New(State{}, nil)
	calls := 0
	unsubscribe := s.Subscribe(func(State) { calls++ })

	if err := Hydrate(context.Background(), s, repo); err != nil {
		t.Fatalf("Hydrate() error = %v", err)
	}
	unsubscribe()
	unsubscribe()
	if err := s.Dispatch(context.Background(), MemberRemoved{OrganizationID: 1, UserID: 1}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if calls != 1 {
		t.Fatalf("listener calls = %d, want 1", calls)
	}
}

func TestGetStateReturnsIsolatedSnapshot(t *testing.T) {
	t.Parallel()

	s := New(State{}, nil)
	if err := Hydrate(context.Background(), s, newFakeRepository()); err != nil {
		t.Fatalf("Hydrate() error = %v", err)
	}
	snapshot := s.GetState()
	snapshot.Members[1][0] = 99
	delete(snapshot.Users, 1)

	again := s.GetState()
	if again.Members[1][0] == 99 {
		t.Fatal("snapshot mutation leaked into store members")
	}
	if _, ok := again.Users[1]; !ok {
		t.Fatal("snapshot mutation leaked into store users")
	}
}
