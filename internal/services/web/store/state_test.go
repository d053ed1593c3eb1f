package store

import (
	"strings"
	"testing"

	"github.com/unkso/titan/internal/services/web/storage"
)

func hierarchyState() State {
	return State{
		Organizations: []storage.Organization{
			{ID: 1, Name: "Command", Slug: "command"},
			{ID: 2, Name: "Battalion", Slug: "battalion", ParentID: 1},
			{ID: 3, Name: "Company", Slug: "company", ParentID: 2},
			{ID: 4, Name: "Reserve", Slug: "reserve"},
		},
		Users: map[int64]storage.User{
			1: {ID: 1, Username: "Ryker"},
			2: {ID: 2, Username: "vasquez"},
			3: {ID: 3, Username: "Hicks"},
			4: {ID: 4, Username: "Apone"},
		},
		Members: map[int64][]int64{
			1: {1},
			2: {2, 3},
			3: {3},
			4: {4},
		},
		Roles: map[int64][]storage.Role{
			1: {
				{ID: 1, OrganizationID: 1, UserID: 1, Name: "Commanding Officer", Rank: 1},
				{ID: 2, OrganizationID: 1, Name: "Sergeant Major", Rank: 2},
			},
			2: {
				{ID: 3, OrganizationID: 2, UserID: 2, Name: "Battalion Commander", Rank: 1},
			},
			3: {
				{ID: 4, OrganizationID: 3, UserID: 3, Name: "Company Commander", Rank: 1},
				{ID: 5, OrganizationID: 3, Name: "Executive Officer", Rank: 2},
				{ID: 6, OrganizationID: 3, Name: "Recruiter"},
			},
		},
	}
}

func roleNames(roles []storage.Role) string {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.Name)
	}
	return strings.Join(names, ",")
}

func usernames(users []storage.User) string {
	names := make([]string, 0, len(users))
	for _, user := range users {
		names = append(names, user.Username)
	}
	return strings.Join(names, ",")
}

func TestRosterDirectMembers(t *testing.T) {
	t.Parallel()

	if got := usernames(hierarchyState().Roster(2, false)); got != "vasquez,Hicks" {
		t.Fatalf("roster = %q", got)
	}
}

func TestRosterIncludesDescendantsOnce(t *testing.T) {
	t.Parallel()

	if got := usernames(hierarchyState().Roster(1, true)); got != "Hicks,Ryker,vasquez" {
		t.Fatalf("roster = %q", got)
	}
}

func TestChildrenAndOrganizationsOf(t *testing.T) {
	t.Parallel()

	state := hierarchyState()
	children := state.Children(1)
	if len(children) != 1 || children[0].Slug != "battalion" {
		t.Fatalf("children = %+v", children)
	}
	orgs := state.OrganizationsOf(3)
	if len(orgs) != 2 || orgs[0].Slug != "battalion" || orgs[1].Slug != "company" {
		t.Fatalf("organizations = %+v", orgs)
	}
}

func TestChainOfCommandWalksAncestorsFromRoot(t *testing.T) {
	t.Parallel()

	state := hierarchyState()
	tests := map[int64]string{
		1: "Commanding Officer,Sergeant Major",
		2: "Commanding Officer,Battalion Commander",
		3: "Commanding Officer,Battalion Commander,Company Commander,Executive Officer",
		4: "",
		9: "",
	}
	for id, want := range tests {
		if got := roleNames(state.ChainOfCommand(id)); got != want {
			t.Fatalf("ChainOfCommand(%d) = %q, want %q", id, got, want)
		}
	}
}

func TestChainOfCommandStopsOnParentCycle(t *testing.T) {
	t.Parallel()

	state := hierarchyState()
	state.Organizations[0].ParentID = 3
	if got := roleNames(state.ChainOfCommand(3)); got != "Commanding Officer,Battalion Commander,Company Commander,Executive Officer" {
		t.Fatalf("chain = %q", got)
	}
}

func TestStaffRolesExcludesRanked(t *testing.T) {
	t.Parallel()

	state := hierarchyState()
	if got := roleNames(state.StaffRoles(3)); got != "Recruiter" {
		t.Fatalf("staff = %q", got)
	}
	if got := state.StaffRoles(1); len(got) != 0 {
		t.Fatalf("staff = %+v, want none", got)
	}
}
