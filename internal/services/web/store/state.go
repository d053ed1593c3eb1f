package store

import (
	"github.com/unkso/titan/internal/services/web/storage"
)

// State is the roster snapshot shared with scenes.
type State struct {
	Organizations []storage.Organization
	Users         map[int64]storage.User
	// Members maps organization id to direct member ids in display order.
	Members map[int64][]int64
	// Excuses maps user id to excuses, newest first.
	Excuses map[int64][]storage.EventExcuse
	// Roles maps organization id to its roles, ranked first in rank order.
	Roles map[int64][]storage.Role
}

func (s State) clone() State {
	out := State{
		Organizations: append([]storage.Organization(nil), s.Organizations...),
		Users:         make(map[int64]storage.User, len(s.Users)),
		Members:       make(map[int64][]int64, len(s.Members)),
		Excuses:       make(map[int64][]storage.EventExcuse, len(s.Excuses)),
		Roles:         make(map[int64][]storage.Role, len(s.Roles)),
	}
	for id, user := range s.Users {
		out.Users[id] = user
	}
	for id, members := range s.Members {
		out.Members[id] = append([]int64(nil), members...)
	}
	for id, excuses := range s.Excuses {
		out.Excuses[id] = append([]storage.EventExcuse(nil), excuses...)
	}
	for id, roles := range s.Roles {
		out.Roles[id] = append([]storage.Role(nil), roles...)
	}
	return out
}

// Organization finds an organization by id.
func (s State) Organization(id int64) (storage.Organization, bool) {
	for _, org := range s.Organizations {
		if org.ID == id {
			return org, true
		}
	}
	return storage.Organization{}, false
}

// OrganizationBySlug finds an organization by slug.
func (s State) OrganizationBySlug(slug string) (storage.Organization, bool) {
	for _, org := range s.Organizations {
		if org.Slug == slug {
			return org, true
		}
	}
	return storage.Organization{}, false
}

// MembersOf returns the direct members of an organization in display order.
func (s State) MembersOf(organizationID int64) []storage.User {
	ids := s.Members[organizationID]
	users := make([]storage.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := s.Users[id]; ok {
			users = append(users, user)
		}
	}
	return users
}

// IsMember reports whether userID directly belongs to organizationID.
func (s State) IsMember(organizationID, userID int64) bool {
	for _, id := range s.Members[organizationID] {
		if id == userID {
			return true
		}
	}
	return false
}

// Children returns the direct child organizations of parentID in state order.
func (s State) Children(parentID int64) []storage.Organization {
	var out []storage.Organization
	for _, org := range s.Organizations {
		if org.ParentID == parentID && org.ID != parentID {
			out = append(out, org)
		}
	}
	return out
}

// Roster returns the members of organizationID in display order. With
// includeChildren, members of every descendant organization are included
// once each.
func (s State) Roster(organizationID int64, includeChildren bool) []storage.User {
	if !includeChildren {
		return s.MembersOf(organizationID)
	}
	seen := make(map[int64]bool)
	visited := map[int64]bool{organizationID: true}
	var ids []int64
	queue := []int64{organizationID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, id := range s.Members[current] {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
		for _, child := range s.Children(current) {
			if !visited[child.ID] {
				visited[child.ID] = true
				queue = append(queue, child.ID)
			}
		}
	}
	sortMembers(ids, s.Users)
	users := make([]storage.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := s.Users[id]; ok {
			users = append(users, user)
		}
	}
	return users
}

// OrganizationsOf returns the organizations userID directly belongs to.
func (s State) OrganizationsOf(userID int64) []storage.Organization {
	var out []storage.Organization
	for _, org := range s.Organizations {
		if s.IsMember(org.ID, userID) {
			out = append(out, org)
		}
	}
	return out
}

// ChainOfCommand returns the ranked roles above and within organizationID:
// the leading role of each ancestor from the root down, followed by every
// ranked role of the organization itself.
func (s State) ChainOfCommand(organizationID int64) []storage.Role {
	org, ok := s.Organization(organizationID)
	if !ok {
		return nil
	}
	var ancestors []int64
	seen := map[int64]bool{org.ID: true}
	for parent := org.ParentID; parent != 0 && !seen[parent]; {
		seen[parent] = true
		ancestors = append(ancestors, parent)
		next, ok := s.Organization(parent)
		if !ok {
			break
		}
		parent = next.ParentID
	}

	var chain []storage.Role
	for i := len(ancestors) - 1; i >= 0; i-- {
		for _, role := range s.Roles[ancestors[i]] {
			if role.Ranked() {
				chain = append(chain, role)
				break
			}
		}
	}
	for _, role := range s.Roles[organizationID] {
		if role.Ranked() {
			chain = append(chain, role)
		}
	}
	return chain
}

// StaffRoles returns the unranked roles of organizationID.
func (s State) StaffRoles(organizationID int64) []storage.Role {
	var out []storage.Role
	for _, role := range s.Roles[organizationID] {
		if !role.Ranked() {
			out = append(out, role)
		}
	}
	return out
}
