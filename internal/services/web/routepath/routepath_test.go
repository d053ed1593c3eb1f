package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if Login != "/login" {
		t.Fatalf("Login = %q", Login)
	}
	if Health != "/up" {
		t.Fatalf("Health = %q", Health)
	}
	if Roster != "/roster" {
		t.Fatalf("Roster = %q", Roster)
	}
}

func TestRouteBuilders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		got  string
		want string
	}{
		{got: RosterOrganization("alpha-company", true), want: "/roster?children=1&org=alpha-company"},
		{got: RosterOrganization(" ", false), want: "/roster"},
		{got: Profile(42), want: "/roster/profile?user=42"},
		{got: RemoveMember("alpha-company"), want: "/roster/remove?org=alpha-company"},
		{got: AddMember(" alpha-company "), want: "/roster/add?org=alpha-company"},
		{got: LoginWithNext("/roster?org=a"), want: "/login?next=%2Froster%3Forg%3Da"},
		{got: LoginWithNext("https://evil.example"), want: "/login"},
		{got: LoginWithNext("/"), want: "/login"},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Fatalf("route = %q, want %q", tc.got, tc.want)
		}
	}
}

func TestIsLocal(t *testing.T) {
	t.Parallel()

	for _, target := range []string{"/", "/roster", "/roster/profile?user=1"} {
		if !IsLocal(target) {
			t.Fatalf("IsLocal(%q) = false", target)
		}
	}
	for _, target := range []string{"", "roster", "//evil.example", "/\\evil", "https://evil.example/"} {
		if IsLocal(target) {
			t.Fatalf("IsLocal(%q) = true", target)
		}
	}
}
