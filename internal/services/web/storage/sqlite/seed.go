package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/unkso/titan/internal/services/web/storage"
)

// PutOrganization inserts or updates an organization by id.
func (s *Store) PutOrganization(ctx context.Context, org storage.Organization) error {
	if err := s.ready(); err != nil {
		return err
	}
	if org.ID <= 0 || strings.TrimSpace(org.Name) == "" || strings.TrimSpace(org.Slug) == "" {
		return fmt.Errorf("organization id, name, and slug are required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO organizations (id, name, slug, parent_id) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, slug = excluded.slug, parent_id = excluded.parent_id`,
		org.ID, strings.TrimSpace(org.Name), strings.TrimSpace(org.Slug), org.ParentID,
	)
	if err != nil {
		return fmt.Errorf("put organization: %w", err)
	}
	return nil
}

// PutUser inserts or updates a member by id.
func (s *Store) PutUser(ctx context.Context, user storage.User) error {
	if err := s.ready(); err != nil {
		return err
	}
	if user.ID <= 0 || strings.TrimSpace(user.Username) == "" {
		return fmt.Errorf("user id and username are required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO users (id, username, date_joined, avatar_url, last_activity_time) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    username = excluded.username,
		    date_joined = excluded.date_joined,
		    avatar_url = excluded.avatar_url,
		    last_activity_time = excluded.last_activity_time`,
		user.ID,
		strings.TrimSpace(user.Username),
		timeToUnixMillis(user.DateJoined),
		strings.TrimSpace(user.Profile.AvatarURL),
		timeToUnixMillis(user.Profile.LastActivityTime),
	)
	if err != nil {
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

// PutEventExcuse inserts or updates an excuse, creating its event type on demand.
func (s *Store) PutEventExcuse(ctx context.Context, excuse storage.EventExcuse) error {
	if err := s.ready(); err != nil {
		return err
	}
	typeName := strings.TrimSpace(excuse.EventType.Name)
	if excuse.ID <= 0 || excuse.UserID <= 0 || typeName == "" {
		return fmt.Errorf("excuse id, user id, and event type are required")
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put event excuse: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO event_types (name) VALUES (?)`, typeName); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("put event type: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO event_excuses (id, user_id, event_type_id, event_date, comments)
		 VALUES (?, ?, (SELECT id FROM event_types WHERE name = ?), ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    user_id = excluded.user_id,
		    event_type_id = excluded.event_type_id,
		    event_date = excluded.event_date,
		    comments = excluded.comments`,
		excuse.ID, excuse.UserID, typeName, timeToUnixMillis(excuse.EventDate), excuse.Comments,
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("put event excuse: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit event excuse: %w", err)
	}
	return nil
}

// PutRole inserts or updates an organization role by id. A zero UserID
// stores a vacant role.
func (s *Store) PutRole(ctx context.Context, role storage.Role) error {
	if err := s.ready(); err != nil {
		return err
	}
	if role.ID <= 0 || role.OrganizationID <= 0 || strings.TrimSpace(role.Name) == "" {
		return fmt.Errorf("role id, organization id, and name are required")
	}
	if role.Rank < 0 {
		return fmt.Errorf("role rank must not be negative")
	}
	var holder any
	if role.UserID > 0 {
		holder = role.UserID
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO organization_roles (id, organization_id, user_id, role, rank) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    organization_id = excluded.organization_id,
		    user_id = excluded.user_id,
		    role = excluded.role,
		    rank = excluded.rank`,
		role.ID, role.OrganizationID, holder, strings.TrimSpace(role.Name), role.Rank,
	)
	if err != nil {
		return fmt.Errorf("put role: %w", err)
	}
	return nil
}

// SeedDemo loads a small roster into an empty store; populated stores are left alone.
func (s *Store) SeedDemo(ctx context.Context) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	var count int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM organizations`).Scan(&count); err != nil {
		return false, fmt.Errorf("count organizations: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	day := func(year int, month time.Month, d int) time.Time {
		return time.Date(year, month, d, 19, 0, 0, 0, time.UTC)
	}
	orgs := []storage.Organization{
		{ID: 1, Name: "Command Staff", Slug: "command-staff"},
		{ID: 2, Name: "1st Battalion", Slug: "1st-battalion", ParentID: 1},
		{ID: 3, Name: "Alpha Company", Slug: "alpha-company", ParentID: 2},
	}
	users := []storage.User{
		{ID: 1, Username: "Ryker", DateJoined: day(2016, time.March, 4), Profile: storage.Profile{AvatarURL: "/static/avatar.svg", LastActivityTime: day(2023, time.February, 11)}},
		{ID: 2, Username: "Vasquez", DateJoined: day(2018, time.July, 22), Profile: storage.Profile{AvatarURL: "/static/avatar.svg", LastActivityTime: day(2023, time.January, 29)}},
		{ID: 3, Username: "Hicks", DateJoined: day(2019, time.November, 2), Profile: storage.Profile{AvatarURL: "/static/avatar.svg", LastActivityTime: day(2023, time.February, 1)}},
	}
	memberships := []storage.Membership{
		{OrganizationID: 1, UserID: 1},
		{OrganizationID: 2, UserID: 2},
		{OrganizationID: 3, UserID: 3},
	}
	roles := []storage.Role{
		{ID: 1, OrganizationID: 1, UserID: 1, Name: "Commanding Officer", Rank: 1},
		{ID: 2, OrganizationID: 2, UserID: 2, Name: "Battalion Commander", Rank: 1},
		{ID: 3, OrganizationID: 2, Name: "Battalion Executive Officer", Rank: 2},
		{ID: 4, OrganizationID: 3, UserID: 3, Name: "Company Commander", Rank: 1},
		{ID: 5, OrganizationID: 3, Name: "Recruiter"},
	}
	excuses := []storage.EventExcuse{
		{ID: 1, UserID: 2, EventDate: day(2023, time.January, 5), EventType: storage.EventType{Name: "Squad Training"}, Comments: "Traveling for work."},
		{ID: 2, UserID: 2, EventDate: day(2023, time.January, 20), EventType: storage.EventType{Name: "Company Operation"}, Comments: "Family event."},
		{ID: 3, UserID: 2, EventDate: day(2023, time.February, 1), EventType: storage.EventType{Name: "Squad Training"}, Comments: "Internet outage."},
	}

	for _, org := range orgs {
		if err := s.PutOrganization(ctx, org); err != nil {
			return false, err
		}
	}
	for _, user := range users {
		if err := s.PutUser(ctx, user); err != nil {
			return false, err
		}
	}
	for _, m := range memberships {
		if err := s.AddOrganizationUser(ctx, m.OrganizationID, m.UserID); err != nil {
			return false, err
		}
	}
	for _, role := range roles {
		if err := s.PutRole(ctx, role); err != nil {
			return false, err
		}
	}
	for _, excuse := range excuses {
		if err := s.PutEventExcuse(ctx, excuse); err != nil {
			return false, err
		}
	}
	return true, nil
}
