package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/unkso/titan/internal/platform/storage/sqlitemigrate"
	"github.com/unkso/titan/internal/services/web/storage"
	"github.com/unkso/titan/internal/services/web/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed roster persistence.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var (
	_ storage.Repository         = (*Store)(nil)
	_ storage.SessionRevocations = (*Store)(nil)
)

// Open opens and migrates a roster SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	if _, err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready() error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// ListOrganizations returns every organization ordered by name.
func (s *Store) ListOrganizations(ctx context.Context) ([]storage.Organization, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, slug, parent_id FROM organizations ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return scanOrganizations(rows)
}

// ListMemberships returns every organization/user binding.
func (s *Store) ListMemberships(ctx context.Context) ([]storage.Membership, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT organization_id, user_id FROM organization_users ORDER BY organization_id, user_id`)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []storage.Membership
	for rows.Next() {
		var m storage.Membership
		if err := rows.Scan(&m.OrganizationID, &m.UserID); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memberships: %w", err)
	}
	return memberships, nil
}

// AddOrganizationUser binds a user to an organization.
func (s *Store) AddOrganizationUser(ctx context.Context, organizationID, userID int64) error {
	if err := s.ready(); err != nil {
		return err
	}
	if organizationID <= 0 || userID <= 0 {
		return fmt.Errorf("organization id and user id are required")
	}
	if _, err := s.sqlDB.ExecContext(ctx,
		`INSERT OR IGNORE INTO organization_users (organization_id, user_id) VALUES (?, ?)`,
		organizationID, userID,
	); err != nil {
		return fmt.Errorf("add organization user: %w", err)
	}
	return nil
}

// RemoveOrganizationUser unbinds a user from an organization.
func (s *Store) RemoveOrganizationUser(ctx context.Context, organizationID, userID int64) error {
	if err := s.ready(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM organization_users WHERE organization_id = ? AND user_id = ?`,
		organizationID, userID,
	)
	if err != nil {
		return fmt.Errorf("remove organization user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove organization user: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("remove organization user %d/%d: %w", organizationID, userID, storage.ErrNotFound)
	}
	return nil
}

// FindUser loads a member by id.
func (s *Store) FindUser(ctx context.Context, id int64) (storage.User, error) {
	if err := s.ready(); err != nil {
		return storage.User{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, username, date_joined, avatar_url, last_activity_time FROM users WHERE id = ?`, id)
	return scanUser(row, "find user")
}

// FindUserByUsername loads a member by case-insensitive username.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (storage.User, error) {
	if err := s.ready(); err != nil {
		return storage.User{}, err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return storage.User{}, fmt.Errorf("username is required")
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, username, date_joined, avatar_url, last_activity_time FROM users WHERE username = ? COLLATE NOCASE`, username)
	return scanUser(row, "find user by username")
}

// ListUsers returns every member ordered by username.
func (s *Store) ListUsers(ctx context.Context) ([]storage.User, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, username, date_joined, avatar_url, last_activity_time FROM users ORDER BY username COLLATE NOCASE, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return scanUsers(rows)
}

// ListRoles returns every organization role. Within an organization ranked
// roles come first in rank order, then staff roles by name.
func (s *Store) ListRoles(ctx context.Context) ([]storage.Role, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, organization_id, COALESCE(user_id, 0), role, rank
		 FROM organization_roles
		 ORDER BY organization_id, rank = 0, rank, role, id`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var roles []storage.Role
	for rows.Next() {
		var role storage.Role
		if err := rows.Scan(&role.ID, &role.OrganizationID, &role.UserID, &role.Name, &role.Rank); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}
	return roles, nil
}

// ListEventExcuses returns a member's excuses ordered by event date, newest first.
func (s *Store) ListEventExcuses(ctx context.Context, userID int64) ([]storage.EventExcuse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT e.id, e.user_id, e.event_date, e.comments, t.id, t.name
		 FROM event_excuses e
		 JOIN event_types t ON t.id = e.event_type_id
		 WHERE e.user_id = ?
		 ORDER BY e.event_date DESC, e.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list event excuses: %w", err)
	}
	defer rows.Close()

	var excuses []storage.EventExcuse
	for rows.Next() {
		var excuse storage.EventExcuse
		var eventDate int64
		if err := rows.Scan(&excuse.ID, &excuse.UserID, &eventDate, &excuse.Comments, &excuse.EventType.ID, &excuse.EventType.Name); err != nil {
			return nil, fmt.Errorf("scan event excuse: %w", err)
		}
		excuse.EventDate = unixMillisToTime(eventDate)
		excuses = append(excuses, excuse)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event excuses: %w", err)
	}
	return excuses, nil
}

// RevokeSession records a signed-out session id until its token expires.
//
// Expired revocations are pruned on every write.
func (s *Store) RevokeSession(ctx context.Context, sessionID string, expiresAt time.Time) error {
	if err := s.ready(); err != nil {
		return err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM session_revocations WHERE expires_at <= ?`, timeToUnixMillis(s.now().UTC()),
	); err != nil {
		return fmt.Errorf("prune session revocations: %w", err)
	}
	if _, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO session_revocations (session_id, expires_at) VALUES (?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET expires_at = excluded.expires_at`,
		sessionID, timeToUnixMillis(expiresAt),
	); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// IsSessionRevoked reports whether a session id was signed out.
func (s *Store) IsSessionRevoked(ctx context.Context, sessionID string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	var found int
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT 1 FROM session_revocations WHERE session_id = ?`, strings.TrimSpace(sessionID),
	).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check session revocation: %w", err)
	}
	return true, nil
}

func scanOrganizations(rows *sql.Rows) ([]storage.Organization, error) {
	defer rows.Close()
	var orgs []storage.Organization
	for rows.Next() {
		var org storage.Organization
		if err := rows.Scan(&org.ID, &org.Name, &org.Slug, &org.ParentID); err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate organizations: %w", err)
	}
	return orgs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUserRow(row rowScanner) (storage.User, error) {
	var user storage.User
	var dateJoined, lastActivity int64
	if err := row.Scan(&user.ID, &user.Username, &dateJoined, &user.Profile.AvatarURL, &lastActivity); err != nil {
		return storage.User{}, err
	}
	user.DateJoined = unixMillisToTime(dateJoined)
	user.Profile.LastActivityTime = unixMillisToTime(lastActivity)
	return user, nil
}

func scanUser(row *sql.Row, op string) (storage.User, error) {
	user, err := scanUserRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.User{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return storage.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func scanUsers(rows *sql.Rows) ([]storage.User, error) {
	defer rows.Close()
	var users []storage.User
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}
