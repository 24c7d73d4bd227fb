package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
)

const sessionColumns = `
	id, sequence, name, flow, user_id, access_token, token_type, refresh_token,
	scopes, expires_in, expires_at, created_at, updated_at, deleted_at
`

// SessionRepository implements [models.Repository] for stored [models.Session] credentials.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

var _ models.Repository[*models.Session] = (*SessionRepository)(nil)

// Create inserts a new session with generated ID and sequence
func (r *SessionRepository) Create(session *models.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "sessions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	session.SetID(id)
	session.SetSequence(sequence)

	cred := session.Credential()
	query := `
		INSERT INTO sessions (
			id, sequence, name, flow, user_id, access_token, token_type, refresh_token,
			scopes, expires_in, expires_at, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		session.Name(),
		string(session.Flow()),
		session.UserID(),
		cred.AccessToken,
		cred.TokenType,
		cred.RefreshToken,
		strings.Join(cred.Scopes, " "),
		int64(cred.ExpiresIn/time.Second),
		nullTime(cred.ExpiresAt),
		session.CreatedAt(),
		session.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID, excluding soft-deleted sessions
func (r *SessionRepository) Get(id string) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ? AND deleted_at IS NULL`

	session, err := scanSession(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	return session, nil
}

// GetByName retrieves the live session stored under a profile name
func (r *SessionRepository) GetByName(name string) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE name = ? AND deleted_at IS NULL`

	session, err := scanSession(r.db.QueryRow(query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no session named %q", shared.ErrSessionNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	return session, nil
}

// Update replaces the stored credential and user of an existing session
func (r *SessionRepository) Update(session *models.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	session.SetUpdatedAt(now)

	cred := session.Credential()
	query := `
		UPDATE sessions
		SET flow = ?, user_id = ?, access_token = ?, token_type = ?, refresh_token = ?,
			scopes = ?, expires_in = ?, expires_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		string(session.Flow()),
		session.UserID(),
		cred.AccessToken,
		cred.TokenType,
		cred.RefreshToken,
		strings.Join(cred.Scopes, " "),
		int64(cred.ExpiresIn/time.Second),
		nullTime(cred.ExpiresAt),
		now,
		session.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return requireAffected(result, session.ID())
}

// Save updates the live session with the same name, or creates it when there is none.
func (r *SessionRepository) Save(session *models.Session) error {
	existing, err := r.GetByName(session.Name())
	switch {
	case errors.Is(err, shared.ErrSessionNotFound):
		return r.Create(session)
	case err != nil:
		return err
	}

	session.SetID(existing.ID())
	session.SetSequence(existing.Sequence())
	session.SetCreatedAt(existing.CreatedAt())
	return r.Update(session)
}

// Delete soft-deletes a session by ID
func (r *SessionRepository) Delete(id string) error {
	query := `UPDATE sessions SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return requireAffected(result, id)
}

// List retrieves live sessions ordered by sequence. Supported criteria are "name" and "flow".
func (r *SessionRepository) List(criteria map[string]any) ([]*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE deleted_at IS NULL`
	args := []any{}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name = ?"
		args = append(args, name)
	}
	if flow, ok := criteria["flow"].(models.FlowKind); ok && flow != "" {
		query += " AND flow = ?"
		args = append(args, string(flow))
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return sessions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*models.Session, error) {
	var (
		id           string
		sequence     int
		name         string
		flow         string
		userID       string
		accessToken  string
		tokenType    string
		refreshToken string
		scopes       string
		expiresIn    int64
		expiresAt    sql.NullTime
		createdAt    time.Time
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	err := row.Scan(&id, &sequence, &name, &flow, &userID, &accessToken, &tokenType, &refreshToken,
		&scopes, &expiresIn, &expiresAt, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	cred := models.AccessCredential{
		AccessToken:  accessToken,
		TokenType:    tokenType,
		RefreshToken: refreshToken,
		Scopes:       strings.Fields(scopes),
		ExpiresIn:    time.Duration(expiresIn) * time.Second,
	}
	if expiresAt.Valid {
		cred.ExpiresAt = expiresAt.Time
	}

	session := models.NewSession(sequence, name, models.FlowKind(flow), cred)
	session.SetID(id)
	session.SetUserID(userID)
	session.SetCreatedAt(createdAt)
	session.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		session.SetDeletedAt(&deletedAt.Time)
	}
	return session, nil
}

func requireAffected(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s not found or already deleted", shared.ErrSessionNotFound, id)
	}
	return nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
