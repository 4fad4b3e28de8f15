package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/athlos-fc/academy-system/models"
	"github.com/lib/pq"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, id int) (*models.Session, error)
	List(ctx context.Context, limit int) ([]*models.Session, error)
	// ReplaceAttendees swaps the full attendee set for the session. Runs
	// against the supplied executor so the caller can make the swap atomic.
	ReplaceAttendees(ctx context.Context, exec SQLExecutor, sessionID int, playerIDs []int) error
}

type postgresSessionRepository struct {
	db *sql.DB
}

func NewPostgresSessionRepository(db *sql.DB) SessionRepository {
	return &postgresSessionRepository{db: db}
}

func (r *postgresSessionRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresSessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `INSERT INTO sessions (date, name) VALUES ($1, $2) RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, session.Date, session.Name).Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	session.Attendees = []int{}
	return nil
}

func (r *postgresSessionRepository) FindByID(ctx context.Context, id int) (*models.Session, error) {
	query := `
		SELECT s.id, s.date, s.name, s.created_at,
		       COALESCE(array_agg(a.player_id) FILTER (WHERE a.player_id IS NOT NULL), '{}')
		FROM sessions s
		LEFT JOIN session_attendees a ON a.session_id = s.id
		WHERE s.id = $1
		GROUP BY s.id`

	s := &models.Session{}
	var attendees pq.Int64Array
	row := r.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&s.ID, &s.Date, &s.Name, &s.CreatedAt, &attendees); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	s.Attendees = toIntSlice(attendees)
	return s, nil
}

func (r *postgresSessionRepository) List(ctx context.Context, limit int) ([]*models.Session, error) {
	query := `
		SELECT s.id, s.date, s.name, s.created_at,
		       COALESCE(array_agg(a.player_id) FILTER (WHERE a.player_id IS NOT NULL), '{}')
		FROM sessions s
		LEFT JOIN session_attendees a ON a.session_id = s.id
		GROUP BY s.id
		ORDER BY s.date DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]*models.Session, 0)
	for rows.Next() {
		var s models.Session
		var attendees pq.Int64Array
		if err := rows.Scan(&s.ID, &s.Date, &s.Name, &s.CreatedAt, &attendees); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		s.Attendees = toIntSlice(attendees)
		sessions = append(sessions, &s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}
	return sessions, nil
}

func (r *postgresSessionRepository) ReplaceAttendees(ctx context.Context, exec SQLExecutor, sessionID int, playerIDs []int) error {
	e := r.getExecutor(exec)

	var exists bool
	err := e.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM sessions WHERE id = $1)`, sessionID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check session existence: %w", err)
	}
	if !exists {
		return ErrSessionNotFound
	}

	if _, err := e.ExecContext(ctx, `DELETE FROM session_attendees WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to clear session attendees: %w", err)
	}
	if len(playerIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO session_attendees (session_id, player_id)
		SELECT $1, unnest($2::int[])
		ON CONFLICT DO NOTHING`
	if _, err := e.ExecContext(ctx, query, sessionID, pq.Array(playerIDs)); err != nil {
		return fmt.Errorf("failed to insert session attendees: %w", err)
	}
	return nil
}

func toIntSlice(arr pq.Int64Array) []int {
	out := make([]int, 0, len(arr))
	for _, v := range arr {
		out = append(out, int(v))
	}
	return out
}
