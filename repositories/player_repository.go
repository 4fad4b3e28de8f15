package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/athlos-fc/academy-system/models"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound            = errors.New("player not found")
	ErrPlayerRegistrationInvalid = errors.New("player registration reference invalid")
)

// PlayerRepository has a single insert path; both the direct roster endpoint
// and the approval workflow go through Create.
type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	FindByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context) ([]*models.Player, error)
	Count(ctx context.Context) (int, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const playerColumns = `
	id, name, age, jersey, email, dob, gender, phone,
	emergency_contact, parent_name, parent_contact, registration_id, created_at`

func (r *postgresPlayerRepository) Create(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	query := `
		INSERT INTO players
			(name, age, jersey, email, dob, gender, phone,
			 emergency_contact, parent_name, parent_contact, registration_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		player.Name,
		player.Age,
		player.Jersey,
		player.Email,
		player.DOB,
		player.Gender,
		player.Phone,
		player.EmergencyContact,
		player.ParentName,
		player.ParentContact,
		player.RegistrationID,
	).Scan(&player.ID, &player.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrPlayerRegistrationInvalid
		}
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

func (r *postgresPlayerRepository) FindByID(ctx context.Context, id int) (*models.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players WHERE id = $1`, playerColumns)

	p := &models.Player{}
	row := r.db.QueryRowContext(ctx, query, id)
	if err := scanPlayer(row, p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to find player: %w", err)
	}
	return p, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]*models.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players ORDER BY created_at DESC`, playerColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := scanPlayer(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player rows: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

func scanPlayer(rowScanner interface {
	Scan(dest ...interface{}) error
}, p *models.Player) error {
	return rowScanner.Scan(
		&p.ID,
		&p.Name,
		&p.Age,
		&p.Jersey,
		&p.Email,
		&p.DOB,
		&p.Gender,
		&p.Phone,
		&p.EmergencyContact,
		&p.ParentName,
		&p.ParentContact,
		&p.RegistrationID,
		&p.CreatedAt,
	)
}
