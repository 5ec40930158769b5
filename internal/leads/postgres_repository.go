package leads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool the repository needs. Declared as
// an interface so tests can substitute pgxmock.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create inserts a new row. The unique index on email is the authoritative
// duplicate guard; violations surface as ErrEmailTaken.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error) {
	id := uuid.New()
	query := `
		INSERT INTO leads (id, name, email)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query, id, req.Name, req.Email).Scan(&createdAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}

	return &Lead{
		ID:        id.String(),
		Name:      req.Name,
		Email:     req.Email,
		CreatedAt: createdAt,
	}, nil
}

// GetByID fetches a lead by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	query := `
		SELECT id, name, email, created_at
		FROM leads
		WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// GetByEmail fetches a lead by email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Lead, error) {
	query := `
		SELECT id, name, email, created_at
		FROM leads
		WHERE lower(email) = lower($1)
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

// List returns one page ordered by name ascending and the total row count.
func (r *PostgresRepository) List(ctx context.Context, offset, limit int) ([]*Lead, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM leads`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("leads: count failed: %w", err)
	}

	query := `
		SELECT id, name, email, created_at
		FROM leads
		ORDER BY name ASC
		OFFSET $1 LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("leads: select failed: %w", err)
	}
	defer rows.Close()

	results := []*Lead{}
	for rows.Next() {
		var lead Lead
		if err := rows.Scan(&lead.ID, &lead.Name, &lead.Email, &lead.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("leads: scan failed: %w", err)
		}
		results = append(results, &lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("leads: rows failed: %w", err)
	}

	return results, total, nil
}

func (r *PostgresRepository) scanOne(row pgx.Row) (*Lead, error) {
	var lead Lead
	if err := row.Scan(&lead.ID, &lead.Name, &lead.Email, &lead.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	return &lead, nil
}
