package intentions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool the repository needs.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores intentions in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("intentions: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateIntentionRequest) (*Intention, error) {
	id := uuid.New()
	query := `
		INSERT INTO intentions (id, zipcode_start, zipcode_end)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query, id, req.ZipcodeStart, req.ZipcodeEnd).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("intentions: insert failed: %w", err)
	}

	return &Intention{
		ID:           id.String(),
		ZipcodeStart: req.ZipcodeStart,
		ZipcodeEnd:   req.ZipcodeEnd,
		CreatedAt:    createdAt,
	}, nil
}

// GetByID fetches an intention by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Intention, error) {
	query := `
		SELECT id, zipcode_start, zipcode_end, lead_id, created_at
		FROM intentions
		WHERE id = $1
	`
	var intention Intention
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&intention.ID,
		&intention.ZipcodeStart,
		&intention.ZipcodeEnd,
		&intention.LeadID,
		&intention.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIntentionNotFound
		}
		return nil, fmt.Errorf("intentions: select failed: %w", err)
	}
	return &intention, nil
}

// SetLead attaches a lead to an existing intention in a single statement,
// so there is no partial write to recover from.
func (r *PostgresRepository) SetLead(ctx context.Context, id, leadID string) (*Intention, error) {
	query := `
		UPDATE intentions
		SET lead_id = $2
		WHERE id = $1
		RETURNING id, zipcode_start, zipcode_end, lead_id, created_at
	`
	var intention Intention
	err := r.pool.QueryRow(ctx, query, id, leadID).Scan(
		&intention.ID,
		&intention.ZipcodeStart,
		&intention.ZipcodeEnd,
		&intention.LeadID,
		&intention.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIntentionNotFound
		}
		return nil, fmt.Errorf("intentions: update failed: %w", err)
	}
	return &intention, nil
}
