package intentions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresCreateIntention(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	createdAt := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO intentions").
		WithArgs(pgxmock.AnyArg(), "01001000", "80010000").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	intention, err := repo.Create(context.Background(), &CreateIntentionRequest{
		ZipcodeStart: "01001000",
		ZipcodeEnd:   "80010000",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if intention.ID == "" {
		t.Error("expected generated id")
	}
	if intention.LeadID != nil {
		t.Error("new intention must not carry a lead")
	}
}

func TestPostgresGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	mock.ExpectQuery("SELECT id, zipcode_start, zipcode_end, lead_id, created_at").
		WithArgs("missing-id").
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "missing-id"); !errors.Is(err, ErrIntentionNotFound) {
		t.Fatalf("expected ErrIntentionNotFound, got %v", err)
	}
}

func TestPostgresSetLead(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	id := uuid.NewString()
	leadID := uuid.NewString()
	now := time.Now().UTC()

	mock.ExpectQuery("UPDATE intentions").
		WithArgs(id, leadID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "zipcode_start", "zipcode_end", "lead_id", "created_at"}).
			AddRow(id, "01001000", "80010000", &leadID, now))

	intention, err := repo.SetLead(context.Background(), id, leadID)
	if err != nil {
		t.Fatalf("set lead: %v", err)
	}
	if intention.LeadID == nil || *intention.LeadID != leadID {
		t.Errorf("expected lead %s, got %v", leadID, intention.LeadID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
