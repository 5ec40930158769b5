package leads

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fretehub/fretehub/internal/events"
	"github.com/fretehub/fretehub/internal/observability/metrics"
	"github.com/fretehub/fretehub/pkg/logging"
)

// Service applies the lead-capture domain rules on top of a Repository and
// announces successful registrations on the event bus.
type Service struct {
	repo    Repository
	bus     *events.Bus
	metrics *metrics.LeadMetrics
	logger  *logging.Logger
}

// NewService creates a lead service. bus and m may be nil.
func NewService(repo Repository, bus *events.Bus, m *metrics.LeadMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, bus: bus, metrics: m, logger: logger}
}

// Create registers a new lead. Duplicate emails fail with ErrEmailTaken and
// write nothing; persistence failures surface as ErrSaveFailed with the
// cause logged, never exposed. On success a LeadCreatedV1 event is
// published fire-and-forget before returning.
func (s *Service) Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.logger.Info("creating lead", "email", req.Email)

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		s.logger.Warn("duplicate lead registration attempt", "email", req.Email)
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrLeadNotFound) {
		s.logger.Error("lead lookup by email failed", "error", err)
		return nil, ErrSaveFailed
	}

	lead, err := s.repo.Create(ctx, req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			// Lost the race to a concurrent insert; the unique index wins.
			return nil, ErrEmailTaken
		}
		s.logger.Error("failed to persist lead", "error", err)
		return nil, ErrSaveFailed
	}

	s.logger.Info("lead persisted", "id", lead.ID)
	s.metrics.ObserveLeadCreated()

	if s.bus != nil {
		s.bus.PublishLeadCreated(events.LeadCreatedV1{
			EventID:    uuid.NewString(),
			LeadID:     lead.ID,
			Name:       lead.Name,
			Email:      lead.Email,
			OccurredAt: time.Now().UTC(),
		})
	}

	return lead, nil
}

// Get returns the lead with the given id or ErrLeadNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Lead, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns one page of leads ordered by name ascending. Non-positive
// page or limit values are coerced up to 1 before the offset is computed.
func (s *Service) List(ctx context.Context, page, limit int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	offset := (page - 1) * limit
	data, total, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		s.logger.Error("failed to list leads", "error", err)
		return nil, err
	}

	totalPages := (total + limit - 1) / limit
	return &ListResult{
		Data: data,
		Meta: ListMeta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	}, nil
}
