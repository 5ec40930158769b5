package intentions

import (
	"context"
	"errors"

	"github.com/fretehub/fretehub/internal/leads"
	"github.com/fretehub/fretehub/internal/observability/metrics"
	"github.com/fretehub/fretehub/pkg/logging"
)

// ZipcodeValidator confirms a postal code resolves against the directory.
type ZipcodeValidator interface {
	Validate(ctx context.Context, code string) error
}

// LeadFinder looks up a lead for association.
type LeadFinder interface {
	Get(ctx context.Context, id string) (*leads.Lead, error)
}

// Service applies the freight-intention domain rules.
type Service struct {
	repo      Repository
	validator ZipcodeValidator
	leadStore LeadFinder
	metrics   *metrics.LeadMetrics
	logger    *logging.Logger
}

// NewService creates an intention service. m may be nil.
func NewService(repo Repository, validator ZipcodeValidator, leadStore LeadFinder, m *metrics.LeadMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:      repo,
		validator: validator,
		leadStore: leadStore,
		metrics:   m,
		logger:    logger,
	}
}

// Create validates origin then destination against the postal directory and
// persists the intention only after both pass. An origin failure
// short-circuits before the destination is ever looked up; nothing is
// written on any validation failure.
func (s *Service) Create(ctx context.Context, req *CreateIntentionRequest) (*Intention, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.logger.Info("creating freight intention",
		"zipcode_start", req.ZipcodeStart,
		"zipcode_end", req.ZipcodeEnd,
	)

	if err := s.validator.Validate(ctx, req.ZipcodeStart); err != nil {
		s.metrics.ObserveCEPValidation("rejected")
		return nil, err
	}
	if err := s.validator.Validate(ctx, req.ZipcodeEnd); err != nil {
		s.metrics.ObserveCEPValidation("rejected")
		return nil, err
	}
	s.metrics.ObserveCEPValidation("ok")

	intention, err := s.repo.Create(ctx, req)
	if err != nil {
		s.logger.Error("failed to persist intention", "error", err)
		return nil, ErrSaveFailed
	}

	s.logger.Info("intention created", "id", intention.ID)
	return intention, nil
}

// Associate attaches an existing lead to an existing intention. The lead
// lookup runs only after the intention is found, and any lead-store failure
// is translated to this package's ErrLeadNotFound. Re-association is
// permitted and simply overwrites the previous reference.
func (s *Service) Associate(ctx context.Context, id, leadID string) (*Intention, error) {
	s.logger.Info("associating lead to intention", "intention_id", id, "lead_id", leadID)

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, ErrIntentionNotFound) {
			return nil, ErrIntentionNotFound
		}
		s.logger.Error("failed to load intention", "error", err, "intention_id", id)
		return nil, ErrSaveFailed
	}

	if _, err := s.leadStore.Get(ctx, leadID); err != nil {
		s.logger.Warn("lead not found for association", "lead_id", leadID, "error", err)
		return nil, ErrLeadNotFound
	}

	intention, err := s.repo.SetLead(ctx, id, leadID)
	if err != nil {
		if errors.Is(err, ErrIntentionNotFound) {
			return nil, ErrIntentionNotFound
		}
		s.logger.Error("failed to persist association", "error", err, "intention_id", id)
		return nil, ErrSaveFailed
	}

	s.logger.Info("intention updated", "id", intention.ID)
	return intention, nil
}
