package leads

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for lead storage
type Repository interface {
	Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error)
	GetByID(ctx context.Context, id string) (*Lead, error)
	GetByEmail(ctx context.Context, email string) (*Lead, error)
	List(ctx context.Context, offset, limit int) ([]*Lead, int, error)
}

// InMemoryRepository is an implementation of Repository using in-memory
// storage, used in tests and when no database is configured.
type InMemoryRepository struct {
	mu    sync.RWMutex
	leads map[string]*Lead
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		leads: make(map[string]*Lead),
	}
}

// Create creates a new lead in memory. Email uniqueness is enforced the
// same way the relational schema does it.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.leads {
		if strings.EqualFold(existing.Email, req.Email) {
			return nil, ErrEmailTaken
		}
	}

	lead := &Lead{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}
	r.leads[lead.ID] = lead

	return lead, nil
}

// GetByID retrieves a lead by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}

	return lead, nil
}

// GetByEmail retrieves a lead by email
func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, lead := range r.leads {
		if strings.EqualFold(lead.Email, email) {
			return lead, nil
		}
	}

	return nil, ErrLeadNotFound
}

// List returns one page of leads ordered by name ascending, plus the total
// number of leads in the store.
func (r *InMemoryRepository) List(ctx context.Context, offset, limit int) ([]*Lead, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		all = append(all, lead)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	total := len(all)
	if offset >= total {
		return []*Lead{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}
