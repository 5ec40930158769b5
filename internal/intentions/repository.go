package intentions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for intention storage
type Repository interface {
	Create(ctx context.Context, req *CreateIntentionRequest) (*Intention, error)
	GetByID(ctx context.Context, id string) (*Intention, error)
	SetLead(ctx context.Context, id, leadID string) (*Intention, error)
}

// InMemoryRepository is an implementation of Repository using in-memory
// storage, used in tests and when no database is configured.
type InMemoryRepository struct {
	mu         sync.RWMutex
	intentions map[string]*Intention
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		intentions: make(map[string]*Intention),
	}
}

// Create stores a new intention in memory
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateIntentionRequest) (*Intention, error) {
	intention := &Intention{
		ID:           uuid.New().String(),
		ZipcodeStart: req.ZipcodeStart,
		ZipcodeEnd:   req.ZipcodeEnd,
		CreatedAt:    time.Now().UTC(),
	}

	r.mu.Lock()
	r.intentions[intention.ID] = intention
	r.mu.Unlock()

	return intention, nil
}

// GetByID retrieves an intention by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Intention, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	intention, ok := r.intentions[id]
	if !ok {
		return nil, ErrIntentionNotFound
	}

	return intention, nil
}

// SetLead attaches a lead to an existing intention. Re-association simply
// overwrites the previous reference.
func (r *InMemoryRepository) SetLead(ctx context.Context, id, leadID string) (*Intention, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	intention, ok := r.intentions[id]
	if !ok {
		return nil, ErrIntentionNotFound
	}

	intention.LeadID = &leadID
	return intention, nil
}
