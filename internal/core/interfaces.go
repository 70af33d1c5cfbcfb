// Package core defines the ports between the service layer and its
// collaborators (hexagonal architecture). Services depend on these
// interfaces, never on concrete repository implementations.
package core

import (
	"context"
	"time"

	"github.com/joblane/jobboard/internal/domain/model"
)

// JobRepository defines the interface for job data operations.
type JobRepository interface {
	// Create persists a new job, assigning its id and both timestamps.
	Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error)
	// ListActive returns all jobs except those carrying the reserved
	// 'Deleted' status, most recently created first.
	ListActive(ctx context.Context) ([]*model.Job, error)
	// GetByID retrieves a job by id.
	GetByID(ctx context.Context, id string) (*model.Job, error)
	// Update applies the fields present in req and refreshes updated_at.
	Update(ctx context.Context, id string, req model.UpdateJobRequest) (*model.Job, error)
	// Delete removes a job permanently. Returns false when no row matched.
	Delete(ctx context.Context, id string) (bool, error)
}

// CacheRepository defines the interface for caching operations.
type CacheRepository interface {
	// Set stores a value in the cache with the given key and TTL.
	// If TTL is 0, the key will not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value from the cache by key.
	// Returns nil if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key from the cache.
	// Returns true if the key was deleted, false if it didn't exist.
	Delete(ctx context.Context, key string) (bool, error)

	// Health checks the health of the cache connection.
	Health(ctx context.Context) error
}
