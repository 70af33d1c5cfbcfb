// Package service contains the business-rule layer between HTTP handlers and
// repositories. Services normalize repository errors into the domain error
// taxonomy; the HTTP layer is the sole translator to status codes.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/joblane/jobboard/internal/core"
	"github.com/joblane/jobboard/internal/data"
	"github.com/joblane/jobboard/internal/domain/model"
	apperrors "github.com/joblane/jobboard/internal/errors"
)

// jobsListCacheKey caches the active-jobs listing. Invalidated on every mutation.
const jobsListCacheKey = "jobs:list:active"

const defaultJobsListCacheTTL = 30 * time.Second

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	Repo core.JobRepository
	// Cache is optional; when nil the listing is always read from the store.
	Cache    core.CacheRepository
	CacheTTL time.Duration
	Logger   *slog.Logger
}

// JobService orchestrates job CRUD. It has deliberately no business rules
// beyond existence checking; future rules (duplicate-posting detection,
// status-transition checks) belong here.
type JobService struct {
	repo     core.JobRepository
	cache    core.CacheRepository
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewJobService constructs a new JobService. The repository is required.
func NewJobService(opts JobServiceOptions) *JobService {
	if opts.Repo == nil {
		panic("job repository is required")
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = defaultJobsListCacheTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &JobService{repo: opts.Repo, cache: opts.Cache, cacheTTL: ttl, logger: logger}
}

// CreateJob creates a job posting.
func (s *JobService) CreateJob(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	job, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)
	return job, nil
}

// ListJobs returns all non-deleted job postings, most recent first.
func (s *JobService) ListJobs(ctx context.Context) ([]*model.Job, error) {
	if jobs, ok := s.cachedListing(ctx); ok {
		return jobs, nil
	}

	jobs, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	s.storeListing(ctx, jobs)
	return jobs, nil
}

// GetJob retrieves a job by id, translating absence into JobNotFound.
func (s *JobService) GetJob(ctx context.Context, id string) (*model.Job, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.normalizeNotFound(err, id)
	}
	return job, nil
}

// UpdateJob applies a partial update to a job.
func (s *JobService) UpdateJob(ctx context.Context, id string, req model.UpdateJobRequest) (*model.Job, error) {
	job, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, s.normalizeNotFound(err, id)
	}
	s.invalidateListing(ctx)
	return job, nil
}

// DeleteJob removes a job permanently.
func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFoundf("job with id %s not found", id)
	}
	s.invalidateListing(ctx)
	return nil
}

// normalizeNotFound re-tags the repository sentinel with the requested id for
// user-facing messaging; every other error propagates unmodified.
func (s *JobService) normalizeNotFound(err error, id string) error {
	if errors.Is(err, data.ErrJobNotFound) {
		return apperrors.NotFoundf("job with id %s not found", id)
	}
	return err
}

// cachedListing returns the cached jobs listing when present. Cache failures
// degrade to a store read and are logged, never surfaced.
func (s *JobService) cachedListing(ctx context.Context) ([]*model.Job, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, jobsListCacheKey)
	if err != nil {
		s.logger.WarnContext(ctx, "jobs listing cache read failed", "error", err)
		return nil, false
	}
	if raw == nil {
		return nil, false
	}
	var jobs []*model.Job
	if err := json.Unmarshal(raw, &jobs); err != nil {
		s.logger.WarnContext(ctx, "jobs listing cache entry corrupt", "error", err)
		return nil, false
	}
	return jobs, true
}

func (s *JobService) storeListing(ctx context.Context, jobs []*model.Job) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(jobs)
	if err != nil {
		s.logger.WarnContext(ctx, "jobs listing cache encode failed", "error", err)
		return
	}
	if err := s.cache.Set(ctx, jobsListCacheKey, raw, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "jobs listing cache write failed", "error", err)
	}
}

func (s *JobService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Delete(ctx, jobsListCacheKey); err != nil {
		s.logger.WarnContext(ctx, "jobs listing cache invalidation failed", "error", err)
	}
}
