// Package httpx provides HTTP handlers and utilities for the job board API.
package httpx

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/joblane/jobboard/internal/domain/model"
	"github.com/joblane/jobboard/internal/service"
)

// JobHandlers provides HTTP handlers for job posting operations.
type JobHandlers struct {
	Svc *service.JobService
}

// CreateJob handles POST /api/jobs.
func (h *JobHandlers) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	// Validated again at the repository, but rejecting here keeps bad input
	// from ever reaching the service layer.
	if err := req.Validate(); err != nil {
		WriteAppError(w, err)
		return
	}

	job, err := h.Svc.CreateJob(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, job)
}

// ListJobs handles GET /api/jobs. Postings are returned most recently
// created first.
func (h *JobHandlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Svc.ListJobs(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	// An empty board serializes as [], not null.
	if jobs == nil {
		jobs = []*model.Job{}
	}
	WriteJSON(w, http.StatusOK, jobs)
}

// GetJob handles GET /api/jobs/{id}.
func (h *JobHandlers) GetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := jobIDFromPath(w, r)
	if !ok {
		return
	}

	job, err := h.Svc.GetJob(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// UpdateJob handles PATCH /api/jobs/{id}. Only fields present in the body are
// applied; absent fields keep their stored values.
func (h *JobHandlers) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := jobIDFromPath(w, r)
	if !ok {
		return
	}

	var req model.UpdateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteAppError(w, err)
		return
	}

	job, err := h.Svc.UpdateJob(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// DeleteJob handles DELETE /api/jobs/{id}. Success carries no body.
func (h *JobHandlers) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := jobIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.Svc.DeleteJob(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// jobIDFromPath extracts and validates the {id} path segment. Ids that are not
// well-formed UUIDs are rejected before they reach the store.
func jobIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_id", Err: errors.New("job id must be a valid UUID")},
		)
		return "", false
	}
	return id, true
}
