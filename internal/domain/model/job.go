//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/joblane/jobboard/internal/errors"
)

const (
	maxJobTitleLen       = 100
	maxJobCompanyLen     = 50
	maxJobLocationLen    = 100
	maxJobDescriptionLen = 1000
)

// JobType classifies the employment terms of a posting.
type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeInternship JobType = "Internship"
)

// Valid reports whether the job type is one of the supported values.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	default:
		return false
	}
}

// JobStatus tracks the publication state of a posting.
type JobStatus string

const (
	JobStatusActive JobStatus = "Active"
	JobStatusClosed JobStatus = "Closed"
	JobStatusDraft  JobStatus = "Draft"
)

// Valid reports whether the job status is one of the supported values.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusActive, JobStatusClosed, JobStatusDraft:
		return true
	default:
		return false
	}
}

// Job represents a persisted job posting.
type Job struct {
	ID          string    `json:"id"                    db:"id"`
	Title       string    `json:"title"                 db:"title"`
	Company     string    `json:"company"               db:"company"`
	Location    string    `json:"location"              db:"location"`
	Description *string   `json:"description,omitempty" db:"description"`
	Salary      *string   `json:"salary,omitempty"      db:"salary"`
	Type        JobType   `json:"type"                  db:"type"`
	Status      JobStatus `json:"status"                db:"status"`
	CreatedAt   time.Time `json:"created_at"            db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"            db:"updated_at"`
}

// CreateJobRequest represents parameters to create a Job.
// Type and Status default to Full-time/Active when omitted; the defaults are
// applied here rather than relying on column defaults in the store.
type CreateJobRequest struct {
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description *string   `json:"description,omitempty"`
	Salary      *string   `json:"salary,omitempty"`
	Type        JobType   `json:"type,omitempty"`
	Status      JobStatus `json:"status,omitempty"`
}

// UpdateJobRequest represents parameters to partially update a Job.
// Only non-nil fields are applied; id and timestamps are never mutable.
// An empty request is accepted and touches only updated_at.
type UpdateJobRequest struct {
	Title       *string    `json:"title,omitempty"`
	Company     *string    `json:"company,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Description *string    `json:"description,omitempty"`
	Salary      *string    `json:"salary,omitempty"`
	Type        *JobType   `json:"type,omitempty"`
	Status      *JobStatus `json:"status,omitempty"`
}

// Validate validates CreateJobRequest, trims required text fields, and applies
// enum defaults.
func (r *CreateJobRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if err := requireText("title", r.Title, maxJobTitleLen); err != nil {
		return err
	}
	r.Company = strings.TrimSpace(r.Company)
	if err := requireText("company", r.Company, maxJobCompanyLen); err != nil {
		return err
	}
	r.Location = strings.TrimSpace(r.Location)
	if err := requireText("location", r.Location, maxJobLocationLen); err != nil {
		return err
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) > maxJobDescriptionLen {
		return apperrors.ValidationField("description", "description cannot exceed 1000 characters")
	}
	if r.Type == "" {
		r.Type = JobTypeFullTime
	}
	if !r.Type.Valid() {
		return apperrors.ValidationField("type", "invalid job type")
	}
	if r.Status == "" {
		r.Status = JobStatusActive
	}
	if !r.Status.Valid() {
		return apperrors.ValidationField("status", "invalid job status")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateJobRequest.
func (r *UpdateJobRequest) HasUpdates() bool {
	return r.Title != nil || r.Company != nil || r.Location != nil ||
		r.Description != nil ||
		r.Salary != nil ||
		r.Type != nil ||
		r.Status != nil
}

// Validate validates UpdateJobRequest. Fields left nil are skipped; a request
// with no fields at all is valid and results in an updated_at refresh only.
func (r *UpdateJobRequest) Validate() error {
	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
		if err := requireText("title", *r.Title, maxJobTitleLen); err != nil {
			return err
		}
	}
	if r.Company != nil {
		*r.Company = strings.TrimSpace(*r.Company)
		if err := requireText("company", *r.Company, maxJobCompanyLen); err != nil {
			return err
		}
	}
	if r.Location != nil {
		*r.Location = strings.TrimSpace(*r.Location)
		if err := requireText("location", *r.Location, maxJobLocationLen); err != nil {
			return err
		}
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) > maxJobDescriptionLen {
		return apperrors.ValidationField("description", "description cannot exceed 1000 characters")
	}
	if r.Type != nil && !r.Type.Valid() {
		return apperrors.ValidationField("type", "invalid job type")
	}
	if r.Status != nil && !r.Status.Valid() {
		return apperrors.ValidationField("status", "invalid job status")
	}
	return nil
}

// requireText enforces the shared required-text constraints: non-empty after
// trimming and within the rune-count cap.
func requireText(field, value string, maxLen int) error {
	if value == "" {
		return apperrors.ValidationField(field, field+" is required and cannot be empty")
	}
	if utf8.RuneCountInString(value) > maxLen {
		return apperrors.Validationf("%s cannot exceed %d characters", field, maxLen)
	}
	return nil
}
