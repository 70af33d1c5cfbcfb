// Package ui implements the job board screen flow: a posting list with a
// modal form for create/edit and a delete confirmation step.
package ui

import (
	"context"
	"strings"

	"github.com/joblane/jobboard/internal/domain/model"
)

// State identifies which screen the controller is showing.
type State string

const (
	// StateViewing shows the posting list.
	StateViewing State = "viewing"
	// StateCreating shows an empty form.
	StateCreating State = "creating"
	// StateEditing shows the form pre-filled from an existing posting.
	StateEditing State = "editing"
	// StateConfirmingDelete shows the delete confirmation for one posting.
	StateConfirmingDelete State = "confirming_delete"
)

// JobAPI is the slice of the API client the controller needs.
type JobAPI interface {
	FetchJobs(ctx context.Context) ([]*model.Job, error)
	CreateJob(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error)
	UpdateJob(ctx context.Context, id string, req model.UpdateJobRequest) (*model.Job, error)
	DeleteJob(ctx context.Context, id string) error
}

// FormData holds the raw form field values as the user typed them.
type FormData struct {
	Title       string
	Company     string
	Location    string
	Description string
	Salary      string
	Type        string
	Status      string
}

// Controller owns the screen state. It is not safe for concurrent use; a
// session drives it from a single goroutine.
type Controller struct {
	api JobAPI

	state      State
	jobs       []*model.Job
	form       FormData
	editingID  string
	deletingID string
	submitting bool
	message    string
	fieldError string
}

// NewController creates a Controller in the viewing state with an empty list.
func NewController(api JobAPI) *Controller {
	if api == nil {
		panic("NewController: api is required") //nolint:forbidigo // Fail fast during setup.
	}
	return &Controller{api: api, state: StateViewing}
}

// State returns the current screen.
func (c *Controller) State() State { return c.state }

// Jobs returns the postings currently shown, newest first.
func (c *Controller) Jobs() []*model.Job { return c.jobs }

// Form returns the current form values.
func (c *Controller) Form() FormData { return c.form }

// EditingID returns the id of the posting being edited, if any.
func (c *Controller) EditingID() string { return c.editingID }

// DeletingID returns the id of the posting pending delete confirmation.
func (c *Controller) DeletingID() string { return c.deletingID }

// Submitting reports whether a form submission is in flight.
func (c *Controller) Submitting() bool { return c.submitting }

// Message returns the last operation message shown to the user.
func (c *Controller) Message() string { return c.message }

// FieldError returns the current form validation message, if any.
func (c *Controller) FieldError() string { return c.fieldError }

// Load fetches the posting list. On failure the previous list is kept so the
// user is not left staring at an empty board.
func (c *Controller) Load(ctx context.Context) error {
	jobs, err := c.api.FetchJobs(ctx)
	if err != nil {
		c.message = err.Error()
		return err
	}
	c.jobs = jobs
	c.message = ""
	return nil
}

// StartCreate opens an empty form. Only valid from the viewing state.
func (c *Controller) StartCreate() {
	if c.state != StateViewing {
		return
	}
	c.state = StateCreating
	c.form = FormData{Type: string(model.JobTypeFullTime), Status: string(model.JobStatusActive)}
	c.editingID = ""
	c.fieldError = ""
	c.message = ""
}

// StartEdit opens the form pre-filled from the listed posting with the given
// id. Unknown ids are ignored.
func (c *Controller) StartEdit(id string) {
	if c.state != StateViewing {
		return
	}
	job := c.findJob(id)
	if job == nil {
		return
	}
	c.state = StateEditing
	c.editingID = id
	c.form = formFromJob(job)
	c.fieldError = ""
	c.message = ""
}

// StartDelete asks for confirmation before removing the listed posting with
// the given id. Unknown ids are ignored.
func (c *Controller) StartDelete(id string) {
	if c.state != StateViewing {
		return
	}
	if c.findJob(id) == nil {
		return
	}
	c.state = StateConfirmingDelete
	c.deletingID = id
	c.message = ""
}

// Cancel abandons the form or confirmation and returns to the list. In-flight
// submissions cannot be cancelled.
func (c *Controller) Cancel() {
	if c.submitting {
		return
	}
	c.state = StateViewing
	c.editingID = ""
	c.deletingID = ""
	c.form = FormData{}
	c.fieldError = ""
}

// SetForm replaces the form values with what the user typed.
func (c *Controller) SetForm(form FormData) {
	if c.state != StateCreating && c.state != StateEditing {
		return
	}
	c.form = form
}

// Submit validates the form and sends it. On success the list is updated in
// place without a refetch: created postings are prepended, edited postings
// replaced. Repeated calls while a submission is in flight are no-ops.
func (c *Controller) Submit(ctx context.Context) error {
	if c.submitting || (c.state != StateCreating && c.state != StateEditing) {
		return nil
	}
	if msg := c.validateForm(); msg != "" {
		c.fieldError = msg
		return nil
	}
	c.fieldError = ""
	c.submitting = true
	defer func() { c.submitting = false }()

	if c.state == StateCreating {
		return c.submitCreate(ctx)
	}
	return c.submitEdit(ctx)
}

func (c *Controller) submitCreate(ctx context.Context) error {
	job, err := c.api.CreateJob(ctx, c.createRequest())
	if err != nil {
		c.message = err.Error()
		return err
	}
	c.jobs = append([]*model.Job{job}, c.jobs...)
	c.finishForm("Job created")
	return nil
}

func (c *Controller) submitEdit(ctx context.Context) error {
	job, err := c.api.UpdateJob(ctx, c.editingID, c.updateRequest())
	if err != nil {
		c.message = err.Error()
		return err
	}
	for i, existing := range c.jobs {
		if existing.ID == job.ID {
			c.jobs[i] = job
			break
		}
	}
	c.finishForm("Job updated")
	return nil
}

// ConfirmDelete removes the posting pending confirmation. The list entry is
// dropped on success.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	if c.submitting || c.state != StateConfirmingDelete {
		return nil
	}
	c.submitting = true
	defer func() { c.submitting = false }()

	if err := c.api.DeleteJob(ctx, c.deletingID); err != nil {
		c.message = err.Error()
		return err
	}

	kept := c.jobs[:0]
	for _, job := range c.jobs {
		if job.ID != c.deletingID {
			kept = append(kept, job)
		}
	}
	c.jobs = kept
	c.deletingID = ""
	c.state = StateViewing
	c.message = "Job deleted"
	return nil
}

func (c *Controller) finishForm(message string) {
	c.state = StateViewing
	c.editingID = ""
	c.form = FormData{}
	c.message = message
}

// validateForm checks the required fields after trimming. It returns a short
// message naming the first missing field, or "" if the form is valid.
func (c *Controller) validateForm() string {
	if strings.TrimSpace(c.form.Title) == "" {
		return "Title is required"
	}
	if strings.TrimSpace(c.form.Company) == "" {
		return "Company is required"
	}
	if strings.TrimSpace(c.form.Location) == "" {
		return "Location is required"
	}
	return ""
}

func (c *Controller) createRequest() *model.CreateJobRequest {
	req := &model.CreateJobRequest{
		Title:    strings.TrimSpace(c.form.Title),
		Company:  strings.TrimSpace(c.form.Company),
		Location: strings.TrimSpace(c.form.Location),
		Type:     model.JobType(c.form.Type),
		Status:   model.JobStatus(c.form.Status),
	}
	if d := strings.TrimSpace(c.form.Description); d != "" {
		req.Description = &d
	}
	if s := strings.TrimSpace(c.form.Salary); s != "" {
		req.Salary = &s
	}
	return req
}

// updateRequest sends every form field: the form was pre-filled from the
// posting, so untouched fields round-trip their stored values.
func (c *Controller) updateRequest() model.UpdateJobRequest {
	title := strings.TrimSpace(c.form.Title)
	company := strings.TrimSpace(c.form.Company)
	location := strings.TrimSpace(c.form.Location)
	description := strings.TrimSpace(c.form.Description)
	salary := strings.TrimSpace(c.form.Salary)
	jobType := model.JobType(c.form.Type)
	status := model.JobStatus(c.form.Status)

	return model.UpdateJobRequest{
		Title:       &title,
		Company:     &company,
		Location:    &location,
		Description: &description,
		Salary:      &salary,
		Type:        &jobType,
		Status:      &status,
	}
}

func (c *Controller) findJob(id string) *model.Job {
	for _, job := range c.jobs {
		if job.ID == id {
			return job
		}
	}
	return nil
}

func formFromJob(job *model.Job) FormData {
	form := FormData{
		Title:    job.Title,
		Company:  job.Company,
		Location: job.Location,
		Type:     string(job.Type),
		Status:   string(job.Status),
	}
	if job.Description != nil {
		form.Description = *job.Description
	}
	if job.Salary != nil {
		form.Salary = *job.Salary
	}
	return form
}
