package ui

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joblane/jobboard/internal/client"
	"github.com/joblane/jobboard/internal/domain/model"
)

// fakeAPI is a scriptable JobAPI for controller tests.
type fakeAPI struct {
	jobs       []*model.Job
	fetchErr   error
	createErr  error
	updateErr  error
	deleteErr  error
	created    *model.Job
	updated    *model.Job
	createdReq *model.CreateJobRequest
	updatedID  string
	updatedReq model.UpdateJobRequest
	deletedID  string
	calls      int
}

func (f *fakeAPI) FetchJobs(context.Context) ([]*model.Job, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.jobs, nil
}

func (f *fakeAPI) CreateJob(_ context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	f.calls++
	f.createdReq = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

func (f *fakeAPI) UpdateJob(_ context.Context, id string, req model.UpdateJobRequest) (*model.Job, error) {
	f.calls++
	f.updatedID = id
	f.updatedReq = req
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updated, nil
}

func (f *fakeAPI) DeleteJob(_ context.Context, id string) error {
	f.calls++
	f.deletedID = id
	return f.deleteErr
}

func listedJob(id, title string) *model.Job {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	return &model.Job{
		ID:        id,
		Title:     title,
		Company:   "Acme",
		Location:  "Remote",
		Type:      model.JobTypeFullTime,
		Status:    model.JobStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestController_StartsViewing(t *testing.T) {
	c := NewController(&fakeAPI{})
	assert.Equal(t, StateViewing, c.State())
	assert.Empty(t, c.Jobs())
}

func TestController_RequiresAPI(t *testing.T) {
	assert.Panics(t, func() { NewController(nil) })
}

func TestController_Load(t *testing.T) {
	api := &fakeAPI{jobs: []*model.Job{listedJob("a", "First"), listedJob("b", "Second")}}
	c := NewController(api)

	require.NoError(t, c.Load(context.Background()))
	assert.Len(t, c.Jobs(), 2)
}

func TestController_LoadFailureKeepsList(t *testing.T) {
	api := &fakeAPI{jobs: []*model.Job{listedJob("a", "First")}}
	c := NewController(api)
	require.NoError(t, c.Load(context.Background()))

	api.fetchErr = client.ErrFetchJobsFailed
	err := c.Load(context.Background())
	require.Error(t, err)
	assert.Len(t, c.Jobs(), 1, "stale list beats an empty board")
	assert.Equal(t, "failed to fetch jobs", c.Message())
}

func TestController_CreateFlow(t *testing.T) {
	api := &fakeAPI{
		jobs:    []*model.Job{listedJob("old", "Existing")},
		created: listedJob("new", "Fresh Posting"),
	}
	c := NewController(api)
	require.NoError(t, c.Load(context.Background()))

	c.StartCreate()
	assert.Equal(t, StateCreating, c.State())
	// The form opens with defaults pre-selected.
	assert.Equal(t, string(model.JobTypeFullTime), c.Form().Type)
	assert.Equal(t, string(model.JobStatusActive), c.Form().Status)

	c.SetForm(FormData{
		Title:    "  Fresh Posting  ",
		Company:  "Acme",
		Location: "Remote",
		Type:     string(model.JobTypeContract),
		Status:   string(model.JobStatusActive),
		Salary:   "$90/hr",
	})
	require.NoError(t, c.Submit(context.Background()))

	assert.Equal(t, StateViewing, c.State())
	assert.Equal(t, "Job created", c.Message())
	// Whitespace is trimmed before sending.
	assert.Equal(t, "Fresh Posting", api.createdReq.Title)
	require.NotNil(t, api.createdReq.Salary)
	assert.Equal(t, "$90/hr", *api.createdReq.Salary)
	// New posting is prepended without a refetch.
	require.Len(t, c.Jobs(), 2)
	assert.Equal(t, "new", c.Jobs()[0].ID)
	assert.Equal(t, "old", c.Jobs()[1].ID)
}

func TestController_CreateValidation(t *testing.T) {
	api := &fakeAPI{}
	c := NewController(api)

	c.StartCreate()
	c.SetForm(FormData{Title: "   ", Company: "Acme", Location: "Remote"})
	require.NoError(t, c.Submit(context.Background()))

	assert.Equal(t, StateCreating, c.State(), "invalid form stays open")
	assert.Equal(t, "Title is required", c.FieldError())
	assert.Zero(t, api.calls, "invalid forms never reach the API")
}

func TestController_CreateFailureStaysOpen(t *testing.T) {
	api := &fakeAPI{createErr: client.ErrCreateJobFailed}
	c := NewController(api)

	c.StartCreate()
	c.SetForm(FormData{Title: "Dev", Company: "Acme", Location: "Remote"})
	err := c.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, StateCreating, c.State(), "user input survives a failed submit")
	assert.Equal(t, "Dev", c.Form().Title)
	assert.Equal(t, "failed to create job", c.Message())
	assert.Empty(t, c.Jobs())
}

func TestController_EditFlow(t *testing.T) {
	desc := "Keep the lights on"
	original := listedJob("a", "SRE")
	original.Description = &desc

	updated := listedJob("a", "Senior SRE")
	api := &fakeAPI{jobs: []*model.Job{listedJob("z", "Other"), original}, updated: updated}
	c := NewController(api)
	require.NoError(t, c.Load(context.Background()))

	c.StartEdit("a")
	assert.Equal(t, StateEditing, c.State())
	assert.Equal(t, "a", c.EditingID())
	// The form is pre-filled from the posting.
	assert.Equal(t, "SRE", c.Form().Title)
	assert.Equal(t, "Keep the lights on", c.Form().Description)

	form := c.Form()
	form.Title = "Senior SRE"
	c.SetForm(form)
	require.NoError(t, c.Submit(context.Background()))

	assert.Equal(t, StateViewing, c.State())
	assert.Equal(t, "Job updated", c.Message())
	assert.Equal(t, "a", api.updatedID)
	require.NotNil(t, api.updatedReq.Title)
	assert.Equal(t, "Senior SRE", *api.updatedReq.Title)
	// The list entry is replaced in place.
	require.Len(t, c.Jobs(), 2)
	assert.Equal(t, "z", c.Jobs()[0].ID)
	assert.Equal(t, "Senior SRE", c.Jobs()[1].Title)
}

func TestController_EditUnknownIDIgnored(t *testing.T) {
	c := NewController(&fakeAPI{})
	c.StartEdit("ghost")
	assert.Equal(t, StateViewing, c.State())
}

func TestController_DeleteFlow(t *testing.T) {
	api := &fakeAPI{jobs: []*model.Job{listedJob("a", "First"), listedJob("b", "Second")}}
	c := NewController(api)
	require.NoError(t, c.Load(context.Background()))

	c.StartDelete("a")
	assert.Equal(t, StateConfirmingDelete, c.State())
	assert.Equal(t, "a", c.DeletingID())
	assert.Len(t, c.Jobs(), 2, "nothing is removed before confirmation")

	require.NoError(t, c.ConfirmDelete(context.Background()))
	assert.Equal(t, StateViewing, c.State())
	assert.Equal(t, "Job deleted", c.Message())
	assert.Equal(t, "a", api.deletedID)
	require.Len(t, c.Jobs(), 1)
	assert.Equal(t, "b", c.Jobs()[0].ID)
}

func TestController_DeleteFailureKeepsEntry(t *testing.T) {
	api := &fakeAPI{
		jobs:      []*model.Job{listedJob("a", "First")},
		deleteErr: client.ErrDeleteJobFailed,
	}
	c := NewController(api)
	require.NoError(t, c.Load(context.Background()))

	c.StartDelete("a")
	err := c.ConfirmDelete(context.Background())
	require.Error(t, err)
	assert.Len(t, c.Jobs(), 1)
	assert.Equal(t, "failed to delete job", c.Message())
}

func TestController_CancelReturnsToViewing(t *testing.T) {
	api := &fakeAPI{jobs: []*model.Job{listedJob("a", "First")}}
	c := NewController(api)
	require.NoError(t, c.Load(context.Background()))

	c.StartEdit("a")
	c.Cancel()
	assert.Equal(t, StateViewing, c.State())
	assert.Empty(t, c.EditingID())
	assert.Empty(t, c.Form().Title)

	c.StartDelete("a")
	c.Cancel()
	assert.Equal(t, StateViewing, c.State())
	assert.Empty(t, c.DeletingID())
	assert.Len(t, c.Jobs(), 1)
}

func TestController_TransitionsOnlyFromViewing(t *testing.T) {
	api := &fakeAPI{jobs: []*model.Job{listedJob("a", "First")}}
	c := NewController(api)
	require.NoError(t, c.Load(context.Background()))

	c.StartCreate()
	c.StartDelete("a")
	assert.Equal(t, StateCreating, c.State(), "delete is unreachable from the form")
	c.StartEdit("a")
	assert.Equal(t, StateCreating, c.State())
}
