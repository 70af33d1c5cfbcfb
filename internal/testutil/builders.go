package testutil

import (
	"github.com/joblane/jobboard/internal/domain/model"
)

// JobRequestBuilder builds CreateJobRequest values for tests with sensible defaults.
type JobRequestBuilder struct {
	req model.CreateJobRequest
}

// NewJobRequest returns a builder seeded with a valid posting.
func NewJobRequest() *JobRequestBuilder {
	return &JobRequestBuilder{
		req: model.CreateJobRequest{
			Title:    "Software Engineer",
			Company:  "Acme Corp",
			Location: "Minneapolis, MN",
		},
	}
}

// WithTitle overrides the title.
func (b *JobRequestBuilder) WithTitle(title string) *JobRequestBuilder {
	b.req.Title = title
	return b
}

// WithCompany overrides the company.
func (b *JobRequestBuilder) WithCompany(company string) *JobRequestBuilder {
	b.req.Company = company
	return b
}

// WithLocation overrides the location.
func (b *JobRequestBuilder) WithLocation(location string) *JobRequestBuilder {
	b.req.Location = location
	return b
}

// WithDescription sets an optional description.
func (b *JobRequestBuilder) WithDescription(description string) *JobRequestBuilder {
	b.req.Description = &description
	return b
}

// WithSalary sets an optional salary string.
func (b *JobRequestBuilder) WithSalary(salary string) *JobRequestBuilder {
	b.req.Salary = &salary
	return b
}

// WithType overrides the employment type.
func (b *JobRequestBuilder) WithType(jobType model.JobType) *JobRequestBuilder {
	b.req.Type = jobType
	return b
}

// WithStatus overrides the posting status.
func (b *JobRequestBuilder) WithStatus(status model.JobStatus) *JobRequestBuilder {
	b.req.Status = status
	return b
}

// Build returns a copy of the request.
func (b *JobRequestBuilder) Build() *model.CreateJobRequest {
	req := b.req
	return &req
}
