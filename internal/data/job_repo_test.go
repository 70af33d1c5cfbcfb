package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joblane/jobboard/internal/domain/model"
	apperrors "github.com/joblane/jobboard/internal/errors"
	"github.com/joblane/jobboard/internal/testutil"
)

func TestJobRepo_Create(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewJobRepo(db)
		ctx := context.Background()

		req := testutil.NewJobRequest().
			WithDescription("Build and run backend services.").
			WithSalary("$120k-$140k").
			Build()

		job, err := repo.Create(ctx, req)
		require.NoError(t, err)

		assert.NotEmpty(t, job.ID)
		assert.Equal(t, req.Title, job.Title)
		assert.Equal(t, req.Company, job.Company)
		assert.Equal(t, req.Location, job.Location)
		require.NotNil(t, job.Description)
		assert.Equal(t, "Build and run backend services.", *job.Description)
		require.NotNil(t, job.Salary)
		assert.Equal(t, "$120k-$140k", *job.Salary)
		assert.Equal(t, model.JobTypeFullTime, job.Type)
		assert.Equal(t, model.JobStatusActive, job.Status)
		assert.True(t, job.CreatedAt.Equal(job.UpdatedAt), "creation must stamp both timestamps identically")
	})
}

func TestJobRepo_Create_Invalid(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewJobRepo(db)
		ctx := context.Background()

		_, err := repo.Create(ctx, nil)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))

		_, err = repo.Create(ctx, testutil.NewJobRequest().WithTitle("   ").Build())
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, "title", apperrors.GetField(err))
	})
}

func TestJobRepo_GetByID(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewJobRepo(db)
		ctx := context.Background()

		created, err := repo.Create(ctx, testutil.NewJobRequest().Build())
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Title, got.Title)
		assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

		_, err = repo.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrJobNotFound)
	})
}

func TestJobRepo_ListActive(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		tp := NewFixedTimeProvider(testutil.TestTime())
		repo := NewJobRepoWithTimeProvider(db, tp)
		ctx := context.Background()

		first, err := repo.Create(ctx, testutil.NewJobRequest().WithTitle("First Posting").Build())
		require.NoError(t, err)

		tp.AddTime(time.Minute)
		second, err := repo.Create(ctx, testutil.NewJobRequest().WithTitle("Second Posting").Build())
		require.NoError(t, err)

		tp.AddTime(time.Minute)
		closed := model.JobStatusClosed
		_, err = repo.Update(ctx, first.ID, model.UpdateJobRequest{Status: &closed})
		require.NoError(t, err)

		jobs, err := repo.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, jobs, 2)

		// Newest first; non-Active statuses still appear.
		assert.Equal(t, second.ID, jobs[0].ID)
		assert.Equal(t, first.ID, jobs[1].ID)
		assert.Equal(t, model.JobStatusClosed, jobs[1].Status)
	})
}

func TestJobRepo_Update_PartialFields(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		tp := NewFixedTimeProvider(testutil.TestTime())
		repo := NewJobRepoWithTimeProvider(db, tp)
		ctx := context.Background()

		created, err := repo.Create(ctx, testutil.NewJobRequest().
			WithDescription("Original description").
			Build())
		require.NoError(t, err)

		tp.AddTime(time.Hour)
		newTitle := "Staff Engineer"
		updated, err := repo.Update(ctx, created.ID, model.UpdateJobRequest{Title: &newTitle})
		require.NoError(t, err)

		assert.Equal(t, "Staff Engineer", updated.Title)
		assert.Equal(t, created.Company, updated.Company)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "Original description", *updated.Description)
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt), "created_at must never change on update")
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	})
}

func TestJobRepo_Update_EmptyRequestRefreshesTimestamp(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		tp := NewFixedTimeProvider(testutil.TestTime())
		repo := NewJobRepoWithTimeProvider(db, tp)
		ctx := context.Background()

		created, err := repo.Create(ctx, testutil.NewJobRequest().Build())
		require.NoError(t, err)

		tp.AddTime(time.Minute)
		updated, err := repo.Update(ctx, created.ID, model.UpdateJobRequest{})
		require.NoError(t, err)

		assert.Equal(t, created.Title, updated.Title)
		assert.Equal(t, created.Status, updated.Status)
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	})
}

func TestJobRepo_Update_NotFound(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewJobRepo(db)

		newTitle := "Anything"
		_, err := repo.Update(context.Background(), uuid.NewString(), model.UpdateJobRequest{Title: &newTitle})
		assert.ErrorIs(t, err, ErrJobNotFound)
	})
}

func TestJobRepo_Update_InvalidField(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewJobRepo(db)
		ctx := context.Background()

		created, err := repo.Create(ctx, testutil.NewJobRequest().Build())
		require.NoError(t, err)

		blank := "   "
		_, err = repo.Update(ctx, created.ID, model.UpdateJobRequest{Title: &blank})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, "title", apperrors.GetField(err))
	})
}

func TestJobRepo_Delete(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewJobRepo(db)
		ctx := context.Background()

		created, err := repo.Create(ctx, testutil.NewJobRequest().Build())
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		// Deletion is permanent: the row is gone, not tombstoned.
		_, err = repo.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, ErrJobNotFound)

		jobs, err := repo.ListActive(ctx)
		require.NoError(t, err)
		assert.Empty(t, jobs)

		deleted, err = repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
