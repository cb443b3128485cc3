package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
)

func TestApply(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.register(t, "Owner", "owner@example.com", models.UserTypeEmployer)
	seeker := f.register(t, "Sam Seeker", "seeker@example.com", models.UserTypeAspirant)
	job := f.postJob(t, owner)

	app, err := f.appSvc.Apply(ctx, seeker, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApplied, app.Status)

	events := f.notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, owner.ID, events[0].UserID)
	assert.Equal(t, models.NotificationNewApplication, events[0].Type)
	assert.Equal(t, "Sam Seeker applied for Backend Engineer", events[0].Message)
	assert.Equal(t, app.ID, events[0].Data["application_id"])

	_, err = f.appSvc.Apply(ctx, seeker, job.ID)
	ae := appErr(t, err)
	assert.Equal(t, utils.CodeConflict, ae.Code)
	assert.Equal(t, "You have already applied for this job", ae.Message)

	_, err = f.appSvc.Apply(ctx, owner, job.ID)
	assert.True(t, utils.IsCode(err, utils.CodeForbidden), "employers cannot apply")

	_, err = f.appSvc.Apply(ctx, seeker, "missing")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	applied, err := f.appSvc.JobsApplied(ctx, seeker, 1)
	require.NoError(t, err)
	require.Len(t, applied.Items, 1)
	require.NotNil(t, applied.Items[0].Job)
	assert.Equal(t, job.Title, applied.Items[0].Job.Title)
}

func TestApplyOwnJobForbidden(t *testing.T) {
	f := newFixture(t)
	aspirant := f.register(t, "Poster", "poster@example.com", models.UserTypeAspirant)
	job := f.postJob(t, aspirant)

	_, err := f.appSvc.Apply(context.Background(), aspirant, job.ID)
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))
}

func TestApplySurvivesNotifierFailure(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("redis down")
	owner := f.register(t, "Owner", "owner@example.com", models.UserTypeEmployer)
	seeker := f.register(t, "Seeker", "seeker@example.com", models.UserTypeAspirant)
	job := f.postJob(t, owner)

	_, err := f.appSvc.Apply(context.Background(), seeker, job.ID)
	assert.NoError(t, err)
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.register(t, "Owner", "owner@example.com", models.UserTypeEmployer)
	other := f.register(t, "Other", "other@example.com", models.UserTypeEmployer)
	seeker := f.register(t, "Seeker", "seeker@example.com", models.UserTypeAspirant)
	job := f.postJob(t, owner)
	app, err := f.appSvc.Apply(ctx, seeker, job.ID)
	require.NoError(t, err)

	_, err = f.appSvc.SetStatus(ctx, other, app.ID, models.ApplicationAccepted)
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))

	_, err = f.appSvc.SetStatus(ctx, owner, app.ID, models.ApplicationApplied)
	assert.Contains(t, utils.FieldsOf(err), "status")

	_, err = f.appSvc.SetStatus(ctx, owner, "missing", models.ApplicationRejected)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	cases := map[models.ApplicationStatus]string{
		models.ApplicationInterview: "You have been shortlisted for an interview for Backend Engineer",
		models.ApplicationAccepted:  "Your application for Backend Engineer has been accepted",
		models.ApplicationRejected:  "Your application for Backend Engineer has been rejected",
	}
	for status, msg := range cases {
		got, err := f.appSvc.SetStatus(ctx, owner, app.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)

		events := f.notifier.Events()
		last := events[len(events)-1]
		assert.Equal(t, seeker.ID, last.UserID)
		assert.Equal(t, models.NotificationStatusChanged, last.Type)
		assert.Equal(t, msg, last.Message)
		assert.Equal(t, string(status), last.Data["status"])
	}

	view, err := f.appSvc.ViewApplicants(ctx, owner, job.ID)
	require.NoError(t, err)
	require.Len(t, view.Applications, 1)
	require.NotNil(t, view.Applications[0].User)
	assert.Equal(t, "Seeker", view.Applications[0].User.Name)

	_, err = f.appSvc.ViewApplicants(ctx, other, job.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestSaveAndUnsave(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.register(t, "Owner", "owner@example.com", models.UserTypeEmployer)
	seeker := f.register(t, "Seeker", "seeker@example.com", models.UserTypeAspirant)
	job := f.postJob(t, owner)

	_, err := f.appSvc.SaveJob(ctx, seeker, job.ID)
	require.NoError(t, err)
	_, err = f.appSvc.SaveJob(ctx, seeker, job.ID)
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
	_, err = f.appSvc.SaveJob(ctx, owner, job.ID)
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))

	saved, err := f.appSvc.SavedJobs(ctx, seeker, 1)
	require.NoError(t, err)
	require.Len(t, saved.Items, 1)
	assert.Equal(t, job.ID, saved.Items[0].JobID)

	require.NoError(t, f.appSvc.UnsaveJob(ctx, seeker, job.ID))
	err = f.appSvc.UnsaveJob(ctx, seeker, job.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}
