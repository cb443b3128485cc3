package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/testutil"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
)

func intPtr(v int) *int { return &v }

func TestAdminDashboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.admin(t)
	owner := f.register(t, "Owner", "owner@example.com", models.UserTypeEmployer)
	seeker := f.register(t, "Seeker", "seeker@example.com", models.UserTypeAspirant)
	job := f.postJob(t, owner)
	_, err := f.appSvc.Apply(ctx, seeker, job.ID)
	require.NoError(t, err)

	stats, err := f.adminSvc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, AdminStats{
		TotalUsers:        3,
		TotalAspirants:    1,
		TotalEmployers:    1,
		TotalAdmins:       1,
		TotalJobs:         1,
		TotalApplications: 1,
	}, *stats)

	users, err := f.adminSvc.ListUsers(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), users.Total)

	apps, err := f.adminSvc.ListApplications(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, apps.Items, 1)

	jobs, err := f.adminSvc.ListJobs(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, jobs.Items, 1)

	require.NoError(t, f.adminSvc.DeleteJob(ctx, admin, job.ID))
	err = f.adminSvc.DeleteJob(ctx, admin, job.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestAdminCreateUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.admin(t)

	u, err := f.adminSvc.CreateUser(ctx, admin, AdminCreateUserInput{Name: "Second", Email: "second@example.com", Password: "secret", UserType: models.UserTypeAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeAdmin, u.UserType)

	_, err = f.adminSvc.CreateUser(ctx, admin, AdminCreateUserInput{Name: "Dup", Email: "SECOND@example.com", Password: "secret", UserType: models.UserTypeAspirant})
	assert.Contains(t, utils.FieldsOf(err), "email")

	_, err = f.adminSvc.CreateUser(ctx, admin, AdminCreateUserInput{Name: "Bad", Email: "bad@example.com", Password: "secret", UserType: "root"})
	assert.Contains(t, utils.FieldsOf(err), "user_type")

	_, err = f.adminSvc.CreateUser(ctx, admin, AdminCreateUserInput{Name: " ", Email: "blank@example.com", Password: "secret", UserType: models.UserTypeAspirant})
	assert.Equal(t, []string{"The name field is required."}, utils.FieldsOf(err)["name"])
}

func TestAdminDeleteUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.admin(t)
	seeker := f.register(t, "Seeker", "seeker@example.com", models.UserTypeAspirant)

	err := f.adminSvc.DeleteUser(ctx, admin, admin.ID)
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))

	pic, err := f.accounts.UpdateProfilePicture(ctx, seeker, ImageUpload{Filename: "a.png", Size: int64(len(testutil.PNG)), Reader: bytes.NewReader(testutil.PNG)})
	require.NoError(t, err)

	require.NoError(t, f.adminSvc.DeleteUser(ctx, admin, seeker.ID))
	assert.False(t, f.store.Has(pic.Image))
	_, err = f.users.GetByID(ctx, seeker.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	err = f.adminSvc.DeleteUser(ctx, admin, seeker.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestAdminCategories(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.admin(t)

	hidden, err := f.adminSvc.StoreCategory(ctx, admin, CategoryInput{Name: "  Archived  ", Status: intPtr(models.StatusInactive)})
	require.NoError(t, err)
	assert.Equal(t, "Archived", hidden.Name)
	assert.Equal(t, models.StatusInactive, hidden.Status)

	_, err = f.adminSvc.StoreCategory(ctx, admin, CategoryInput{Name: "Archived"})
	assert.Equal(t, []string{"The name has already been taken."}, utils.FieldsOf(err)["name"])

	_, err = f.adminSvc.StoreCategory(ctx, admin, CategoryInput{Name: "Weird", Status: intPtr(7)})
	assert.Contains(t, utils.FieldsOf(err), "status")

	all, err := f.adminSvc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	opts, err := f.jobSvc.FormOptions(ctx)
	require.NoError(t, err)
	assert.Len(t, opts.Categories, 1, "inactive categories are not selectable")

	owner := f.register(t, "Owner", "owner@example.com", models.UserTypeEmployer)
	f.postJob(t, owner)
	err = f.adminSvc.DeleteCategory(ctx, admin, f.category.ID)
	assert.True(t, utils.IsCode(err, utils.CodeConflict))

	require.NoError(t, f.adminSvc.DeleteCategory(ctx, admin, hidden.ID))
	err = f.adminSvc.DeleteCategory(ctx, admin, hidden.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestAdminRecentActivityWithoutMongo(t *testing.T) {
	f := newFixture(t)

	rows, err := f.adminSvc.RecentActivity(context.Background(), 500)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
