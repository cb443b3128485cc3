package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/testutil"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
)

type fixture struct {
	db       *gorm.DB
	users    UserRepository
	jobs     JobRepository
	cats     CategoryRepository
	types    JobTypeRepository
	apps     ApplicationRepository
	saved    SavedJobRepository
	notes    NotificationRepository
	category *models.Category
	jobType  *models.JobType
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		db:    db,
		users: NewUserRepo(db),
		jobs:  NewJobRepo(db),
		cats:  NewCategoryRepo(db),
		types: NewJobTypeRepo(db),
		apps:  NewApplicationRepo(db),
		saved: NewSavedJobRepo(db),
		notes: NewNotificationRepo(db),
	}
	ctx := context.Background()
	var err error
	f.category, err = f.cats.FirstOrCreate(ctx, "Engineering")
	require.NoError(t, err)
	f.jobType, err = f.types.FirstOrCreate(ctx, "Full Time")
	require.NoError(t, err)
	return f
}

func (f *fixture) user(t *testing.T, email string, typ models.UserType) *models.User {
	t.Helper()
	u := &models.User{ID: uuid.NewString(), Name: "User", Email: email, PasswordHash: "x", UserType: typ}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) job(t *testing.T, owner, title string, created time.Time) *models.Job {
	t.Helper()
	j := &models.Job{
		ID:         uuid.NewString(),
		Title:      title,
		CategoryID: f.category.ID,
		JobTypeID:  f.jobType.ID,
		UserID:     owner,
		Vacancy:    1,
		Location:   "Dhaka",
		Status:     models.StatusActive,
		CreatedAt:  created,
	}
	require.NoError(t, f.jobs.Create(context.Background(), j))
	return j
}

func TestUserRepoEmailIsNormalizedAndUnique(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u := f.user(t, "  Alice@Example.COM ", models.UserTypeAspirant)
	assert.Equal(t, "alice@example.com", u.Email)

	got, err := f.users.GetByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	taken, err := f.users.EmailTaken(ctx, "alice@example.com", "")
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = f.users.EmailTaken(ctx, "alice@example.com", u.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	dup := &models.User{ID: uuid.NewString(), Name: "B", Email: "alice@example.com", PasswordHash: "x", UserType: models.UserTypeAspirant}
	assert.ErrorIs(t, f.users.Create(ctx, dup), utils.ErrDuplicate)

	_, err = f.users.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestUserRepoDeleteCascade(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	owner := f.user(t, "owner@example.com", models.UserTypeEmployer)
	other := f.user(t, "other@example.com", models.UserTypeAspirant)
	ownJob := f.job(t, owner.ID, "Owned job", time.Now())
	otherJob := f.job(t, other.ID, "Other job", time.Now())

	require.NoError(t, f.apps.Create(ctx, &models.Application{ID: uuid.NewString(), JobID: ownJob.ID, UserID: other.ID, Status: models.ApplicationApplied}))
	require.NoError(t, f.apps.Create(ctx, &models.Application{ID: uuid.NewString(), JobID: otherJob.ID, UserID: owner.ID, Status: models.ApplicationApplied}))
	require.NoError(t, f.saved.Create(ctx, &models.SavedJob{ID: uuid.NewString(), JobID: ownJob.ID, UserID: other.ID}))
	require.NoError(t, f.notes.Create(ctx, &models.Notification{ID: uuid.NewString(), UserID: owner.ID, Message: "hi", Data: datatypes.JSON("{}")}))

	require.NoError(t, f.users.DeleteCascade(ctx, owner.ID))

	_, err := f.users.GetByID(ctx, owner.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
	_, err = f.jobs.GetByID(ctx, ownJob.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	total, err := f.apps.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, total, "applications on owned jobs and by the user are gone")

	exists, err := f.saved.Exists(ctx, ownJob.ID, other.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	unread, err := f.notes.CountUnread(ctx, owner.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	_, err = f.jobs.GetByID(ctx, otherJob.ID)
	assert.NoError(t, err, "jobs of other users survive")

	assert.ErrorIs(t, f.users.DeleteCascade(ctx, owner.ID), utils.ErrNotFound)
}

func TestJobRepoSearch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.user(t, "owner@example.com", models.UserTypeEmployer)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	golang := f.job(t, owner.ID, "Go Developer", base)
	php := f.job(t, owner.ID, "PHP Developer", base.Add(time.Hour))
	php.Location = "Chittagong"
	php.Keywords = "laravel, backend"
	require.NoError(t, f.jobs.Update(ctx, php))

	hidden := f.job(t, owner.ID, "Hidden Go role", base.Add(2*time.Hour))
	hidden.Status = models.StatusInactive
	require.NoError(t, f.jobs.Update(ctx, hidden))

	rows, total, err := f.jobs.Search(ctx, JobFilter{}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)
	assert.Equal(t, php.ID, rows[0].ID, "newest first by default")

	rows, _, err = f.jobs.Search(ctx, JobFilter{Oldest: true}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, golang.ID, rows[0].ID)

	rows, total, err = f.jobs.Search(ctx, JobFilter{Keyword: "LARAVEL"}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, php.ID, rows[0].ID)

	_, total, err = f.jobs.Search(ctx, JobFilter{Keyword: "go", Location: "dhaka"}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total, "inactive jobs never match")

	_, total, err = f.jobs.Search(ctx, JobFilter{JobTypeIDs: []string{"nope"}}, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = f.jobs.GetActive(ctx, hidden.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	_, err = f.jobs.GetOwned(ctx, golang.ID, "someone-else")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	remote := f.job(t, owner.ID, "100% Remote_Engineer", base.Add(3*time.Hour))
	for _, kw := range []string{"%", "_", "!"} {
		_, total, err = f.jobs.Search(ctx, JobFilter{Keyword: kw}, 0, 10)
		require.NoError(t, err)
		if kw == "!" {
			assert.Zero(t, total, "escape character is literal")
			continue
		}
		assert.Equal(t, int64(1), total, "wildcard %q matches literally", kw)
	}
	rows, _, err = f.jobs.Search(ctx, JobFilter{Keyword: "100% remote_"}, 0, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, remote.ID, rows[0].ID)
}

func TestCategoryRepoCreateKeepsInactiveStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c := &models.Category{ID: uuid.NewString(), Name: "Archived", Status: models.StatusInactive}
	require.NoError(t, f.cats.Create(ctx, c))

	got, err := f.cats.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, got.Status)

	active, err := f.cats.IsActive(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, active)

	listed, err := f.cats.ListActive(ctx, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Engineering", listed[0].Name)

	dup := &models.Category{ID: uuid.NewString(), Name: "Archived", Status: models.StatusActive}
	assert.ErrorIs(t, f.cats.Create(ctx, dup), utils.ErrDuplicate)
}

func TestApplicationRepoUniquePerJobAndUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.user(t, "owner@example.com", models.UserTypeEmployer)
	seeker := f.user(t, "seeker@example.com", models.UserTypeAspirant)
	j := f.job(t, owner.ID, "Backend Engineer", time.Now())

	a := &models.Application{ID: uuid.NewString(), JobID: j.ID, UserID: seeker.ID, Status: models.ApplicationApplied, AppliedAt: time.Now()}
	require.NoError(t, f.apps.Create(ctx, a))

	again := &models.Application{ID: uuid.NewString(), JobID: j.ID, UserID: seeker.ID, Status: models.ApplicationApplied}
	assert.ErrorIs(t, f.apps.Create(ctx, again), utils.ErrDuplicate)

	count, err := f.apps.CountForOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, f.apps.UpdateStatus(ctx, a.ID, models.ApplicationAccepted))
	got, err := f.apps.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationAccepted, got.Status)
	require.NotNil(t, got.Job)
	assert.Equal(t, j.Title, got.Job.Title)
}

func TestSavedJobRepoDeleteMissing(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.saved.Delete(context.Background(), "job", "user"), utils.ErrNotFound)
}

func TestNotificationRepoMarkRead(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "u@example.com", models.UserTypeAspirant)

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ids := make([]string, 3)
	for i := range ids {
		ids[i] = uuid.NewString()
		require.NoError(t, f.notes.Create(ctx, &models.Notification{
			ID: ids[i], UserID: u.ID, Message: "m", Data: datatypes.JSON("{}"), CreatedAt: first.Add(time.Duration(i) * time.Minute),
		}))
	}

	require.NoError(t, f.notes.MarkRead(ctx, ids[0], first))
	unread, err := f.notes.CountUnread(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	n, err := f.notes.MarkAllRead(ctx, u.ID, first.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = f.notes.MarkAllRead(ctx, u.ID, first.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	got, err := f.notes.GetByID(ctx, ids[0])
	require.NoError(t, err)
	require.NotNil(t, got.ReadAt)
	assert.True(t, got.ReadAt.Equal(first), "earlier read time is kept")

	latest, err := f.notes.Latest(ctx, u.ID, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, ids[2], latest[0].ID)
}
