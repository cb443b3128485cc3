package authz

import (
	"testing"

	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCapabilities(t *testing.T) {
	aspirant := Actor{ID: "u1", Type: models.UserTypeAspirant}
	employer := Actor{ID: "u2", Type: models.UserTypeEmployer}
	admin := Actor{ID: "u3", Type: models.UserTypeAdmin}

	assert.True(t, aspirant.CanPostJobs())
	assert.True(t, employer.CanPostJobs())
	assert.False(t, admin.CanPostJobs())

	assert.True(t, aspirant.CanApply())
	assert.False(t, employer.CanApply())
	assert.True(t, aspirant.CanSaveJobs())

	assert.False(t, Actor{}.Authenticated())
	assert.False(t, Actor{ID: "x", Type: "guest"}.Authenticated())
}

func TestOwnership(t *testing.T) {
	job := &models.Job{ID: "j1", UserID: "owner"}
	owner := Actor{ID: "owner", Type: models.UserTypeEmployer}
	other := Actor{ID: "other", Type: models.UserTypeEmployer}
	ownerAspirant := Actor{ID: "owner", Type: models.UserTypeAspirant}

	assert.True(t, CanModify(owner, job))
	assert.False(t, CanModify(other, job))
	assert.False(t, CanModify(owner, nil))

	assert.True(t, CanReview(owner, job))
	assert.False(t, CanReview(ownerAspirant, job))

	n := &models.Notification{UserID: "owner"}
	assert.True(t, CanReadNotification(owner, n))
	assert.False(t, CanReadNotification(other, n))
}

func TestLandingPath(t *testing.T) {
	assert.Equal(t, "/admin/dashboard", LandingPath(models.UserTypeAdmin))
	assert.Equal(t, "/account/profile", LandingPath(models.UserTypeEmployer))
	assert.Equal(t, "/account/profile", LandingPath(models.UserTypeAspirant))
}
