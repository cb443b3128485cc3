// Package authz holds the capability checks shared by handlers and services.
package authz

import "github.com/RafiALMahmud/Job-portal1/internal/models"

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string
	Type models.UserType
}

func (a Actor) Authenticated() bool { return a.ID != "" && a.Type.Valid() }

func (a Actor) IsAdmin() bool { return a.Type == models.UserTypeAdmin }

func (a Actor) IsEmployer() bool { return a.Type == models.UserTypeEmployer }

func (a Actor) IsAspirant() bool { return a.Type == models.UserTypeAspirant }

// CanPostJobs covers both the aspirant "my jobs" area and the employer dashboard.
func (a Actor) CanPostJobs() bool {
	return a.IsAspirant() || a.IsEmployer()
}

func (a Actor) CanApply() bool { return a.IsAspirant() }

func (a Actor) CanSaveJobs() bool { return a.IsAspirant() }

// CanModify reports whether the actor owns the job.
func CanModify(a Actor, job *models.Job) bool {
	return job != nil && a.ID != "" && job.UserID == a.ID
}

// CanReview reports whether the actor may change the status of applications on the job.
func CanReview(a Actor, job *models.Job) bool {
	return a.IsEmployer() && CanModify(a, job)
}

func CanReadNotification(a Actor, n *models.Notification) bool {
	return n != nil && a.ID != "" && n.UserID == a.ID
}

// LandingPath is where a freshly authenticated user is sent.
func LandingPath(t models.UserType) string {
	switch t {
	case models.UserTypeAdmin:
		return "/admin/dashboard"
	default:
		return "/account/profile"
	}
}
