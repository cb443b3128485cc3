package models

import "time"

type ApplicationStatus string

const (
	ApplicationApplied   ApplicationStatus = "applied"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationInterview ApplicationStatus = "interview"
)

type Application struct {
	ID        string            `gorm:"column:id;size:36;primaryKey" json:"id"`
	JobID     string            `gorm:"column:job_id;size:36;not null;uniqueIndex:uniq_application_job_user" json:"job_id"`
	UserID    string            `gorm:"column:user_id;size:36;not null;uniqueIndex:uniq_application_job_user;index" json:"user_id"`
	Status    ApplicationStatus `gorm:"column:status;size:20;not null" json:"status"`
	AppliedAt time.Time         `gorm:"column:applied_at" json:"applied_at"`
	UpdatedAt time.Time         `gorm:"column:updated_at" json:"updated_at"`

	Job  *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Application) TableName() string { return "applications" }

type SavedJob struct {
	ID        string    `gorm:"column:id;size:36;primaryKey" json:"id"`
	JobID     string    `gorm:"column:job_id;size:36;not null;uniqueIndex:uniq_saved_job_user" json:"job_id"`
	UserID    string    `gorm:"column:user_id;size:36;not null;uniqueIndex:uniq_saved_job_user;index" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	Job *Job `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

func (SavedJob) TableName() string { return "saved_jobs" }
