package models

import "time"

// StatusActive marks lookup rows and jobs that are visible and selectable.
const (
	StatusInactive = 0
	StatusActive   = 1
)

type Category struct {
	ID        string    `gorm:"column:id;size:36;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;size:255;uniqueIndex;not null" json:"name"`
	Status    int       `gorm:"column:status;default:1;index" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Category) TableName() string { return "categories" }

type JobType struct {
	ID        string    `gorm:"column:id;size:36;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;size:255;uniqueIndex;not null" json:"name"`
	Status    int       `gorm:"column:status;default:1;index" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (JobType) TableName() string { return "job_types" }
