package models

import "time"

type Job struct {
	ID         string `gorm:"column:id;size:36;primaryKey" json:"id"`
	Title      string `gorm:"column:title;size:200;not null" json:"title"`
	CategoryID string `gorm:"column:category_id;size:36;index;not null" json:"category_id"`
	JobTypeID  string `gorm:"column:job_type_id;size:36;index;not null" json:"job_type_id"`
	UserID     string `gorm:"column:user_id;size:36;index;not null" json:"user_id"`

	Vacancy        int    `gorm:"column:vacancy;not null" json:"vacancy"`
	Salary         string `gorm:"column:salary;size:255" json:"salary"`
	Location       string `gorm:"column:location;size:50" json:"location"`
	Description    string `gorm:"column:description;type:text" json:"description"`
	Benefits       string `gorm:"column:benefits;type:text" json:"benefits"`
	Responsibility string `gorm:"column:responsibility;type:text" json:"responsibility"`
	Qualifications string `gorm:"column:qualifications;type:text" json:"qualifications"`
	Keywords       string `gorm:"column:keywords;type:text" json:"keywords"`
	Experience     string `gorm:"column:experience;size:50" json:"experience"`

	CompanyName     string `gorm:"column:company_name;size:75" json:"company_name"`
	CompanyLocation string `gorm:"column:company_location;size:255" json:"company_location"`
	CompanyWebsite  string `gorm:"column:company_website;size:255" json:"company_website"`

	Status    int       `gorm:"column:status;default:1;index" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	JobType  *JobType  `gorm:"foreignKey:JobTypeID" json:"job_type,omitempty"`
}

func (Job) TableName() string { return "jobs" }
