package models

import "time"

type Employer struct {
	ID                 string `gorm:"column:id;size:36;primaryKey" json:"id"`
	UserID             string `gorm:"column:user_id;size:36;uniqueIndex;not null" json:"user_id"`
	CompanyName        string `gorm:"column:company_name;size:255" json:"company_name"`
	CompanyWebsite     string `gorm:"column:company_website;size:255" json:"company_website"`
	CompanyLocation    string `gorm:"column:company_location;size:255" json:"company_location"`
	CompanyDescription string `gorm:"column:company_description;type:text" json:"company_description"`
	Industry           string `gorm:"column:industry;size:255" json:"industry"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Employer) TableName() string { return "employers" }
