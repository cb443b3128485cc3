package models

import "time"

// UserType is the closed set of account roles.
type UserType string

const (
	UserTypeAspirant UserType = "aspirant"
	UserTypeEmployer UserType = "employer"
	UserTypeAdmin    UserType = "admin"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeAspirant, UserTypeEmployer, UserTypeAdmin:
		return true
	}
	return false
}

// SelfRegistrable reports whether the type may be chosen on the public registration form.
func (t UserType) SelfRegistrable() bool {
	return t == UserTypeAspirant || t == UserTypeEmployer
}

type User struct {
	ID           string   `gorm:"column:id;size:36;primaryKey" json:"id"`
	Name         string   `gorm:"column:name;size:255;not null" json:"name"`
	Email        string   `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"column:password;size:255;not null" json:"-"`
	UserType     UserType `gorm:"column:user_type;size:20;index;not null" json:"user_type"`
	Mobile       string   `gorm:"column:mobile;size:50" json:"mobile"`
	Designation  string   `gorm:"column:designation;size:255" json:"designation"`
	Image        string   `gorm:"column:image;size:512" json:"image"` // object name in storage
	ImageURL     string   `gorm:"column:image_url;size:1024" json:"image_url"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	Employer *Employer `gorm:"foreignKey:UserID" json:"employer,omitempty"`
}

func (User) TableName() string { return "users" }
