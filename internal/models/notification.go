package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	NotificationNewApplication = "new_application"
	NotificationStatusChanged  = "application_status"
)

type Notification struct {
	ID        string         `gorm:"column:id;size:36;primaryKey" json:"id"`
	UserID    string         `gorm:"column:user_id;size:36;not null;index" json:"user_id"`
	Type      string         `gorm:"column:type;size:50" json:"type"`
	Message   string         `gorm:"column:message;type:text" json:"message"`
	Data      datatypes.JSON `gorm:"column:data" json:"data,omitempty"`
	IsRead    bool           `gorm:"column:is_read;default:false;index" json:"is_read"`
	ReadAt    *time.Time     `gorm:"column:read_at" json:"read_at,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;index" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
