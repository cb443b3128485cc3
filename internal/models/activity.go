package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity actions recorded in the audit trail.
const (
	ActivityUserRegistered  = "user.registered"
	ActivityUserDeleted     = "user.deleted"
	ActivityUserCreated     = "user.created"
	ActivityPasswordReset   = "user.password_reset"
	ActivityJobDeleted      = "job.deleted"
	ActivityCategoryCreated = "category.created"
	ActivityCategoryDeleted = "category.deleted"
)

type Activity struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ActorID    string             `bson:"actor_id" json:"actor_id"`
	Action     string             `bson:"action" json:"action"`
	TargetType string             `bson:"target_type" json:"target_type"` // user|job|category
	TargetID   string             `bson:"target_id" json:"target_id"`
	Metadata   map[string]string  `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
