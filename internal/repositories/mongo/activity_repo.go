package mongo

import (
	"context"
	"time"

	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ActivityRepository interface {
	Insert(ctx context.Context, a *models.Activity) error
	Recent(ctx context.Context, limit int64) ([]models.Activity, error)
	ByActor(ctx context.Context, actorID string, limit int64) ([]models.Activity, error)
}

type activityRepo struct {
	col *mongo.Collection
}

func NewActivityRepo(db *mongo.Database) ActivityRepository {
	return &activityRepo{col: db.Collection("activity_log")}
}

func (r *activityRepo) Insert(ctx context.Context, a *models.Activity) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, a)
	return err
}

func (r *activityRepo) Recent(ctx context.Context, limit int64) ([]models.Activity, error) {
	return r.find(ctx, bson.M{}, limit)
}

func (r *activityRepo) ByActor(ctx context.Context, actorID string, limit int64) ([]models.Activity, error) {
	return r.find(ctx, bson.M{"actor_id": actorID}, limit)
}

func (r *activityRepo) find(ctx context.Context, filter bson.M, limit int64) ([]models.Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.Activity, 0, limit)
	for cur.Next(ctx) {
		var a models.Activity
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, cur.Err()
}
