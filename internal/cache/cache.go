package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	// Incr bumps a counter; ttl is applied when the counter is created.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Del(ctx context.Context, keys ...string) error
}

// Key namespaces used across the services.
const (
	KeyPrefixReset      = "jobportal:reset:"
	KeyPrefixResetTries = "jobportal:reset-tries:"
	KeyPrefixRevoked    = "jobportal:revoked:"
	KeyJobFormOptions   = "jobportal:lookups:job-form"
	KeyHomeCategories   = "jobportal:lookups:home-categories"
)
