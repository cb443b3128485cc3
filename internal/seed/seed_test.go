package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RafiALMahmud/Job-portal1/internal/repositories/postgres"
	"github.com/RafiALMahmud/Job-portal1/internal/testutil"
)

func TestLookupsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	cats := postgres.NewCategoryRepo(db)
	types := postgres.NewJobTypeRepo(db)

	res, err := Lookups(ctx, cats, types, DefaultCategories, DefaultJobTypes)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultCategories), res.Categories)
	assert.Equal(t, len(DefaultJobTypes), res.JobTypes)

	_, err = Lookups(ctx, cats, types, append(DefaultCategories, "  "), DefaultJobTypes)
	require.NoError(t, err)

	all, err := cats.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(DefaultCategories))

	jt, err := types.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, jt, len(DefaultJobTypes))
}
