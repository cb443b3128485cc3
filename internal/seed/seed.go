// Package seed fills the lookup tables a fresh install needs.
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/RafiALMahmud/Job-portal1/internal/repositories/postgres"
)

var DefaultCategories = []string{
	"Accounting & Finance",
	"Design & Creative",
	"Education & Training",
	"Engineering",
	"Healthcare",
	"Information Technology",
	"Marketing & Sales",
	"Customer Service",
}

var DefaultJobTypes = []string{
	"Full Time",
	"Part Time",
	"Remote",
	"Freelance",
	"Internship",
}

type Result struct {
	Categories int
	JobTypes   int
}

// Lookups creates missing categories and job types; existing names are left untouched.
func Lookups(ctx context.Context, categories postgres.CategoryRepository, jobTypes postgres.JobTypeRepository, categoryNames, jobTypeNames []string) (Result, error) {
	var res Result
	for _, name := range categoryNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, err := categories.FirstOrCreate(ctx, name); err != nil {
			return res, fmt.Errorf("seed category %q: %w", name, err)
		}
		res.Categories++
	}
	for _, name := range jobTypeNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, err := jobTypes.FirstOrCreate(ctx, name); err != nil {
			return res, fmt.Errorf("seed job type %q: %w", name, err)
		}
		res.JobTypes++
	}
	return res, nil
}
