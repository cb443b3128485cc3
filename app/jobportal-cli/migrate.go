package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RafiALMahmud/Job-portal1/config"
	"github.com/RafiALMahmud/Job-portal1/internal/repositories/postgres"
	"github.com/RafiALMahmud/Job-portal1/internal/seed"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, _, log, err := openDB()
		if err != nil {
			return err
		}
		if err := config.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("schema is up to date")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default categories and job types",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, _, log, err := openDB()
		if err != nil {
			return err
		}
		if err := config.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		res, err := seed.Lookups(cmd.Context(), postgres.NewCategoryRepo(db), postgres.NewJobTypeRepo(db), seed.DefaultCategories, seed.DefaultJobTypes)
		if err != nil {
			return err
		}
		log.WithField("categories", res.Categories).WithField("job_types", res.JobTypes).Info("lookups seeded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
