// Package main provides maintenance commands for the job portal database.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/RafiALMahmud/Job-portal1/config"
	"github.com/RafiALMahmud/Job-portal1/internal/logger"
)

var (
	flagDSN    string
	flagDriver string
)

var rootCmd = &cobra.Command{
	Use:   "jobportal-cli",
	Short: "Job portal maintenance commands",
	Long:  "Runs schema migrations, seeds lookup tables and creates admin accounts for the job portal.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDSN, "dsn", "", "Database DSN (overrides DB_DSN)")
	rootCmd.PersistentFlags().StringVar(&flagDriver, "driver", "", "Database driver: postgres|mysql|sqlite (overrides DB_DRIVER)")
}

// openDB reads settings, applies flag overrides and opens the database.
func openDB() (*gorm.DB, *config.Settings, *logrus.Logger, error) {
	s, err := config.Read()
	if err != nil {
		return nil, nil, nil, err
	}
	if flagDSN != "" {
		s.DB.DSN = flagDSN
	}
	if flagDriver != "" {
		s.DB.Driver = flagDriver
	}
	if err := s.ValidateDatabase(); err != nil {
		return nil, nil, nil, err
	}
	db, err := config.OpenDatabase(s.DB)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}
	return db, s, logger.New(s.LogLevel), nil
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
