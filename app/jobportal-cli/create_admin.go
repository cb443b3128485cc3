package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RafiALMahmud/Job-portal1/internal/authz"
	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/repositories/postgres"
	"github.com/RafiALMahmud/Job-portal1/internal/services"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account",
	RunE:  runCreateAdmin,
}

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

func init() {
	createAdminCmd.Flags().StringVarP(&adminName, "name", "n", "Administrator", "Admin display name")
	createAdminCmd.Flags().StringVarP(&adminEmail, "email", "e", "", "Admin email (required)")
	createAdminCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "Admin password (required)")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(createAdminCmd)
}

func runCreateAdmin(cmd *cobra.Command, _ []string) error {
	db, s, log, err := openDB()
	if err != nil {
		return err
	}
	utils.SetBcryptCost(s.BcryptCost)

	admins := services.NewAdminService(
		postgres.NewUserRepo(db),
		postgres.NewJobRepo(db),
		postgres.NewCategoryRepo(db),
		postgres.NewApplicationRepo(db),
		nil, nil, nil,
	)
	u, err := admins.CreateUser(cmd.Context(), authz.Actor{ID: "cli", Type: models.UserTypeAdmin}, services.AdminCreateUserInput{
		Name:     adminName,
		Email:    adminEmail,
		Password: adminPassword,
		UserType: models.UserTypeAdmin,
	})
	if err != nil {
		if fields := utils.FieldsOf(err); fields.Any() {
			return fmt.Errorf("invalid input: %v", fields)
		}
		return err
	}
	log.WithField("user_id", u.ID).WithField("email", u.Email).Info("admin created")
	return nil
}
