package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	dbadapter "taskmanager/internal/adapter/db"
	httpmiddleware "taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/core/domain"
)

// userCmd seeds accounts for local setups; production users come from the
// account service that shares the users table.
func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage seeded users",
	}

	var (
		name, email, title, role string
		admin                    bool
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Insert a user and print its id",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, flush, err := setup()
			if err != nil {
				return err
			}
			defer flush()

			db, err := dbadapter.ConnectDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			user := domain.User{
				ID:        uuid.NewString(),
				Name:      name,
				Title:     title,
				Role:      role,
				Email:     email,
				IsAdmin:   admin,
				IsActive:  true,
				CreatedAt: time.Now().UTC(),
			}
			if err := dbadapter.NewUserRepository(db).Create(context.Background(), user); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), user.ID)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "display name")
	create.Flags().StringVar(&email, "email", "", "email address")
	create.Flags().StringVar(&title, "title", "", "job title")
	create.Flags().StringVar(&role, "role", "", "role")
	create.Flags().BoolVar(&admin, "admin", false, "grant administrator rights")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("email")

	cmd.AddCommand(create)
	return cmd
}

func tokenCmd() *cobra.Command {
	var (
		admin bool
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token [user-id]",
		Short: "Sign a session token for a user with the configured secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, flush, err := setup()
			if err != nil {
				return err
			}
			defer flush()

			token, err := httpmiddleware.NewAuth(cfg.JWTSecret).Sign(domain.Actor{UserID: args[0], IsAdmin: admin}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().BoolVar(&admin, "admin", false, "sign an administrator token")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
