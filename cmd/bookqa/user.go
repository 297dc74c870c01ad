package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bookqa/internal/account"
	"bookqa/internal/config"
	"bookqa/internal/fixture"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newUserCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Provision or remove a DemoQA account",
	}
	cmd.AddCommand(newUserCreateCmd(root), newUserDeleteCmd(root))
	return cmd
}

func openSession(root *rootFlags) (*fixture.Session, error) {
	cfg, err := root.loadConfig()
	if err != nil {
		return nil, err
	}
	return fixture.NewSession(cfg, fixture.Options{Timeout: 30 * time.Second, Logger: log.Logger}), nil
}

func newUserCreateCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a random account and print its credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(root)
			if err != nil {
				return err
			}
			defer s.Close()

			u, err := s.CreateUser(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s=%s\n", config.EnvUser, u.Username)
			fmt.Fprintf(out, "%s=%s\n", config.EnvPassword, u.Password)
			fmt.Fprintf(out, "# user id %s\n", u.UserID)
			return nil
		},
	}
}

func newUserDeleteCmd(root *rootFlags) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Clear an account's shelf and delete the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				name, pass, ok := config.OverrideCredentials()
				if !ok {
					return fmt.Errorf("--username and --password, or %s and %s, are required", config.EnvUser, config.EnvPassword)
				}
				username, password = name, pass
			}
			s, err := openSession(root)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := deleteAccount(cmd.Context(), s, account.UserRequest{UserName: username, Password: password}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "account to delete (default $"+config.EnvUser+")")
	cmd.Flags().StringVar(&password, "password", "", "its password (default $"+config.EnvPassword+")")
	return cmd
}

func deleteAccount(ctx context.Context, s *fixture.Session, body account.UserRequest) error {
	session, err := s.Accounts.Login(ctx, body)
	if err != nil {
		return fmt.Errorf("login %s: %w", body.UserName, err)
	}
	if err := s.Books.ClearShelf(ctx, session.UserID, session.Token); err != nil {
		return fmt.Errorf("clear shelf: %w", err)
	}
	resp, err := s.Accounts.DeleteUser(ctx, session.UserID, session.Token)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("delete user: %d %s", resp.StatusCode, resp.Reason())
	}
	return nil
}
