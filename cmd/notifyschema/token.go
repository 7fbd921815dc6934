package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sumire/notifyschema/internal/config"
	"github.com/sumire/notifyschema/internal/service"
)

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API access token signed with JWT_SECRET",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if !cfg.AuthEnabled() {
			return errors.New("JWT_SECRET is not set")
		}

		token, err := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL).IssueToken(tokenSubject)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "", "subject the token is issued to")
	_ = tokenCmd.MarkFlagRequired("subject")
}
