package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rockalpatio/internal/repository"
	"rockalpatio/internal/service/auth"
	"rockalpatio/internal/session"
	"rockalpatio/pkg/db"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage dashboard accounts",
}

var (
	userEmail    string
	userPassword string
)

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an account that can sign in to the dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := db.NewConnection(cfg.DB, log)
		if err != nil {
			return err
		}
		defer pool.Close()

		// 注册不涉及会话，不需要 Redis
		var noSessions session.Revoker
		svc := auth.NewService(repository.NewUserRepository(pool), noSessions, cfg.JWT.Secret, cfg.JWT.TTL, log)

		u, err := svc.Register(cmd.Context(), userEmail, userPassword)
		if err != nil {
			return err
		}
		log.Info("User created", zap.Int64("user_id", u.ID), zap.String("email", u.Email))
		fmt.Fprintf(cmd.OutOrStdout(), "created user %d <%s>\n", u.ID, u.Email)
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVar(&userEmail, "email", "", "Account email (required)")
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "Account password, at least 8 characters (required)")
	_ = userAddCmd.MarkFlagRequired("email")
	_ = userAddCmd.MarkFlagRequired("password")
}
