package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"doctrone-backend/internal/config"
	"doctrone-backend/internal/models"
)

func newAskCmd() *cobra.Command {
	var userID, chatID int64

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Run one chat turn without the HTTP server",
		Long: `Run one chat turn through the same services the HTTP handlers use.

With --user the patient's profile is resolved and the turn is recorded,
continuing --chat when given. Without --user the profile-less prompt is used
and nothing is recorded.`,
		Example: `  doctrone ask --user 1 "I have a headache"
  doctrone ask --user 1 --chat 12 "It is getting worse"
  doctrone ask "Is ibuprofen safe with coffee?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			message := strings.Join(args, " ")

			cfg := config.Load()
			if userID == 0 {
				cfg.ChatVariant = config.VariantSimple
			}
			logger, closeLog := setupLogging(cfg)
			defer closeLog()

			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if userID == 0 {
				reply, err := a.chat.Ask(ctx, message)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, reply)
				return nil
			}

			req := models.ChatRequest{UserID: idRef(userID), Message: message}
			if chatID != 0 {
				req.ChatID = idRef(chatID)
			}
			resp, err := a.chat.StartOrContinue(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "chat %d\n\n%s\n", resp.ChatID, resp.Response)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "patient user id")
	cmd.Flags().Int64Var(&chatID, "chat", 0, "existing chat id to continue")
	return cmd
}

func idRef(n int64) *models.ID {
	id := models.NewID(n)
	return &id
}
