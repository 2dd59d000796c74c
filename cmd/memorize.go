package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/vocabreview/pkg/models"
)

func newMemorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memorize",
		Short: "Mark an item memorized so it enters the review schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			key := keyFromFlags(cmd)
			now, err := nowFromFlags(cmd)
			if err != nil {
				return err
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			created, err := a.records.MarkMemorized(cmd.Context(), key, now)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "memorized %s\n", key.ItemID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s was already tracked, marked memorized\n", key.ItemID)
			}
			return nil
		},
	}
	addKeyFlags(cmd)
	cmd.Flags().String("now", "", "time in RFC3339 (default current time)")
	return cmd
}

func newLearnerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learner",
		Short: "Register a learner for Telegram reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, _ := cmd.Flags().GetString("user")
			chatID, _ := cmd.Flags().GetInt64("chat-id")
			enabled, _ := cmd.Flags().GetBool("reminders")

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			learner := &models.Learner{UserID: user, TelegramChatID: chatID, RemindersEnabled: enabled}
			if err := a.learners.Save(cmd.Context(), learner); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved learner %s (reminders %t)\n", user, enabled)
			return nil
		},
	}
	cmd.Flags().String("user", "", "learner id")
	cmd.Flags().Int64("chat-id", 0, "telegram chat id")
	cmd.Flags().Bool("reminders", true, "send due-item reminders")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
