package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/vocabreview/internal/spaced_repetition"
)

func newQueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Show due and upcoming review items for a learner",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, _ := cmd.Flags().GetString("user")
			now, err := nowFromFlags(cmd)
			if err != nil {
				return err
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			q, err := a.reviews.Queues(cmd.Context(), user, now)
			if err != nil {
				return err
			}
			printQueues(cmd.OutOrStdout(), q, now)
			return nil
		},
	}
	cmd.Flags().String("user", "", "learner id")
	cmd.Flags().String("now", "", "reference time in RFC3339 (default current time)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func printQueues(w io.Writer, q spaced_repetition.Queues, now time.Time) {
	fmt.Fprintf(w, "due: %d\n", spaced_repetition.DueCount(q))
	for _, it := range q.Due {
		r := it.Record
		fmt.Fprintf(w, "  %s/%s/%s  reviewed %d times\n", r.Level, r.LessonType, r.ItemID, r.TimesReviewed)
	}

	fmt.Fprintf(w, "upcoming: %d\n", len(q.Upcoming))
	for _, it := range q.Upcoming {
		r := it.Record
		fmt.Fprintf(w, "  %s/%s/%s  at %s (in %s)\n", r.Level, r.LessonType, r.ItemID,
			it.NextReviewAt.Format(time.RFC3339), it.NextReviewAt.Sub(now).Round(time.Minute))
	}

	fmt.Fprintf(w, "mastered: %d\n", q.MasteredCount)
}
