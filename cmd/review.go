package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/vocabreview/internal/database"
	"github.com/example/vocabreview/internal/spaced_repetition"
)

func newReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Record a review of one item with a quality rating (0-5)",
		RunE: func(cmd *cobra.Command, args []string) error {
			key := keyFromFlags(cmd)
			quality, _ := cmd.Flags().GetInt("quality")
			now, err := nowFromFlags(cmd)
			if err != nil {
				return err
			}

			// reject before touching the store
			q := spaced_repetition.QualityResponse(quality)
			if err := spaced_repetition.ValidateQuality(q); err != nil {
				return err
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			record, err := a.records.GetRecord(cmd.Context(), key)
			if errors.Is(err, database.ErrRecordNotFound) {
				return fmt.Errorf("item %s is not memorized yet, run memorize first", key.ItemID)
			}
			if err != nil {
				return err
			}

			out, err := a.reviews.RecordReview(cmd.Context(), *record, q, now)
			if err != nil {
				return err
			}

			r := out.Record
			fmt.Fprintf(cmd.OutOrStdout(), "reviewed %s: times=%d interval=%dd ease=%.2f memorized=%t next=%s\n",
				r.ItemID, r.TimesReviewed, *r.IntervalDays, r.EaseFactor, r.IsMemorized,
				spaced_repetition.NextReviewAt(r, now).Format("2006-01-02"))
			printQueues(cmd.OutOrStdout(), out.Queues, now)
			return nil
		},
	}
	addKeyFlags(cmd)
	cmd.Flags().Int("quality", -1, "recall quality from 0 (blackout) to 5 (perfect)")
	cmd.Flags().String("now", "", "review time in RFC3339 (default current time)")
	_ = cmd.MarkFlagRequired("quality")
	return cmd
}
