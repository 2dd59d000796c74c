package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/vocabreview/internal/excel"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.xlsx|file.csv>",
		Short: "Bulk mark items memorized from a spreadsheet (columns: user, level, lesson type, item)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := excel.DefaultImportConfig()
			cfg.FilePath = args[0]
			cfg.SheetName, _ = cmd.Flags().GetString("sheet")
			cfg.DefaultUserID, _ = cmd.Flags().GetString("user")

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := excel.NewImporter(a.records).Import(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			for _, e := range result.Errors {
				a.log.Warn(e)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "processed %d rows: %d created, %d already tracked, %d skipped, %d errors\n",
				result.TotalProcessed, result.Created, result.Existing, result.Skipped, len(result.Errors))
			return nil
		},
	}
	cmd.Flags().String("sheet", "Sheet1", "sheet to read from xlsx files")
	cmd.Flags().String("user", "", "learner id for rows without one")
	return cmd
}
