package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/poflow/internal/report"
)

var (
	spendFrom    string
	spendTo      string
	spendProject string
	spendCSV     string
)

var spendCmd = &cobra.Command{
	Use:   "spend",
	Short: "Print spend per project, or one aggregation as CSV with --csv",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, ok := report.SectionFor(spendCSV); spendCSV != "" && !ok {
			return fmt.Errorf("--csv must be project, supplier or month")
		}

		filter := report.Filter{ProjectNumber: spendProject}

		var err error

		if filter.From, err = parseDay(spendFrom); err != nil {
			return err
		}

		if filter.To, err = parseDay(spendTo); err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		spend, err := a.Reports.Spend(cmd.Context(), filter)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		if spendCSV == "" {
			_, err = fmt.Fprint(out, a.Reports.Summary(spend))
			return err
		}

		sec, _ := report.SectionFor(spendCSV)

		return report.WriteCSV(out, sec.Heading, sec.Totals(spend))
	},
}

func parseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, err)
	}

	return &t, nil
}

func init() {
	spendCmd.Flags().StringVar(&spendFrom, "from", "", "first day, YYYY-MM-DD")
	spendCmd.Flags().StringVar(&spendTo, "to", "", "last day, YYYY-MM-DD")
	spendCmd.Flags().StringVar(&spendProject, "project", "", "only this project number")
	spendCmd.Flags().StringVar(&spendCSV, "csv", "", "write one aggregation as CSV: project, supplier or month")
}
