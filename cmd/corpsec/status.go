package main

import (
	"fmt"
	"io"
	"time"

	"github.com/gartstein/corpsec/internal/compliance/config"
	"github.com/gartstein/corpsec/internal/compliance/models"
	"github.com/gartstein/corpsec/internal/compliance/reports"
	"github.com/gartstein/corpsec/internal/compliance/validation"
	"github.com/spf13/cobra"
)

func statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the compliance summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := initLogger()
			defer syncLogger(logger)

			companyStore, closeStore, err := openStore(cmd.Context(), config.FromContext(cmd.Context()), logger)
			if err != nil {
				return err
			}
			defer closeStore()

			state := companyStore.State()
			printStatus(cmd.OutOrStdout(), state, reports.Build(state, time.Now()), validation.Policy(state))
			return nil
		},
	}
}

func printStatus(w io.Writer, state models.CompanyState, s reports.Summary, violations []validation.Violation) {
	if state.CompanyDetails != nil {
		fmt.Fprintf(w, "%s (%s)\n", state.CompanyDetails.Name, state.CompanyDetails.CIN)
	} else {
		fmt.Fprintln(w, "No company profile set")
	}
	fmt.Fprintf(w, "Directors: %d  Members: %d  Total shares: %d\n", s.Directors, s.Members, s.TotalShares)
	fmt.Fprintf(w, "Filings: %d  Compliance: %d%%\n", s.TotalFilings, s.CompliancePercentage)
	for _, st := range []models.FilingStatus{models.FilingPending, models.FilingFiled, models.FilingDelayed} {
		fmt.Fprintf(w, "  %-8s %d\n", st, s.FilingStatus[st])
	}

	if len(s.Upcoming) > 0 {
		fmt.Fprintln(w, "Upcoming deadlines:")
		for _, u := range s.Upcoming {
			fmt.Fprintf(w, "  %s  %s  due %s (%d days)\n", u.Filing.FormNumber, u.Filing.Name, u.Filing.DueDate, u.DaysLeft)
		}
	}
	if len(s.Delayed) > 0 {
		fmt.Fprintln(w, "Delayed filings:")
		for _, f := range s.Delayed {
			fmt.Fprintf(w, "  %s  %s  due %s\n", f.FormNumber, f.Name, f.DueDate)
		}
	}
	if len(s.RecentMeetings) > 0 {
		fmt.Fprintln(w, "Recent meetings:")
		for _, m := range s.RecentMeetings {
			fmt.Fprintf(w, "  %s  %s %s  %s\n", m.Date, m.Type, m.SubType, m.Venue)
		}
	}
	for _, v := range violations {
		fmt.Fprintf(w, "WARNING: %s\n", v.Message)
	}
}
