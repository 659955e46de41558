package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/climate-report-service/internal/calendar"
	"github.com/couchcryptid/climate-report-service/internal/period"
)

func newResolveCmd() *cobra.Command {
	var (
		typeCode string
		year     int
		month    int
		season   string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the dates of a monthly, seasonal, or annual period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := parseTypeCode(typeCode)
			if err != nil {
				return err
			}

			var desc period.Desc
			switch {
			case t.IsMonthly():
				desc, err = period.NewMonthly(t, year, month)
			case t.IsSeasonal():
				var s period.Season
				if s, err = period.ParseSeason(season); err == nil {
					desc, err = period.NewSeasonal(t, year, s)
				}
			case t.IsAnnual():
				desc, err = period.NewAnnual(t, year)
			default:
				err = fmt.Errorf("resolve %s: %w", t, period.ErrInvalidParameter)
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd, desc)
		},
	}

	cmd.Flags().StringVarP(&typeCode, "type", "t", "", "period type code")
	cmd.Flags().IntVarP(&year, "year", "y", calendar.Today().Year, "year (season-year for DJF)")
	cmd.Flags().IntVarP(&month, "month", "m", 0, "month for monthly types")
	cmd.Flags().StringVarP(&season, "season", "s", "", "season for seasonal types: DJF, MAM, JJA or SON")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newClassifyCmd() *cobra.Command {
	var typeCode string

	cmd := &cobra.Command{
		Use:   "classify START END",
		Short: "Classify a YYYY-MM-DD date range as a canonical or custom period",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTypeCode(typeCode)
			if err != nil {
				return err
			}
			desc, err := period.ParseCustom(t, args[0], args[1], stderrLogger(cmd))
			if err != nil {
				return err
			}
			return writeJSON(cmd, desc)
		},
	}

	cmd.Flags().StringVarP(&typeCode, "type", "t", "", "period type code")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newPreviousCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "previous TYPE",
		Short: "Print the most recently completed period for a type code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTypeCode(args[0])
			if err != nil {
				return err
			}
			desc, err := period.Previous(t)
			if err != nil {
				return err
			}
			return writeJSON(cmd, desc)
		},
	}
}
