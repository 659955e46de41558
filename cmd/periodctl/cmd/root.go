package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/climate-report-service/internal/period"
)

// NewRootCmd builds the periodctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "periodctl",
		Short:         "Work with climate reporting periods and generation sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newResolveCmd(),
		newClassifyCmd(),
		newPreviousCmd(),
		newMockCmd(),
		newSessionsCmd(),
	)
	return root
}

// Execute runs periodctl and exits with non-zero status on error.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		os.Exit(1)
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func stderrLogger(cmd *cobra.Command) *slog.Logger {
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
}

func parseTypeCode(s string) (period.Type, error) {
	code, err := strconv.Atoi(s)
	if err != nil {
		return period.Type{}, fmt.Errorf("period type %q: not a numeric code", s)
	}
	return period.TypeByCode(code)
}
