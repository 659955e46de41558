package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/climate-report-service/internal/calendar"
	"github.com/couchcryptid/climate-report-service/internal/config"
	"github.com/couchcryptid/climate-report-service/internal/domain"
	"github.com/couchcryptid/climate-report-service/internal/period"
	"github.com/couchcryptid/climate-report-service/internal/product"
)

func newMockCmd() *cobra.Command {
	var (
		typeCode string
		stations []string
		now      string
		out      string
	)

	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Write a sample generation message for the previous period",
		Long: `Builds the generation message the formatter would publish for the most
recently completed period of the given type, with one product per station.
Pass --now to pin the clock for reproducible fixtures.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := parseTypeCode(typeCode)
			if err != nil {
				return err
			}
			if now != "" {
				pinned, err := time.Parse(time.RFC3339, now)
				if err != nil {
					return fmt.Errorf("parse --now: %w", err)
				}
				calendar.SetClock(clockwork.NewFakeClockAt(pinned))
				defer calendar.SetClock(nil)
			}

			gen, err := buildGeneration(t, stations, config.DefaultExpiration)
			if err != nil {
				return err
			}

			if out == "" {
				return writeJSON(cmd, gen)
			}
			data, err := json.MarshalIndent(gen, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal generation: %w", err)
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			if err := os.WriteFile(out, data, 0o600); err != nil {
				return fmt.Errorf("write generation: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d products to %s\n", len(gen.Products), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeCode, "type", "t", "", "period type code")
	cmd.Flags().StringSliceVar(&stations, "stations", []string{"BOS"}, "station identifiers")
	cmd.Flags().StringVar(&now, "now", "", "RFC 3339 time to pin the clock to")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default stdout)")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

// buildGeneration creates one pending product per station for the previous
// period of t, keyed by PIL.
func buildGeneration(t period.Type, stations []string, expiration time.Duration) (domain.Generation, error) {
	desc, err := period.Previous(t)
	if err != nil {
		return domain.Generation{}, err
	}

	prefix := pilPrefix(t)
	expires := calendar.Now().Add(expiration)
	products := make(map[string]*product.Product, len(stations))
	for _, station := range stations {
		station = strings.ToUpper(strings.TrimSpace(station))
		if station == "" {
			continue
		}
		pil := prefix + station
		text := fmt.Sprintf("%s CLIMATE SUMMARY FOR %s\n%s", strings.ToUpper(t.Name), station, desc.Dates)
		products[pil] = product.New(t.Name+" "+station, pil, text, t, expires)
	}
	return domain.Generation{Period: desc, Products: products}, nil
}

func pilPrefix(t period.Type) string {
	switch {
	case t.IsMonthly():
		return "CLM"
	case t.IsSeasonal():
		return "CLS"
	default:
		return "CLA"
	}
}
