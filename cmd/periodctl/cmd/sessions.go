package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/climate-report-service/internal/product"
	"github.com/couchcryptid/climate-report-service/internal/store"
)

// sessionSummary is the one-line view of a stored session.
type sessionSummary struct {
	ID         string `json:"id"`
	State      string `json:"state"`
	Status     string `json:"status"`
	StatusDesc string `json:"status_desc,omitempty"`
	Period     string `json:"period"`
	Dates      string `json:"dates"`
	NWR        string `json:"nwr"`
	NWWS       string `json:"nwws"`
	Unsent     int    `json:"unsent"`
}

var sessionStates = map[string]product.SessionState{
	"started":      product.SessionStarted,
	"formatted":    product.SessionFormatted,
	"transmitting": product.SessionTransmitting,
	"sent":         product.SessionSent,
	"aborted":      product.SessionAborted,
}

func newSessionsCmd() *cobra.Command {
	var (
		dbPath string
		state  string
		id     string
	)

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List stored generation sessions by state, or show one by ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// store.Open creates missing files; inspection must not.
			if _, err := os.Stat(dbPath); err != nil {
				return fmt.Errorf("session db %s: %w", dbPath, err)
			}
			db, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			if id != "" {
				session, err := db.Load(ctx, id)
				if err != nil {
					return err
				}
				return writeJSON(cmd, session)
			}

			st, ok := sessionStates[strings.ToLower(state)]
			if !ok {
				return fmt.Errorf("unknown session state %q", state)
			}
			sessions, err := db.ListByState(ctx, st)
			if err != nil {
				return err
			}
			summaries := make([]sessionSummary, 0, len(sessions))
			for _, s := range sessions {
				summaries = append(summaries, summarize(s))
			}
			return writeJSON(cmd, summaries)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "data/climate-sessions.db", "session database path")
	cmd.Flags().StringVar(&state, "state", "transmitting", "session state to list")
	cmd.Flags().StringVar(&id, "id", "", "show the full snapshot of one session")
	return cmd
}

func summarize(s *product.Session) sessionSummary {
	unsent := 0
	for _, set := range s.Products.Sets() {
		unsent += len(set.Unsent())
	}
	return sessionSummary{
		ID:         s.ID,
		State:      s.State.String(),
		Status:     s.Status.String(),
		StatusDesc: s.StatusDesc,
		Period:     s.Period.Type.String(),
		Dates:      s.Period.Dates.String(),
		NWR:        s.Products.NWR.Status.String(),
		NWWS:       s.Products.NWWS.Status.String(),
		Unsent:     unsent,
	}
}
