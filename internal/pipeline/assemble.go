package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/couchcryptid/climate-report-service/internal/calendar"
	"github.com/couchcryptid/climate-report-service/internal/config"
	"github.com/couchcryptid/climate-report-service/internal/domain"
	"github.com/couchcryptid/climate-report-service/internal/period"
	"github.com/couchcryptid/climate-report-service/internal/product"
)

// ErrUnroutable rejects a generation under strict routing when any product
// has no distribution channel.
var ErrUnroutable = errors.New("unroutable products")

// SessionAssembler implements Assembler by decoding the generation, settling
// its period dates, filling product defaults and partitioning by channel.
type SessionAssembler struct {
	prefs  config.Preferences
	logger *slog.Logger
}

// NewAssembler creates a SessionAssembler.
func NewAssembler(prefs config.Preferences, logger *slog.Logger) *SessionAssembler {
	return &SessionAssembler{prefs: prefs, logger: logger}
}

func (a *SessionAssembler) Assemble(_ context.Context, raw domain.RawEvent) (*product.Session, []string, error) {
	gen, err := domain.ParseGeneration(raw)
	if err != nil {
		return nil, nil, err
	}

	desc, err := period.Normalize(gen.Period)
	if err != nil {
		return nil, nil, fmt.Errorf("normalize generation period: %w", err)
	}

	now := calendar.Now()
	for _, p := range gen.Products {
		if p != nil {
			a.applyDefaults(p, now)
		}
	}

	catalog, dropped := product.Partition(gen.Products, a.logger)
	if len(dropped) > 0 && a.prefs.StrictRouting {
		return nil, dropped, fmt.Errorf("%w: %s", ErrUnroutable, strings.Join(dropped, ", "))
	}

	return product.NewSession(desc, catalog), dropped, nil
}

func (a *SessionAssembler) applyDefaults(p *product.Product, now time.Time) {
	if p.Status == 0 {
		p.Status = product.Pending
	}
	if p.LastAction.Kind == product.ActionUnknown {
		p.LastAction.Kind = product.ActionNew
	}
	if p.GeneratedTime.IsZero() {
		p.GeneratedTime = now
	}
	if p.ExpirationTime.IsZero() {
		p.ExpirationTime = p.GeneratedTime.Add(a.prefs.DefaultExpiration)
	}
}
