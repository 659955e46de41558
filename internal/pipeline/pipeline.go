package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/climate-report-service/internal/config"
	"github.com/couchcryptid/climate-report-service/internal/domain"
	"github.com/couchcryptid/climate-report-service/internal/observability"
	"github.com/couchcryptid/climate-report-service/internal/period"
	"github.com/couchcryptid/climate-report-service/internal/product"
)

// BatchExtractor reads up to batchSize raw generation messages from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Assembler turns a raw generation message into a new session. It also
// returns the keys of products dropped for having no channel.
type Assembler interface {
	Assemble(ctx context.Context, raw domain.RawEvent) (*product.Session, []string, error)
}

// Transmitter delivers one product to a distribution channel.
type Transmitter interface {
	Transmit(ctx context.Context, channel period.Channel, key string, p *product.Product) error
}

// SessionStore persists session snapshots.
type SessionStore interface {
	Save(ctx context.Context, session *product.Session) error
	ListByState(ctx context.Context, state product.SessionState) ([]*product.Session, error)
}

// Pipeline orchestrates the extract-assemble-transmit loop.
type Pipeline struct {
	extractor   BatchExtractor
	assembler   Assembler
	transmitter Transmitter
	store       SessionStore
	prefs       config.Preferences
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, a Assembler, t Transmitter, s SessionStore, prefs config.Preferences,
	logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		assembler:   a,
		transmitter: t,
		store:       s,
		prefs:       prefs,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// CheckReadiness returns nil once the pipeline has completed at least one
// session, or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed any sessions yet")
	}
	return nil
}

// Run resumes interrupted sessions, then executes the batch loop until the
// context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	p.Resume(ctx)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !p.processBatch(ctx, &backoff, maxBackoff) {
			return nil
		}
	}
}

// Resume retransmits the unsent products of sessions left in the
// TRANSMITTING state by an earlier run.
func (p *Pipeline) Resume(ctx context.Context) {
	sessions, err := p.store.ListByState(ctx, product.SessionTransmitting)
	if err != nil {
		p.logger.Error("list unfinished sessions failed", "error", err)
		return
	}
	for _, session := range sessions {
		if ctx.Err() != nil {
			return
		}
		p.logger.Info("resuming session", "session_id", session.ID, "unsent", unsentCount(session.Products))
		p.transmitSession(ctx, session)
		if err := p.saveSession(ctx, session); err != nil {
			p.logger.Error("save resumed session failed", "error", err, "session_id", session.ID)
		}
	}
}

// processBatch runs one extract-assemble-transmit cycle. Returns false if the pipeline should stop.
func (p *Pipeline) processBatch(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	start := time.Now()

	// A partial batch comes back alongside a fetch error. The reader has
	// already moved past those messages, so they are handled before backing off.
	rawBatch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil && ctx.Err() != nil {
		return false
	}

	if len(rawBatch) > 0 {
		p.metrics.GenerationsConsumed.Add(float64(len(rawBatch)))
		p.metrics.BatchSize.Observe(float64(len(rawBatch)))
		if err == nil {
			*backoff = 200 * time.Millisecond
		}

		for _, raw := range rawBatch {
			if ctx.Err() != nil {
				return false
			}
			if !p.handle(ctx, raw, backoff, maxBackoff) {
				return false
			}
		}
		p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	}

	if err != nil {
		p.logger.Error("extract batch failed", "error", err, "handled", len(rawBatch))
		return p.backoffOrStop(ctx, backoff, maxBackoff)
	}
	return ctx.Err() == nil
}

// handle assembles, transmits and saves one generation, committing its
// offset only after the session is saved. Messages that violate the
// generation contract are logged, counted and committed so they are not
// redelivered. Returns false if the pipeline should stop.
func (p *Pipeline) handle(ctx context.Context, raw domain.RawEvent, backoff *time.Duration, maxBackoff time.Duration) bool {
	session, dropped, err := p.assembler.Assemble(ctx, raw)
	if len(dropped) > 0 {
		p.metrics.UnroutableDropped.Add(float64(len(dropped)))
	}
	if err != nil {
		p.logger.Warn("generation rejected, skipping message",
			"error", err,
			"topic", raw.Topic,
			"partition", raw.Partition,
			"offset", raw.Offset,
		)
		p.metrics.ContractViolations.Inc()
		p.commitOffset(ctx, raw)
		return true
	}

	session.Advance(product.SessionFormatted, product.StateSuccess, "")
	p.transmitSession(ctx, session)

	// Retry the save until it lands; the message stays uncommitted meanwhile.
	for {
		err := p.saveSession(ctx, session)
		if err == nil {
			break
		}
		p.logger.Error("save session failed", "error", err, "session_id", session.ID)
		if !p.backoffOrStop(ctx, backoff, maxBackoff) {
			return false
		}
	}

	p.commitOffset(ctx, raw)
	p.ready.Store(true)
	return true
}

// transmitSession sends every unsent product of both channels, then records
// the session outcome.
func (p *Pipeline) transmitSession(ctx context.Context, session *product.Session) {
	session.Advance(product.SessionTransmitting, product.StatePending, "")

	for _, set := range session.Products.Sets() {
		for _, key := range set.Keys() {
			prod := set.Products[key]
			if prod == nil || prod.IsSent() || ctx.Err() != nil {
				continue
			}
			p.transmitProduct(ctx, set.Channel, key, prod)
		}
		set.Refresh()
	}

	if !session.Products.IsAllSent() && ctx.Err() != nil {
		// Left TRANSMITTING so the next run resumes it.
		session.Advance(product.SessionTransmitting, product.StatePending, "transmission interrupted")
		p.logger.Info("session interrupted",
			"session_id", session.ID,
			"unsent", unsentCount(session.Products),
		)
		return
	}

	if session.Products.IsAllSent() {
		session.Advance(product.SessionSent, product.StateSuccess, "")
		p.logger.Info("session sent",
			"session_id", session.ID,
			"period", session.Period.Type.String(),
			"products", session.Products.Len(),
		)
		return
	}
	session.Advance(product.SessionTransmitting, product.StateFailure, failureDesc(session.Products))
	p.logger.Warn("session incomplete",
		"session_id", session.ID,
		"status", session.StatusDesc,
		"unsent", unsentCount(session.Products),
	)
}

// transmitProduct tries up to MaxTransmitAttempts times. A product already in
// ERROR is being resent.
func (p *Pipeline) transmitProduct(ctx context.Context, channel period.Channel, key string, prod *product.Product) {
	kind := product.ActionSend
	if prod.Status == product.Error {
		kind = product.ActionResend
	}

	attempts := max(p.prefs.MaxTransmitAttempts, 1)
	var err error
	for range attempts {
		if err = p.transmitter.Transmit(ctx, channel, key, prod); err == nil || ctx.Err() != nil {
			break
		}
	}

	label := string(channel)
	if err != nil && ctx.Err() != nil {
		// Shutdown, not a delivery failure. The product keeps its status.
		p.logger.Info("transmit interrupted", "key", key, "channel", label)
		return
	}
	if err != nil {
		prod.RecordAction(kind, err.Error())
		prod.SetStatus(product.Error, err.Error())
		p.metrics.TransmitFailures.WithLabelValues(label).Inc()
		p.logger.Error("transmit product failed", "error", err, "key", key, "channel", label)
		return
	}
	prod.RecordAction(kind, "transmitted to "+label)
	prod.SetStatus(product.Sent, "")
	p.metrics.ProductsTransmitted.WithLabelValues(label).Inc()
}

func (p *Pipeline) saveSession(ctx context.Context, session *product.Session) error {
	if err := p.store.Save(ctx, session); err != nil {
		p.metrics.SessionSaves.WithLabelValues("error").Inc()
		return err
	}
	p.metrics.SessionSaves.WithLabelValues("success").Inc()
	return nil
}

// backoffOrStop checks for context cancellation, sleeps with the current backoff,
// and advances the backoff. Returns false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

// commitOffset commits the message offset if a commit function is available.
func (p *Pipeline) commitOffset(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

// failureDesc is the first group error in NWR, NWWS order.
func failureDesc(c *product.Catalog) string {
	for _, set := range c.Sets() {
		if set.Status == product.GroupHasError {
			return set.StatusDesc
		}
	}
	return "products remain unsent"
}

func unsentCount(c *product.Catalog) int {
	n := 0
	for _, set := range c.Sets() {
		n += len(set.Unsent())
	}
	return n
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
