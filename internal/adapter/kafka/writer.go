package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/climate-report-service/internal/config"
	"github.com/couchcryptid/climate-report-service/internal/period"
	"github.com/couchcryptid/climate-report-service/internal/product"
)

// messageWriter is the subset of *kafkago.Writer used for transmission.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer transmits products to their channel's topic.
// It implements pipeline.Transmitter.
type Writer struct {
	writer messageWriter
	topics map[period.Channel]string
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the NWR and NWWS channel topics.
// The topic is chosen per message, so the underlying writer has none.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return newWriter(w, cfg, logger)
}

func newWriter(w messageWriter, cfg *config.Config, logger *slog.Logger) *Writer {
	return &Writer{
		writer: w,
		topics: map[period.Channel]string{
			period.ChannelNWR:  cfg.KafkaNWRTopic,
			period.ChannelNWWS: cfg.KafkaNWWSTopic,
		},
		logger: logger,
	}
}

// Transmit publishes one product to the topic for channel.
func (w *Writer) Transmit(ctx context.Context, channel period.Channel, key string, p *product.Product) error {
	topic, ok := w.topics[channel]
	if !ok {
		return fmt.Errorf("transmit %s: no topic for channel %q", key, channel)
	}

	msg, err := serializeToMessage(key, p)
	if err != nil {
		return err
	}
	msg.Topic = topic

	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("transmit %s to %s: %w", key, topic, err)
	}
	w.logger.Debug("product transmitted", "key", key, "channel", channel, "topic", topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a product into a Kafka message keyed by its
// product key.
func serializeToMessage(key string, p *product.Product) (kafkago.Message, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize product %s: %w", key, err)
	}
	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "pil", Value: []byte(p.PIL)},
			{Key: "channel", Value: []byte(p.Channel())},
			{Key: "period_type", Value: []byte(strconv.Itoa(p.PeriodType.Code))},
			{Key: "expires_at", Value: []byte(p.ExpirationTime.UTC().Format(time.RFC3339))},
		},
	}, nil
}
