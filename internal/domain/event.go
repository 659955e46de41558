package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/couchcryptid/climate-report-service/internal/period"
	"github.com/couchcryptid/climate-report-service/internal/product"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Generation is one generator run: the period it covers and the products it
// produced, keyed by product key.
type Generation struct {
	Period   period.Desc                 `json:"period"`
	Products map[string]*product.Product `json:"products"`
}

// ParseGeneration decodes a source message. Unknown period type codes fail
// with period.ErrInvalidParameter.
func ParseGeneration(raw RawEvent) (Generation, error) {
	var gen Generation
	if err := json.Unmarshal(raw.Value, &gen); err != nil {
		return Generation{}, fmt.Errorf("unmarshal generation: %w", err)
	}
	if gen.Products == nil {
		gen.Products = make(map[string]*product.Product)
	}
	return gen, nil
}
