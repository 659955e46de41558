package product

import (
	"time"

	"github.com/couchcryptid/climate-report-service/internal/calendar"
	"github.com/couchcryptid/climate-report-service/internal/period"
)

// Product is one generated climate text product. It is created once per
// generation attempt and mutated in place as it moves through
// PENDING -> STORED/ERROR -> SENT. Transition validity is left to the caller.
type Product struct {
	Name           string      `json:"name"`
	PIL            string      `json:"pil"`
	Text           string      `json:"text"`
	GeneratedTime  time.Time   `json:"generated_time"`
	PeriodType     period.Type `json:"period_type"`
	LastAction     Action      `json:"last_action"`
	Status         Status      `json:"status"`
	StatusDesc     string      `json:"status_desc"`
	ExpirationTime time.Time   `json:"expiration_time"`
}

// New creates a pending product stamped with the current time.
func New(name, pil, text string, periodType period.Type, expiration time.Time) *Product {
	return &Product{
		Name:           name,
		PIL:            pil,
		Text:           text,
		GeneratedTime:  calendar.Now(),
		PeriodType:     periodType,
		LastAction:     Action{Kind: ActionNew},
		Status:         Pending,
		ExpirationTime: expiration,
	}
}

// SetStatus overwrites the status and its description.
func (p *Product) SetStatus(status Status, desc string) {
	p.Status = status
	p.StatusDesc = desc
}

// RecordAction replaces the last action.
func (p *Product) RecordAction(kind ActionKind, desc string) {
	p.LastAction = Action{Kind: kind, Description: desc}
}

// Channel is the distribution channel of the product's period type.
func (p *Product) Channel() period.Channel {
	return p.PeriodType.Channel
}

// IsAtLeast reports whether the product has progressed at least as far as status.
func (p *Product) IsAtLeast(status Status) bool {
	return p.Status >= status
}

// IsSent reports whether the product has been transmitted.
func (p *Product) IsSent() bool {
	return p.IsAtLeast(Sent)
}
