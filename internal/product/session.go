package product

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/climate-report-service/internal/calendar"
	"github.com/couchcryptid/climate-report-service/internal/period"
)

// SessionState is the stage a generation session has reached.
type SessionState int

const (
	SessionStarted SessionState = iota + 1
	SessionFormatted
	SessionTransmitting
	SessionSent
	SessionAborted
)

func (s SessionState) String() string {
	switch s {
	case SessionStarted:
		return "STARTED"
	case SessionFormatted:
		return "FORMATTED"
	case SessionTransmitting:
		return "TRANSMITTING"
	case SessionSent:
		return "SENT"
	case SessionAborted:
		return "ABORTED"
	default:
		return "UNKNOWN"
	}
}

// StateStatus is the outcome of the session's current state.
type StateStatus int

const (
	StatePending StateStatus = iota + 1
	StateSuccess
	StateFailure
)

func (s StateStatus) String() string {
	switch s {
	case StatePending:
		return "PENDING"
	case StateSuccess:
		return "SUCCESS"
	case StateFailure:
		return "FAILURE"
	default:
		return "UNKNOWN"
	}
}

// Session is one report-generation run: the period it covers and the
// products produced for it.
type Session struct {
	ID         string       `json:"id"`
	Period     period.Desc  `json:"period"`
	Products   *Catalog     `json:"products"`
	State      SessionState `json:"state"`
	Status     StateStatus  `json:"status"`
	StatusDesc string       `json:"status_desc"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// NewSession opens a session in the STARTED/PENDING state.
func NewSession(desc period.Desc, catalog *Catalog) *Session {
	now := calendar.Now()
	return &Session{
		ID:        uuid.NewString(),
		Period:    desc,
		Products:  catalog,
		State:     SessionStarted,
		Status:    StatePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Advance moves the session to state with the given outcome.
func (s *Session) Advance(state SessionState, status StateStatus, desc string) {
	s.State = state
	s.Status = status
	s.StatusDesc = desc
	s.UpdatedAt = calendar.Now()
}

// MarshalSnapshot encodes a session for the external session store. Sentinel
// date and time values are written as literal numbers.
func MarshalSnapshot(s *Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes a stored session. Missing groups are recreated
// empty and derived group statuses are recomputed from their products.
func UnmarshalSnapshot(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session snapshot: %w", err)
	}
	if s.Products == nil {
		s.Products = &Catalog{}
	}
	if s.Products.NWR == nil {
		s.Products.NWR = NewSet(period.ChannelNWR, nil)
	}
	if s.Products.NWWS == nil {
		s.Products.NWWS = NewSet(period.ChannelNWWS, nil)
	}
	for _, set := range s.Products.Sets() {
		if set.Products == nil {
			set.Products = make(map[string]*Product)
		}
	}
	s.Products.Refresh()
	return &s, nil
}
