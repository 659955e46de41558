package product

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-report-service/internal/calendar"
	"github.com/couchcryptid/climate-report-service/internal/period"
)

var fixedNow = time.Date(2024, time.March, 2, 6, 0, 0, 0, time.UTC)

func useFakeClock(t *testing.T) {
	t.Helper()
	calendar.SetClock(clockwork.NewFakeClockAt(fixedNow))
	t.Cleanup(func() { calendar.SetClock(nil) })
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func withStatus(typ period.Type, status Status, expiration time.Time) *Product {
	p := New("CLM", "CLMBOS", "text", typ, expiration)
	p.Status = status
	return p
}

func TestNew(t *testing.T) {
	useFakeClock(t)
	exp := fixedNow.Add(time.Hour)

	p := New("Boston monthly", "CLMBOS", "body", period.MonthlyNWWS, exp)

	assert.Equal(t, Pending, p.Status)
	assert.Equal(t, ActionNew, p.LastAction.Kind)
	assert.Equal(t, fixedNow, p.GeneratedTime)
	assert.Equal(t, exp, p.ExpirationTime)
	assert.Equal(t, period.ChannelNWWS, p.Channel())
	assert.False(t, p.IsSent())
}

func TestProduct_ErrorThenResend(t *testing.T) {
	p := New("CLM", "CLMBOS", "body", period.MonthlyRad, fixedNow)

	p.SetStatus(Error, "broker unreachable")
	p.RecordAction(ActionSend, "first attempt")
	assert.Equal(t, Error, p.Status)
	assert.True(t, p.IsAtLeast(Stored))
	assert.False(t, p.IsSent())

	p.RecordAction(ActionResend, "retry")
	p.SetStatus(Sent, "")
	assert.True(t, p.IsSent())
	assert.Equal(t, Action{Kind: ActionResend, Description: "retry"}, p.LastAction)
}

func TestAction_IsPerProduct(t *testing.T) {
	a := New("A", "A", "", period.MonthlyRad, fixedNow)
	b := New("B", "B", "", period.MonthlyRad, fixedNow)

	a.RecordAction(ActionModify, "edited by forecaster")

	assert.Equal(t, ActionModify, a.LastAction.Kind)
	assert.Equal(t, ActionNew, b.LastAction.Kind)
	assert.Empty(t, b.LastAction.Description)
}

func TestAggregateStatus(t *testing.T) {
	tests := []struct {
		name     string
		products map[string]*Product
		want     GroupStatus
	}{
		{"empty", map[string]*Product{}, GroupPending},
		{"nil", nil, GroupPending},
		{"all sent", map[string]*Product{
			"a": withStatus(period.MonthlyRad, Sent, fixedNow),
			"b": withStatus(period.MonthlyRad, Sent, fixedNow),
		}, GroupSent},
		{"one error", map[string]*Product{
			"a": withStatus(period.MonthlyRad, Sent, fixedNow),
			"b": withStatus(period.MonthlyRad, Error, fixedNow),
		}, GroupHasError},
		{"pending and stored", map[string]*Product{
			"a": withStatus(period.MonthlyRad, Pending, fixedNow),
			"b": withStatus(period.MonthlyRad, Stored, fixedNow),
		}, GroupPending},
		{"sent and pending", map[string]*Product{
			"a": withStatus(period.MonthlyRad, Sent, fixedNow),
			"b": withStatus(period.MonthlyRad, Pending, fixedNow),
		}, GroupPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := AggregateStatus(tt.products)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAggregateStatus_DescribesFirstErrorByKey(t *testing.T) {
	b := withStatus(period.MonthlyRad, Error, fixedNow)
	b.Name = "beta"
	b.RecordAction(ActionSend, "timeout")
	a := withStatus(period.MonthlyRad, Error, fixedNow)
	a.Name = "alpha"
	a.RecordAction(ActionStore, "disk full")

	status, desc := AggregateStatus(map[string]*Product{"b": b, "a": a})

	assert.Equal(t, GroupHasError, status)
	assert.Equal(t, "product alpha failed on STORE: disk full", desc)
}

func TestMaxExpiration(t *testing.T) {
	useFakeClock(t)
	early := fixedNow.Add(time.Hour)
	late := fixedNow.Add(48 * time.Hour)

	t.Run("latest unsent wins", func(t *testing.T) {
		got := MaxExpiration(map[string]*Product{
			"a": withStatus(period.MonthlyRad, Pending, early),
			"b": withStatus(period.MonthlyRad, Error, late),
		})
		assert.Equal(t, late, got)
	})

	t.Run("sent products ignored", func(t *testing.T) {
		got := MaxExpiration(map[string]*Product{
			"a": withStatus(period.MonthlyRad, Pending, early),
			"b": withStatus(period.MonthlyRad, Sent, late),
		})
		assert.Equal(t, early, got)
	})

	t.Run("all sent returns now", func(t *testing.T) {
		got := MaxExpiration(map[string]*Product{
			"a": withStatus(period.MonthlyRad, Sent, late),
		})
		assert.Equal(t, fixedNow, got)
	})

	t.Run("empty returns now", func(t *testing.T) {
		assert.Equal(t, fixedNow, MaxExpiration(nil))
	})
}

func TestSet_CountByStatus(t *testing.T) {
	var nilSet *Set
	assert.Equal(t, -1, nilSet.CountByStatus(Pending))
	assert.Equal(t, -1, NewSet(period.ChannelNWR, nil).CountByStatus(Pending))

	s := NewSet(period.ChannelNWR, map[string]*Product{
		"a": withStatus(period.MonthlyRad, Pending, fixedNow),
		"b": withStatus(period.MonthlyRad, Pending, fixedNow),
		"c": withStatus(period.MonthlyRad, Sent, fixedNow),
	})
	assert.Equal(t, 2, s.CountByStatus(Pending))
	assert.Equal(t, 1, s.CountByStatus(Sent))
	assert.Equal(t, 0, s.CountByStatus(Error))
}

func TestSet_RefreshKeepsOverride(t *testing.T) {
	s := NewSet(period.ChannelNWR, map[string]*Product{
		"a": withStatus(period.MonthlyRad, Sent, fixedNow),
	})
	require.Equal(t, GroupSent, s.Status)

	s.SetStatus(GroupModified, "forecaster edit")
	s.Refresh()
	assert.Equal(t, GroupModified, s.Status)
	assert.Equal(t, "forecaster edit", s.StatusDesc)
}

func TestSet_ReplaceAndDelete(t *testing.T) {
	s := NewSet(period.ChannelNWR, nil)
	assert.True(t, s.IsAllSent())
	assert.Equal(t, GroupPending, s.Status)

	s.Replace("a", withStatus(period.MonthlyRad, Sent, fixedNow))
	assert.Equal(t, GroupSent, s.Status)

	s.Replace("b", withStatus(period.MonthlyRad, Error, fixedNow))
	assert.Equal(t, GroupHasError, s.Status)
	assert.Equal(t, []string{"a", "b"}, s.Keys())

	assert.True(t, s.Delete("b"))
	assert.False(t, s.Delete("b"))
	assert.Equal(t, GroupSent, s.Status)
}

func TestNewSet_CopiesInput(t *testing.T) {
	in := map[string]*Product{"a": withStatus(period.MonthlyRad, Pending, fixedNow)}
	s := NewSet(period.ChannelNWR, in)

	in["b"] = withStatus(period.MonthlyRad, Pending, fixedNow)

	assert.Equal(t, 1, s.Len())
}

func TestSet_PendingErrorResendSent(t *testing.T) {
	p := New("CLM", "CLMBOS", "body", period.MonthlyRad, fixedNow)
	s := NewSet(period.ChannelNWR, map[string]*Product{"clm": p})
	assert.Equal(t, GroupPending, s.Status)

	p.SetStatus(Error, "link down")
	p.RecordAction(ActionSend, "link down")
	s.Refresh()
	assert.Equal(t, GroupHasError, s.Status)
	assert.Len(t, s.Unsent(), 1)

	p.RecordAction(ActionResend, "")
	p.SetStatus(Sent, "")
	s.Refresh()
	assert.Equal(t, GroupSent, s.Status)
	assert.Empty(t, s.Unsent())
}
