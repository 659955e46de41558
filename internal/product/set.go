package product

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/couchcryptid/climate-report-service/internal/calendar"
	"github.com/couchcryptid/climate-report-service/internal/period"
)

// Set is the keyed group of products bound for one channel. Status and
// StatusDesc cache AggregateStatus over Products unless an override was set.
type Set struct {
	Channel    period.Channel      `json:"channel"`
	Products   map[string]*Product `json:"products"`
	Status     GroupStatus         `json:"status"`
	StatusDesc string              `json:"status_desc"`
}

// NewSet builds a group over a copy of the products map and derives its status.
func NewSet(channel period.Channel, products map[string]*Product) *Set {
	s := &Set{
		Channel:  channel,
		Products: make(map[string]*Product, len(products)),
	}
	maps.Copy(s.Products, products)
	s.Refresh()
	return s
}

// AggregateStatus derives a group status:
//   - SENT when every product is sent (an empty group is not),
//   - HAS_ERROR when any product is in ERROR, described by the first such
//     product in key order,
//   - PENDING otherwise.
func AggregateStatus(products map[string]*Product) (GroupStatus, string) {
	if len(products) == 0 {
		return GroupPending, ""
	}

	allSent := true
	for _, key := range slices.Sorted(maps.Keys(products)) {
		p := products[key]
		if p == nil {
			allSent = false
			continue
		}
		if p.Status == Error {
			name := p.Name
			if name == "" {
				name = key
			}
			return GroupHasError, fmt.Sprintf("product %s failed on %s: %s",
				name, p.LastAction.Kind, p.LastAction.Description)
		}
		if !p.IsSent() {
			allSent = false
		}
	}

	if allSent {
		return GroupSent, ""
	}
	return GroupPending, ""
}

// MaxExpiration returns the latest expiration among products not yet sent,
// or the current time when none qualify.
func MaxExpiration(products map[string]*Product) time.Time {
	var latest time.Time
	found := false
	for _, p := range products {
		if p == nil || p.IsSent() {
			continue
		}
		if !found || p.ExpirationTime.After(latest) {
			latest = p.ExpirationTime
			found = true
		}
	}
	if !found {
		return calendar.Now()
	}
	return latest
}

// Unsent returns the products whose status is not SENT.
func Unsent(products map[string]*Product) map[string]*Product {
	out := make(map[string]*Product)
	for key, p := range products {
		if p != nil && p.Status != Sent {
			out[key] = p
		}
	}
	return out
}

// Refresh re-derives the cached status. Override statuses are left in place.
func (s *Set) Refresh() {
	if s.Status.IsOverride() {
		return
	}
	s.Status, s.StatusDesc = AggregateStatus(s.Products)
}

// SetStatus writes the group status directly, typically an override.
func (s *Set) SetStatus(status GroupStatus, desc string) {
	s.Status = status
	s.StatusDesc = desc
}

// Get returns the product stored under key.
func (s *Set) Get(key string) (*Product, bool) {
	p, ok := s.Products[key]
	return p, ok
}

// Contains reports whether key is present.
func (s *Set) Contains(key string) bool {
	_, ok := s.Products[key]
	return ok
}

// Replace stores p under key, adding or overwriting.
func (s *Set) Replace(key string, p *Product) {
	if s.Products == nil {
		s.Products = make(map[string]*Product)
	}
	s.Products[key] = p
	s.Refresh()
}

// Delete removes key and reports whether it existed.
func (s *Set) Delete(key string) bool {
	if _, ok := s.Products[key]; !ok {
		return false
	}
	delete(s.Products, key)
	s.Refresh()
	return true
}

// Len returns the number of products in the group.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Products)
}

// Keys returns the product keys in sorted order.
func (s *Set) Keys() []string {
	return slices.Sorted(maps.Keys(s.Products))
}

// IsAllSent reports whether every product has been sent. Vacuously true for
// an empty group.
func (s *Set) IsAllSent() bool {
	for _, p := range s.Products {
		if p == nil || !p.IsSent() {
			return false
		}
	}
	return true
}

// CountByStatus counts products with the given status. It returns -1 for a
// nil or empty group so callers can tell "no data" from "no matches".
func (s *Set) CountByStatus(status Status) int {
	if s == nil || len(s.Products) == 0 {
		return -1
	}
	n := 0
	for _, p := range s.Products {
		if p != nil && p.Status == status {
			n++
		}
	}
	return n
}

// Unsent returns this group's products not yet sent.
func (s *Set) Unsent() map[string]*Product {
	return Unsent(s.Products)
}

// MaxExpiration returns the latest expiration among this group's unsent
// products, or now.
func (s *Set) MaxExpiration() time.Time {
	return MaxExpiration(s.Products)
}
