package product

import (
	"log/slog"
	"slices"
	"time"

	"github.com/couchcryptid/climate-report-service/internal/period"
)

// Catalog holds one generation session's products split by distribution
// channel. Every routed key lives in exactly one of the two groups.
type Catalog struct {
	NWR  *Set `json:"nwr"`
	NWWS *Set `json:"nwws"`
}

// Partition routes each product to the NWR or NWWS group by its period type's
// channel. Products on any other channel are dropped; their keys are logged
// and returned in sorted order.
func Partition(products map[string]*Product, logger *slog.Logger) (*Catalog, []string) {
	nwr := make(map[string]*Product)
	nwws := make(map[string]*Product)
	var dropped []string

	for key, p := range products {
		if p == nil {
			dropped = append(dropped, key)
			continue
		}
		switch p.Channel() {
		case period.ChannelNWR:
			nwr[key] = p
		case period.ChannelNWWS:
			nwws[key] = p
		default:
			dropped = append(dropped, key)
		}
	}

	slices.Sort(dropped)
	if len(dropped) > 0 && logger != nil {
		logger.Warn("dropping products with no distribution channel",
			"count", len(dropped),
			"keys", dropped,
		)
	}

	return &Catalog{
		NWR:  NewSet(period.ChannelNWR, nwr),
		NWWS: NewSet(period.ChannelNWWS, nwws),
	}, dropped
}

// Set returns the group for channel, or nil for a channel the catalog does
// not carry.
func (c *Catalog) Set(channel period.Channel) *Set {
	switch channel {
	case period.ChannelNWR:
		return c.NWR
	case period.ChannelNWWS:
		return c.NWWS
	default:
		return nil
	}
}

// Sets returns the NWR and NWWS groups in that order.
func (c *Catalog) Sets() []*Set {
	return []*Set{c.NWR, c.NWWS}
}

// MaxExpiration is the later of the two groups' MaxExpiration.
func (c *Catalog) MaxExpiration() time.Time {
	nwr, nwws := c.NWR.MaxExpiration(), c.NWWS.MaxExpiration()
	if nwws.After(nwr) {
		return nwws
	}
	return nwr
}

// IsAllSent reports whether both groups are fully sent.
func (c *Catalog) IsAllSent() bool {
	return c.NWR.IsAllSent() && c.NWWS.IsAllSent()
}

// IsEmpty reports whether neither group holds a product.
func (c *Catalog) IsEmpty() bool {
	return c.NWR.Len() == 0 && c.NWWS.Len() == 0
}

// Len counts products across both groups.
func (c *Catalog) Len() int {
	return c.NWR.Len() + c.NWWS.Len()
}

// ContainsKey reports whether either group holds key.
func (c *Catalog) ContainsKey(key string) bool {
	return c.NWR.Contains(key) || c.NWWS.Contains(key)
}

// UpdateGroupStatus sets the status of the channel's group. Unknown channels
// are ignored.
func (c *Catalog) UpdateGroupStatus(channel period.Channel, status GroupStatus, desc string) {
	if s := c.Set(channel); s != nil {
		s.SetStatus(status, desc)
	}
}

// Replace stores p under key in the channel's group. Unknown channels are
// ignored.
func (c *Catalog) Replace(channel period.Channel, key string, p *Product) {
	if s := c.Set(channel); s != nil {
		s.Replace(key, p)
	}
}

// Delete removes key from the channel's group and reports whether it existed.
func (c *Catalog) Delete(channel period.Channel, key string) bool {
	if s := c.Set(channel); s != nil {
		return s.Delete(key)
	}
	return false
}

// Refresh re-derives both groups' cached statuses.
func (c *Catalog) Refresh() {
	for _, s := range c.Sets() {
		s.Refresh()
	}
}
