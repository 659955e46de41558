// Package domain defines the messages exchanged with the climate product
// generator and the downstream distribution channels.
//
// # Source Messages
//
// The upstream generator formats one climate text product per station and
// period, then publishes the whole run as a single JSON message on the source
// topic:
//
//	{
//	  "period":   { "period_type": 5, "season": "DJF", "year": 2024, ... },
//	  "products": { "CLSBOS": { "name": "...", "pil": "CLSBOS", "period_type": 5, ... } }
//	}
//
// Period types are numeric codes; see period.TypeByCode. Codes 1-6 are
// radio (NWR) types and 7-12 are weather wire (NWWS) types. Code 0 has no
// channel and is never transmitted.
//
// # Missing Values
//
// Dates and times use sentinels rather than nulls: day 99, month 99, year
// 9999, hour 99 and minute 99. They survive JSON unchanged. A product that
// arrives without status, action, generation time or expiration gets PENDING,
// NEW, the receive time and the configured default expiration respectively.
//
// # Sink Messages
//
// Each product is written to its channel's topic keyed by product key, with
// headers pil, channel, period_type and expires_at (RFC 3339).
package domain
