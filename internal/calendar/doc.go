// Package calendar provides the climate date and time value types.
//
// # Missing Data
//
// Climate records inherited from the Fortran era mark absent values with
// reserved in-range numbers rather than nulls:
//
//	day    99
//	month  99
//	year   9999
//	hour   99
//	minute 99
//
// Each field is independently sentinel-able. A value is "fully missing" when
// every field holds its sentinel and "partially missing" when any one does.
// The sentinels are persisted literally, so they survive JSON round trips as
// numbers and are never omitted.
//
// Accessors return the stored sentinel as-is. Operations that need real data
// (ordering, arithmetic, interval length) return false or zero when an
// operand is partially missing instead of failing.
//
// # Lenient Ingest
//
// Text parsers (ParseDate, ParseMonthDay, ParseTime, ParseSQLTime) never
// return errors. Malformed input degrades to the fully-missing value and a
// warning is logged, which tolerates irregular historical data.
package calendar
