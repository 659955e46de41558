// Package product tracks climate text products from generation to
// transmission.
//
// A Product moves PENDING -> STORED/ERROR -> SENT and records its last action.
// A Set groups the products bound for one channel and caches their aggregate
// status. A Catalog partitions a generation's flat product map into the NWR and
// NWWS sets, and a Session ties a catalog to the period it was generated for
// so it can be persisted between runs.
//
// None of these types lock. A session is owned by one goroutine at a time.
package product
