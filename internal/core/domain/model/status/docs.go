// Package status defines the closed vocabulary shared by items, shipments,
// category records and orders, together with the normalization function that
// is the single entry point for externally supplied status strings.
//
// Canonical tokens: pending, preparing, ready, delivered, canceled, paid.
//
// Key rules:
//   - Normalize never fails; empty or unrecognized input maps to Pending
//   - Ready and Delivered count as "done" for every aggregation
//   - Paid and Delivered are finalized: an order in either state is immutable
//   - Items only ever carry Pending, Preparing, Ready or Delivered
//
// Raw strings must not be compared past the normalization boundary; code in
// the domain and application layers branches on Status values only.
package status
