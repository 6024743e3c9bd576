// Package services provides domain services of the restaurant order system:
// logic that needs more than one aggregate or model and so does not belong to
// any single one.
//
// The package includes:
//   - CategoryClassifier: buckets a catalog category into a kitchen category
//   - ItemFactory: turns an item request and an optional catalog product into
//     an order item with a price snapshot
package services
