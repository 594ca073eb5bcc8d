// Package graph provides the symmetric distance graph used for routing.
//
// Locations are kernel.Address values and every edge is stored for both
// orderings, so Distance(a, b) == Distance(b, a) holds for every recorded
// pair. A missing edge is reported as an error wrapping ErrEdgeNotFound and
// errs.ErrObjectNotFound; a numeric stand-in is never returned.
//
// A Graph is built once during ingestion and then read concurrently by all
// route simulations. Writes after that point need external synchronization.
package graph
