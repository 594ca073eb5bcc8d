// Package csvload reads the delivery-day manifest from two CSV exports: the
// package file and the distance table.
//
// Package file: one parcel per row with the columns
//
//	id, address, city, state, zip, deadline, weight, note
//
// Rows whose first field is not an integer (titles, headers, blank lines) are
// skipped. A note of the form "Must be delivered with 13, 15" becomes the
// parcel's co-delivery group.
//
// Distance table: the header row names the destinations from the second column
// on, every following row names its origin in the first column and lists the
// distances underneath the header. The table may be lower-triangular; empty
// cells are ignored and the graph fills in the symmetric side. The origin of
// the first row is the hub and is renamed to the configured hub id.
//
// Both files pass every address through Clean, so the two exports agree on
// one canonical spelling.
package csvload
