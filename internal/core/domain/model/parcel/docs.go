// Package parcel models delivery packages and their forward-only lifecycle
// (AtHub, EnRoute, Delivered).
package parcel
