// Package kernel contains shared value objects used across the dispatch domain:
// identifiers (UUID), geographic positions (GeoPoint), and actor roles (Role).
//
// All value objects in this package are immutable and validate on construction.
// Zero values are invalid by design; use the provided constructors.
package kernel
