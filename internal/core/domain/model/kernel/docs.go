// Package kernel provides the value objects shared by the courier and order
// aggregates.
//
// The package includes:
//   - TimeRange: a time-of-day window with the Overlaps compatibility check
//   - order weight validation on top of shopspring/decimal
//   - the timestamp wire format used for assign and complete times
package kernel
