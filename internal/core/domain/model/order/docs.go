// Package order provides the Order aggregate and its lifecycle.
//
// The package includes:
//   - Order: identity, weight, region, delivery windows and the delivery it is batched into
//   - Status: the state machine Unassigned -> Assigned -> Completed, with eviction back to Unassigned
//
// Orders never leave the Completed state. A completed order keeps its delivery
// reference so that repeated completion requests resolve to the same order.
package order
