// Package services provides domain services that span the courier and order
// aggregates.
//
// The package includes:
//   - IsEligible: the region, capacity and time window admission check
//   - OrderDispatcher: the greedy lightest-first batch builder
//   - DeliveryLifecycle: order completion, region statistics and batch payout
//   - ProfileReconciler: eviction of orders a courier can no longer carry
//
// Services are stateless and never touch storage; callers load and persist
// the aggregates inside one unit of work.
package services
