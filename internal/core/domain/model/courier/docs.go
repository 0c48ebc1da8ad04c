// Package courier provides the Courier aggregate root and the entities it owns.
//
// The package includes:
//   - Courier: profile, current batch load, earnings and rating
//   - Type: the foot/bike/car catalogue with capacity and earnings coefficient
//   - Region: region membership with delivery statistics
//   - Delivery: the courier's reusable batch slot and its completion cursor
//
// Key business rules:
//   - assigned weight always equals the weight of incomplete batched orders
//   - a drained batch pays 500 times the coefficient of the type it was formed with
//   - dropping a region discards its statistics, keeping it retains them
package courier
