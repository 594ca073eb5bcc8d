// Package vehicle provides the Vehicle aggregate: a capacity-limited
// delivery vehicle with its location, clock, mileage and load-set.
//
// Key business rules:
//   - the load-set never exceeds capacity (ErrCapacityExceeded)
//   - mileage starts at zero and never decreases
//   - the clock only moves forward, by travel time at the vehicle's speed
//   - cargo is accepted only while the vehicle is Idle at the hub
//
// A Vehicle is owned by a single route simulation at a time and is not
// safe for concurrent use.
package vehicle
