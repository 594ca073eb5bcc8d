// Package services implements the planning and routing algorithms that span
// parcels and vehicles.
//
// The package includes:
//   - Planner: deadline-ordered, capacity- and group-aware assignment of
//     parcels to vehicles, one planning pass per call
//   - RouteSimulator: nearest-neighbour delivery loop for one vehicle,
//     including the trip back to the hub
//   - DayReport: the snapshot handed to presentation and persistence
//
// Neither algorithm prints or logs. Every decision is emitted as an Event to
// an EventSink supplied by the caller. Shortfalls are returned as reports
// (PlanningShortfallError, RouteAbortedError), not as failures.
package services
