// Package kernel holds the value objects shared by every part of the
// dispatch domain.
//
// The package includes:
//   - UUID: identifier of a delivery-day run
//   - Address: canonical location identifier used as a distance-graph key
//   - Deadline: a concrete minute of the day or end of day (EOD), with
//     CompareDeadlines as the single ordering used by the planner
//   - clock helpers: FormatClock, ParseClock, MinuteOfDay and TravelTime
//
// All types are immutable and safe for concurrent use.
package kernel
