// Package eventlog writes planning and routing events to a slog.Logger.
package eventlog

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
)

var _ services.EventSink = (*Sink)(nil)

// Sink logs each event as one structured record. Shortfalls and aborted routes
// are warnings, everything else is informational or debug.
type Sink struct {
	logger *slog.Logger
}

func NewSink(logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{logger: logger.With("component", "event_log")}
}

func (s *Sink) Emit(e services.Event) {
	ctx := context.Background()
	level := levelOf(e.Kind)
	if !s.logger.Enabled(ctx, level) {
		return
	}
	s.logger.LogAttrs(ctx, level, string(e.Kind), attrs(e)...)
}

func levelOf(kind services.EventKind) slog.Level {
	switch kind {
	case services.EventGroupSkipped,
		services.EventCapacityExceeded,
		services.EventPlanningHalted,
		services.EventRouteAborted,
		services.EventVehicleStranded:
		return slog.LevelWarn
	case services.EventCandidateUnreachable:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func attrs(e services.Event) []slog.Attr {
	out := make([]slog.Attr, 0, 8)
	if e.VehicleID != 0 {
		out = append(out, slog.Int("vehicle", e.VehicleID))
	}
	if len(e.ParcelIDs) > 0 {
		out = append(out, slog.Any("parcels", e.ParcelIDs))
	}
	if !e.From.IsEmpty() {
		out = append(out, slog.String("from", e.From.String()))
	}
	if !e.To.IsEmpty() {
		out = append(out, slog.String("to", e.To.String()))
	}
	if e.Distance != 0 {
		out = append(out, slog.Float64("distance", e.Distance))
	}
	if !e.Clock.IsZero() {
		out = append(out, slog.String("clock", kernel.FormatClock(e.Clock)))
	}
	if e.Mileage != 0 {
		out = append(out, slog.Float64("mileage", e.Mileage))
	}
	if e.Err != nil {
		out = append(out, slog.String("error", e.Err.Error()))
	}
	return out
}
