package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	"github.com/google/uuid"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type RunRequest struct {
	Day *string `json:"day,omitempty"`
}

type Vehicle struct {
	ID         int     `json:"id"`
	Trips      int     `json:"trips"`
	Mileage    float64 `json:"mileage"`
	ReturnedAt string  `json:"returnedAt"`
	Location   string  `json:"location"`
	AtHub      bool    `json:"atHub"`
}

type Stop struct {
	ParcelID    int     `json:"parcelId"`
	Address     string  `json:"address"`
	Distance    float64 `json:"distance"`
	DeliveredAt string  `json:"deliveredAt"`
}

type Route struct {
	VehicleID   int     `json:"vehicleId"`
	Trip        int     `json:"trip"`
	DepartedAt  string  `json:"departedAt"`
	ReturnedAt  string  `json:"returnedAt"`
	Stops       []Stop  `json:"stops"`
	TripMileage float64 `json:"tripMileage"`
	Aborted     string  `json:"aborted,omitempty"`
}

type DayReport struct {
	RunID        uuid.UUID `json:"runId"`
	Departure    string    `json:"departure"`
	TotalMileage float64   `json:"totalMileage"`
	Delivered    int       `json:"delivered"`
	Late         []int     `json:"late"`
	Unassigned   []int     `json:"unassigned"`
	Vehicles     []Vehicle `json:"vehicles"`
	Routes       []Route   `json:"routes"`
}

type RunSummary struct {
	RunID        uuid.UUID `json:"runId"`
	StartedAt    time.Time `json:"startedAt"`
	Departure    string    `json:"departure"`
	TotalMileage float64   `json:"totalMileage"`
	Parcels      int       `json:"parcels"`
	Delivered    int       `json:"delivered"`
	Late         int       `json:"late"`
	Unassigned   []int     `json:"unassigned"`
	Aborts       int       `json:"aborts"`
	Vehicles     []Vehicle `json:"vehicles"`
}

type Parcel struct {
	ID          int    `json:"id"`
	Address     string `json:"address"`
	Deadline    string `json:"deadline"`
	GroupWith   []int  `json:"groupWith,omitempty"`
	Status      string `json:"status"`
	VehicleID   int    `json:"vehicleId,omitempty"`
	DeliveredAt string `json:"deliveredAt,omitempty"`
	OnTime      bool   `json:"onTime"`
}

type RunParcels struct {
	RunID   uuid.UUID `json:"runId"`
	Parcels []Parcel  `json:"parcels"`
}

func dayReportFrom(r *services.DayReport) DayReport {
	resp := DayReport{
		RunID:        r.RunID.Bytes(),
		Departure:    kernel.FormatClock(r.Departure),
		TotalMileage: r.TotalMileage,
		Delivered:    r.Delivered(),
		Late:         nonNil(r.Late()),
		Unassigned:   nonNil(r.Unassigned),
		Vehicles:     make([]Vehicle, 0, len(r.Vehicles)),
		Routes:       make([]Route, 0, len(r.Routes)),
	}

	for _, v := range r.Vehicles {
		resp.Vehicles = append(resp.Vehicles, Vehicle{
			ID:         v.ID,
			Trips:      v.Trips,
			Mileage:    v.Mileage,
			ReturnedAt: kernel.FormatClock(v.ReturnedAt),
			Location:   v.Location.String(),
			AtHub:      v.AtHub,
		})
	}
	for _, route := range r.Routes {
		out := Route{
			VehicleID:   route.VehicleID,
			Trip:        route.Trip,
			DepartedAt:  kernel.FormatClock(route.DepartedAt),
			ReturnedAt:  kernel.FormatClock(route.ReturnedAt),
			Stops:       make([]Stop, 0, len(route.Stops)),
			TripMileage: route.TripMileage,
		}
		for _, s := range route.Stops {
			out.Stops = append(out.Stops, Stop{
				ParcelID:    s.ParcelID,
				Address:     s.Address.String(),
				Distance:    s.Distance,
				DeliveredAt: kernel.FormatClock(s.DeliveredAt),
			})
		}
		if route.Aborted != nil {
			out.Aborted = route.Aborted.Error()
		}
		resp.Routes = append(resp.Routes, out)
	}
	return resp
}

func runSummaryFrom(r *queries.GetRunSummaryQueryResponse) RunSummary {
	resp := RunSummary{
		RunID:        r.RunID.Bytes(),
		StartedAt:    r.StartedAt,
		Departure:    kernel.FormatClock(r.Departure),
		TotalMileage: r.TotalMileage,
		Parcels:      r.Parcels,
		Delivered:    r.Delivered,
		Late:         r.Late,
		Unassigned:   nonNil(r.Unassigned),
		Aborts:       r.Aborts,
		Vehicles:     make([]Vehicle, 0, len(r.Vehicles)),
	}
	for _, v := range r.Vehicles {
		resp.Vehicles = append(resp.Vehicles, Vehicle{
			ID:         v.ID,
			Trips:      v.Trips,
			Mileage:    v.Mileage,
			ReturnedAt: kernel.FormatClock(v.ReturnedAt),
			Location:   v.Location,
			AtHub:      v.AtHub,
		})
	}
	return resp
}

func runParcelsFrom(r *queries.GetRunParcelsQueryResponse) RunParcels {
	resp := RunParcels{RunID: r.RunID.Bytes(), Parcels: make([]Parcel, 0, len(r.Parcels))}
	for _, p := range r.Parcels {
		out := Parcel{
			ID:        p.ID,
			Address:   p.Address,
			Deadline:  p.Deadline,
			GroupWith: p.GroupWith,
			Status:    p.Status.String(),
			VehicleID: p.VehicleID,
			OnTime:    p.OnTime,
		}
		if p.DeliveredAt != nil {
			out.DeliveredAt = kernel.FormatClock(*p.DeliveredAt)
		}
		resp.Parcels = append(resp.Parcels, out)
	}
	return resp
}

func nonNil(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
