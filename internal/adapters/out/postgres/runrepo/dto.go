// Package runrepo maps delivery-day reports to relational tables: one row per
// run, plus per-run rows for vehicles, parcels and aborted routes.
package runrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// RunDTO is the root row of a stored report.
type RunDTO struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey"`
	StartedAt    time.Time     `gorm:"index"`
	Departure    time.Time
	TotalMileage float64
	Unassigned   pq.Int64Array `gorm:"type:integer[]"`
	Vehicles     []VehicleDTO  `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
	Parcels      []ParcelDTO   `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
	Aborts       []AbortDTO    `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

func (RunDTO) TableName() string {
	return "runs"
}

// VehicleDTO is the final state of one vehicle in a run.
type VehicleDTO struct {
	RunID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	VehicleID  int       `gorm:"primaryKey;autoIncrement:false"`
	Trips      int
	Mileage    float64
	ReturnedAt time.Time
	Location   string
	AtHub      bool
}

func (VehicleDTO) TableName() string {
	return "run_vehicles"
}

// ParcelDTO is the final state of one parcel in a run. VehicleID is zero for
// parcels that never left the hub.
type ParcelDTO struct {
	RunID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID    int       `gorm:"primaryKey;autoIncrement:false"`
	Address     string
	City        string
	Zip         string
	Weight      float64
	Deadline    string        `gorm:"type:varchar(8)"`
	GroupWith   pq.Int64Array `gorm:"type:integer[]"`
	Status      int           `gorm:"index"`
	VehicleID   int
	DeliveredAt *time.Time
	OnTime      bool
}

func (ParcelDTO) TableName() string {
	return "run_parcels"
}

// AbortDTO is an aborted or stranded route.
type AbortDTO struct {
	ID           uint      `gorm:"primaryKey"`
	RunID        uuid.UUID `gorm:"type:uuid;index"`
	VehicleID    int
	Trip         int
	Undelivered  pq.Int64Array `gorm:"type:integer[]"`
	LastLocation string
	Stranded     bool
	Reason       string
}

func (AbortDTO) TableName() string {
	return "run_aborts"
}

func fromDomain(r *services.DayReport) RunDTO {
	runID := r.RunID.Bytes()
	dto := RunDTO{
		ID:           runID,
		StartedAt:    r.StartedAt,
		Departure:    r.Departure,
		TotalMileage: r.TotalMileage,
		Unassigned:   toInt64s(r.Unassigned),
		Vehicles:     make([]VehicleDTO, 0, len(r.Vehicles)),
		Parcels:      make([]ParcelDTO, 0, len(r.Parcels)),
		Aborts:       make([]AbortDTO, 0, len(r.Aborts)),
	}

	for _, v := range r.Vehicles {
		dto.Vehicles = append(dto.Vehicles, VehicleDTO{
			RunID:      runID,
			VehicleID:  v.ID,
			Trips:      v.Trips,
			Mileage:    v.Mileage,
			ReturnedAt: v.ReturnedAt,
			Location:   v.Location.String(),
			AtHub:      v.AtHub,
		})
	}
	for _, p := range r.Parcels {
		dto.Parcels = append(dto.Parcels, ParcelDTO{
			RunID:       runID,
			ParcelID:    p.ID,
			Address:     p.Address.String(),
			City:        p.City,
			Zip:         p.Zip,
			Weight:      p.Weight,
			Deadline:    p.Deadline.String(),
			GroupWith:   toInt64s(p.GroupWith),
			Status:      int(p.Status),
			VehicleID:   p.VehicleID,
			DeliveredAt: p.DeliveredAt,
			OnTime:      p.OnTime,
		})
	}
	for _, a := range r.Aborts {
		dto.Aborts = append(dto.Aborts, AbortDTO{
			RunID:        runID,
			VehicleID:    a.VehicleID,
			Trip:         a.Trip,
			Undelivered:  toInt64s(a.Undelivered),
			LastLocation: a.LastLocation.String(),
			Stranded:     a.Stranded,
			Reason:       a.Reason,
		})
	}
	return dto
}

func toDomain(dto RunDTO) (*services.DayReport, error) {
	runID, err := kernel.UUIDFrom(dto.ID)
	if err != nil {
		return nil, err
	}

	r := &services.DayReport{
		RunID:        runID,
		StartedAt:    dto.StartedAt,
		Departure:    dto.Departure,
		TotalMileage: dto.TotalMileage,
		Unassigned:   toInts(dto.Unassigned),
		Parcels:      make([]services.ParcelOutcome, 0, len(dto.Parcels)),
		Vehicles:     make([]services.VehicleSummary, 0, len(dto.Vehicles)),
	}

	for _, v := range dto.Vehicles {
		location, err := kernel.NewAddress(v.Location)
		if err != nil {
			return nil, err
		}
		r.Vehicles = append(r.Vehicles, services.VehicleSummary{
			ID:         v.VehicleID,
			Trips:      v.Trips,
			Mileage:    v.Mileage,
			ReturnedAt: v.ReturnedAt,
			Location:   location,
			AtHub:      v.AtHub,
		})
	}
	for _, p := range dto.Parcels {
		outcome, err := parcelOutcome(p)
		if err != nil {
			return nil, err
		}
		r.Parcels = append(r.Parcels, outcome)
	}
	for _, a := range dto.Aborts {
		location, err := kernel.NewAddress(a.LastLocation)
		if err != nil {
			return nil, err
		}
		r.Aborts = append(r.Aborts, services.AbortNotice{
			VehicleID:    a.VehicleID,
			Trip:         a.Trip,
			Undelivered:  toInts(a.Undelivered),
			LastLocation: location,
			Stranded:     a.Stranded,
			Reason:       a.Reason,
		})
	}
	return r, nil
}

func parcelOutcome(p ParcelDTO) (services.ParcelOutcome, error) {
	address, err := kernel.NewAddress(p.Address)
	if err != nil {
		return services.ParcelOutcome{}, err
	}
	deadline, err := kernel.ParseDeadline(p.Deadline)
	if err != nil {
		return services.ParcelOutcome{}, err
	}
	status := parcel.Status(p.Status)
	if err = status.Validate(); err != nil {
		return services.ParcelOutcome{}, err
	}

	return services.ParcelOutcome{
		ID:          p.ParcelID,
		Address:     address,
		City:        p.City,
		Zip:         p.Zip,
		Weight:      p.Weight,
		Deadline:    deadline,
		GroupWith:   toInts(p.GroupWith),
		Status:      status,
		VehicleID:   p.VehicleID,
		DeliveredAt: p.DeliveredAt,
		OnTime:      p.OnTime,
	}, nil
}

func toInt64s(ids []int) pq.Int64Array {
	out := make(pq.Int64Array, 0, len(ids))
	for _, id := range ids {
		out = append(out, int64(id))
	}
	return out
}

func toInts(ids pq.Int64Array) []int {
	if len(ids) == 0 {
		return nil
	}
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		out = append(out, int(id))
	}
	return out
}
