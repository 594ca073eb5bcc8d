package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetRunSummaryQueryHandler aggregates a stored run with three statements:
// the run row, parcel counts and the vehicle rows.
type GetRunSummaryQueryHandler struct {
	db *gorm.DB
}

func NewGetRunSummaryQueryHandler(db *gorm.DB) GetRunSummaryQueryHandler {
	return GetRunSummaryQueryHandler{db: db}
}

// Handle returns an errs.ObjectNotFoundError for unknown runs.
func (h GetRunSummaryQueryHandler) Handle(ctx context.Context, query GetRunSummaryQuery) (*GetRunSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	resp := &GetRunSummaryQueryResponse{RunID: query.RunID()}

	var (
		id         uuid.UUID
		unassigned pq.Int64Array
	)
	row := db.Raw(`
		SELECT
			id,
			started_at,
			departure,
			total_mileage,
			unassigned
		FROM runs
		WHERE id = ?
	`, query.RunID().Bytes()).Row()
	err := row.Scan(&id, &resp.StartedAt, &resp.Departure, &resp.TotalMileage, &unassigned)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("run", query.RunID().String())
	}
	if err != nil {
		return nil, err
	}
	resp.Unassigned = intsOf(unassigned)

	err = db.Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ? AND NOT on_time)
		FROM run_parcels
		WHERE run_id = ?
	`, int(parcel.Delivered), int(parcel.Delivered), id).Row().Scan(&resp.Parcels, &resp.Delivered, &resp.Late)
	if err != nil {
		return nil, err
	}

	err = db.Raw(`SELECT COUNT(*) FROM run_aborts WHERE run_id = ?`, id).Row().Scan(&resp.Aborts)
	if err != nil {
		return nil, err
	}

	resp.Vehicles, err = h.vehicles(ctx, id)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (h GetRunSummaryQueryHandler) vehicles(ctx context.Context, runID uuid.UUID) ([]VehicleRow, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			vehicle_id,
			trips,
			mileage,
			returned_at,
			location,
			at_hub
		FROM run_vehicles
		WHERE run_id = ?
		ORDER BY vehicle_id
	`, runID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := make([]VehicleRow, 0)
	for rows.Next() {
		var v VehicleRow
		if err = rows.Scan(&v.ID, &v.Trips, &v.Mileage, &v.ReturnedAt, &v.Location, &v.AtHub); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// latestRunID returns the id of the most recently started run.
func latestRunID(ctx context.Context, db *gorm.DB) (kernel.UUID, error) {
	var id uuid.UUID
	err := db.WithContext(ctx).Raw(`SELECT id FROM runs ORDER BY started_at DESC LIMIT 1`).Row().Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return kernel.UUID{}, errs.NewObjectNotFoundError("run", "latest")
	}
	if err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFrom(id)
}

func intsOf(ids pq.Int64Array) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		out = append(out, int(id))
	}
	return out
}
