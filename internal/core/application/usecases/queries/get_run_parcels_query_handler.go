package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetRunParcelsQueryHandler reads run_parcels ordered by parcel id.
type GetRunParcelsQueryHandler struct {
	db *gorm.DB
}

func NewGetRunParcelsQueryHandler(db *gorm.DB) GetRunParcelsQueryHandler {
	return GetRunParcelsQueryHandler{db: db}
}

// Handle returns an errs.ObjectNotFoundError when the run does not exist.
func (h GetRunParcelsQueryHandler) Handle(ctx context.Context, query GetRunParcelsQuery) (*GetRunParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	runID, err := h.resolve(ctx, query)
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			parcel_id,
			address,
			deadline,
			group_with,
			status,
			vehicle_id,
			delivered_at,
			on_time
		FROM run_parcels
		WHERE run_id = ?
		  AND (? = 0 OR status = ?)
		ORDER BY parcel_id
	`, runID.Bytes(), int(query.status), int(query.status)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resp := &GetRunParcelsQueryResponse{RunID: runID, Parcels: make([]ParcelRow, 0)}
	for rows.Next() {
		var (
			p         ParcelRow
			groupWith pq.Int64Array
			status    int
		)
		if err = rows.Scan(&p.ID, &p.Address, &p.Deadline, &groupWith, &status, &p.VehicleID, &p.DeliveredAt, &p.OnTime); err != nil {
			return nil, err
		}
		p.GroupWith = intsOf(groupWith)
		p.Status = parcel.Status(status)
		resp.Parcels = append(resp.Parcels, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return resp, nil
}

func (h GetRunParcelsQueryHandler) resolve(ctx context.Context, query GetRunParcelsQuery) (kernel.UUID, error) {
	if query.runID == nil {
		return latestRunID(ctx, h.db)
	}

	var exists bool
	err := h.db.WithContext(ctx).Raw(`SELECT EXISTS (SELECT 1 FROM runs WHERE id = ?)`, query.runID.Bytes()).Row().Scan(&exists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return kernel.UUID{}, err
	}
	if !exists {
		return kernel.UUID{}, errs.NewObjectNotFoundError("run", query.runID.String())
	}
	return *query.runID, nil
}
