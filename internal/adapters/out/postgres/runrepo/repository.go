package runrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.RunRepository = (*GormRunRepository)(nil)

// GormRunRepository implements ports.RunRepository using GORM.
type GormRunRepository struct {
	db *gorm.DB
}

func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// Models lists every table of the repository, parents first, for AutoMigrate.
func Models() []any {
	return []any{&RunDTO{}, &VehicleDTO{}, &ParcelDTO{}, &AbortDTO{}}
}

// Add inserts the run together with its vehicles, parcels and aborts.
func (r *GormRunRepository) Add(ctx context.Context, report *services.DayReport) error {
	if report == nil {
		return errs.NewValueIsRequiredError("report")
	}
	if err := report.RunID.Validate(); err != nil {
		return err
	}

	dto := fromDomain(report)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a run by id.
func (r *GormRunRepository) Get(ctx context.Context, id kernel.UUID) (*services.DayReport, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RunDTO
	if err := r.preload(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("run", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetLatest retrieves the run with the latest start time.
func (r *GormRunRepository) GetLatest(ctx context.Context) (*services.DayReport, error) {
	var dto RunDTO
	if err := r.preload(ctx).Order("started_at DESC").First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("run", "latest")
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormRunRepository) preload(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Vehicles", func(db *gorm.DB) *gorm.DB { return db.Order("vehicle_id") }).
		Preload("Parcels", func(db *gorm.DB) *gorm.DB { return db.Order("parcel_id") }).
		Preload("Aborts", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
}
