package csvload

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var _ ports.ManifestLoader = (*Loader)(nil)

// Loader reads the manifest from files on disk on every Load.
type Loader struct {
	packagesPath  string
	distancesPath string
	hub           kernel.Address
	logger        *slog.Logger
}

func NewLoader(packagesPath, distancesPath string, hub kernel.Address, logger *slog.Logger) (*Loader, error) {
	if packagesPath == "" {
		return nil, errs.NewValueIsRequiredError("packagesPath")
	}
	if distancesPath == "" {
		return nil, errs.NewValueIsRequiredError("distancesPath")
	}
	if hub.IsEmpty() {
		return nil, errs.NewValueIsRequiredError("hub")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Loader{
		packagesPath:  packagesPath,
		distancesPath: distancesPath,
		hub:           hub,
		logger:        logger.With("component", "csv_loader"),
	}, nil
}

func (l *Loader) Load(ctx context.Context) (*ports.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	df, err := os.Open(l.distancesPath)
	if err != nil {
		return nil, fmt.Errorf("open distance table: %w", err)
	}
	defer df.Close()

	g, err := ReadDistances(df, l.hub, l.logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.distancesPath, err)
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	pf, err := os.Open(l.packagesPath)
	if err != nil {
		return nil, fmt.Errorf("open package file: %w", err)
	}
	defer pf.Close()

	parcels, err := ReadParcels(pf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.packagesPath, err)
	}

	for _, p := range parcels {
		if !g.HasLocation(p.Address()) {
			l.logger.WarnContext(ctx, "parcel address missing from distance table",
				"parcel", p.ID(), "address", p.Address().String())
		}
	}

	l.logger.InfoContext(ctx, "manifest loaded",
		"parcels", len(parcels), "locations", g.Len())
	return &ports.Manifest{Graph: g, Parcels: parcels}, nil
}
