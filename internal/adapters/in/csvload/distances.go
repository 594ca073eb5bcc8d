package csvload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"dispatch/internal/core/domain/model/graph"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrEmptyDistanceTable is returned when the table yields no edges.
var ErrEmptyDistanceTable = errors.New("distance table has no edges")

// ReadDistances builds a graph from a distance table. The origin of the first
// data row is renamed to hub unless hub is empty.
//
// Cells that are not numbers are logged and skipped. Negative distances are an error.
func ReadDistances(r io.Reader, hub kernel.Address, logger *slog.Logger) (*graph.Graph, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reader := newReader(r)
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyDistanceTable
	}
	if err != nil {
		return nil, fmt.Errorf("distance table header: %w", err)
	}

	destinations := make([]string, len(header))
	for i := 1; i < len(header); i++ {
		destinations[i] = Clean(header[i])
	}

	g := graph.New()
	aliases := make(map[string]kernel.Address)
	rename := func(s string) (kernel.Address, error) {
		if a, ok := aliases[s]; ok {
			return a, nil
		}
		return kernel.NewAddress(s)
	}

	edges := 0
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("distance table line %d: %w", line, err)
		}
		if len(row) < 2 || Clean(row[0]) == "" {
			continue
		}

		origin := Clean(row[0])
		if len(aliases) == 0 && !hub.IsEmpty() {
			aliases[origin] = hub
		}
		from, err := rename(origin)
		if err != nil {
			return nil, fmt.Errorf("distance table line %d: %w", line, err)
		}

		for col := 1; col < len(row) && col < len(destinations); col++ {
			cell := strings.TrimSpace(row[col])
			if cell == "" || destinations[col] == "" {
				continue
			}
			d, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				logger.Warn("skipping distance cell", "line", line, "column", col, "value", cell)
				continue
			}
			to, err := rename(destinations[col])
			if err != nil {
				return nil, fmt.Errorf("distance table line %d column %d: %w", line, col, err)
			}
			if err = g.AddEdge(from, to, d); err != nil {
				return nil, fmt.Errorf("distance table line %d column %d: %w", line, col, err)
			}
			edges++
		}
	}

	if edges == 0 {
		return nil, ErrEmptyDistanceTable
	}
	if !hub.IsEmpty() && !g.HasLocation(hub) {
		return nil, errs.NewObjectNotFoundError("hub", hub.String())
	}
	return g, nil
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	return reader
}
