package graph

import (
	"errors"
	"math"
	"slices"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrEdgeNotFound is the cause attached to a failed distance lookup.
var ErrEdgeNotFound = errors.New("distance edge not found")

// Graph maps unordered address pairs to non-negative distances.
type Graph struct {
	edges map[kernel.Address]map[kernel.Address]float64
}

func New() *Graph {
	return &Graph{edges: make(map[kernel.Address]map[kernel.Address]float64)}
}

// AddEdge records d for both (a, b) and (b, a), replacing any previous value.
// A self edge only registers the location; its distance is always zero.
func (g *Graph) AddEdge(a, b kernel.Address, d float64) error {
	if a.IsEmpty() || b.IsEmpty() {
		return errs.NewValueIsRequiredError("address")
	}
	if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return errs.NewValueIsInvalidError("distance must be a finite non-negative number")
	}

	g.ensure(a)
	g.ensure(b)
	if a.IsEqual(b) {
		return nil
	}
	g.edges[a][b] = d
	g.edges[b][a] = d
	return nil
}

// Distance returns the recorded distance between a and b.
// Distance(a, a) is zero for any known location.
func (g *Graph) Distance(a, b kernel.Address) (float64, error) {
	from, ok := g.edges[a]
	if !ok {
		return 0, notFound(a, b)
	}
	if a.IsEqual(b) {
		return 0, nil
	}
	d, ok := from[b]
	if !ok {
		return 0, notFound(a, b)
	}
	return d, nil
}

// HasLocation reports whether a appears in any recorded edge.
func (g *Graph) HasLocation(a kernel.Address) bool {
	_, ok := g.edges[a]
	return ok
}

// Locations returns every known location ordered by name.
func (g *Graph) Locations() []kernel.Address {
	out := make([]kernel.Address, 0, len(g.edges))
	for a := range g.edges {
		out = append(out, a)
	}
	slices.SortFunc(out, func(x, y kernel.Address) int {
		return strings.Compare(x.String(), y.String())
	})
	return out
}

// Len returns the number of known locations.
func (g *Graph) Len() int {
	return len(g.edges)
}

func (g *Graph) ensure(a kernel.Address) {
	if _, ok := g.edges[a]; !ok {
		g.edges[a] = make(map[kernel.Address]float64)
	}
}

func notFound(a, b kernel.Address) error {
	return errs.NewObjectNotFoundErrorWithCause("edge", a.String()+" <-> "+b.String(), ErrEdgeNotFound)
}
