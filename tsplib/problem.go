// Package tsplib reads symmetric TSP instances in the TSPLIB format and turns
// them into validated tsp.Instance values.
//
// Supported:
//   - header keys NAME, COMMENT, TYPE, DIMENSION, EDGE_WEIGHT_TYPE,
//     EDGE_WEIGHT_FORMAT and the non-standard BEST_KNOWN, written as
//     "KEY: value", "KEY : value" or "KEY value";
//   - EDGE_WEIGHT_TYPE EUC_2D, CEIL_2D, ATT, GEO and EXPLICIT;
//   - EDGE_WEIGHT_FORMAT FULL_MATRIX, UPPER_ROW, LOWER_ROW, UPPER_DIAG_ROW
//     and LOWER_DIAG_ROW;
//   - NODE_COORD_SECTION, EDGE_WEIGHT_SECTION, DISPLAY_DATA_SECTION (skipped);
//   - an optional trailing EOF;
//   - transparent gzip (.gz) and zstd (.zst) decompression in Open.
//
// Distances follow the TSPLIB conventions, so EUC_2D lengths are rounded to
// the nearest integer.
package tsplib

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/metatsp/matrix"
	"github.com/katalvlaran/metatsp/tsp"
)

// Edge weight types.
const (
	EUC2D    = "EUC_2D"
	CEIL2D   = "CEIL_2D"
	ATT      = "ATT"
	GEO      = "GEO"
	Explicit = "EXPLICIT"
)

// Explicit edge weight formats.
const (
	FullMatrix   = "FULL_MATRIX"
	UpperRow     = "UPPER_ROW"
	LowerRow     = "LOWER_ROW"
	UpperDiagRow = "UPPER_DIAG_ROW"
	LowerDiagRow = "LOWER_DIAG_ROW"
)

var (
	// ErrSyntax is returned for malformed lines, numbers or sections.
	ErrSyntax = errors.New("tsplib: syntax error")

	// ErrUnsupported is returned for problem types, weight types or formats
	// this package does not handle.
	ErrUnsupported = errors.New("tsplib: unsupported")

	// ErrIncomplete is returned when DIMENSION or section data is missing.
	ErrIncomplete = errors.New("tsplib: incomplete problem")
)

// Problem is a parsed TSPLIB file.
type Problem struct {
	Name             string
	Comment          string
	Type             string
	Dimension        int
	EdgeWeightType   string
	EdgeWeightFormat string

	BestKnown    float64
	HasBestKnown bool

	// Coords holds node coordinates for coordinate-based weight types.
	Coords [][2]float64
	// Weights holds the full row-major matrix for EXPLICIT problems.
	Weights []float64
}

// Distance returns the TSPLIB distance between nodes i and j (0-based).
func (p *Problem) Distance(i, j int) float64 {
	if i == j {
		return 0
	}
	if p.EdgeWeightType == Explicit {
		return p.Weights[i*p.Dimension+j]
	}

	a, b := p.Coords[i], p.Coords[j]
	switch p.EdgeWeightType {
	case CEIL2D:
		return math.Ceil(math.Hypot(a[0]-b[0], a[1]-b[1]))
	case ATT:
		return attDistance(a, b)
	case GEO:
		return geoDistance(a, b)
	default:
		return nint(math.Hypot(a[0]-b[0], a[1]-b[1]))
	}
}

// Matrix builds the dense distance matrix of the problem.
func (p *Problem) Matrix() (*matrix.Dense, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	n := p.Dimension
	data := make([]float64, n*n)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			data[i*n+j] = p.Distance(i, j)
			data[j*n+i] = p.Distance(j, i)
		}
	}
	return matrix.NewDenseFrom(n, n, data)
}

// Instance builds a validated tsp.Instance carrying the name and best-known length.
func (p *Problem) Instance() (*tsp.Instance, error) {
	m, err := p.Matrix()
	if err != nil {
		return nil, err
	}
	opts := []tsp.InstanceOption{tsp.WithName(p.Name)}
	if p.HasBestKnown {
		opts = append(opts, tsp.WithBestKnown(p.BestKnown))
	}
	in, err := tsp.NewInstance(m, opts...)
	if err != nil {
		return nil, fmt.Errorf("tsplib %s: %w", p.Name, err)
	}
	return in, nil
}

// check verifies that the parsed data matches the declared dimension.
func (p *Problem) check() error {
	if p.Dimension <= 0 {
		return fmt.Errorf("%w: missing DIMENSION", ErrIncomplete)
	}
	switch p.EdgeWeightType {
	case Explicit:
		if len(p.Weights) != p.Dimension*p.Dimension {
			return fmt.Errorf("%w: missing EDGE_WEIGHT_SECTION", ErrIncomplete)
		}
	case EUC2D, CEIL2D, ATT, GEO:
		if len(p.Coords) != p.Dimension {
			return fmt.Errorf("%w: missing NODE_COORD_SECTION", ErrIncomplete)
		}
	default:
		return fmt.Errorf("%w: EDGE_WEIGHT_TYPE %q", ErrUnsupported, p.EdgeWeightType)
	}
	return nil
}

// nint rounds half away from zero for the non-negative values used here.
func nint(x float64) float64 { return math.Floor(x + 0.5) }

// attDistance is the pseudo-Euclidean distance of the att48/att532 problems.
func attDistance(a, b [2]float64) float64 {
	dx, dy := a[0]-b[0], a[1]-b[1]
	r := math.Sqrt((dx*dx + dy*dy) / 10)
	t := nint(r)
	if t < r {
		return t + 1
	}
	return t
}

const (
	geoPI  = 3.141592
	geoRRR = 6378.388
)

// geoRadians converts a TSPLIB DDD.MM coordinate to radians.
func geoRadians(x float64) float64 {
	deg := math.Trunc(x)
	minutes := x - deg
	return geoPI * (deg + 5*minutes/3) / 180
}

// geoDistance is the TSPLIB great-circle distance in kilometres.
func geoDistance(a, b [2]float64) float64 {
	latA, lonA := geoRadians(a[0]), geoRadians(a[1])
	latB, lonB := geoRadians(b[0]), geoRadians(b[1])
	q1 := math.Cos(lonA - lonB)
	q2 := math.Cos(latA - latB)
	q3 := math.Cos(latA + latB)
	return math.Trunc(geoRRR*math.Acos(0.5*((1+q1)*q2-(1-q1)*q3)) + 1)
}
