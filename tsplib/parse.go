package tsplib

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads a TSPLIB problem from r.
func Parse(r io.Reader) (*Problem, error) {
	p := &Problem{EdgeWeightType: EUC2D}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	ps := &parser{sc: sc, p: p}
	if err := ps.run(); err != nil {
		return nil, err
	}
	if err := p.check(); err != nil {
		return nil, err
	}
	return p, nil
}

type parser struct {
	sc   *bufio.Scanner
	p    *Problem
	line int
}

func (ps *parser) syntaxErr(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, ps.line, fmt.Sprintf(format, args...))
}

func (ps *parser) next() (string, bool) {
	for ps.sc.Scan() {
		ps.line++
		line := strings.TrimSpace(ps.sc.Text())
		if line != "" {
			return line, true
		}
	}
	return "", false
}

func (ps *parser) run() error {
	for {
		line, ok := ps.next()
		if !ok {
			return ps.sc.Err()
		}
		key, value := splitHeader(line)
		switch key {
		case "EOF":
			return nil
		case "NAME":
			ps.p.Name = value
		case "COMMENT":
			if ps.p.Comment != "" {
				ps.p.Comment += "\n"
			}
			ps.p.Comment += value
		case "TYPE":
			ps.p.Type = strings.ToUpper(value)
			if ps.p.Type != "TSP" {
				return fmt.Errorf("%w: TYPE %q", ErrUnsupported, value)
			}
		case "DIMENSION":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return ps.syntaxErr("bad DIMENSION %q", value)
			}
			ps.p.Dimension = n
		case "EDGE_WEIGHT_TYPE":
			ps.p.EdgeWeightType = strings.ToUpper(value)
		case "EDGE_WEIGHT_FORMAT":
			ps.p.EdgeWeightFormat = strings.ToUpper(value)
		case "BEST_KNOWN":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return ps.syntaxErr("bad BEST_KNOWN %q", value)
			}
			ps.p.BestKnown = v
			ps.p.HasBestKnown = v > 0
		case "NODE_COORD_SECTION":
			if err := ps.coords(); err != nil {
				return err
			}
		case "EDGE_WEIGHT_SECTION":
			if err := ps.weights(); err != nil {
				return err
			}
		case "DISPLAY_DATA_SECTION":
			if err := ps.skipRows(); err != nil {
				return err
			}
		default:
			// Unknown header keys (NODE_COORD_TYPE, DISPLAY_DATA_TYPE, ...) are ignored.
		}
	}
}

// splitHeader splits "KEY: value", "KEY : value" and "KEY value".
func splitHeader(line string) (key, value string) {
	if i := strings.IndexByte(line, ':'); i >= 0 {
		return strings.ToUpper(strings.TrimSpace(line[:i])), strings.TrimSpace(line[i+1:])
	}
	fields := strings.Fields(line)
	key = strings.ToUpper(fields[0])
	if len(fields) > 1 {
		value = strings.Join(fields[1:], " ")
	}
	return key, value
}

func (ps *parser) coords() error {
	n := ps.p.Dimension
	if n <= 0 {
		return ps.syntaxErr("NODE_COORD_SECTION before DIMENSION")
	}
	coords := make([][2]float64, n)
	seen := make([]bool, n)
	var i int
	for i = 0; i < n; i++ {
		line, ok := ps.next()
		if !ok {
			return fmt.Errorf("%w: NODE_COORD_SECTION has %d of %d nodes", ErrIncomplete, i, n)
		}
		f := strings.Fields(line)
		if len(f) < 3 {
			return ps.syntaxErr("coordinate line %q", line)
		}
		id, err := strconv.Atoi(f[0])
		if err != nil || id < 1 || id > n || seen[id-1] {
			return ps.syntaxErr("node id %q", f[0])
		}
		x, errX := strconv.ParseFloat(f[1], 64)
		y, errY := strconv.ParseFloat(f[2], 64)
		if errX != nil || errY != nil {
			return ps.syntaxErr("coordinates %q", line)
		}
		seen[id-1] = true
		coords[id-1] = [2]float64{x, y}
	}
	ps.p.Coords = coords
	return nil
}

// entries returns how many values a weight format stores for n nodes.
func entries(format string, n int) (int, error) {
	switch format {
	case FullMatrix:
		return n * n, nil
	case UpperRow, LowerRow:
		return n * (n - 1) / 2, nil
	case UpperDiagRow, LowerDiagRow:
		return n * (n + 1) / 2, nil
	default:
		return 0, fmt.Errorf("%w: EDGE_WEIGHT_FORMAT %q", ErrUnsupported, format)
	}
}

func (ps *parser) weights() error {
	n := ps.p.Dimension
	if n <= 0 {
		return ps.syntaxErr("EDGE_WEIGHT_SECTION before DIMENSION")
	}
	want, err := entries(ps.p.EdgeWeightFormat, n)
	if err != nil {
		return err
	}

	vals := make([]float64, 0, want)
	for len(vals) < want {
		line, ok := ps.next()
		if !ok {
			return fmt.Errorf("%w: EDGE_WEIGHT_SECTION has %d of %d values", ErrIncomplete, len(vals), want)
		}
		for _, tok := range strings.Fields(line) {
			if len(vals) == want {
				return ps.syntaxErr("too many edge weights")
			}
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return ps.syntaxErr("edge weight %q", tok)
			}
			vals = append(vals, v)
		}
	}
	ps.p.Weights = expand(ps.p.EdgeWeightFormat, n, vals)
	return nil
}

// expand fills a full row-major n×n matrix from a TSPLIB weight listing.
func expand(format string, n int, vals []float64) []float64 {
	if format == FullMatrix {
		return vals
	}
	w := make([]float64, n*n)
	set := func(i, j int, v float64) {
		w[i*n+j] = v
		w[j*n+i] = v
	}
	var i, j, k int
	switch format {
	case UpperRow:
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				set(i, j, vals[k])
				k++
			}
		}
	case UpperDiagRow:
		for i = 0; i < n; i++ {
			for j = i; j < n; j++ {
				set(i, j, vals[k])
				k++
			}
		}
	case LowerRow:
		for i = 0; i < n; i++ {
			for j = 0; j < i; j++ {
				set(i, j, vals[k])
				k++
			}
		}
	case LowerDiagRow:
		for i = 0; i < n; i++ {
			for j = 0; j <= i; j++ {
				set(i, j, vals[k])
				k++
			}
		}
	}
	return w
}

func (ps *parser) skipRows() error {
	var i int
	for i = 0; i < ps.p.Dimension; i++ {
		if _, ok := ps.next(); !ok {
			return nil
		}
	}
	return nil
}
