package tsplib

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/katalvlaran/metatsp/tsp"
)

// Open parses the TSPLIB file at path. Files ending in ".gz" or ".zst" are
// decompressed on the fly. An empty NAME defaults to the file's base name.
func Open(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("tsplib %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("tsplib %s: %w", path, err)
		}
		defer dec.Close()
		r = dec
	}

	p, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("tsplib %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = baseName(path)
	}
	return p, nil
}

// Load opens path and builds the validated instance in one step.
func Load(path string) (*tsp.Instance, error) {
	p, err := Open(path)
	if err != nil {
		return nil, err
	}
	return p.Instance()
}

// baseName strips the directory and every known extension: "a/eil51.tsp.gz" → "eil51".
func baseName(path string) string {
	name := filepath.Base(path)
	for _, ext := range []string{".gz", ".zst", ".tsp"} {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}
