package benchtab

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// SuiteDocument is the record of one benchmark run: subjects, their
// parameter variants, and the metrics of every iteration. It is treated as
// read-only by this package.
type SuiteDocument struct {
	Tag      string            `json:"tag,omitempty" yaml:"tag,omitempty"`
	Date     time.Time         `json:"date,omitzero" yaml:"date,omitempty"`
	Env      map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
	Subjects []Subject         `json:"subjects" yaml:"subjects"`
}

// Subject is a single benchmarked method.
type Subject struct {
	Benchmark string    `json:"benchmark" yaml:"benchmark"`
	Name      string    `json:"name" yaml:"name"`
	Groups    []string  `json:"groups,omitempty" yaml:"groups,omitempty"`
	Variants  []Variant `json:"variants" yaml:"variants"`
}

// Variant is one parameter set of a subject.
type Variant struct {
	Parameters  map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Revolutions int            `json:"revs" yaml:"revs"`
	Warmup      int            `json:"warmup,omitempty" yaml:"warmup,omitempty"`
	Iterations  []Iteration    `json:"iterations" yaml:"iterations"`
}

// Iteration holds the metrics measured in one iteration, keyed by metric
// name (time, memory, ...).
type Iteration struct {
	Index   int                `json:"index" yaml:"index"`
	Metrics map[string]float64 `json:"metrics" yaml:"metrics"`
}

// LoadDocument reads a suite document from a .json, .yaml or .yml file.
func LoadDocument(path string) (*SuiteDocument, error) {
	f, err := formatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	doc, err := DecodeDocument(file, f)
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", path, err)
	}
	return doc, nil
}

// DecodeDocument decodes a suite document in format f from r.
func DecodeDocument(r io.Reader, f Format) (*SuiteDocument, error) {
	var doc SuiteDocument
	if err := unmarshal(f, r, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// tree converts the document into the generic map/slice form the query
// engines evaluate against.
func (d *SuiteDocument) tree() (any, error) {
	if d == nil {
		return nil, nil
	}
	buf, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var out any
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return out, nil
}
