package tanhv2

import (
	"encoding/json"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/whyuwhyi/tanhv2/lut"
)

// Status is the advisory outcome of the run's quality gate.
type Status string

const (
	// StatusPass means the aggregate worst-case error is below the
	// configured target bound.
	StatusPass Status = "PASS"

	// StatusFail means the target bound was exceeded. The table is
	// still emitted; the gate is decoupled from table generation so a
	// failing run yields an inspectable artifact.
	StatusFail Status = "FAIL"
)

// SegmentReport records the per-segment fit outcome.
type SegmentReport struct {
	Address   int        `json:"address"`
	Active    bool       `json:"active"`
	A         float64    `json:"a,omitempty"`
	B         float64    `json:"b,omitempty"`
	Coeffs    lut.Coeffs `json:"coeffs"`
	MaxError  float64    `json:"max_error,omitempty"`
	Converged bool       `json:"converged,omitempty"`
	Iters     int        `json:"iterations,omitempty"`
}

// Report is the structured result of one pipeline run. It carries
// everything downstream tooling needs to gate on: per-segment errors,
// the aggregate maximum, and the PASS/FAIL status.
type Report struct {
	Config         Config          `json:"config"`
	TotalSegments  int             `json:"total_segments"`
	ActiveSegments int             `json:"active_segments"`
	MaxError       float64         `json:"max_error"`
	TargetError    float64         `json:"target_error"`
	Status         Status          `json:"status"`
	PayloadBytes   int             `json:"payload_bytes"`
	Segments       []SegmentReport `json:"segments"`

	// Table is the complete coefficient table, in address order.
	// Serialized separately via lut.Table.Write, not in the JSON report.
	Table lut.Table `json:"-"`
}

// Pass reports whether the quality gate passed.
func (r *Report) Pass() bool { return r.Status == StatusPass }

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteJSONGzip writes the report as gzip-compressed JSON.
func (r *Report) WriteJSONGzip(w io.Writer) error {
	zw := gzip.NewWriter(w)
	if err := r.WriteJSON(zw); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}
