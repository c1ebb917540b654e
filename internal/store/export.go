package store

import (
	"encoding/json"
	"io"

	"github.com/hapticlab/teleop/internal/session"
)

// ExportData is the JSON form of a full run: metadata plus traces.
type ExportData struct {
	RunMetadata
	Times   []float64   `json:"times"`
	Columns []string    `json:"columns"`
	Trace   [][]float64 `json:"trace"`
}

// ExportJSON writes a run as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, rows [][]float64, times []float64, cols []string) error {
	data := ExportData{
		RunMetadata: meta,
		Times:       times,
		Columns:     cols,
		Trace:       rows,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportResultJSON writes a just-finished run without going through disk.
func ExportResultJSON(w io.Writer, cfg session.Config, result *session.Result) error {
	rows := make([][]float64, len(result.Samples))
	times := make([]float64, len(result.Samples))
	for i, smp := range result.Samples {
		times[i] = smp.T
		rows[i] = numericRow(smp)
	}

	meta := RunMetadata{
		Scheme:     string(cfg.Scheme),
		Dim:        cfg.Dim,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Delay:      cfg.Delay,
		Deadband:   cfg.Deadband,
		Steps:      result.Steps,
		Suppressed: result.Suppressed,
		Metrics:    result.Metrics,
	}
	return ExportJSON(w, meta, rows, times, traceHeader(cfg.Dim)[1:])
}
