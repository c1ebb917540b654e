// Package store persists session runs under a data directory, one
// directory per run holding metadata.json and trace.csv.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hapticlab/teleop/internal/session"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Scheme     string             `json:"scheme"`
	Timestamp  time.Time          `json:"timestamp"`
	Dim        int                `json:"dim"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Delay      int                `json:"delay"`
	Deadband   float64            `json:"deadband"`
	Steps      int                `json:"steps"`
	Suppressed int                `json:"suppressed"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a run directory and returns its id.
func (s *Store) Save(cfg session.Config, result *session.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", cfg.Scheme, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Scheme:     string(cfg.Scheme),
		Timestamp:  time.Now(),
		Dim:        cfg.Dim,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Delay:      cfg.Delay,
		Deadband:   cfg.Deadband,
		Steps:      result.Steps,
		Suppressed: result.Suppressed,
		Metrics:    result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(traceHeader(cfg.Dim)); err != nil {
		return "", err
	}
	for _, smp := range result.Samples {
		if err := w.Write(traceRow(smp)); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func traceHeader(dim int) []string {
	header := []string{"time"}
	groups := []string{"master_pos", "master_vel", "master_force", "slave_pos", "slave_vel", "slave_force"}
	for _, g := range groups {
		for i := 0; i < dim; i++ {
			header = append(header, fmt.Sprintf("%s_%d", g, i))
		}
	}
	return append(header, "energy", "alpha", "suppressed")
}

func numericRow(smp session.Sample) []float64 {
	row := make([]float64, 0, 6*len(smp.MasterPos)+3)
	for _, vec := range [][]float64{
		smp.MasterPos, smp.MasterVel, smp.MasterForce,
		smp.SlavePos, smp.SlaveVel, smp.SlaveForce,
	} {
		row = append(row, vec...)
	}
	row = append(row, smp.Energy, smp.Alpha)
	if smp.Suppressed {
		row = append(row, 1)
	} else {
		row = append(row, 0)
	}
	return row
}

func traceRow(smp session.Sample) []string {
	row := []string{fmtF(smp.T)}
	for _, v := range numericRow(smp) {
		row = append(row, fmtF(v))
	}
	return row
}

func fmtF(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns the metadata of every stored run.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

// Load returns the metadata of one run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrace returns the recorded trace rows (without the time column) and
// the time column, plus the column names.
func (s *Store) LoadTrace(runID string) ([][]float64, []float64, []string, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil, nil
	}

	cols := records[0][1:]
	times := make([]float64, 0, len(records)-1)
	rows := make([][]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		row := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				v = 0
			}
			row = append(row, v)
		}
		times = append(times, t)
		rows = append(rows, row)
	}

	return rows, times, cols, nil
}
