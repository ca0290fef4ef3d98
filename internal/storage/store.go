// Package storage keeps recorded runs on disk, one directory per run with a
// metadata.json and a samples.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/fieldpong/internal/metrics"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

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
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Frames    int                `json:"frames"`
	Level     int                `json:"level"`
	Lives     int                `json:"lives"`
	Points    int                `json:"points"`
	Conceded  int                `json:"conceded"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a new run and returns its ID. ID and Timestamp are filled in
// when empty.
func (s *Store) Save(meta RunMetadata, samples []metrics.Sample) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		preset := meta.Preset
		if preset == "" {
			preset = "custom"
		}
		meta.ID = fmt.Sprintf("%s_%d", preset, meta.Timestamp.UnixNano())
	}
	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, samples); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns every readable run, oldest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]metrics.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()
	return ReadCSV(file)
}

var header = []string{
	"time", "live", "lattice_energy", "lattice_peak",
	"ball_x", "ball_y", "ball_speed",
	"level", "lives", "points", "conceded",
}

func WriteCSV(out io.Writer, samples []metrics.Sample) error {
	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, s := range samples {
		row := []string{
			f(s.Time), strconv.Itoa(s.Live), f(s.LatticeEnergy), f(s.LatticePeak),
			f(s.BallX), f(s.BallY), f(s.BallSpeed),
			strconv.Itoa(s.Level), strconv.Itoa(s.Lives), strconv.Itoa(s.Points), strconv.Itoa(s.Conceded),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadCSV parses samples written by WriteCSV. Rows that do not parse are
// skipped.
func ReadCSV(in io.Reader) ([]metrics.Sample, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []metrics.Sample{}, nil
	}

	samples := make([]metrics.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(header) {
			continue
		}
		s, err := parseRow(record)
		if err != nil {
			continue
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func parseRow(rec []string) (metrics.Sample, error) {
	var (
		s    metrics.Sample
		errs []error
	)
	fl := func(i int) float64 {
		v, err := strconv.ParseFloat(rec[i], 64)
		errs = append(errs, err)
		return v
	}
	in := func(i int) int {
		v, err := strconv.Atoi(rec[i])
		errs = append(errs, err)
		return v
	}
	s.Time = fl(0)
	s.Live = in(1)
	s.LatticeEnergy = fl(2)
	s.LatticePeak = fl(3)
	s.BallX = fl(4)
	s.BallY = fl(5)
	s.BallSpeed = fl(6)
	s.Level = in(7)
	s.Lives = in(8)
	s.Points = in(9)
	s.Conceded = in(10)
	return s, errors.Join(errs...)
}
