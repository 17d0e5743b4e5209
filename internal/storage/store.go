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

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/golfsim/internal/shot"
)

var ErrNotFound = errors.New("storage: shot not found")

// Store keeps finished shots on disk, one directory per shot holding
// shot.json and trajectory.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// Record is the stored form of a shot.
type Record struct {
	shot.Result
	Course  string             `json:"course"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
}

func (s *Store) Save(rec Record, trajectory []shot.Sample) (string, error) {
	id := rec.ID.String()
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(dir, "shot.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"t", "x", "y", "z", "vx", "vy", "vz"}); err != nil {
		return "", err
	}
	for _, smp := range trajectory {
		row := []string{strconv.FormatFloat(smp.Time, 'f', 6, 64)}
		for _, v := range [6]float64{smp.Position[0], smp.Position[1], smp.Position[2], smp.Velocity[0], smp.Velocity[1], smp.Velocity[2]} {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return id, w.Error()
}

// List returns every readable record, newest first.
func (s *Store) List() ([]Record, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, err
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		rec, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}

func (s *Store) Load(id string) (*Record, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, filepath.Base(id), "shot.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", id, err)
	}
	return &rec, nil
}

func (s *Store) LoadTrajectory(id string) ([]shot.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, filepath.Base(id), "trajectory.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []shot.Sample{}, nil
	}

	samples := make([]shot.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		var vals [7]float64
		for j := range vals {
			vals[j], err = strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("trajectory %s: %w", id, err)
			}
		}
		samples = append(samples, shot.Sample{
			Time:     vals[0],
			Position: mgl64.Vec3{vals[1], vals[2], vals[3]},
			Velocity: mgl64.Vec3{vals[4], vals[5], vals[6]},
		})
	}
	return samples, nil
}

// Export is the JSON document written by ExportJSON.
type Export struct {
	Record
	Trajectory []shot.Sample `json:"trajectory"`
}

// ExportJSON writes the given shots, or every shot when ids is empty.
func (s *Store) ExportJSON(w io.Writer, ids ...string) error {
	if len(ids) == 0 {
		records, err := s.List()
		if err != nil {
			return err
		}
		for _, rec := range records {
			ids = append(ids, rec.ID.String())
		}
	}

	out := make([]Export, 0, len(ids))
	for _, id := range ids {
		rec, err := s.Load(id)
		if err != nil {
			return err
		}
		traj, err := s.LoadTrajectory(id)
		if err != nil {
			return err
		}
		out = append(out, Export{Record: *rec, Trajectory: traj})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
