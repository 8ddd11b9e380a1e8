package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/engine"
	"github.com/san-kum/crtsim/internal/logging"
)

var ErrRunNotFound = errors.New("run not found")

const (
	metadataFile = "metadata.json"
	pathFile     = "path.csv"
)

var log = logging.NamedLogger("storage")

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

// RunMetadata describes one stored track. Summary fields are copied from
// the track at save time.
type RunMetadata struct {
	ID            string             `json:"id"`
	Name          string             `json:"name,omitempty"`
	Timestamp     time.Time          `json:"timestamp"`
	Config        *config.Config     `json:"config"`
	Impact        float64            `json:"impact"`
	Deflection    float64            `json:"deflection"`
	InitialSpeed  float64            `json:"initial_speed"`
	TimeOfFlight  float64            `json:"time_of_flight"`
	EntryVelocity float64            `json:"entry_velocity"`
	ExitVelocity  float64            `json:"exit_velocity"`
	Clipped       bool               `json:"clipped"`
	Points        int                `json:"points"`
	Metrics       map[string]float64 `json:"metrics,omitempty"`
}

// Save writes meta and the track path under a new run directory and
// returns the run id. A missing ID or timestamp is filled in.
func (s *Store) Save(meta RunMetadata, track engine.Track) (string, error) {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now().UTC()
	}
	meta.Impact = track.Impact
	meta.Deflection = track.Deflection
	meta.InitialSpeed = track.InitialSpeed
	meta.TimeOfFlight = track.TimeOfFlight
	meta.EntryVelocity = track.EntryVelocity
	meta.ExitVelocity = track.ExitVelocity
	meta.Clipped = track.Clipped
	meta.Points = track.Len()

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	if err := writePath(filepath.Join(runDir, pathFile), track.Path); err != nil {
		return "", fmt.Errorf("write path: %w", err)
	}

	log.WithField("run", meta.ID).Debugf("saved %d points", meta.Points)
	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writePath(path string, points []engine.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := WritePathCSV(w, points); err != nil {
		return err
	}
	return f.Sync()
}

// WritePathCSV writes an "x,y" header followed by one row per point and
// flushes w.
func WritePathCSV(w *csv.Writer, points []engine.Point) error {
	if err := w.Write([]string{"x", "y"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first. Directories without valid
// metadata are skipped.
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
			log.WithField("dir", entry.Name()).Debugf("skipping: %v", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
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
		return nil, fmt.Errorf("decode %s metadata: %w", runID, err)
	}
	return &meta, nil
}

// LoadPath reads back the stored path of a run.
func (s *Store) LoadPath(runID string) ([]engine.Point, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, pathFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []engine.Point{}, nil
	}

	points := make([]engine.Point, 0, len(records)-1)
	for i, record := range records[1:] {
		x, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		y, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		points = append(points, engine.Point{X: x, Y: y})
	}
	return points, nil
}

// LoadTrack rebuilds a track from a stored run's metadata and path.
func (s *Store) LoadTrack(runID string) (*RunMetadata, engine.Track, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, engine.Track{}, err
	}
	path, err := s.LoadPath(runID)
	if err != nil {
		return nil, engine.Track{}, err
	}

	track := engine.Track{
		Path:          path,
		InitialSpeed:  meta.InitialSpeed,
		Impact:        meta.Impact,
		Deflection:    meta.Deflection,
		TimeOfFlight:  meta.TimeOfFlight,
		EntryVelocity: meta.EntryVelocity,
		ExitVelocity:  meta.ExitVelocity,
		Clipped:       meta.Clipped,
	}
	if meta.Config != nil {
		track.Mode = meta.Config.Params().Mode
	}
	return meta, track, nil
}
