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
	"strings"
	"time"

	"github.com/san-kum/cloudparcel/internal/metrics"
	"github.com/san-kum/cloudparcel/internal/parcel"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
	activePrefix = "act_"
)

var ErrMalformedSeries = errors.New("storage: malformed series")

var baseColumns = []string{"t", "T", "es", "S_pre", "S", "e", "qi", "ice_active", "clamped"}

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
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	T0          float64            `json:"t0"`
	RH0         float64            `json:"rh0"`
	CoolingRate float64            `json:"cooling_rate"`
	Dt          float64            `json:"dt"`
	TEnd        float64            `json:"t_end"`
	IceEnabled  bool               `json:"ice_enabled"`
	LiquidSink  string             `json:"liquid_sink"`
	IceSink     string             `json:"ice_sink"`
	Populations []string           `json:"populations"`
	Summary     metrics.Summary    `json:"summary"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Series is the per-step record of a stored run.
type Series struct {
	Populations []string
	Samples     []parcel.Sample
}

func (s *Store) Save(sc parcel.Scenario, result *parcel.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", sc.Name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Scenario:    sc.Name,
		Timestamp:   now,
		T0:          sc.T0,
		RH0:         sc.RH0,
		CoolingRate: sc.CoolingRate,
		Dt:          sc.Dt,
		TEnd:        sc.TEnd,
		IceEnabled:  sc.IceEnabled,
		LiquidSink:  string(sc.LiquidSink),
		IceSink:     string(sc.IceSink),
		Populations: result.Populations,
		Summary:     metrics.Summarize(result),
		Metrics:     result.Metrics,
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

	csvFile, err := os.Create(filepath.Join(runDir, seriesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, result.Populations, result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns the stored runs, oldest first. Directories without readable
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
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadCSV(file)
}

// SeriesPath is the location of a run's CSV file.
func (s *Store) SeriesPath(runID string) string {
	return filepath.Join(s.baseDir, runID, seriesFile)
}

// WriteCSV writes one row per sample with an act_<name> column for each
// population.
func WriteCSV(out io.Writer, populations []string, samples []parcel.Sample) error {
	w := csv.NewWriter(out)

	header := append([]string(nil), baseColumns...)
	for _, name := range populations {
		header = append(header, activePrefix+name)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, sm := range samples {
		row := []string{
			formatFloat(sm.Time),
			formatFloat(sm.T),
			formatFloat(sm.Es),
			formatFloat(sm.SPre),
			formatFloat(sm.S),
			formatFloat(sm.E),
			formatFloat(sm.Qi),
			formatBool(sm.IceActive),
			formatBool(sm.Clamped),
		}
		for i := range populations {
			row = append(row, formatBool(i < len(sm.Activated) && sm.Activated[i]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func ReadCSV(in io.Reader) (*Series, error) {
	r := csv.NewReader(in)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedSeries)
	}

	header := records[0]
	if len(header) < len(baseColumns) {
		return nil, fmt.Errorf("%w: %d columns", ErrMalformedSeries, len(header))
	}
	for i, col := range baseColumns {
		if header[i] != col {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrMalformedSeries, i, header[i], col)
		}
	}

	series := &Series{Samples: make([]parcel.Sample, 0, len(records)-1)}
	for _, col := range header[len(baseColumns):] {
		series.Populations = append(series.Populations, strings.TrimPrefix(col, activePrefix))
	}

	for n, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %s: %v", ErrMalformedSeries, n+1, header[j], err)
			}
			vals[j] = v
		}

		sm := parcel.Sample{
			Time:      vals[0],
			T:         vals[1],
			Es:        vals[2],
			SPre:      vals[3],
			S:         vals[4],
			E:         vals[5],
			Qi:        vals[6],
			IceActive: vals[7] != 0,
			Clamped:   vals[8] != 0,
			Activated: make([]bool, len(series.Populations)),
		}
		for i := range series.Populations {
			sm.Activated[i] = vals[len(baseColumns)+i] != 0
		}
		series.Samples = append(series.Samples, sm)
	}
	return series, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
