package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/cloudparcel/internal/parcel"
)

type ExportData struct {
	Run     *RunMetadata    `json:"run"`
	Samples []parcel.Sample `json:"samples"`
}

// ExportJSON writes a run's metadata and full series as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, series *Series) error {
	data := ExportData{Run: meta, Samples: series.Samples}
	if data.Samples == nil {
		data.Samples = []parcel.Sample{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Export loads a stored run and writes it with ExportJSON.
func (s *Store) Export(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}
	return ExportJSON(w, meta, series)
}
