package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/fieldpong/internal/metrics"
)

type ExportData struct {
	Run     RunMetadata      `json:"run"`
	Samples []metrics.Sample `json:"samples"`
}

// ExportJSON writes a run and its samples as one indented JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, samples []metrics.Sample) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: meta, Samples: samples})
}
