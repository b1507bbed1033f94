package format

import (
	"encoding/json"
	"io"
)

// JSONExporter is an [Exporter] that exports token streams as JSON documents.
type JSONExporter struct{}

// Export implements [Exporter] for [JSONExporter] and exports the given
// file as a complete JSON document.
func (j JSONExporter) Export(w io.Writer, file File) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(file)
}
