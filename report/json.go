// Package report renders finished artifacts into the export formats:
// structured JSON, a browsable HTML document, a printable PDF, CSV
// top-lists and a console summary table. Every writer is a pure
// read-only serializer; no statistic is re-derived here.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/recovermail/recovermail/model"
)

// WriteJSON exports the full artifact list as indented UTF-8 JSON.
func WriteJSON(artifacts []model.Artifact, path string) error {
	data, err := json.MarshalIndent(artifacts, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifacts: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	return nil
}
