package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/githuntr/internal/scan"
)

// JSONWriter outputs the full report as JSON, mirroring the report's
// branch and commit insertion order.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, report *scan.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
