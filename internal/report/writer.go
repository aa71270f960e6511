package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Writer saves rendered reports to the output directory.
type Writer struct {
	outputDir string
}

// NewWriter creates a new report writer
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// Save writes the rendered report under a dated filename and refreshes the
// daily_briefing.md alias that downstream consumers watch. Returns the dated
// file's path.
func (w *Writer) Save(content string, date time.Time) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("daily_pulse_%s.md", date.Format("2006-01-02"))
	path := filepath.Join(w.outputDir, filename)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}

	alias := filepath.Join(w.outputDir, "daily_briefing.md")
	if err := os.WriteFile(alias, []byte(content), 0644); err != nil {
		return "", err
	}

	return path, nil
}
