// Package export serializes report documents into portable download
// formats. Rendering is a pure function of the document: the renderer
// never reads the clock or the network, so the same document always
// produces the same bytes.
package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// Render serializes the document in the requested format.
func Render(doc *domain.ReportDocument, format Format) ([]byte, error) {
	switch format {
	case FormatText:
		return renderText(doc)
	case FormatCSV:
		return renderCSV(doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Extension returns the file extension for a format, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return "csv"
	default:
		return "txt"
	}
}

// Filename derives the deterministic export file name from the report
// type, the aggregation window and the generation date.
func Filename(reportType domain.ReportType, window domain.TimeRange, generatedAt time.Time, format Format) string {
	return fmt.Sprintf("%s-report_%s_%s_%s.%s",
		reportType,
		window.From.Format("2006-01-02"),
		window.To.Format("2006-01-02"),
		generatedAt.Format("2006-01-02"),
		format.Extension(),
	)
}
