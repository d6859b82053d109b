package export

import (
	"fmt"
	"strings"
)

// Format identifies an export file type.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// Dataset defines tabular export content. Every row is aligned with Headers.
type Dataset struct {
	Title   string
	Headers []string
	Rows    [][]string
	// Sections are free-text blocks rendered after the table where the format
	// supports it (PDF), e.g. meeting note bodies.
	Sections []Section
}

// Section is a headed block of prose.
type Section struct {
	Heading string
	Body    string
}

// Renderer turns a dataset into file bytes.
type Renderer interface {
	Render(Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

// ParseFormat validates a user supplied format name.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatXLSX, FormatCSV, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// RendererFor returns the renderer registered for format.
func RendererFor(format Format) (Renderer, error) {
	switch format {
	case FormatXLSX:
		return NewXLSXExporter(), nil
	case FormatCSV:
		return NewCSVExporter(), nil
	case FormatPDF:
		return NewPDFExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

func (d Dataset) validate(kind string) error {
	if len(d.Headers) == 0 {
		return fmt.Errorf("%s requires at least one header", kind)
	}
	for i, row := range d.Rows {
		if len(row) > len(d.Headers) {
			return fmt.Errorf("%s row %d has %d cells for %d headers", kind, i, len(row), len(d.Headers))
		}
	}
	return nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
