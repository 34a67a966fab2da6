// Package export writes sketches out to interchange formats.
package export

import (
	"fmt"

	"trisketch/sketch"
)

// Format represents an export format
type Format string

const (
	// FormatJSON exports the sketch document itself (also the save format)
	FormatJSON Format = "json"
	// FormatDXF exports resolved geometry as a CAD drawing
	FormatDXF Format = "dxf"
)

// Exporter interface for different export formats. Export writes to a
// file rather than returning text: DXF is emitted through a drawing
// library that owns its own serialization.
type Exporter interface {
	// Export writes the sketch to the named file
	Export(s *sketch.Sketch, filename string) error
	// FileExtension returns the recommended file extension for this format
	FileExtension() string
	// FormatName returns a human-readable name for this format
	FormatName() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatDXF:
		return NewDXFExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "dxf", "cad":
		return FormatDXF, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// AvailableFormats returns a list of all available export formats
func AvailableFormats() []Format {
	return []Format{FormatJSON, FormatDXF}
}
