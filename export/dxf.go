package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/entity"

	"trisketch/sketch"
)

// DXFExporter writes the resolved geometry as a DXF drawing: one closed
// lightweight polyline per triangle on a "Triangles" layer, one line per
// standalone edge on an "Edges" layer. Model coordinates are already Y-up,
// which matches DXF's world space, so no axis flip is needed.
type DXFExporter struct{}

// NewDXFExporter creates a new DXF exporter
func NewDXFExporter() *DXFExporter {
	return &DXFExporter{}
}

// Export writes the sketch as a DXF file
func (e *DXFExporter) Export(s *sketch.Sketch, filename string) error {
	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0

	rendered := sketch.Recompute(s)
	if len(rendered) > 0 {
		d.AddLayer("Triangles", color.Green, dxf.DefaultLineType, true)
		for i := range rendered {
			r := &rendered[i]
			// Close the ring by repeating the first vertex.
			lwp := entity.NewLwPolyline(4)
			for v := 0; v < 3; v++ {
				lwp.Vertices[v] = []float64{r.Vertices[v].X, r.Vertices[v].Y}
			}
			lwp.Vertices[3] = []float64{r.Vertices[0].X, r.Vertices[0].Y}
			d.AddEntity(lwp)
		}
	}

	if len(s.Edges) > 0 {
		d.AddLayer("Edges", color.Red, dxf.DefaultLineType, true)
		for i := range s.Edges {
			edge := &s.Edges[i]
			if _, err := d.Line(edge.P1.X, edge.P1.Y, 0, edge.P2.X, edge.P2.Y, 0); err != nil {
				return fmt.Errorf("writing edge %s: %w", edge.ID, err)
			}
		}
	}

	if err := d.SaveAs(filename); err != nil {
		return fmt.Errorf("saving DXF: %w", err)
	}
	return nil
}

// FileExtension returns the file extension for DXF
func (e *DXFExporter) FileExtension() string {
	return ".dxf"
}

// FormatName returns the format name
func (e *DXFExporter) FormatName() string {
	return "DXF"
}
