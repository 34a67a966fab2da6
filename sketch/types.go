// Package sketch holds the persisted document model for trisketch — the
// ordered triangle definitions and free-standing edges — plus the derived
// geometry computed from them. Definitions are the source of truth; rendered
// triangles are recomputed from scratch after every edit and never patched.
package sketch

import (
	"github.com/google/uuid"

	"trisketch/geometry"
)

// Edge index conventions for a resolved triangle with vertices [v0 v1 v2]:
// edge 0 is v0-v1 (the base), edge 1 is v1-v2, edge 2 is v2-v0.
const (
	EdgeBase  = 0
	EdgeRight = 1
	EdgeLeft  = 2
)

// RefLabel marks the edge an attached triangle shares with its parent.
// That edge belongs to the parent and is never independently editable.
const RefLabel = "Ref"

// TriangleDef is the persisted definition of one triangle. Two variants
// share the struct:
//
//   - Root: ParentID empty; SideA/SideB/SideC give the base, left and right
//     side lengths. Origin optionally pins the base edge (set when the root
//     was promoted from a standalone edge or placed by origin+angle);
//     otherwise the base runs (0,0)->(SideA,0).
//   - Attached: ParentID and EdgeIndex name an edge of an earlier triangle;
//     SideLeft/SideRight are measured from that edge's endpoints to the new
//     apex, and Flip picks between the two mirror solutions.
//
// An attached definition whose parent is missing is skipped during
// recompute, not an error.
type TriangleDef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`

	// Root fields.
	SideA  float64             `json:"sideA,omitempty"`
	SideB  float64             `json:"sideB,omitempty"`
	SideC  float64             `json:"sideC,omitempty"`
	Origin *[2]geometry.Point  `json:"origin,omitempty"`

	// Attached fields.
	ParentID  string  `json:"parent,omitempty"`
	EdgeIndex int     `json:"edge,omitempty"`
	SideLeft  float64 `json:"sideLeft,omitempty"`
	SideRight float64 `json:"sideRight,omitempty"`

	// Flip selects the mirror solution for the apex. false places the apex
	// on the left of the directed base edge, true on the right; the same
	// convention applies to both variants.
	Flip bool `json:"flip,omitempty"`
}

// IsRoot reports whether the definition is a root triangle.
func (d *TriangleDef) IsRoot() bool {
	return d.ParentID == ""
}

// StandaloneEdge is a free-floating segment not yet part of any triangle.
// It can be promoted into a root triangle's base edge or extended from
// either endpoint into another free edge.
type StandaloneEdge struct {
	ID string         `json:"id"`
	P1 geometry.Point `json:"p1"`
	P2 geometry.Point `json:"p2"`
}

// Length returns the segment length.
func (e *StandaloneEdge) Length() float64 {
	return geometry.Dist(e.P1, e.P2)
}

// Rendered is a fully resolved triangle: derived, never persisted.
type Rendered struct {
	ID       string            `json:"-"`
	Name     string            `json:"-"`
	Vertices [3]geometry.Point `json:"-"`
	Labels   [3]string         `json:"-"` // per-edge side identifiers, RefLabel on the shared edge
	Color    string            `json:"-"` // display color as a hex string
	Area     float64           `json:"-"`

	// Provenance, used for occupied-edge checks and hit testing.
	ParentID  string `json:"-"`
	EdgeIndex int    `json:"-"`
}

// EdgePoints returns the two endpoints of edge i in the directed order
// used as a base for attachments.
func (r *Rendered) EdgePoints(i int) (geometry.Point, geometry.Point) {
	switch i {
	case EdgeBase:
		return r.Vertices[0], r.Vertices[1]
	case EdgeRight:
		return r.Vertices[1], r.Vertices[2]
	default:
		return r.Vertices[2], r.Vertices[0]
	}
}

// Centroid returns the centroid of the resolved triangle.
func (r *Rendered) Centroid() geometry.Point {
	return geometry.Centroid(r.Vertices[0], r.Vertices[1], r.Vertices[2])
}

// Metadata carries optional document metadata.
type Metadata struct {
	Name    string `json:"name,omitempty"`
	Created string `json:"created,omitempty"`
	Version string `json:"version,omitempty"`
}

// Sketch is the complete document: an ordered list of triangle definitions
// and the standalone edges. Order matters — a definition may only attach to
// a parent that appears earlier in the list.
type Sketch struct {
	Triangles []TriangleDef    `json:"triangles"`
	Edges     []StandaloneEdge `json:"edges,omitempty"`
	Metadata  Metadata         `json:"metadata,omitempty"`
}

// NewID returns a fresh identifier for a definition or edge.
func NewID() string {
	return uuid.NewString()
}

// Clone creates a deep copy of the sketch.
func (s *Sketch) Clone() *Sketch {
	if s == nil {
		return nil
	}
	clone := &Sketch{
		Triangles: make([]TriangleDef, len(s.Triangles)),
		Edges:     make([]StandaloneEdge, len(s.Edges)),
		Metadata:  s.Metadata,
	}
	copy(clone.Triangles, s.Triangles)
	for i := range clone.Triangles {
		if o := s.Triangles[i].Origin; o != nil {
			oc := *o
			clone.Triangles[i].Origin = &oc
		}
	}
	copy(clone.Edges, s.Edges)
	return clone
}

// TriangleByID returns the definition with the given id, or nil.
func (s *Sketch) TriangleByID(id string) *TriangleDef {
	for i := range s.Triangles {
		if s.Triangles[i].ID == id {
			return &s.Triangles[i]
		}
	}
	return nil
}

// EdgeByID returns the standalone edge with the given id, or nil.
func (s *Sketch) EdgeByID(id string) *StandaloneEdge {
	for i := range s.Edges {
		if s.Edges[i].ID == id {
			return &s.Edges[i]
		}
	}
	return nil
}

// EnsureUniqueIDs assigns fresh ids to any definition or edge missing one
// or colliding with an earlier entry. Hand-edited documents can arrive with
// duplicates; parent references always bind to the first occurrence, so
// only later duplicates are rewritten.
func EnsureUniqueIDs(s *Sketch) {
	seen := make(map[string]bool)
	for i := range s.Triangles {
		id := s.Triangles[i].ID
		if id == "" || seen[id] {
			s.Triangles[i].ID = NewID()
		}
		seen[s.Triangles[i].ID] = true
	}
	for i := range s.Edges {
		id := s.Edges[i].ID
		if id == "" || seen[id] {
			s.Edges[i].ID = NewID()
		}
		seen[s.Edges[i].ID] = true
	}
}
