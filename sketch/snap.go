package sketch

import "trisketch/geometry"

// DefaultSnapRadius is the world-space radius within which a raw cursor
// position is quantized onto existing geometry.
const DefaultSnapRadius = 0.5

// NearestSnapPoint returns the candidate point closest to cursor that lies
// strictly within radius and does not coincide (within tolerance) with any
// excluded point. The exclusion list holds the anchor points of the
// construction in progress, so a drag never snaps onto its own base.
//
// Returns ok=false when nothing qualifies; callers then use the raw cursor
// position unmodified.
func NearestSnapPoint(candidates []geometry.Point, cursor geometry.Point, excluded []geometry.Point, radius float64) (geometry.Point, bool) {
	best := geometry.Point{}
	bestDist := radius
	found := false

scan:
	for _, p := range candidates {
		d := geometry.Dist(cursor, p)
		if d >= bestDist {
			continue
		}
		for _, ex := range excluded {
			if geometry.ApproxEqual(p, ex) {
				continue scan
			}
		}
		best = p
		bestDist = d
		found = true
	}
	return best, found
}

// Snap applies NearestSnapPoint against the whole document and falls back
// to the raw cursor position when no point is in range.
func (s *Sketch) Snap(cursor geometry.Point, excluded []geometry.Point, radius float64) geometry.Point {
	if p, ok := NearestSnapPoint(s.SnapPoints(), cursor, excluded, radius); ok {
		return p
	}
	return cursor
}
