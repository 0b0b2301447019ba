package ballpit

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	DefaultSegments = 30
	MinSegments     = 2
	MaxSegments     = 1000

	// Random outlines get between these many vertices, inclusive.
	RandomMinVertices = 3
	RandomMaxVertices = 12
	// Each random vertex is nudged by up to this much along both axes.
	RandomJitter = 50.0

	edgeEpsilon = 1e-9
)

// ClampSegments keeps a circle tessellation inside [MinSegments, MaxSegments].
// Zero or negative counts select DefaultSegments.
func ClampSegments(segments int) int {
	if segments <= 0 {
		return DefaultSegments
	}
	if segments < MinSegments {
		return MinSegments
	}
	if segments > MaxSegments {
		return MaxSegments
	}
	return segments
}

// SquareVertices returns an axis-aligned square with half-extent size, in
// top-left, top-right, bottom-right, bottom-left order.
func SquareVertices(center Vector, size float64) []Vector {
	return []Vector{
		{center.X - size, center.Y - size},
		{center.X + size, center.Y - size},
		{center.X + size, center.Y + size},
		{center.X - size, center.Y + size},
	}
}

func CircleVertices(center Vector, radius float64, segments int) []Vector {
	segments = ClampSegments(segments)
	verts := make([]Vector, segments)
	for i := range verts {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		verts[i] = center.Add(ForAngle(angle).Mult(radius))
	}
	return verts
}

// TriangleVertices returns an isosceles triangle with two corners size above
// the center and the apex size below it.
func TriangleVertices(center Vector, size float64) []Vector {
	return []Vector{
		{center.X - size, center.Y - size},
		{center.X + size, center.Y - size},
		{center.X, center.Y + size},
	}
}

// RandomVertices builds a jittered polygon around center. A nil rng uses the
// package level source.
func RandomVertices(rng *rand.Rand, center Vector, size float64) []Vector {
	intn, float := rand.Intn, rand.Float64
	if rng != nil {
		intn, float = rng.Intn, rng.Float64
	}

	count := RandomMinVertices + intn(RandomMaxVertices-RandomMinVertices+1)
	verts := make([]Vector, count)
	for i := range verts {
		angle := 2 * math.Pi * float64(i) / float64(count)
		jitter := Vector{
			(float()*2 - 1) * RandomJitter,
			(float()*2 - 1) * RandomJitter,
		}
		verts[i] = center.Add(ForAngle(angle).Mult(size)).Add(jitter)
	}
	return verts
}

// VerticesFor produces the closed edge loop for kind. Random and Draw return
// existing verbatim; a Random request without cached vertices generates a new
// loop from the package level source.
func VerticesFor(kind ShapeKind, center Vector, size float64, segments int, existing []Vector) ([]Vector, error) {
	switch kind {
	case Square:
		return SquareVertices(center, size), nil
	case Circle:
		return CircleVertices(center, size, segments), nil
	case Triangle:
		return TriangleVertices(center, size), nil
	case Random:
		if len(existing) > 0 {
			return existing, nil
		}
		return RandomVertices(nil, center, size), nil
	case Draw:
		return existing, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownShape, kind)
	}
}

// SegmentDistance is the distance from p to the closest point of segment ab.
func SegmentDistance(p, a, b Vector) float64 {
	if a.Equal(b) {
		return p.Distance(a)
	}
	return p.Distance(p.ClosestPointOnSegment(a, b))
}

// PointInPolygon runs a ray casting parity test against the closed loop verts.
// Points on an edge count as inside. Fewer than three vertices contain nothing.
func PointInPolygon(p Vector, verts []Vector) bool {
	if len(verts) < 3 {
		return false
	}

	inside := false
	j := len(verts) - 1
	for i := 0; i < len(verts); j, i = i, i+1 {
		a, b := verts[i], verts[j]
		if SegmentDistance(p, a, b) <= edgeEpsilon {
			return true
		}
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}
