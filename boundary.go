package ballpit

import (
	"fmt"
	"log"
	"math/rand"
)

const DefaultBoundarySize = 100.0

// a gesture ending this close to its first point is closed onto it
const closeTolerance = 0.5

// Outline is the shape specific payload of a Boundary.
type Outline interface {
	Kind() ShapeKind
	Vertices() []Vector
}

type SquareOutline struct {
	Center Vector
	Size   float64
}

func (SquareOutline) Kind() ShapeKind { return Square }

func (o SquareOutline) Vertices() []Vector {
	return SquareVertices(o.Center, o.Size)
}

type CircleOutline struct {
	Center   Vector
	Radius   float64
	Segments int
}

func (CircleOutline) Kind() ShapeKind { return Circle }

func (o CircleOutline) Vertices() []Vector {
	return CircleVertices(o.Center, o.Radius, o.Segments)
}

type TriangleOutline struct {
	Center Vector
	Size   float64
}

func (TriangleOutline) Kind() ShapeKind { return Triangle }

func (o TriangleOutline) Vertices() []Vector {
	return TriangleVertices(o.Center, o.Size)
}

// RandomOutline is generated once and never changes afterwards.
type RandomOutline struct {
	verts []Vector
}

func (*RandomOutline) Kind() ShapeKind { return Random }

func (o *RandomOutline) Vertices() []Vector {
	return o.verts
}

// DrawnOutline holds the points captured by the current or last drag gesture.
type DrawnOutline struct {
	points  PolyLine
	drawing bool
}

func (*DrawnOutline) Kind() ShapeKind { return Draw }

func (o *DrawnOutline) Vertices() []Vector {
	return o.points.Verts
}

// Boundary is the enclosing outline balls move within.
type Boundary struct {
	outline Outline
	center  Vector
	size    float64

	// last produced edge loop
	edges []Vector
	fresh bool
}

// NewBoundary builds the outline for kind. Unknown kinds and non positive sizes
// are configuration errors. rng only matters for Random outlines.
func NewBoundary(kind ShapeKind, center Vector, size float64, segments int, rng *rand.Rand) (*Boundary, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: boundary size %v", ErrInvalidOptions, size)
	}

	var outline Outline
	switch kind {
	case Square:
		outline = SquareOutline{Center: center, Size: size}
	case Circle:
		outline = CircleOutline{Center: center, Radius: size, Segments: ClampSegments(segments)}
	case Triangle:
		outline = TriangleOutline{Center: center, Size: size}
	case Random:
		outline = &RandomOutline{verts: RandomVertices(rng, center, size)}
	case Draw:
		outline = &DrawnOutline{}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownShape, kind)
	}

	return &Boundary{
		outline: outline,
		center:  center,
		size:    size,
	}, nil
}

func (b *Boundary) Kind() ShapeKind {
	return b.outline.Kind()
}

func (b *Boundary) Outline() Outline {
	return b.outline
}

func (b *Boundary) Center() Vector {
	return b.center
}

func (b *Boundary) Size() float64 {
	return b.size
}

// Segments is the circle tessellation, or zero for other shapes.
func (b *Boundary) Segments() int {
	if circle, ok := b.outline.(CircleOutline); ok {
		return circle.Segments
	}
	return 0
}

// Edges returns the current edge loop and remembers it for Contains. Circles
// are re-tessellated when segments is positive and differs from the current
// count. The returned slice must not be modified.
func (b *Boundary) Edges(segments int) []Vector {
	if circle, ok := b.outline.(CircleOutline); ok && segments > 0 {
		segments = ClampSegments(segments)
		if segments != circle.Segments {
			circle.Segments = segments
			b.outline = circle
		}
	}

	b.edges = b.outline.Vertices()
	b.fresh = true
	return b.edges
}

// Bounds is the bounding box of the current edge loop.
func (b *Boundary) Bounds() BB {
	return NewBBForVerts(b.loop())
}

// Degenerate reports a drawn outline with fewer than three points.
func (b *Boundary) Degenerate() bool {
	return len(b.loop()) < 3
}

// Contains tests p against the last produced edge loop; points on an edge are
// inside. A degenerate drawn outline does not constrain anything, so every
// point is inside it.
func (b *Boundary) Contains(p Vector) bool {
	loop := b.loop()
	if len(loop) < 3 {
		return b.outline.Kind() == Draw
	}
	return PointInPolygon(p, loop)
}

func (b *Boundary) loop() []Vector {
	if !b.fresh {
		return b.outline.Vertices()
	}
	return b.edges
}

// BeginDraw clears the drawn outline and starts a new gesture. It reports
// false for boundaries that are not drawn.
func (b *Boundary) BeginDraw() bool {
	drawn, ok := b.outline.(*DrawnOutline)
	if !ok {
		return false
	}
	drawn.points.Reset()
	drawn.drawing = true
	b.fresh = false
	return true
}

// AppendDrawPoint extends the active gesture with p.
func (b *Boundary) AppendDrawPoint(p Vector) bool {
	drawn, ok := b.outline.(*DrawnOutline)
	if !ok || !drawn.drawing {
		return false
	}
	drawn.points.Push(p)
	b.fresh = false
	return true
}

// EndDraw finishes the gesture. A last point that returns to the first one is
// dropped, the loop closes on its own.
func (b *Boundary) EndDraw() {
	drawn, ok := b.outline.(*DrawnOutline)
	if !ok {
		return
	}
	if !drawn.drawing {
		log.Println("EndDraw called without an active gesture")
	}
	drawn.drawing = false

	verts := drawn.points.Verts
	if n := len(verts); n > 1 && verts[n-1].Near(verts[0], closeTolerance) {
		drawn.points.Verts = verts[:n-1]
		b.fresh = false
	}
}

func (b *Boundary) Drawing() bool {
	drawn, ok := b.outline.(*DrawnOutline)
	return ok && drawn.drawing
}
