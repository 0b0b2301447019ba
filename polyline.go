package ballpit

// PolyLine is an ordered, append-only run of points. A drawn boundary keeps
// the points captured during one drag gesture here.
type PolyLine struct {
	Verts []Vector
}

func Next(i, count int) int {
	return (i + 1) % count
}

func (pl *PolyLine) Push(v Vector) *PolyLine {
	pl.Verts = append(pl.Verts, v)
	return pl
}

// Reset drops every point. Slices handed out earlier keep their contents.
func (pl *PolyLine) Reset() {
	pl.Verts = nil
}

func (pl *PolyLine) Len() int {
	return len(pl.Verts)
}

// Perimeter is the length of the loop including the implicit closing edge.
func (pl *PolyLine) Perimeter() float64 {
	var length float64
	count := len(pl.Verts)
	for i := 0; i < count; i++ {
		length += pl.Verts[i].Distance(pl.Verts[Next(i, count)])
	}
	return length
}

// Last returns the most recent point, if any.
func (pl *PolyLine) Last() (Vector, bool) {
	if len(pl.Verts) == 0 {
		return Vector{}, false
	}
	return pl.Verts[len(pl.Verts)-1], true
}
