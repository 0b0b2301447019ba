package ballpit

import "math"

// BB is an axis-aligned bounding box. Canvas space has y growing downwards, so
// B is the smaller y value and T the larger one.
type BB struct {
	L, B, R, T float64
}

func NewBBForExtents(c Vector, hw, hh float64) BB {
	return BB{
		L: c.X - hw,
		B: c.Y - hh,
		R: c.X + hw,
		T: c.Y + hh,
	}
}

// NewBBForVerts returns the smallest box holding every vertex. An empty slice
// yields the zero box.
func NewBBForVerts(verts []Vector) BB {
	if len(verts) == 0 {
		return BB{}
	}
	bb := BB{verts[0].X, verts[0].Y, verts[0].X, verts[0].Y}
	for _, v := range verts[1:] {
		bb = bb.Expand(v)
	}
	return bb
}

func (bb BB) ContainsVect(v Vector) bool {
	return bb.L <= v.X && bb.R >= v.X && bb.B <= v.Y && bb.T >= v.Y
}

func (bb BB) Expand(v Vector) BB {
	return BB{
		math.Min(bb.L, v.X),
		math.Min(bb.B, v.Y),
		math.Max(bb.R, v.X),
		math.Max(bb.T, v.Y),
	}
}

// Grow pushes every side outwards by d.
func (bb BB) Grow(d float64) BB {
	return BB{bb.L - d, bb.B - d, bb.R + d, bb.T + d}
}

func (bb BB) Center() Vector {
	return Vector{bb.L, bb.B}.Lerp(Vector{bb.R, bb.T}, 0.5)
}

func (bb BB) Width() float64 {
	return bb.R - bb.L
}

func (bb BB) Height() float64 {
	return bb.T - bb.B
}

func (bb BB) ClampVect(v Vector) Vector {
	return Vector{Clamp(v.X, bb.L, bb.R), Clamp(v.Y, bb.B, bb.T)}
}
