package ballpit

// Transform is a 2x3 affine matrix. Frontends use it to map between their
// screen space (pixels or terminal cells) and canvas space.
type Transform struct {
	a, b, c, d, tx, ty float64
}

func NewTransformTranspose(a, c, tx, b, d, ty float64) Transform {
	return Transform{a, b, c, d, tx, ty}
}

func NewTransformTranslate(translate Vector) Transform {
	return NewTransformTranspose(
		1, 0, translate.X,
		0, 1, translate.Y,
	)
}

func NewTransformScale(scaleX, scaleY float64) Transform {
	return NewTransformTranspose(
		scaleX, 0, 0,
		0, scaleY, 0,
	)
}

// NewTransformViewport maps the canvas box onto a screen of the given size
// with the screen origin at the top left corner.
func NewTransformViewport(canvas BB, width, height float64) Transform {
	scale := NewTransformScale(width/canvas.Width(), height/canvas.Height())
	return scale.Mult(NewTransformTranslate(Vector{-canvas.L, -canvas.B}))
}

func (t Transform) Inverse() Transform {
	inv_det := 1.0 / (t.a*t.d - t.c*t.b)
	return NewTransformTranspose(
		t.d*inv_det, -t.c*inv_det, (t.c*t.ty-t.tx*t.d)*inv_det,
		-t.b*inv_det, t.a*inv_det, (t.tx*t.b-t.a*t.ty)*inv_det,
	)
}

func (t Transform) Mult(t2 Transform) Transform {
	return NewTransformTranspose(
		t.a*t2.a+t.c*t2.b, t.a*t2.c+t.c*t2.d, t.a*t2.tx+t.c*t2.ty+t.tx,
		t.b*t2.a+t.d*t2.b, t.b*t2.c+t.d*t2.d, t.b*t2.tx+t.d*t2.ty+t.ty,
	)
}

func (t Transform) Point(p Vector) Vector {
	return Vector{X: t.a*p.X + t.c*p.Y + t.tx, Y: t.b*p.X + t.d*p.Y + t.ty}
}

// Vect maps a direction, ignoring translation.
func (t Transform) Vect(v Vector) Vector {
	return Vector{t.a*v.X + t.c*v.Y, t.b*v.X + t.d*v.Y}
}

// Points maps every vertex, returning a new slice.
func (t Transform) Points(verts []Vector) []Vector {
	out := make([]Vector, len(verts))
	for i, v := range verts {
		out[i] = t.Point(v)
	}
	return out
}
