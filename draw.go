package ballpit

//Draw flags
const (
	DRAW_BOUNDARY = 1 << 0
	DRAW_BALLS    = 1 << 1
	DRAW_RAYS     = 1 << 2
)

// 16 bytes
type FColor struct {
	R, G, B, A float32
}

// RGBA implements color.Color with alpha premultiplied channels.
func (c FColor) RGBA() (r, g, b, a uint32) {
	alpha := clampUnit(c.A)
	return uint32(clampUnit(c.R) * alpha * 0xffff),
		uint32(clampUnit(c.G) * alpha * 0xffff),
		uint32(clampUnit(c.B) * alpha * 0xffff),
		uint32(alpha * 0xffff)
}

func clampUnit(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Drawer is implemented by rendering collaborators. Coordinates are in canvas
// space; the drawer applies its own viewport.
type Drawer interface {
	DrawCircle(pos Vector, radius float64, outline, fill FColor)
	DrawSegment(a, b Vector, fill FColor)
	DrawPolygon(verts []Vector, outline, fill FColor)
	DrawDot(size float64, pos Vector, fill FColor)

	Flags() uint
	OutlineColor() FColor
	BallColor(ball BallState) FColor
	RayColor(ball BallState) FColor
}

func DrawBall(ball BallState, options Drawer) {
	outline := options.OutlineColor()
	fill := options.BallColor(ball)

	switch ball.Shape {
	case Circle:
		options.DrawCircle(ball.Position, ball.Radius, outline, fill)
	case Square:
		options.DrawPolygon(SquareVertices(ball.Position, ball.Radius), outline, fill)
	case Triangle:
		options.DrawPolygon(TriangleVertices(ball.Position, ball.Radius), outline, fill)
	default:
		panic("Unknown shape type")
	}
}

// DrawBoundary outlines the edge loop. Drawn outlines that are still too short
// to close are shown as an open path.
func DrawBoundary(verts []Vector, options Drawer) {
	outline := options.OutlineColor()
	switch len(verts) {
	case 0:
		return
	case 1:
		options.DrawDot(3, verts[0], outline)
	case 2:
		options.DrawSegment(verts[0], verts[1], outline)
	default:
		options.DrawPolygon(verts, outline, FColor{})
	}
}

func DrawRays(ball BallState, options Drawer) {
	color := options.RayColor(ball)
	for _, ray := range ball.Rays {
		options.DrawSegment(ray.From, ray.To, color)
		options.DrawDot(ball.Radius/2, ray.To, color)
	}
}

func DrawSpace(space *Space, options Drawer) {
	if options.Flags()&DRAW_BOUNDARY != 0 {
		DrawBoundary(space.Edges(), options)
	}

	balls := space.Balls()
	if options.Flags()&DRAW_BALLS != 0 {
		for _, ball := range balls {
			DrawBall(ball, options)
		}
	}

	if options.Flags()&DRAW_RAYS != 0 {
		for _, ball := range balls {
			DrawRays(ball, options)
		}
	}
}
