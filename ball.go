package ballpit

import (
	"fmt"
	"math"
)

const (
	DefaultBallRadius = 5.0
	// Speeds below RestSpeed snap to zero so resting balls do not drift.
	RestSpeed = 1e-5
	// DefaultSpeedCap bounds the speed a ball may leave a bounce with.
	DefaultSpeedCap = 100.0

	rayReach = 200.0
)

// Ray is a debug segment in canvas space.
type Ray struct {
	From, To Vector
}

// Container answers containment queries. *Boundary implements it.
type Container interface {
	Contains(p Vector) bool
}

type Ball struct {
	Shape  ShapeKind
	Radius float64

	Position     Vector
	Velocity     Vector
	Acceleration Vector

	// largest speed seen so far
	PeakSpeed float64
	Color     FColor

	rays []Ray
}

// BallState is a read-only copy of a ball handed to renderers.
type BallState struct {
	Shape     ShapeKind
	Radius    float64
	Position  Vector
	Velocity  Vector
	PeakSpeed float64
	Color     FColor
	Rays      []Ray
}

func NewBall(shape ShapeKind, radius float64, position Vector, color FColor) (*Ball, error) {
	if !shape.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownShape, shape)
	}
	if !shape.BallShape() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedBallShape, shape)
	}
	if radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: ball radius %v", ErrInvalidOptions, radius)
	}
	return &Ball{
		Shape:    shape,
		Radius:   radius,
		Position: position,
		Color:    color,
	}, nil
}

func (ball *Ball) State() BallState {
	return BallState{
		Shape:     ball.Shape,
		Radius:    ball.Radius,
		Position:  ball.Position,
		Velocity:  ball.Velocity,
		PeakSpeed: ball.PeakSpeed,
		Color:     ball.Color,
		Rays:      append([]Ray(nil), ball.rays...),
	}
}

func (ball *Ball) Speed() float64 {
	return ball.Velocity.Length()
}

func (ball *Ball) ApplyForce(force *Force) {
	ball.Acceleration = ball.Acceleration.Add(force.Evaluate(ball.Radius))
}

func (ball *Ball) ApplyForces(forces *Forces) {
	if forces == nil {
		return
	}
	ball.Acceleration = ball.Acceleration.Add(forces.Contribution(ball.Radius))
}

type UpdateOptions struct {
	// Raycasting records rays to nearby edges for debugging.
	Raycasting bool
	// CollisionRays records the edge normal at every bounce.
	CollisionRays bool
	// SpeedCap bounds the speed after a bounce, so a ball faster than the
	// cap is slowed down by its first bounce. Zero disables the cap and only
	// the pre-collision speed limits the reflection.
	SpeedCap float64
}

// Update integrates one frame against the edge loop and reports whether the
// ball bounced off an edge. The motion is split into unit sized sub-steps so a
// fast ball cannot skip over an edge. The first edge hit reflects the
// velocity and ends the motion for this frame.
func (ball *Ball) Update(edges []Vector, opts UpdateOptions) bool {
	assert(ball.Radius > 0, "ball radius must be positive")

	ball.rays = ball.rays[:0]
	acceleration := ball.Acceleration
	ball.Acceleration = Vector{}

	ball.Velocity = ball.Velocity.Add(acceleration)
	speed := ball.Velocity.Length()
	if speed < RestSpeed {
		ball.Velocity = Vector{}
		return false
	}

	startPosition, startVelocity := ball.Position, ball.Velocity
	steps := int(math.Ceil(speed))
	step := ball.Velocity.Div(float64(steps))

	bounced := false
	for i := 0; i < steps; i++ {
		next := ball.Position.Add(step)
		normal, contact, hit := ball.collides(next, step, edges, opts.Raycasting)
		if !hit {
			ball.Position = next
			continue
		}

		ball.Velocity = limitBounce(ball.Velocity.Reflect(normal), speed, opts.SpeedCap)
		if opts.CollisionRays {
			ball.rays = append(ball.rays, Ray{contact, contact.Add(normal.Mult(ball.Radius * 2))})
		}
		bounced = true
		break
	}

	// Wedged against an edge it slides along: the acceleration would pile up
	// without ever moving the ball.
	if ball.Position.Equal(startPosition) && ball.Velocity.Equal(startVelocity) {
		ball.Velocity = ball.Velocity.Sub(acceleration)
	}

	ball.PeakSpeed = math.Max(ball.PeakSpeed, ball.Velocity.Length())
	return bounced
}

// limitBounce keeps a reflected velocity from gaining energy.
func limitBounce(v Vector, before, speedCap float64) Vector {
	limit := before
	if speedCap > 0 && speedCap < limit {
		limit = speedCap
	}
	return v.Clamp(limit)
}

// collides checks a tentative center against the loop in order and returns
// the normal of the first edge within the ball radius. Edge i runs from vertex
// i to vertex i-1, starting with the closing edge. step is the sub-step that
// produced next.
func (ball *Ball) collides(next, step Vector, edges []Vector, raycasting bool) (normal, contact Vector, hit bool) {
	if raycasting {
		ball.rays = ball.rays[:0]
	}

	j := len(edges) - 1
	for i := 0; i < len(edges); j, i = i, i+1 {
		start, end := edges[i], edges[j]
		closest := next.ClosestPointOnSegment(start, end)
		distance := next.Distance(closest)

		if raycasting && distance > ball.Radius && distance < rayReach {
			ball.rays = append(ball.rays, Ray{next, closest})
		}
		if distance > ball.Radius {
			continue
		}

		edge := end.Sub(start)
		if edge.LengthSq() == 0 {
			// degenerate edge, treat it as a point
			if next.Equal(start) {
				return step.Neg().Normalize(), closest, true
			}
			return next.Sub(start).Normalize(), closest, true
		}
		return edge.Perp().Normalize(), closest, true
	}
	return Vector{}, Vector{}, false
}

// CheckSiblingCollision resolves overlaps between ball and every other ball.
// Positions only change when the result stays inside boundary and clear of
// third balls. It returns the number of overlapping pairs found.
func (ball *Ball) CheckSiblingCollision(balls []*Ball, boundary Container) int {
	contacts := 0
	for _, other := range balls {
		if other == ball {
			continue
		}

		delta := other.Position.Sub(ball.Position)
		distance := delta.Length()
		sizeSum := ball.Radius + other.Radius
		if distance >= sizeSum {
			continue
		}
		contacts++

		normal := Vector{1, 0}
		if distance > 0 {
			normal = delta.Div(distance)
		}

		shift := normal.Mult((sizeSum - distance) / 2)
		ball.tryMove(ball.Position.Sub(shift), balls, other, boundary)
		other.tryMove(other.Position.Add(shift), balls, ball, boundary)

		velocityOnNormal := other.Velocity.Sub(ball.Velocity).Dot(normal)
		if velocityOnNormal > 0 {
			// already separating
			continue
		}

		// mass is modelled as the radius
		impulse := normal.Mult(-2 * velocityOnNormal / (1/ball.Radius + 1/other.Radius))
		ball.Velocity = ball.Velocity.Sub(impulse.Div(ball.Radius))
		other.Velocity = other.Velocity.Add(impulse.Div(other.Radius))

		distance = other.Position.Distance(ball.Position)
		if distance < sizeSum {
			bounce := normal.Mult(sizeSum - distance)
			ball.nudge(bounce.Div(ball.Radius).Neg(), boundary)
			other.nudge(bounce.Div(other.Radius), boundary)
		}
	}
	return contacts
}

// tryMove commits p unless it leaves the boundary or overlaps a ball other
// than partner.
func (ball *Ball) tryMove(p Vector, balls []*Ball, partner *Ball, boundary Container) bool {
	if boundary != nil && !boundary.Contains(p) {
		return false
	}
	for _, b := range balls {
		if b == ball || b == partner {
			continue
		}
		if p.Distance(b.Position) < ball.Radius+b.Radius {
			return false
		}
	}
	ball.Position = p
	return true
}

// nudge applies offset, or its mirror when offset would leave the boundary.
func (ball *Ball) nudge(offset Vector, boundary Container) {
	if boundary == nil || boundary.Contains(ball.Position.Add(offset)) {
		ball.Position = ball.Position.Add(offset)
		return
	}
	if boundary.Contains(ball.Position.Sub(offset)) {
		ball.Position = ball.Position.Sub(offset)
	}
}
