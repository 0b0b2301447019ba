package ballpit

import (
	"errors"
	"math"
	"testing"
)

func newTestBall(t *testing.T, radius float64, position Vector) *Ball {
	t.Helper()
	ball, err := NewBall(Circle, radius, position, FColor{R: 1, A: 1})
	if err != nil {
		t.Fatal(err)
	}
	return ball
}

func squareEdges(size float64) []Vector {
	return SquareVertices(Vector{}, size)
}

func TestNewBall_Errors(t *testing.T) {
	if _, err := NewBall(Random, 5, Vector{}, FColor{}); !errors.Is(err, ErrUnsupportedBallShape) {
		t.Errorf("Expected ErrUnsupportedBallShape, got %v", err)
	}
	if _, err := NewBall(ShapeKind(-1), 5, Vector{}, FColor{}); !errors.Is(err, ErrUnknownShape) {
		t.Errorf("Expected ErrUnknownShape, got %v", err)
	}
	if _, err := NewBall(Circle, 0, Vector{}, FColor{}); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("Expected ErrInvalidOptions, got %v", err)
	}
}

func TestBall_ZeroVelocityIsStable(t *testing.T) {
	ball := newTestBall(t, 5, Vector{12.25, -7.5})
	edges := squareEdges(100)
	forces := NewForces(ConstantForce("Gravity", Vector{0, 2}, false))

	for i := 0; i < 1000; i++ {
		ball.ApplyForces(forces)
		ball.Update(edges, UpdateOptions{})
	}
	if !ball.Position.Equal(Vector{12.25, -7.5}) {
		t.Errorf("Resting ball moved to %v", ball.Position)
	}
	if !ball.Velocity.Equal(Vector{}) {
		t.Errorf("Resting ball gained velocity %v", ball.Velocity)
	}
}

func TestBall_TinyVelocitySnapsToRest(t *testing.T) {
	ball := newTestBall(t, 5, Vector{})
	ball.Velocity = Vector{RestSpeed / 10, 0}
	ball.Update(squareEdges(100), UpdateOptions{})
	if !ball.Velocity.Equal(Vector{}) || !ball.Position.Equal(Vector{}) {
		t.Errorf("Expected a snap to rest, got v=%v p=%v", ball.Velocity, ball.Position)
	}
}

func TestBall_AccelerationIsReset(t *testing.T) {
	ball := newTestBall(t, 5, Vector{})
	ball.ApplyForce(&Force{Name: "push", Value: func(float64) Vector { return Vector{1, 0} }, Enabled: true})
	ball.Update(squareEdges(100), UpdateOptions{})
	if !ball.Acceleration.Equal(Vector{}) {
		t.Errorf("Expected acceleration to be cleared, got %v", ball.Acceleration)
	}
}

func TestBall_FallsAndBouncesOffSquareFloor(t *testing.T) {
	ball := newTestBall(t, 5, Vector{0, -90})
	edges := squareEdges(100)
	forces := NewForces(ConstantForce("Gravity", Vector{0, 2}, true))

	ball.ApplyForces(forces)
	if ball.Update(edges, UpdateOptions{SpeedCap: DefaultSpeedCap}) {
		t.Fatal("First frame should not bounce")
	}
	if !ball.Velocity.Equal(Vector{0, 2}) {
		t.Fatalf("Expected velocity 0,2 got %v", ball.Velocity)
	}
	if !ball.Position.Equal(Vector{0, -88}) {
		t.Fatalf("Expected position 0,-88 got %v", ball.Position)
	}

	bounces := 0
	for frame := 0; frame < 500; frame++ {
		ball.ApplyForces(forces)
		bounced := ball.Update(edges, UpdateOptions{SpeedCap: DefaultSpeedCap})
		if ball.Position.Y >= 95 {
			t.Fatalf("Frame %d: ball sank into the floor at %v", frame, ball.Position)
		}
		if bounced && bounces == 0 {
			if ball.Velocity.Y >= 0 {
				t.Fatalf("Frame %d: bounce did not reflect velocity, got %v", frame, ball.Velocity)
			}
		}
		if bounced {
			bounces++
		}
	}
	if bounces == 0 {
		t.Fatal("Ball never reached the floor")
	}
}

func TestBall_BounceDoesNotGainEnergy(t *testing.T) {
	for _, velocity := range []Vector{{0, 7.3}, {3, 4.5}, {-12.5, 30}, {0.4, 2.9}} {
		ball := newTestBall(t, 5, Vector{0, 94 - velocity.Y/2})
		ball.Velocity = velocity
		before := velocity.Length()

		if !ball.Update(squareEdges(100), UpdateOptions{SpeedCap: DefaultSpeedCap}) {
			t.Fatalf("Expected %v to hit the floor", velocity)
		}
		if after := ball.Velocity.Length(); after > before+1e-9 {
			t.Errorf("Bounce gained energy: %v -> %v", before, after)
		}
		if ball.Velocity.Y >= 0 {
			t.Errorf("Expected upward velocity after the bounce, got %v", ball.Velocity)
		}
	}
}

func TestLimitBounce(t *testing.T) {
	v := limitBounce(Vector{0, 10}, 5, 0)
	if math.Abs(v.Length()-5) > 1e-9 {
		t.Errorf("Expected clamp to the speed before the bounce, got %v", v.Length())
	}
	v = limitBounce(Vector{0, 150}, 150, DefaultSpeedCap)
	if math.Abs(v.Length()-DefaultSpeedCap) > 1e-9 {
		t.Errorf("Expected clamp to the speed cap, got %v", v.Length())
	}
	if v := limitBounce(Vector{3, 4}, 5, DefaultSpeedCap); !v.Equal(Vector{3, 4}) {
		t.Errorf("Expected an untouched velocity, got %v", v)
	}
}

func TestBall_WedgedBallDoesNotAccumulate(t *testing.T) {
	// touching the floor and sliding along it
	ball := newTestBall(t, 5, Vector{0, 95.5})
	ball.Velocity = Vector{1, 0}
	ball.ApplyForce(&Force{Name: "push", Value: func(float64) Vector { return Vector{1, 0} }, Enabled: true})

	ball.Update(squareEdges(100), UpdateOptions{})

	if !ball.Position.Equal(Vector{0, 95.5}) {
		t.Fatalf("Wedged ball should not move, got %v", ball.Position)
	}
	if !ball.Velocity.Equal(Vector{1, 0}) {
		t.Errorf("Expected the acceleration to be taken back out, got %v", ball.Velocity)
	}
}

func TestBall_FirstEdgeWins(t *testing.T) {
	// In a corner both the bottom and the right edge are in reach. The loop
	// order puts the right edge first.
	ball := newTestBall(t, 5, Vector{94, 94})
	ball.Velocity = Vector{1, 1}

	ball.Update(squareEdges(100), UpdateOptions{})

	if !ball.Velocity.Near(Vector{-1, 1}, 1e-12) {
		t.Errorf("Expected the right edge to reflect first, got %v", ball.Velocity)
	}
}

func TestBall_DebugRays(t *testing.T) {
	ball := newTestBall(t, 5, Vector{0, 80})
	ball.Velocity = Vector{0, 20}

	ball.Update(squareEdges(100), UpdateOptions{Raycasting: true, CollisionRays: true})

	state := ball.State()
	if len(state.Rays) == 0 {
		t.Fatal("Expected debug rays")
	}
	last := state.Rays[len(state.Rays)-1]
	if last.From.Y != 100 {
		t.Errorf("Expected the collision ray to start on the floor, got %v", last.From)
	}

	ball.Velocity = Vector{}
	ball.Update(squareEdges(100), UpdateOptions{Raycasting: true})
	if len(ball.State().Rays) != 0 {
		t.Error("Rays should be cleared every frame")
	}
}

func TestBall_DegenerateEdges(t *testing.T) {
	ball := newTestBall(t, 5, Vector{4, 0})
	ball.Velocity = Vector{3, 0}

	// a single repeated point right of the ball
	edges := []Vector{{10, 0}, {10, 0}, {10, 0}}
	if !ball.Update(edges, UpdateOptions{}) {
		t.Fatal("Expected a hit on the point")
	}
	if ball.Velocity.X >= 0 {
		t.Errorf("Expected the ball to bounce back off the point, got %v", ball.Velocity)
	}
}

func TestBall_LandsOnRepeatedVertex(t *testing.T) {
	ball := newTestBall(t, 5, Vector{0, 0})
	ball.Velocity = Vector{1, 0}

	// the loop closes on its first point, leaving a zero length closing edge
	edges := []Vector{{1, 0}, {50, 50}, {-50, 50}, {1, 0}}
	if !ball.Update(edges, UpdateOptions{}) {
		t.Fatal("Expected a hit on the repeated vertex")
	}
	if !ball.Velocity.Equal(Vector{-1, 0}) {
		t.Errorf("Expected the ball to bounce straight back, got %v", ball.Velocity)
	}
}

func TestBall_SiblingSeparation(t *testing.T) {
	a := newTestBall(t, 10, Vector{0, 0})
	b := newTestBall(t, 10, Vector{15, 0})
	balls := []*Ball{a, b}
	boundary, _ := NewBoundary(Square, Vector{}, 100, 0, nil)

	if n := a.CheckSiblingCollision(balls, boundary); n != 1 {
		t.Fatalf("Expected a single contact, got %d", n)
	}

	if d := a.Position.Distance(b.Position); d < 20-1e-9 {
		t.Errorf("Expected the pair to separate to 20, got %v", d)
	}
	if !a.Position.Equal(Vector{-2.5, 0}) || !b.Position.Equal(Vector{17.5, 0}) {
		t.Errorf("Expected an even split, got %v and %v", a.Position, b.Position)
	}
}

func TestBall_SiblingElasticSwap(t *testing.T) {
	a := newTestBall(t, 10, Vector{0, 0})
	b := newTestBall(t, 10, Vector{19, 0})
	a.Velocity = Vector{1, 0}
	b.Velocity = Vector{-1, 0}

	a.CheckSiblingCollision([]*Ball{a, b}, nil)

	if !a.Velocity.Near(Vector{-1, 0}, 1e-12) || !b.Velocity.Near(Vector{1, 0}, 1e-12) {
		t.Errorf("Equal balls should swap velocities, got %v and %v", a.Velocity, b.Velocity)
	}
}

func TestBall_SiblingHeavierBallMovesLess(t *testing.T) {
	small := newTestBall(t, 5, Vector{0, 0})
	big := newTestBall(t, 20, Vector{24, 0})
	small.Velocity = Vector{2, 0}

	small.CheckSiblingCollision([]*Ball{small, big}, nil)

	if math.Abs(big.Velocity.X) >= math.Abs(small.Velocity.X) {
		t.Errorf("Bigger ball should change less: small %v big %v", small.Velocity, big.Velocity)
	}
	// momentum with mass = radius is preserved
	before := 5.0 * 2
	after := 5*small.Velocity.X + 20*big.Velocity.X
	if math.Abs(before-after) > 1e-9 {
		t.Errorf("Momentum changed: %v -> %v", before, after)
	}
}

func TestBall_SiblingSeparatingSkipsImpulse(t *testing.T) {
	a := newTestBall(t, 10, Vector{0, 0})
	b := newTestBall(t, 10, Vector{15, 0})
	a.Velocity = Vector{-1, 0}
	b.Velocity = Vector{1, 0}

	a.CheckSiblingCollision([]*Ball{a, b}, nil)

	if !a.Velocity.Equal(Vector{-1, 0}) || !b.Velocity.Equal(Vector{1, 0}) {
		t.Errorf("Separating pair should keep its velocities, got %v and %v", a.Velocity, b.Velocity)
	}
	if d := a.Position.Distance(b.Position); d < 20-1e-9 {
		t.Errorf("Overlap should still be resolved, got distance %v", d)
	}
}

func TestBall_SiblingThirdBallBlocksPush(t *testing.T) {
	a := newTestBall(t, 10, Vector{0, 0})
	b := newTestBall(t, 10, Vector{15, 0})
	c := newTestBall(t, 10, Vector{-21, 0})

	a.CheckSiblingCollision([]*Ball{a, b, c}, nil)

	// the half push is refused, only the small positional bounce lands
	if !a.Position.Equal(Vector{-0.25, 0}) {
		t.Errorf("A should not run into C, got %v", a.Position)
	}
	if !b.Position.Equal(Vector{17.75, 0}) {
		t.Errorf("B should still take its half, got %v", b.Position)
	}
}

type halfPlane struct{}

// Contains accepts x >= 0 only.
func (halfPlane) Contains(p Vector) bool {
	return p.X >= 0
}

func TestBall_SiblingStaysInsideBoundary(t *testing.T) {
	a := newTestBall(t, 10, Vector{0, 0})
	b := newTestBall(t, 10, Vector{15, 0})

	a.CheckSiblingCollision([]*Ball{a, b}, halfPlane{})

	if a.Position.X < 0 {
		t.Errorf("A was pushed out of the boundary to %v", a.Position)
	}
	if b.Position.X <= 15 {
		t.Errorf("B should have moved away, got %v", b.Position)
	}
}

func TestBall_SiblingCoincidentCenters(t *testing.T) {
	a := newTestBall(t, 5, Vector{0, 0})
	b := newTestBall(t, 5, Vector{0, 0})

	a.CheckSiblingCollision([]*Ball{a, b}, nil)

	if d := a.Position.Distance(b.Position); math.IsNaN(d) || d < 10-1e-9 {
		t.Errorf("Coincident balls should be split apart, got %v", d)
	}
}
