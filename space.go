package ballpit

import (
	"log"
	"math/rand"
	"time"
)

// attempts per ball to land a random spawn point inside the boundary
const spawnAttempts = 16

// StepInfo summarizes one frame.
type StepInfo struct {
	Frame uint64
	// boundary bounces
	Bounces int
	// overlapping ball pairs resolved, counted once per ball checking
	Contacts int
	// balls removed for leaving the canvas
	Culled int
	Live   int
}

// Space owns the balls and the boundary and advances them one frame at a time.
// It is not safe for concurrent use; drive Step and the input methods from a
// single goroutine.
type Space struct {
	// Forces acting on every ball. Toggling entries takes effect next frame.
	Forces *Forces

	options  Options
	boundary *Boundary
	balls    []*Ball

	frame  uint64
	rng    *rand.Rand
	extent BB

	dragging bool
}

func NewSpace(options Options) (*Space, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	space := &Space{
		Forces:  options.BuildForces(),
		options: options,
		rng:     newRand(options.Seed),
		extent:  options.Extent(),
	}
	if err := space.rebuildBoundary(); err != nil {
		return nil, err
	}
	if err := space.populate(); err != nil {
		return nil, err
	}
	return space, nil
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (space *Space) rebuildBoundary() error {
	opts := space.options
	boundary, err := NewBoundary(opts.BoundaryShape, Vector{}, opts.BoundarySize, opts.Segments, space.rng)
	if err != nil {
		return err
	}
	space.boundary = boundary
	space.dragging = false
	return nil
}

// populate spawns the configured number of balls around the boundary center.
func (space *Space) populate() error {
	opts := space.options
	edges := space.boundary.Edges(opts.Segments)
	for i := 0; i < opts.BallCount; i++ {
		if _, err := space.Spawn(opts.BallShape, opts.BallRadius, space.spawnPoint(edges, opts.BallRadius)); err != nil {
			return err
		}
	}
	return nil
}

// spawnPoint picks a point in the spawn region that lies inside the boundary
// and clear of its edges, falling back to the boundary center.
func (space *Space) spawnPoint(edges []Vector, radius float64) Vector {
	center := space.boundary.Center()
	half := space.options.SpawnSpread / 2
	region := NewBBForExtents(center, half, half)

	for i := 0; i < spawnAttempts; i++ {
		p := Vector{
			region.L + space.rng.Float64()*region.Width(),
			region.B + space.rng.Float64()*region.Height(),
		}
		if space.boundary.Contains(p) && clearOfEdges(p, radius, edges) {
			return p
		}
	}
	return center
}

func clearOfEdges(p Vector, radius float64, edges []Vector) bool {
	j := len(edges) - 1
	for i := range edges {
		if SegmentDistance(p, edges[i], edges[j]) <= radius {
			return false
		}
		j = i
	}
	return true
}

func (space *Space) randomColor() FColor {
	return FColor{
		R: 0.3 + 0.7*space.rng.Float32(),
		G: 0.3 + 0.7*space.rng.Float32(),
		B: 0.3 + 0.7*space.rng.Float32(),
		A: 1,
	}
}

// Step advances the simulation by one frame. Every ball accumulates forces,
// moves against the boundary and resolves overlaps with its siblings in
// order. Balls that left the canvas are culled after the pass.
func (space *Space) Step() StepInfo {
	space.frame++
	info := StepInfo{Frame: space.frame}

	edges := space.boundary.Edges(space.options.Segments)
	opts := UpdateOptions{
		Raycasting:    space.options.Raycasting,
		CollisionRays: space.options.CollisionRays,
		SpeedCap:      space.options.SpeedCap,
	}

	for _, ball := range space.balls {
		ball.ApplyForces(space.Forces)
		if ball.Update(edges, opts) {
			info.Bounces++
		}
		info.Contacts += ball.CheckSiblingCollision(space.balls, space.boundary)
	}

	info.Culled = space.cull()
	info.Live = len(space.balls)
	return info
}

// cull drops every ball further outside the canvas than its radius.
func (space *Space) cull() int {
	n := len(space.balls)
	kept := space.balls[:0]
	for _, ball := range space.balls {
		if space.extent.Grow(ball.Radius).ContainsVect(ball.Position) {
			kept = append(kept, ball)
		}
	}
	for i := len(kept); i < n; i++ {
		space.balls[i] = nil
	}
	space.balls = kept
	return n - len(kept)
}

// Spawn adds a ball at position and returns its index.
func (space *Space) Spawn(shape ShapeKind, radius float64, position Vector) (int, error) {
	ball, err := NewBall(shape, radius, position, space.randomColor())
	if err != nil {
		return -1, err
	}
	space.balls = append(space.balls, ball)
	return len(space.balls) - 1, nil
}

// RemoveBalls removes count balls starting at start and returns how many were
// removed. Ranges reaching past the collection are clamped.
func (space *Space) RemoveBalls(start, count int) int {
	n := len(space.balls)
	if start < 0 || count < 0 || start > n || start+count > n {
		log.Println("RemoveBalls: range", start, count, "clamped to", n, "balls")
	}
	start = clampInt(start, 0, n)
	end := clampInt(start+clampInt(count, 0, n), start, n)

	copy(space.balls[start:], space.balls[end:])
	for i := n - (end - start); i < n; i++ {
		space.balls[i] = nil
	}
	space.balls = space.balls[:n-(end-start)]
	return end - start
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func (space *Space) Clear() {
	space.RemoveBalls(0, len(space.balls))
}

// Reset clears the balls, respawns the initial population and restarts the
// frame counter. The boundary is kept.
func (space *Space) Reset() {
	space.Clear()
	space.frame = 0
	if err := space.populate(); err != nil {
		// options were validated when they were set
		log.Println("Reset:", err)
	}
}

// Configure applies new options between frames. The boundary is rebuilt when
// its shape or size changes and the population is respawned when the ball
// settings change. Forces are merged by name: known names only take the new
// enabled flag and names no longer listed are removed. A new seed restarts
// the random source.
func (space *Space) Configure(options Options) error {
	if err := options.Validate(); err != nil {
		return err
	}
	old := space.options
	space.options = options
	space.extent = options.Extent()
	if options.Seed != old.Seed {
		space.rng = newRand(options.Seed)
	}

	if options.BoundaryShape != old.BoundaryShape || options.BoundarySize != old.BoundarySize {
		if err := space.rebuildBoundary(); err != nil {
			space.options = old
			space.extent = old.Extent()
			return err
		}
	}

	listed := make(map[string]bool, len(options.Forces))
	for _, c := range options.Forces {
		space.Forces.Add(c.Force())
		listed[c.Name] = true
	}
	for _, name := range space.Forces.Names() {
		if !listed[name] {
			space.Forces.Remove(name)
		}
	}

	if options.BallCount != old.BallCount || options.BallShape != old.BallShape || options.BallRadius != old.BallRadius {
		space.Reset()
	}
	return nil
}

// SetForceEnabled toggles a force and keeps Options in sync with it.
func (space *Space) SetForceEnabled(name string, enabled bool) bool {
	if !space.Forces.SetEnabled(name, enabled) {
		return false
	}
	forces := append([]ForceConfig(nil), space.options.Forces...)
	for i := range forces {
		if forces[i].Name == name {
			forces[i].Enabled = enabled
		}
	}
	space.options.Forces = forces
	return true
}

// Balls returns a snapshot of every live ball.
func (space *Space) Balls() []BallState {
	states := make([]BallState, len(space.balls))
	for i, ball := range space.balls {
		states[i] = ball.State()
	}
	return states
}

func (space *Space) BallCount() int {
	return len(space.balls)
}

// Edges returns a copy of the current edge loop.
func (space *Space) Edges() []Vector {
	return append([]Vector(nil), space.boundary.Edges(space.options.Segments)...)
}

// Boundary is exposed for queries. Change it through Configure and the drag
// methods only.
func (space *Space) Boundary() *Boundary {
	return space.boundary
}

func (space *Space) Frame() uint64 {
	return space.frame
}

func (space *Space) Extent() BB {
	return space.extent
}

func (space *Space) Options() Options {
	opts := space.options
	opts.Forces = append([]ForceConfig(nil), opts.Forces...)
	return opts
}
