package ballpit

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidOptions = errors.New("invalid options")

const (
	DefaultWidth       = 600.0
	DefaultHeight      = 400.0
	DefaultBallCount   = 20
	DefaultSpawnSpread = 100.0
)

// ForceConfig is the serialized form of a Force. Scaled forces are multiplied
// by the ball radius when evaluated.
type ForceConfig struct {
	Name    string  `yaml:"name"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Scaled  bool    `yaml:"scaled"`
	Enabled bool    `yaml:"enabled"`
}

func (c ForceConfig) Force() Force {
	if c.Scaled {
		return ScaledForce(c.Name, Vector{c.X, c.Y}, c.Enabled)
	}
	return ConstantForce(c.Name, Vector{c.X, c.Y}, c.Enabled)
}

// Options configures a Space. The canvas is Width by Height canvas units
// centered on the origin.
type Options struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	BoundaryShape ShapeKind `yaml:"boundary_shape"`
	BoundarySize  float64   `yaml:"boundary_size"`
	// Segments is only used by Circle boundaries. Zero selects DefaultSegments.
	Segments int `yaml:"segments"`

	BallShape  ShapeKind `yaml:"ball_shape"`
	BallRadius float64   `yaml:"ball_radius"`
	BallCount  int       `yaml:"ball_count"`
	// side of the square around the boundary center new balls are spawned in
	SpawnSpread float64 `yaml:"spawn_spread"`
	// SpeedCap bounds the speed after a boundary bounce. Zero disables it.
	SpeedCap float64 `yaml:"speed_cap"`

	Raycasting    bool `yaml:"raycasting"`
	CollisionRays bool `yaml:"collision_rays"`
	// DropBalls turns primary clicks inside the canvas into spawns.
	DropBalls bool `yaml:"drop_balls"`

	// Seed drives spawn positions and random outlines. Zero seeds from the clock.
	Seed int64 `yaml:"seed"`

	Forces []ForceConfig `yaml:"forces"`
}

func DefaultOptions() Options {
	return Options{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		BoundaryShape: Square,
		BoundarySize:  DefaultBoundarySize,
		Segments:      DefaultSegments,
		BallShape:     Circle,
		BallRadius:    DefaultBallRadius,
		BallCount:     DefaultBallCount,
		SpawnSpread:   DefaultSpawnSpread,
		SpeedCap:      DefaultSpeedCap,
		Forces: []ForceConfig{
			{Name: "Gravity", Y: 0.1, Scaled: true, Enabled: true},
			{Name: "Anti-Gravity", Y: -0.1, Scaled: true},
			{Name: "Right Force", X: 0.1, Scaled: true},
			{Name: "Left Force", X: -0.1, Scaled: true},
		},
	}
}

func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: canvas %vx%v", ErrInvalidOptions, o.Width, o.Height)
	}
	if !o.BoundaryShape.Valid() {
		return fmt.Errorf("boundary: %w: %d", ErrUnknownShape, int(o.BoundaryShape))
	}
	if o.BoundarySize <= 0 {
		return fmt.Errorf("%w: boundary size %v", ErrInvalidOptions, o.BoundarySize)
	}
	if o.Segments < 0 {
		return fmt.Errorf("%w: segments %d", ErrInvalidOptions, o.Segments)
	}
	if !o.BallShape.Valid() {
		return fmt.Errorf("ball: %w: %d", ErrUnknownShape, int(o.BallShape))
	}
	if !o.BallShape.BallShape() {
		return fmt.Errorf("%w: %v", ErrUnsupportedBallShape, o.BallShape)
	}
	if o.BallRadius <= 0 {
		return fmt.Errorf("%w: ball radius %v", ErrInvalidOptions, o.BallRadius)
	}
	if o.BallCount < 0 {
		return fmt.Errorf("%w: ball count %d", ErrInvalidOptions, o.BallCount)
	}
	if o.SpawnSpread < 0 {
		return fmt.Errorf("%w: spawn spread %v", ErrInvalidOptions, o.SpawnSpread)
	}
	if o.SpeedCap < 0 {
		return fmt.Errorf("%w: speed cap %v", ErrInvalidOptions, o.SpeedCap)
	}
	for i, f := range o.Forces {
		if f.Name == "" {
			return fmt.Errorf("%w: force %d has no name", ErrInvalidOptions, i)
		}
	}
	return nil
}

// Extent is the canvas rectangle. Balls leaving it are culled.
func (o Options) Extent() BB {
	return NewBBForExtents(Vector{}, o.Width/2, o.Height/2)
}

// BuildForces turns the configured list into a Forces set. Later entries with
// a repeated name only update the enabled flag.
func (o Options) BuildForces() *Forces {
	forces := NewForces()
	for _, c := range o.Forces {
		forces.Add(c.Force())
	}
	return forces
}

// ParseOptions decodes YAML on top of DefaultOptions and validates the result.
func ParseOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("failed to parse options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read options file %s: %w", path, err)
	}
	opts, err := ParseOptions(data)
	if err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// Marshal encodes the options as YAML.
func (o Options) Marshal() ([]byte, error) {
	return yaml.Marshal(o)
}
