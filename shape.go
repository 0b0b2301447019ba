package ballpit

import (
	"errors"
	"fmt"
)

// ShapeKind selects the outline of a boundary or a ball.
type ShapeKind int

const (
	Square ShapeKind = iota
	Circle
	Triangle
	Random
	Draw
)

var (
	ErrUnknownShape         = errors.New("unknown shape")
	ErrUnsupportedBallShape = errors.New("shape cannot be used for a ball")
)

var shapeNames = [...]string{
	Square:   "Square",
	Circle:   "Circle",
	Triangle: "Triangle",
	Random:   "Random",
	Draw:     "Draw",
}

func (k ShapeKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
	return shapeNames[k]
}

func (k ShapeKind) Valid() bool {
	return k >= Square && k <= Draw
}

// BallShape reports whether balls may take this shape. Random and Draw only
// make sense for boundaries.
func (k ShapeKind) BallShape() bool {
	return k == Square || k == Circle || k == Triangle
}

func ParseShapeKind(name string) (ShapeKind, error) {
	for k, n := range shapeNames {
		if n == name {
			return ShapeKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

func (k ShapeKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShape, int(k))
	}
	return []byte(shapeNames[k]), nil
}

func (k *ShapeKind) UnmarshalText(text []byte) error {
	parsed, err := ParseShapeKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ShapeKinds lists every boundary shape in declaration order.
func ShapeKinds() []ShapeKind {
	return []ShapeKind{Square, Circle, Triangle, Random, Draw}
}

// BallShapeKinds lists the shapes a ball may take.
func BallShapeKinds() []ShapeKind {
	return []ShapeKind{Square, Circle, Triangle}
}
