package ballpit

import (
	"fmt"
	"math"
)

type Vector struct {
	X, Y float64
}

func (v Vector) String() string {
	return fmt.Sprintf("%f,%f", v.X, v.Y)
}

func (v Vector) Equal(other Vector) bool {
	return v.X == other.X && v.Y == other.Y
}

func (v Vector) Add(other Vector) Vector {
	return Vector{v.X + other.X, v.Y + other.Y}
}

func (v Vector) Sub(other Vector) Vector {
	return Vector{v.X - other.X, v.Y - other.Y}
}

func (v Vector) Neg() Vector {
	return Vector{-v.X, -v.Y}
}

func (v Vector) Mult(s float64) Vector {
	return Vector{v.X * s, v.Y * s}
}

// Div divides both components by s. Callers guarantee s != 0.
func (v Vector) Div(s float64) Vector {
	return Vector{v.X / s, v.Y / s}
}

func (v Vector) Dot(other Vector) float64 {
	return v.X*other.X + v.Y*other.Y
}

func (v Vector) Perp() Vector {
	return Vector{-v.Y, v.X}
}

/// Returns the unit length vector for the given angle (in radians).
func ForAngle(a float64) Vector {
	return Vector{math.Cos(a), math.Sin(a)}
}

func (v Vector) LengthSq() float64 {
	return v.Dot(v)
}

func (v Vector) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vector) Lerp(other Vector, t float64) Vector {
	return v.Mult(1.0 - t).Add(other.Mult(t))
}

// Normalize returns the unit vector in the direction of v. The zero vector
// stays zero.
func (v Vector) Normalize() Vector {
	length := v.Length()
	if length == 0 {
		return Vector{}
	}
	return v.Mult(1.0 / length)
}

// Reflect mirrors v about the unit normal n: v - 2(v·n)n.
func (v Vector) Reflect(n Vector) Vector {
	return v.Sub(n.Mult(2 * v.Dot(n)))
}

func Clamp(f, min, max float64) float64 {
	return math.Min(math.Max(f, min), max)
}

func Clamp01(f float64) float64 {
	return math.Max(0, math.Min(f, 1))
}

// Clamp limits the length of v, keeping its direction.
func (v Vector) Clamp(length float64) Vector {
	if v.Dot(v) > length*length {
		return v.Normalize().Mult(length)
	}
	return Vector{v.X, v.Y}
}

func (v Vector) Distance(other Vector) float64 {
	return v.Sub(other).Length()
}

func (v Vector) DistanceSq(other Vector) float64 {
	return v.Sub(other).LengthSq()
}

func (v Vector) Near(other Vector, d float64) bool {
	return v.DistanceSq(other) < d*d
}

// ClosestPointOnSegment projects p onto segment ab, clamping the projection to
// the segment. A zero length segment collapses to a.
func (p Vector) ClosestPointOnSegment(a, b Vector) Vector {
	delta := b.Sub(a)
	lengthSq := delta.LengthSq()
	if lengthSq == 0 {
		return a
	}
	t := Clamp01(p.Sub(a).Dot(delta) / lengthSq)
	return a.Add(delta.Mult(t))
}
