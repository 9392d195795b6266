// Package rmath implements the numeric core of the renderer: the
// configurable scalar type, generic vector/point/normal types, the
// conservative-rounding ErrorFloat, bounding boxes, rays and transforms.
package rmath

import (
	"math"

	"github.com/chewxy/math32"
)

// Float is the renderer's working scalar precision. Single precision by
// default; switch to float64 and rebuild to render in double precision.
type Float = float32

// Epsilon is the machine epsilon for Float.
const Epsilon = 1.1920929e-7

const (
	Infinity     = Float(math.MaxFloat32)
	Pi           = Float(math.Pi)
	TwoPi        = Float(2 * math.Pi)
	PiOverTwo    = Float(math.Pi / 2)
	ThreePiOver2 = Float(3 * math.Pi / 2)
	InvPi        = Float(1 / math.Pi)
)

// GammaBound returns gamma(n) = n*eps / (1 - n*eps), the conservative
// rounding-error bound used throughout the intersection routines (§4.A, §9).
func GammaBound(n int) Float {
	ne := Float(n) * Epsilon
	return ne / (1 - ne)
}

func Abs(x Float) Float {
	if x < 0 {
		return -x
	}
	return x
}

func Sqrt(x Float) Float { return math32.Sqrt(x) }
func Sin(x Float) Float  { return math32.Sin(x) }
func Cos(x Float) Float  { return math32.Cos(x) }
func Tan(x Float) Float  { return math32.Tan(x) }
func Acos(x Float) Float { return math32.Acos(x) }
func Asin(x Float) Float { return math32.Asin(x) }
func Atan2(y, x Float) Float {
	return math32.Atan2(y, x)
}
func Exp(x Float) Float { return math32.Exp(x) }
func Log(x Float) Float { return math32.Log(x) }
func Pow(x, y Float) Float {
	return math32.Pow(x, y)
}
func IsNaN(x Float) bool { return math32.IsNaN(x) }
func IsInf(x Float) bool { return math32.IsInf(x, 0) }
func Ceil(x Float) Float  { return math32.Ceil(x) }
func Floor(x Float) Float { return math32.Floor(x) }

func Min(a, b Float) Float {
	if a < b {
		return a
	}
	return b
}

func Max(a, b Float) Float {
	if a > b {
		return a
	}
	return b
}

func Clamp(x, lo, hi Float) Float {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func Lerp(t, a, b Float) Float {
	return a + t*(b-a)
}

// bitsFloat32 / floatFromBits32 expose the IEEE-754 bit pattern so predecessor
// and successor can walk the representable-float lattice directly, as
// required by ErrorFloat's outward rounding (§4.A).
func bitsFloat32(f float32) uint32 { return math.Float32bits(f) }
func floatFromBits32(b uint32) float32 {
	return math.Float32frombits(b)
}

// NextFloatUp returns the next representable Float toward +Infinity.
func NextFloatUp(v Float) Float {
	if IsInf(v) && v > 0 {
		return v
	}
	if v == 0 {
		v = 0 // collapse -0 to +0
	}
	bits := bitsFloat32(v)
	if v >= 0 {
		bits++
	} else {
		bits--
	}
	return floatFromBits32(bits)
}

// NextFloatDown returns the next representable Float toward -Infinity.
func NextFloatDown(v Float) Float {
	if IsInf(v) && v < 0 {
		return v
	}
	if v == 0 {
		v = Float(math.Copysign(0, -1)) // collapse +0 to -0
	}
	bits := bitsFloat32(v)
	if v > 0 {
		bits--
	} else {
		bits++
	}
	return floatFromBits32(bits)
}
