// Package spectrum implements the renderer's RGB radiometric quantity and
// the CIE conversions the sensor needs at writeout. Spectral upsampling is
// out of scope (§1 Non-goals); RGB is the working representation
// throughout, following the teacher's core.Color (core/types.go) generalized
// from an 8-bit-adjacent display color into a radiometric triple with no
// alpha channel and no [0,1] clamping until final writeout.
package spectrum

import "rayimpact/rmath"

// RGB is a linear-light radiometric triple. Unlike core.Color it carries no
// alpha and is not assumed to be display-clamped.
type RGB struct {
	R, G, B rmath.Float
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{1, 1, 1}
)

func New(r, g, b rmath.Float) RGB { return RGB{r, g, b} }

func Constant(v rmath.Float) RGB { return RGB{v, v, v} }

func (s RGB) Add(o RGB) RGB { return RGB{s.R + o.R, s.G + o.G, s.B + o.B} }
func (s RGB) Sub(o RGB) RGB { return RGB{s.R - o.R, s.G - o.G, s.B - o.B} }
func (s RGB) Mul(o RGB) RGB { return RGB{s.R * o.R, s.G * o.G, s.B * o.B} }
func (s RGB) Div(o RGB) RGB {
	return RGB{divSafe(s.R, o.R), divSafe(s.G, o.G), divSafe(s.B, o.B)}
}

func divSafe(a, b rmath.Float) rmath.Float {
	if b == 0 {
		return 0
	}
	return a / b
}

func (s RGB) Scale(k rmath.Float) RGB { return RGB{s.R * k, s.G * k, s.B * k} }
func (s RGB) Negate() RGB             { return RGB{-s.R, -s.G, -s.B} }

func (s RGB) IsBlack() bool { return s.R == 0 && s.G == 0 && s.B == 0 }

func (s RGB) HasNaN() bool {
	return rmath.IsNaN(s.R) || rmath.IsNaN(s.G) || rmath.IsNaN(s.B)
}

// ClampZero clamps negative components to zero, the only clamp applied
// before writeout besides the final non-negative RGB clamp (§4.H).
func (s RGB) ClampZero() RGB {
	return RGB{rmath.Max(s.R, 0), rmath.Max(s.G, 0), rmath.Max(s.B, 0)}
}

func (s RGB) MaxComponent() rmath.Float {
	return rmath.Max(rmath.Max(s.R, s.G), s.B)
}

func (s RGB) Average() rmath.Float { return (s.R + s.G + s.B) / 3 }

func (s RGB) Sqrt() RGB { return RGB{rmath.Sqrt(s.R), rmath.Sqrt(s.G), rmath.Sqrt(s.B)} }

func (s RGB) Pow(e rmath.Float) RGB {
	return RGB{rmath.Pow(s.R, e), rmath.Pow(s.G, e), rmath.Pow(s.B, e)}
}

func Lerp(t rmath.Float, a, b RGB) RGB {
	return a.Scale(1 - t).Add(b.Scale(t))
}

// XYZ is the CIE 1931 tristimulus representation used as the sensor's
// accumulation space (§4.H); RGB is converted to/from it at region-merge
// and writeout time.
type XYZ struct {
	X, Y, Z rmath.Float
}

func (x XYZ) Add(o XYZ) XYZ { return XYZ{x.X + o.X, x.Y + o.Y, x.Z + o.Z} }
func (x XYZ) Scale(k rmath.Float) XYZ {
	return XYZ{x.X * k, x.Y * k, x.Z * k}
}

// ToXYZ uses the canonical linear sRGB/D65 primaries matrix; full spectral
// matching against CIE color-matching tables is out of scope (§1 Non-goals).
func (s RGB) ToXYZ() XYZ {
	return XYZ{
		X: 0.4124564*s.R + 0.3575761*s.G + 0.1804375*s.B,
		Y: 0.2126729*s.R + 0.7151522*s.G + 0.0721750*s.B,
		Z: 0.0193339*s.R + 0.1191920*s.G + 0.9503041*s.B,
	}
}

func FromXYZ(x XYZ) RGB {
	return RGB{
		R: 3.2404542*x.X - 1.5371385*x.Y - 0.4985314*x.Z,
		G: -0.9692660*x.X + 1.8760108*x.Y + 0.0415560*x.Z,
		B: 0.0556434*x.X - 0.2040259*x.Y + 1.0572252*x.Z,
	}
}
