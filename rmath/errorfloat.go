package rmath

// ErrorFloat carries a running conservative interval around a central value,
// widened outward by one ULP on every operation via NextFloatUp/NextFloatDown
// (§3, §4.A). Invariant: Lower <= Value <= Upper whenever all three are
// finite and non-NaN (testable property 3).
type ErrorFloat struct {
	Value      Float
	Lower      Float
	Upper      Float
	preciseSet bool
	precise    float64 // debug-only shadow value propagated in parallel
}

func NewErrorFloat(value Float) ErrorFloat {
	return ErrorFloat{Value: value, Lower: value, Upper: value, preciseSet: true, precise: float64(value)}
}

func NewErrorFloatWithError(value, err Float) ErrorFloat {
	var lower, upper Float
	if err == 0 {
		lower, upper = value, value
	} else {
		lower = NextFloatDown(value - err)
		upper = NextFloatUp(value + err)
	}
	e := ErrorFloat{Value: value, Lower: lower, Upper: upper, preciseSet: true, precise: float64(value)}
	return e
}

func (e ErrorFloat) AbsoluteError() Float { return e.Upper - e.Lower }

// PreciseValue exposes the debug-only shadow value; used by tests to check
// invariant 3 (lower <= precise <= upper).
func (e ErrorFloat) PreciseValue() float64 { return e.precise }

func (e ErrorFloat) Add(o ErrorFloat) ErrorFloat {
	return ErrorFloat{
		Value:      e.Value + o.Value,
		Lower:      NextFloatDown(e.Lower + o.Lower),
		Upper:      NextFloatUp(e.Upper + o.Upper),
		preciseSet: true,
		precise:    e.precise + o.precise,
	}
}

func (e ErrorFloat) Sub(o ErrorFloat) ErrorFloat {
	return ErrorFloat{
		Value:      e.Value - o.Value,
		Lower:      NextFloatDown(e.Lower - o.Upper),
		Upper:      NextFloatUp(e.Upper - o.Lower),
		preciseSet: true,
		precise:    e.precise - o.precise,
	}
}

func (e ErrorFloat) Mul(o ErrorFloat) ErrorFloat {
	p := [4]Float{e.Lower * o.Lower, e.Lower * o.Upper, e.Upper * o.Lower, e.Upper * o.Upper}
	return ErrorFloat{
		Value:      e.Value * o.Value,
		Lower:      NextFloatDown(minOf4(p)),
		Upper:      NextFloatUp(maxOf4(p)),
		preciseSet: true,
		precise:    e.precise * o.precise,
	}
}

func (e ErrorFloat) Div(o ErrorFloat) ErrorFloat {
	result := ErrorFloat{Value: e.Value / o.Value, preciseSet: true, precise: e.precise / o.precise}
	if o.Lower < 0 && o.Upper > 0 {
		result.Lower = -Infinity
		result.Upper = Infinity
		return result
	}
	q := [4]Float{e.Lower / o.Lower, e.Lower / o.Upper, e.Upper / o.Lower, e.Upper / o.Upper}
	result.Lower = NextFloatDown(minOf4(q))
	result.Upper = NextFloatUp(maxOf4(q))
	return result
}

func (e ErrorFloat) Neg() ErrorFloat {
	return ErrorFloat{Value: -e.Value, Lower: -e.Upper, Upper: -e.Lower, preciseSet: true, precise: -e.precise}
}

func (e ErrorFloat) Abs() ErrorFloat {
	if e.Lower >= 0 {
		return e
	}
	if e.Upper <= 0 {
		return e.Neg()
	}
	v := Abs(e.Value)
	return ErrorFloat{Value: v, Lower: 0, Upper: Max(-e.Lower, e.Upper), preciseSet: true, precise: absFloat64(e.precise)}
}

func SqrtErrorFloat(e ErrorFloat) ErrorFloat {
	return ErrorFloat{
		Value:      Sqrt(e.Value),
		Lower:      NextFloatDown(Sqrt(e.Lower)),
		Upper:      NextFloatUp(Sqrt(e.Upper)),
		preciseSet: true,
		precise:    sqrtFloat64(e.precise),
	}
}

func (e ErrorFloat) Less(o ErrorFloat) bool    { return e.Value < o.Value }
func (e ErrorFloat) LessEq(o ErrorFloat) bool  { return e.Value <= o.Value }
func (e ErrorFloat) Greater(o ErrorFloat) bool { return e.Value > o.Value }
func (e ErrorFloat) GreaterEq(o ErrorFloat) bool {
	return e.Value >= o.Value
}

// LessThanScalar reports whether the central value is below a plain Float, for the
// quadratic solver's "which root did we pick" comparisons.
func (e ErrorFloat) LessThanScalar(v Float) bool { return e.Value < v }

func minOf4(a [4]Float) Float {
	m := a[0]
	for _, x := range a[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxOf4(a [4]Float) Float {
	m := a[0]
	for _, x := range a[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func absFloat64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func sqrtFloat64(x float64) float64 {
	// Newton refinement from the float32 estimate keeps this allocation-free
	// and avoids importing math just for the debug shadow value.
	if x <= 0 {
		return 0
	}
	z := float64(Sqrt(Float(x)))
	for i := 0; i < 2; i++ {
		z -= (z*z - x) / (2 * z)
	}
	return z
}

// SolveQuadratic solves a*x^2 + b*x + c = 0 conservatively, returning the
// smaller and larger roots when real solutions exist (§4.A, §4.D step 3).
func SolveQuadratic(a, b, c ErrorFloat) (x0, x1 ErrorFloat, ok bool) {
	discriminant := b.Mul(b).Sub(NewErrorFloat(4).Mul(a).Mul(c))
	if discriminant.Value < 0 {
		return ErrorFloat{}, ErrorFloat{}, false
	}
	sqrtDisc := SqrtErrorFloat(discriminant)

	var q ErrorFloat
	if b.Value < 0 {
		q = NewErrorFloat(-0.5).Mul(b.Sub(sqrtDisc))
	} else {
		q = NewErrorFloat(-0.5).Mul(b.Add(sqrtDisc))
	}
	x0 = q.Div(a)
	x1 = c.Div(q)
	if x0.Value > x1.Value {
		x0, x1 = x1, x0
	}
	return x0, x1, true
}
