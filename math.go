package marsmission

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	deg2rad = math.Pi / 180
	rad2deg = 1 / deg2rad

	// muSun is the Sun's heliocentric gravitational parameter in AU^3/day^2.
	muSun = 2.9591220828559115e-4
)

// MuSun returns the Sun's heliocentric gravitational parameter, AU^3/day^2.
func MuSun() float64 { return muSun }

// Norm returns the Euclidean norm of a 3-vector.
func Norm(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Unit returns the unit vector of a given vector, or the zero vector if a
// is (numerically) the zero vector.
func Unit(a []float64) (b []float64) {
	n := Norm(a)
	if floats.EqualWithinAbs(n, 0, 1e-12) {
		return []float64{0, 0, 0}
	}
	b = make([]float64, len(a))
	for i, val := range a {
		b[i] = val / n
	}
	return
}

// Sign returns the sign of v, with Sign(0) = 1.
func Sign(v float64) float64 {
	if floats.EqualWithinAbs(v, 0, 1e-12) {
		return 1
	}
	return v / math.Abs(v)
}

// Dot performs the inner product of two equal-length vectors.
func Dot(a, b []float64) float64 {
	rtn := 0.
	for i := 0; i < len(a); i++ {
		rtn += a[i] * b[i]
	}
	return rtn
}

// Cross performs the cross product a x b of two 3-vectors.
func Cross(a, b []float64) []float64 {
	return []float64{a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0]}
}

// Sub returns a-b for two equal-length vectors.
func Sub(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

// Add returns a+b for two equal-length vectors.
func Add(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// Scale returns s*a.
func Scale(s float64, a []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = s * a[i]
	}
	return out
}

// Deg2rad converts degrees to radians, enforcing a [0, 2π) result.
func Deg2rad(a float64) float64 {
	r := math.Mod(a*deg2rad, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	return r
}

// Rad2deg converts radians to degrees, enforcing a [0, 360) result.
func Rad2deg(a float64) float64 {
	r := math.Mod(a/deg2rad, 360)
	if r < 0 {
		r += 360
	}
	return r
}

// WrapToPi wraps an angle (radians) to (-π, π].
func WrapToPi(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// stumpffC evaluates the Stumpff function C(z).
func stumpffC(z float64) float64 {
	switch {
	case z > 1e-8:
		sz := math.Sqrt(z)
		return (1 - math.Cos(sz)) / z
	case z < -1e-8:
		sz := math.Sqrt(-z)
		return (1 - math.Cosh(sz)) / z
	default:
		// 4-term Taylor series around z=0.
		return 1./2. - z/24. + z*z/720. - z*z*z/40320.
	}
}

// stumpffS evaluates the Stumpff function S(z).
func stumpffS(z float64) float64 {
	switch {
	case z > 1e-8:
		sz := math.Sqrt(z)
		return (sz - math.Sin(sz)) / math.Pow(sz, 3)
	case z < -1e-8:
		sz := math.Sqrt(-z)
		return (math.Sinh(sz) - sz) / math.Pow(sz, 3)
	default:
		return 1./6. - z/120. + z*z/5040. - z*z*z/362880.
	}
}

// solveKeplerElliptic solves Kepler's equation M = E - e*sin(E) for the
// eccentric anomaly E (radians), given the mean anomaly M (radians) and
// eccentricity e (0 <= e < 1). It uses Newton iteration starting at E=M,
// tolerance 1e-10 rad, at most 100 iterations; guaranteed to converge
// because callers only ever pass e < 0.1.
func solveKeplerElliptic(m, e float64) float64 {
	eAnom := m
	for i := 0; i < 100; i++ {
		f := eAnom - e*math.Sin(eAnom) - m
		fPrime := 1 - e*math.Cos(eAnom)
		delta := f / fPrime
		eAnom -= delta
		if math.Abs(delta) < 1e-10 {
			break
		}
	}
	return eAnom
}
