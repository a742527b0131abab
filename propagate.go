package marsmission

import "math"

// propagateMaxIter bounds the Newton iteration of §4.4.
const propagateMaxIter = 60

// propagateε is the convergence tolerance on f(χ), §4.4.
const propagateε = 1e-9

// Propagate advances a two-body state (r0, v0) by deltaT days under
// gravitational parameter mu, using the universal-variable Kepler
// propagator of spec.md §4.4. If the Newton iteration diverges to a
// non-finite χ, the input state is returned unchanged (used only as a
// fallback signal, never silently producing NaNs).
func Propagate(r0, v0 []float64, deltaT, mu float64) (r, v []float64) {
	r0n := Norm(r0)
	v0n := Norm(v0)
	sqrtMu := math.Sqrt(mu)
	alpha := 2/r0n - v0n*v0n/mu

	sign := 1.0
	if deltaT < 0 {
		sign = -1.0
	}
	chi := sign * sqrtMu * math.Abs(deltaT) / r0n
	rv0 := Dot(r0, v0)

	converged := false
	for iter := 0; iter < propagateMaxIter; iter++ {
		z := alpha * chi * chi
		c := stumpffC(z)
		s := stumpffS(z)

		f := (math.Pow(chi, 3)*s+(rv0/sqrtMu)*chi*chi*c+r0n*chi*(1-z*s))/sqrtMu - deltaT
		fPrime := (chi*chi*c + (rv0/sqrtMu)*chi*(1-z*s) + r0n*(1-z*c)) / sqrtMu

		if fPrime == 0 || math.IsNaN(fPrime) || math.IsInf(fPrime, 0) {
			break
		}
		delta := f / fPrime
		chi -= delta
		if math.IsNaN(chi) || math.IsInf(chi, 0) {
			break
		}
		if math.Abs(f) < propagateε {
			converged = true
			break
		}
	}
	if !converged || math.IsNaN(chi) || math.IsInf(chi, 0) {
		return r0, v0
	}

	z := alpha * chi * chi
	c := stumpffC(z)
	s := stumpffS(z)

	fLag := 1 - (chi*chi/r0n)*c
	gLag := deltaT - (math.Pow(chi, 3)/sqrtMu)*s

	r = Add(Scale(fLag, r0), Scale(gLag, v0))
	rn := Norm(r)
	if rn == 0 {
		return r0, v0
	}

	gDot := 1 - (chi*chi/rn)*c
	fDot := (sqrtMu / (rn * r0n)) * chi * (z*s - 1)

	v = Add(Scale(fDot, r0), Scale(gDot, v0))
	return r, v
}
