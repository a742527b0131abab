package marsmission

import (
	"fmt"
	"math"
)

// lambertMaxBisect bounds the bisection loop of §4.3 step 6.
const lambertMaxBisect = 80

// lambertTimeε is the time-of-flight convergence tolerance (days), §4.3 step 6.
const lambertTimeε = 1e-6

// lambertBracketBail bounds the doubling expansion of §4.3 step 5.
const lambertBracketBail = 1000.0

// Lambert solves the universal-variable Lambert problem (spec.md §4.3):
// given the two position vectors r1, r2 (AU) and a time of flight
// deltaT (days), it returns the departure and arrival velocity vectors
// (AU/day) of the conic joining them under gravitational parameter mu
// (AU^3/day^2). prograde selects the direction of motion used to pick
// the transfer angle; longWay replaces that angle with its complement
// (2π minus it).
func Lambert(r1, r2 []float64, deltaT float64, prograde, longWay bool, mu float64) (v1, v2 []float64, err error) {
	r1n := Norm(r1)
	r2n := Norm(r2)
	cosTheta0 := Dot(r1, r2) / (r1n * r2n)
	if cosTheta0 > 1 {
		cosTheta0 = 1
	} else if cosTheta0 < -1 {
		cosTheta0 = -1
	}
	theta0 := math.Acos(cosTheta0)

	crossZ := Cross(r1, r2)[2]
	var shortWay float64
	if (prograde && crossZ < 0) || (!prograde && crossZ >= 0) {
		shortWay = 2*math.Pi - theta0
	} else {
		shortWay = theta0
	}
	theta := shortWay
	if longWay {
		theta = 2*math.Pi - shortWay
	}

	sinTheta, cosTheta := math.Sincos(theta)
	sgn := 1.0
	if sinTheta < 0 {
		sgn = -1.0
	}
	A := sgn * math.Sqrt(r1n*r2n*(1+cosTheta))
	if math.Abs(A) < 1e-15 || (1+cosTheta) < 1e-12 {
		return nil, nil, fmt.Errorf("%w: lambert geometry degenerate (A~0 or theta~pi)", ErrSolverFailure)
	}

	// y(z) and T(z) per §4.3 step 4; ok is false when the candidate z
	// yields C(z)<=0 or y(z)<0, i.e. an invalid candidate.
	eval := func(z float64) (y, tof float64, ok bool) {
		c := stumpffC(z)
		if c <= 0 {
			return 0, 0, false
		}
		s := stumpffS(z)
		y = r1n + r2n + A*(z*s-1)/math.Sqrt(c)
		if y < 0 {
			return y, 0, false
		}
		chi := math.Sqrt(y / c)
		tof = (math.Pow(chi, 3)*s + A*math.Sqrt(y)) / math.Sqrt(mu)
		return y, tof, true
	}

	_, t0, ok0 := eval(0)
	if !ok0 {
		return nil, nil, fmt.Errorf("%w: lambert z=0 candidate invalid", ErrSolverFailure)
	}

	var zLow, zHigh float64
	if t0 < deltaT {
		zLow, zHigh = 0, 1
		for {
			_, tof, ok := eval(zHigh)
			if ok && tof >= deltaT {
				break
			}
			zHigh *= 2
			if zHigh > lambertBracketBail {
				return nil, nil, fmt.Errorf("%w: lambert high-z bracket did not close", ErrSolverFailure)
			}
		}
	} else {
		zHigh, zLow = 0, -1
		for {
			_, tof, ok := eval(zLow)
			if ok && tof <= deltaT {
				break
			}
			zLow *= 2
			if zLow < -lambertBracketBail {
				return nil, nil, fmt.Errorf("%w: lambert low-z bracket did not close", ErrSolverFailure)
			}
		}
	}

	var y, tof float64
	converged := false
	for iter := 0; iter < lambertMaxBisect; iter++ {
		z := (zLow + zHigh) / 2
		yz, tz, ok := eval(z)
		if !ok {
			// Invalid candidate: nudge towards the bracket half known
			// to contain valid (C>0, y>=0) values.
			zLow = z
			continue
		}
		y, tof = yz, tz
		if math.Abs(tof-deltaT) < lambertTimeε {
			converged = true
			break
		}
		if tof < deltaT {
			zLow = z
		} else {
			zHigh = z
		}
		if zHigh-zLow < 1e-14 {
			converged = math.Abs(tof-deltaT) < lambertTimeε
			break
		}
	}
	if !converged {
		return nil, nil, fmt.Errorf("%w: lambert bisection did not converge", ErrSolverFailure)
	}

	f := 1 - y/r1n
	g := A * math.Sqrt(y/mu)
	gDot := 1 - y/r2n
	if math.Abs(g) < 1e-12 {
		return nil, nil, fmt.Errorf("%w: lambert degenerate g~0", ErrSolverFailure)
	}
	v1 = Scale(1/g, Sub(r2, Scale(f, r1)))
	v2 = Scale(1/g, Sub(Scale(gDot, r2), r1))
	return v1, v2, nil
}
