package marsmission

import (
	"math"
	"testing"
)

func TestStumpffTaylorMatchesClosedForm(t *testing.T) {
	// Near z=0 the Taylor branch and the closed-form branches must agree
	// to several digits either side of the 1e-8 switchover.
	for _, z := range []float64{1e-7, 1e-6, -1e-7, -1e-6} {
		c := stumpffC(z)
		s := stumpffS(z)
		if math.IsNaN(c) || math.IsNaN(s) {
			t.Fatalf("stumpff(%g) produced NaN: C=%v S=%v", z, c, s)
		}
		cTaylor := 1./2. - z/24. + z*z/720. - z*z*z/40320.
		sTaylor := 1./6. - z/120. + z*z/5040. - z*z*z/362880.
		if math.Abs(c-cTaylor) > 1e-6 || math.Abs(s-sTaylor) > 1e-6 {
			t.Fatalf("stumpff(%g): closed form C=%v S=%v, Taylor C=%v S=%v", z, c, s, cTaylor, sTaylor)
		}
	}
}

func TestStumpffFiniteAndValuesAtZero(t *testing.T) {
	// C and S must be finite across [-40, 40] and equal 1/2 and 1/6 at z=0.
	for z := -40.0; z <= 40; z += 1.0 {
		c := stumpffC(z)
		s := stumpffS(z)
		if math.IsNaN(c) || math.IsNaN(s) || math.IsInf(c, 0) || math.IsInf(s, 0) {
			t.Fatalf("stumpff(%g) not finite: C=%v S=%v", z, c, s)
		}
	}
	if math.Abs(stumpffC(0)-0.5) > 1e-12 {
		t.Fatalf("C(0) = %v, want 0.5", stumpffC(0))
	}
	if math.Abs(stumpffS(0)-1./6.) > 1e-12 {
		t.Fatalf("S(0) = %v, want 1/6", stumpffS(0))
	}
}

func TestSolveKeplerEllipticRoundTrip(t *testing.T) {
	for _, m := range []float64{0, 0.1, 1, 2, 3, 6.2} {
		for _, e := range []float64{0, 0.01, 0.05, 0.0933941} {
			eAnom := solveKeplerElliptic(m, e)
			recovered := eAnom - e*math.Sin(eAnom)
			diff := math.Abs(math.Mod(recovered-m+math.Pi, 2*math.Pi) - math.Pi)
			if diff > 1e-10 && math.Abs(recovered-m) > 1e-10 {
				t.Fatalf("M=%v e=%v: E-e*sinE=%v, want %v", m, e, recovered, m)
			}
		}
	}
}

func TestVectorHelpers(t *testing.T) {
	i := []float64{1, 0, 0}
	j := []float64{0, 1, 0}
	k := []float64{0, 0, 1}
	if got := Cross(i, j); got[0] != k[0] || got[1] != k[1] || got[2] != k[2] {
		t.Fatalf("i x j = %v, want %v", got, k)
	}
	if got := Dot(i, i); got != 1 {
		t.Fatalf("i.i = %v, want 1", got)
	}
	if got := Norm([]float64{3, 4, 0}); got != 5 {
		t.Fatalf("norm = %v, want 5", got)
	}
	if got := Unit([]float64{0, 0, 0}); got[0] != 0 || got[1] != 0 || got[2] != 0 {
		t.Fatalf("unit of zero vector = %v, want zero", got)
	}
}

func TestWrapToPi(t *testing.T) {
	cases := map[float64]float64{
		0:             0,
		math.Pi:       math.Pi,
		2 * math.Pi:   0,
		-math.Pi / 2:  -math.Pi / 2,
		3 * math.Pi:   math.Pi,
	}
	for in, want := range cases {
		got := WrapToPi(in)
		if math.Abs(got-want) > 1e-9 && math.Abs(math.Abs(got)-math.Pi) > 1e-9 {
			t.Fatalf("WrapToPi(%v) = %v, want %v", in, got, want)
		}
	}
}
