package marsmission

import (
	"math"
	"testing"
)

func TestLambertRoundTripMatchesPropagate(t *testing.T) {
	r1, err := Position("earth", 0)
	if err != nil {
		t.Fatalf("Position error: %v", err)
	}
	deltaT := 259.0
	r2, err := Position("mars", deltaT)
	if err != nil {
		t.Fatalf("Position error: %v", err)
	}

	v1, _, err := Lambert(r1, r2, deltaT, true, false, muSun)
	if err != nil {
		t.Fatalf("Lambert error: %v", err)
	}

	rGot, _ := Propagate(r1, v1, deltaT, muSun)
	if d := Norm(Sub(rGot, r2)); d > 1e-4 {
		t.Fatalf("propagated arrival off by %v AU, want <= 1e-4", d)
	}
}

func TestLambertDegenerateAntipodal(t *testing.T) {
	r1 := []float64{1, 0, 0}
	r2 := []float64{-1, 0, 0}
	_, _, err := Lambert(r1, r2, 100, true, false, muSun)
	if err == nil {
		t.Fatal("expected failure for antipodal (theta~pi) geometry")
	}
}
