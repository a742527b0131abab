package marsmission

import (
	"math"
	"testing"
)

func TestEarthPositionAtEpoch(t *testing.T) {
	// spec.md §8 scenario 1: |position("earth",0)| must equal
	// a(1-e*cosE0) for the E0 solving E-e*sinE = radians(357.51716).
	mRad := Earth.Elements.MeanAnomDeg * deg2rad
	e0 := solveKeplerElliptic(mRad, Earth.Elements.E)
	wantR := Earth.Elements.A * (1 - Earth.Elements.E*math.Cos(e0))

	pos, err := Position("earth", 0)
	if err != nil {
		t.Fatalf("Position(earth,0) error: %v", err)
	}
	if got := Norm(pos); math.Abs(got-wantR) > 1e-9 {
		t.Fatalf("|position(earth,0)| = %v, want %v", got, wantR)
	}
}

func TestPositionMagnitudeBounds(t *testing.T) {
	for _, name := range []string{"earth", "mars"} {
		p, _ := PlanetByName(name)
		rMin := p.Elements.A * (1 - p.Elements.E)
		rMax := p.Elements.A * (1 + p.Elements.E)
		for tDays := 0.0; tDays < 2*p.Elements.PeriodDays; tDays += p.Elements.PeriodDays / 37 {
			pos, err := Position(name, tDays)
			if err != nil {
				t.Fatalf("Position(%s,%v) error: %v", name, tDays, err)
			}
			r := Norm(pos)
			if r < rMin-1e-6 || r > rMax+1e-6 {
				t.Fatalf("Position(%s,%v): |r|=%v outside [%v,%v]", name, tDays, r, rMin, rMax)
			}
		}
	}
}

func TestPlanetByNameUnknown(t *testing.T) {
	if _, err := PlanetByName("pluto"); err == nil {
		t.Fatal("expected error for unknown planet")
	}
}

func TestVelocityFiniteDifference(t *testing.T) {
	v, err := Velocity("earth", 0)
	if err != nil {
		t.Fatalf("Velocity error: %v", err)
	}
	if Norm(v) <= 0 {
		t.Fatalf("earth velocity magnitude = %v, want > 0", Norm(v))
	}
}
