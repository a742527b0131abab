package marsmission

import (
	"math"
	"testing"
)

func TestPeriodFitDividesWaitExactly(t *testing.T) {
	pf := periodFit(10, 1.0)
	n := 10 / pf
	if math.Abs(n-math.Round(n)) > 1e-9 {
		t.Fatalf("periodFit(10,1.0)=%v does not divide 10 into an integer count: n=%v", pf, n)
	}
}

func TestParkingPositionStaysNearPlanet(t *testing.T) {
	cfg := DefaultEngineConfig()
	radius := cfg.ParkingRadiusAU["earth"]
	period := cfg.ParkingPeriodDays["earth"]
	planetPos, err := Position("earth", 10)
	if err != nil {
		t.Fatalf("Position error: %v", err)
	}
	scPos, err := parkingPosition("earth", 0, 5, radius, period, 10)
	if err != nil {
		t.Fatalf("parkingPosition error: %v", err)
	}
	d := Norm(Sub(scPos, planetPos))
	if math.Abs(d-radius) > 1e-9 {
		t.Fatalf("spacecraft-planet distance = %v, want ~%v", d, radius)
	}
}

func TestOuterParkingPointAtPhiZero(t *testing.T) {
	radius := 2.5e-4
	tAnchor := 42.0
	pos, err := outerParkingPoint("earth", tAnchor, radius)
	if err != nil {
		t.Fatalf("outerParkingPoint error: %v", err)
	}
	planetPos, _ := Position("earth", tAnchor)
	d := Norm(Sub(pos, planetPos))
	if math.Abs(d-radius) > 1e-9 {
		t.Fatalf("outer parking point distance = %v, want %v", d, radius)
	}
}
