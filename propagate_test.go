package marsmission

import (
	"math"
	"testing"
)

func TestPropagateCircularOrbitFullPeriod(t *testing.T) {
	r0 := []float64{1, 0, 0}
	circularSpeed := math.Sqrt(muSun / Norm(r0))
	v0 := []float64{0, circularSpeed, 0}
	period := 2 * math.Pi * math.Sqrt(1/muSun)

	r, v := Propagate(r0, v0, period, muSun)
	if d := Norm(Sub(r, r0)); d > 1e-6 {
		t.Fatalf("full-period propagation drifted %v AU", d)
	}
	if d := Norm(Sub(v, v0)); d > 1e-6 {
		t.Fatalf("full-period velocity drifted %v AU/day", d)
	}
}

func TestPropagateQuarterPeriodCircular(t *testing.T) {
	r0 := []float64{1, 0, 0}
	circularSpeed := math.Sqrt(muSun / Norm(r0))
	v0 := []float64{0, circularSpeed, 0}
	period := 2 * math.Pi * math.Sqrt(1/muSun)

	r, _ := Propagate(r0, v0, period/4, muSun)
	want := []float64{0, 1, 0}
	if d := Norm(Sub(r, want)); d > 1e-6 {
		t.Fatalf("quarter-period position = %v, want ~%v (d=%v)", r, want, d)
	}
}

func TestPropagateZeroDeltaTIsIdentity(t *testing.T) {
	r0 := []float64{1, 0.1, 0}
	v0 := []float64{0, 0.017, 0}
	r, v := Propagate(r0, v0, 0, muSun)
	if Norm(Sub(r, r0)) > 1e-9 || Norm(Sub(v, v0)) > 1e-9 {
		t.Fatalf("propagate by 0 changed state: r=%v v=%v", r, v)
	}
}
