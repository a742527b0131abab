package marsmission

import "math"

// parkingState is the xy-basis used to place the spacecraft while
// parked at a planet (spec.md §4.7).
type parkingState struct {
	rHat, tHat []float64 // planetocentric radial/tangential unit vectors, xy-plane
}

// newParkingState builds the planetocentric basis for a stay at the
// given planet at anchor time tAnchor: r_hat is the xy-projected
// radial direction, t_hat is r_hat rotated 90 degrees aligned with the
// planet's prograde velocity.
func newParkingState(planet string, tAnchor float64) (parkingState, error) {
	pos, err := Position(planet, tAnchor)
	if err != nil {
		return parkingState{}, err
	}
	vel, err := Velocity(planet, tAnchor)
	if err != nil {
		return parkingState{}, err
	}
	rHat := Unit([]float64{pos[0], pos[1], 0})
	// 90deg rotation of r_hat in the xy-plane, oriented by the sign of
	// the planet's own angular momentum so t_hat tracks prograde motion.
	perp := []float64{-rHat[1], rHat[0], 0}
	angMomZ := pos[0]*vel[1] - pos[1]*vel[0]
	if angMomZ < 0 {
		perp = Scale(-1, perp)
	}
	return parkingState{rHat: rHat, tHat: perp}, nil
}

// periodFit picks the parking period that divides waitDuration into an
// integer number of revolutions (spec.md §4.7), so the orbit hands off
// smoothly at phi=0 at both ends of the stay.
func periodFit(waitDuration, nominalPeriod float64) float64 {
	if waitDuration <= 0 || nominalPeriod <= 0 {
		return nominalPeriod
	}
	n := math.Round(waitDuration / nominalPeriod)
	if n < 1 {
		n = 1
	}
	return waitDuration / n
}

// parkingPosition returns the spacecraft's heliocentric position while
// parked at planet during [tAnchor, tAnchor+waitDuration], evaluated at
// time t, per spec.md §4.7.
func parkingPosition(planet string, tAnchor, waitDuration, radius, nominalPeriod, t float64) ([]float64, error) {
	ps, err := newParkingState(planet, tAnchor)
	if err != nil {
		return nil, err
	}
	pos, err := Position(planet, t)
	if err != nil {
		return nil, err
	}
	pf := periodFit(waitDuration, nominalPeriod)
	phi := 2 * math.Pi * (t - tAnchor) / pf
	sinPhi, cosPhi := math.Sincos(phi)
	offset := Add(Scale(radius*cosPhi, ps.rHat), Scale(radius*sinPhi, ps.tHat))
	out := Add(pos, offset)
	out[2] = pos[2]
	return out, nil
}

// outerParkingPoint is the phi=0 handoff position used by the
// transfer-leg builder (§4.5): the planet position shifted radially
// outward by the planet's parking radius.
func outerParkingPoint(planet string, tAnchor, radius float64) ([]float64, error) {
	ps, err := newParkingState(planet, tAnchor)
	if err != nil {
		return nil, err
	}
	pos, err := Position(planet, tAnchor)
	if err != nil {
		return nil, err
	}
	return Add(pos, Scale(radius, ps.rHat)), nil
}
