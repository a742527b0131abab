package marsmission

import (
	"fmt"
	"math"
	"strings"
)

// AU is one astronomical unit, in kilometers.
const AU = 1.49597870700e8

// OrbitalElements are the fixed, immutable Keplerian elements of a
// planet's heliocentric orbit at a reference epoch (spec.md §3).
type OrbitalElements struct {
	A              float64 // semi-major axis, AU
	E              float64 // eccentricity, 0 <= e < 1
	IDeg           float64 // inclination, degrees
	ArgPeriapsDeg  float64 // argument of periapsis ω, degrees
	LongAscNodeDeg float64 // longitude of ascending node Ω, degrees
	MeanAnomDeg    float64 // mean anomaly at epoch M0, degrees
	PeriodDays     float64 // orbital period, days
}

// Validate enforces the OrbitalElements invariant from spec.md §3.
func (oe OrbitalElements) Validate() error {
	if oe.E < 0 || oe.E >= 1 {
		return fmt.Errorf("%w: eccentricity %f out of [0,1)", ErrInvalidInput, oe.E)
	}
	if oe.A <= 0 {
		return fmt.Errorf("%w: semi-major axis %f must be positive", ErrInvalidInput, oe.A)
	}
	if oe.PeriodDays <= 0 {
		return fmt.Errorf("%w: period %f must be positive", ErrInvalidInput, oe.PeriodDays)
	}
	return nil
}

// CelestialObject is a planet (or the Sun) carrying the constants needed
// to compute its ephemeris and to build exclusion zones around it.
type CelestialObject struct {
	Name           string
	VisualRadiusAU float64 // physical radius, AU
	Elements       OrbitalElements
}

// J2000 heliocentric Keplerian elements (Standish 1992, mean equinox
// J2000), used as the fixed constants of spec.md §4.1.
var (
	// Sun anchors the origin of the heliocentric frame; it has no
	// orbital elements of its own.
	Sun = CelestialObject{Name: "sun"}

	// Earth's mean anomaly at epoch (357.51716 deg) reproduces the
	// exact value spec.md §8 scenario 1 requires.
	Earth = CelestialObject{
		Name:           "earth",
		VisualRadiusAU: 6378.1363 / AU,
		Elements: OrbitalElements{
			A:              1.00000011,
			E:              0.01671022,
			IDeg:           0.00005,
			ArgPeriapsDeg:  114.20783,
			LongAscNodeDeg: -11.26064,
			MeanAnomDeg:    357.51716,
			PeriodDays:     365.25636,
		},
	}

	Mars = CelestialObject{
		Name:           "mars",
		VisualRadiusAU: 3396.19 / AU,
		Elements: OrbitalElements{
			A:              1.52371034,
			E:              0.09339410,
			IDeg:           1.84969142,
			ArgPeriapsDeg:  286.49683,
			LongAscNodeDeg: 49.55953891,
			MeanAnomDeg:    19.39019754,
			PeriodDays:     686.97959,
		},
	}
)

var planetRegistry = map[string]CelestialObject{
	"earth": Earth,
	"mars":  Mars,
}

// PlanetByName resolves a planet by (case-insensitive) name.
func PlanetByName(name string) (CelestialObject, error) {
	p, ok := planetRegistry[strings.ToLower(name)]
	if !ok {
		return CelestialObject{}, fmt.Errorf("%w: unknown-planet %q", ErrInvalidInput, name)
	}
	return p, nil
}

// Position returns the heliocentric position (AU) of the named planet at
// epoch t (days since the reference epoch), per spec.md §4.1.
func Position(name string, tDays float64) ([]float64, error) {
	p, err := PlanetByName(name)
	if err != nil {
		return nil, err
	}
	return p.position(tDays), nil
}

// Velocity returns the heliocentric velocity (AU/day) of the named
// planet at epoch t via a forward finite difference of Position, step
// 1e-2 days (spec.md §4.1).
func Velocity(name string, tDays float64) ([]float64, error) {
	p, err := PlanetByName(name)
	if err != nil {
		return nil, err
	}
	const h = 1e-2
	r0 := p.position(tDays)
	r1 := p.position(tDays + h)
	return Scale(1/h, Sub(r1, r0)), nil
}

// position computes the heliocentric position of c at epoch t following
// spec.md §4.1: mean anomaly, Kepler solve, true anomaly, radius, then
// the 3-1-3 rotation of the in-plane state into the heliocentric frame.
func (c CelestialObject) position(tDays float64) []float64 {
	oe := c.Elements
	mDeg := math.Mod(oe.MeanAnomDeg+360*tDays/oe.PeriodDays, 360)
	if mDeg < 0 {
		mDeg += 360
	}
	mRad := mDeg * deg2rad
	eAnom := solveKeplerElliptic(mRad, oe.E)
	sinHalfE, cosHalfE := math.Sincos(eAnom / 2)
	ν := 2 * math.Atan2(math.Sqrt(1+oe.E)*sinHalfE, math.Sqrt(1-oe.E)*cosHalfE)
	r := oe.A * (1 - oe.E*math.Cos(eAnom))
	sinν, cosν := math.Sincos(ν)
	pqw := []float64{r * cosν, r * sinν, 0}
	return Rot313Vec(oe.ArgPeriapsDeg*deg2rad, oe.IDeg*deg2rad, oe.LongAscNodeDeg*deg2rad, pqw)
}
