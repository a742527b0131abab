package marsmission

import "math"

// exclusionRadius is the minimum permitted distance from a planet's
// center for the spacecraft (spec.md glossary: exclusion radius).
func exclusionRadius(cfg EngineConfig, planet CelestialObject) float64 {
	return planet.VisualRadiusAU + cfg.SafetyMarginAU + cfg.SpacecraftCollisionAU
}

// CheckClearance samples leg at uniform steps of cfg.ClearanceStepDays
// and rejects any sample violating either planet's exclusion radius
// (spec.md §4.6). It returns the minimum margin observed (distance
// minus exclusion radius, negative on violation) and whether the leg
// passes.
func CheckClearance(cfg EngineConfig, leg TransferLeg) (minMargin float64, ok bool, err error) {
	margin, ok, err := scanClearance(cfg, leg, cfg.ClearanceStepDays)
	if err != nil {
		return 0, false, err
	}
	if ok && margin >= 0 && margin < cfg.ClearanceRefineAU {
		return scanClearance(cfg, leg, cfg.ClearanceStepDays/5)
	}
	return margin, ok, nil
}

func scanClearance(cfg EngineConfig, leg TransferLeg, step float64) (float64, bool, error) {
	earth, err := PlanetByName("earth")
	if err != nil {
		return 0, false, err
	}
	mars, err := PlanetByName("mars")
	if err != nil {
		return 0, false, err
	}
	rEarth := exclusionRadius(cfg, earth)
	rMars := exclusionRadius(cfg, mars)

	duration := leg.Duration()
	if step <= 0 || duration <= 0 {
		return 0, false, nil
	}
	steps := int(math.Ceil(duration / step))
	minMargin := math.Inf(1)
	for i := 0; i <= steps; i++ {
		t := leg.TDepart + float64(i)*step
		if t > leg.TArrive {
			t = leg.TArrive
		}
		scPos, _ := Propagate(leg.R1, leg.V1, t-leg.TDepart, muSun)

		earthPos, err := Position("earth", t)
		if err != nil {
			return 0, false, err
		}
		marsPos, err := Position("mars", t)
		if err != nil {
			return 0, false, err
		}

		marginEarth := Norm(Sub(scPos, earthPos)) - rEarth
		marginMars := Norm(Sub(scPos, marsPos)) - rMars
		if marginEarth < minMargin {
			minMargin = marginEarth
		}
		if marginMars < minMargin {
			minMargin = marginMars
		}
		if t >= leg.TArrive {
			break
		}
	}
	return minMargin, minMargin >= 0, nil
}
