package marsmission

import (
	"fmt"
	"math"
	"sort"
)

// launchPhaseBisectIter bounds the phase-root bisection of §4.8 step 1.
const launchPhaseBisectIter = 60

// launchPhaseTol is the phase-root convergence tolerance, radians.
const launchPhaseTol = 1e-8

// polarAngle returns the xy polar angle of planet at time t.
func polarAngle(planet string, t float64) (float64, error) {
	pos, err := Position(planet, t)
	if err != nil {
		return 0, err
	}
	return math.Atan2(pos[1], pos[0]), nil
}

// phaseErr evaluates err(t) of §4.8 step 1 for a guessed time of flight.
func phaseErr(source, target string, t, deltaTGuess float64) (float64, error) {
	thetaSource, err := polarAngle(source, t)
	if err != nil {
		return 0, err
	}
	thetaTarget, err := polarAngle(target, t+deltaTGuess)
	if err != nil {
		return 0, err
	}
	return WrapToPi(thetaTarget - (thetaSource + math.Pi)), nil
}

// findPhaseRoot implements §4.8 step 1: a coarse scan for a sign change
// followed by bisection.
func findPhaseRoot(cfg EngineConfig, source, target string, earliest, deltaTGuess float64) (float64, error) {
	a := earliest
	errA, err := phaseErr(source, target, a, deltaTGuess)
	if err != nil {
		return 0, err
	}
	step := cfg.PhaseScanStepDays
	maxSteps := int(math.Ceil(cfg.ScanHorizonDays/step)) + 1

	for i := 0; i < maxSteps; i++ {
		b := a + step
		errB, err := phaseErr(source, target, b, deltaTGuess)
		if err != nil {
			return 0, err
		}
		if errA*errB < 0 && math.Abs(errB-errA) < math.Pi {
			lo, hi := a, b
			loErr := errA
			for j := 0; j < launchPhaseBisectIter; j++ {
				mid := (lo + hi) / 2
				midErr, err := phaseErr(source, target, mid, deltaTGuess)
				if err != nil {
					return 0, err
				}
				if math.Abs(midErr) < launchPhaseTol {
					return mid, nil
				}
				if loErr*midErr < 0 {
					hi = mid
				} else {
					lo, loErr = mid, midErr
				}
			}
			return (lo + hi) / 2, nil
		}
		a, errA = b, errB
	}
	return 0, fmt.Errorf("%w: no phase-alignment root found within horizon", ErrSolverFailure)
}

// tofCandidates returns the Δt grid of §4.8 step 2, sorted by proximity
// to deltaTGuess (closest first, as the spec names a "sorted by
// proximity" preference for the warm start to bite early).
func tofCandidates(cfg EngineConfig, deltaTGuess float64) []float64 {
	lo := math.Max(cfg.TOFMinDays, deltaTGuess-cfg.TOFHalfWindowDays)
	hi := math.Min(cfg.TOFMaxDays, deltaTGuess+cfg.TOFHalfWindowDays)
	if hi < lo {
		lo, hi = cfg.TOFMinDays, cfg.TOFMaxDays
	}
	var out []float64
	for t := lo; t <= hi+1e-9; t += cfg.TOFStepDays {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return math.Abs(out[i]-deltaTGuess) < math.Abs(out[j]-deltaTGuess)
	})
	return out
}

// gridSearch implements §4.8 step 2: for each departure epoch and Δt
// candidate, build candidate legs and keep the minimum Δv leg passing
// clearance and budget.
func gridSearch(cfg EngineConfig, source, target string, root, deltaTGuess float64) (TransferLeg, float64, bool) {
	bestDv := math.Inf(1)
	var best TransferLeg
	found := false

	tofs := tofCandidates(cfg, deltaTGuess)
	for dep := root - cfg.DepartRefineHalfDays; dep <= root+cfg.DepartRefineHalfDays; dep += cfg.DepartRefineStepDays {
		for _, tof := range tofs {
			for _, longWay := range longWayOptions(cfg) {
				leg, err := MakeLeg(cfg, source, target, dep, tof, true, longWay)
				if err != nil {
					continue
				}
				vSource, err := Velocity(source, leg.TDepart)
				if err != nil {
					continue
				}
				vTarget, err := Velocity(target, leg.TArrive)
				if err != nil {
					continue
				}
				dv1 := Norm(Sub(leg.V1, vSource))
				dv2 := Norm(Sub(leg.V2, vTarget))
				dv := dv1 + dv2
				if dv > cfg.DvBudgetAUPerDay {
					continue
				}
				_, ok, err := CheckClearance(cfg, leg)
				if err != nil || !ok {
					continue
				}
				if dv < bestDv {
					bestDv, best, found = dv, leg, true
				}
			}
		}
	}
	return best, bestDv, found
}

func longWayOptions(cfg EngineConfig) []bool {
	if cfg.TryLongWay {
		return []bool{false, true}
	}
	return []bool{false}
}

// synodicPeriod returns the synodic period between two planets.
func synodicPeriod(a, b CelestialObject) float64 {
	return 1 / math.Abs(1/a.Elements.PeriodDays-1/b.Elements.PeriodDays)
}

// SearchLaunchWindow implements spec.md §4.8 end-to-end: find the
// phase-alignment root, run the Δv-minimizing grid search around it,
// and on failure advance by the synodic period and retry.
func SearchLaunchWindow(cfg EngineConfig, source, target string, earliest, deltaTGuess float64) (TransferLeg, error) {
	sourcePlanet, err := PlanetByName(source)
	if err != nil {
		return TransferLeg{}, err
	}
	targetPlanet, err := PlanetByName(target)
	if err != nil {
		return TransferLeg{}, err
	}
	synodic := synodicPeriod(sourcePlanet, targetPlanet)
	maxWindows := int(math.Ceil(cfg.ScanHorizonDays/synodic)) + 2

	cursor := earliest
	for w := 0; w < maxWindows; w++ {
		root, err := findPhaseRoot(cfg, source, target, cursor, deltaTGuess)
		if err != nil {
			cursor += synodic
			continue
		}
		leg, _, found := gridSearch(cfg, source, target, root, deltaTGuess)
		if found && leg.TDepart >= earliest {
			return leg, nil
		}
		cursor = root + synodic
	}
	return TransferLeg{}, fmt.Errorf("%w: no feasible %s->%s launch window within horizon", ErrSolverFailure, source, target)
}
