package marsmission

import "fmt"

// transferLegArrivalTol is the §4.5 step-3 arrival tolerance, AU.
const transferLegArrivalTol = 1e-4

// TransferLeg is an immutable ballistic transfer candidate (spec.md §3).
type TransferLeg struct {
	Source  string  `json:"source"`
	Target  string  `json:"target"`
	TDepart float64 `json:"t_depart"`
	TArrive float64 `json:"t_arrive"`
	R1      []float64 `json:"r1"`
	V1      []float64 `json:"v1"`
	R2      []float64 `json:"r2"`
	V2      []float64 `json:"v2"`
	Prograde bool `json:"prograde"`
	LongWay  bool `json:"long_way"`
}

// Duration is t_arrive - t_depart.
func (l TransferLeg) Duration() float64 { return l.TArrive - l.TDepart }

// MakeLeg builds and validates a candidate transfer leg (spec.md §4.5):
// handoff points at the edge of each planet's parking orbit, a Lambert
// solve between them, and a re-propagation check that the solved orbit
// actually lands on the target handoff point.
func MakeLeg(cfg EngineConfig, source, target string, tDepart, deltaT float64, prograde, longWay bool) (TransferLeg, error) {
	if deltaT <= 0 {
		return TransferLeg{}, fmt.Errorf("%w: time of flight must be positive", ErrInvalidInput)
	}
	tArrive := tDepart + deltaT

	r1, err := outerParkingPoint(source, tDepart, cfg.ParkingRadiusAU[source])
	if err != nil {
		return TransferLeg{}, err
	}
	r2, err := outerParkingPoint(target, tArrive, cfg.ParkingRadiusAU[target])
	if err != nil {
		return TransferLeg{}, err
	}

	v1, v2, err := Lambert(r1, r2, deltaT, prograde, longWay, muSun)
	if err != nil {
		return TransferLeg{}, err
	}

	rCheck, _ := Propagate(r1, v1, deltaT, muSun)
	if Norm(Sub(rCheck, r2)) > transferLegArrivalTol {
		return TransferLeg{}, fmt.Errorf("%w: leg re-propagation misses arrival point", ErrSolverFailure)
	}

	return TransferLeg{
		Source: source, Target: target,
		TDepart: tDepart, TArrive: tArrive,
		R1: r1, V1: v1, R2: r2, V2: v2,
		Prograde: prograde, LongWay: longWay,
	}, nil
}
