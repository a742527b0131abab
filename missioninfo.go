package marsmission

import "fmt"

// PlanetState is a planet's heliocentric position/velocity at a given time.
type PlanetState struct {
	Position []float64 `json:"position"`
	Velocity []float64 `json:"velocity"`
}

// MissionScheduleSnapshot reports the four leg timestamps of a mission
// plus the derived wait and transfer durations (spec.md §4.10).
type MissionScheduleSnapshot struct {
	TStart             float64 `json:"t_start"`
	EarthDepart        float64 `json:"earth_depart"`
	MarsArrive         float64 `json:"mars_arrive"`
	MarsDepart         float64 `json:"mars_depart"`
	EarthArrive        float64 `json:"earth_arrive"`
	EarthStayDuration  float64 `json:"earth_stay_duration"`
	MarsStayDuration   float64 `json:"mars_stay_duration"`
	OutboundDuration   float64 `json:"outbound_duration"`
	InboundDuration    float64 `json:"inbound_duration"`
}

// MissionInfo is the aggregated state snapshot of spec.md §4.10.
type MissionInfo struct {
	TimeDays          float64                 `json:"time_days"`
	MissionNumber     int                     `json:"mission_number"`
	Phase             string                  `json:"phase"`
	TimeInMission     float64                 `json:"time_in_mission"`
	MissionDuration   float64                 `json:"mission_duration"`
	MissionSchedule   MissionScheduleSnapshot `json:"mission_schedule"`
	TimelineHorizonEnd float64                `json:"timeline_horizon_end"`
	Earth             PlanetState             `json:"earth"`
	Mars              PlanetState             `json:"mars"`
	SpacecraftPosition []float64              `json:"spacecraft_position"`
	EarthMarsDistance float64                 `json:"earth_mars_distance"`
	Progress          float64                 `json:"progress"`
}

// spacecraftPosition locates the spacecraft at time t within entry,
// per the phase state machine of §4.9 and the parking/transfer models
// of §4.4/§4.7.
func spacecraftPosition(cfg EngineConfig, entry MissionScheduleEntry, phase MissionPhase, t float64) ([]float64, error) {
	switch phase {
	case EarthOrbitStay:
		wait := entry.LegOutbound.TDepart - entry.TStart
		return parkingPosition("earth", entry.TStart, wait, cfg.ParkingRadiusAU["earth"], cfg.ParkingPeriodDays["earth"], t)
	case TransferToMars:
		leg := entry.LegOutbound
		r, _ := Propagate(leg.R1, leg.V1, t-leg.TDepart, muSun)
		return r, nil
	case MarsOrbitStay:
		wait := entry.LegInbound.TDepart - entry.LegOutbound.TArrive
		return parkingPosition("mars", entry.LegOutbound.TArrive, wait, cfg.ParkingRadiusAU["mars"], cfg.ParkingPeriodDays["mars"], t)
	case TransferToEarth:
		leg := entry.LegInbound
		r, _ := Propagate(leg.R1, leg.V1, t-leg.TDepart, muSun)
		return r, nil
	default:
		return nil, fmt.Errorf("%w: unknown mission phase", ErrInvalidInput)
	}
}

// BuildMissionInfo computes the §4.10 state aggregate for time t against
// schedule, growing the schedule's coverage first via EnsureCoverage.
func BuildMissionInfo(cfg EngineConfig, schedule *MissionSchedule, t float64, lookahead int) (MissionInfo, error) {
	if t < 0 {
		t = 0
	}
	if err := schedule.EnsureCoverage(t, lookahead); err != nil {
		return MissionInfo{}, err
	}
	entry, err := schedule.ScheduleForTime(t)
	if err != nil {
		return MissionInfo{}, err
	}
	phase := Phase(entry, t)

	earthPos, err := Position("earth", t)
	if err != nil {
		return MissionInfo{}, err
	}
	earthVel, err := Velocity("earth", t)
	if err != nil {
		return MissionInfo{}, err
	}
	marsPos, err := Position("mars", t)
	if err != nil {
		return MissionInfo{}, err
	}
	marsVel, err := Velocity("mars", t)
	if err != nil {
		return MissionInfo{}, err
	}
	scPos, err := spacecraftPosition(cfg, entry, phase, t)
	if err != nil {
		return MissionInfo{}, err
	}

	missionDuration := entry.LegInbound.TArrive - entry.TStart
	timeInMission := t - entry.TStart
	progress := 0.0
	if missionDuration > 0 {
		progress = timeInMission / missionDuration
		if progress < 0 {
			progress = 0
		} else if progress > 1 {
			progress = 1
		}
	}

	endTimes := schedule.EndTimes()
	horizonEnd := endTimes[len(endTimes)-1]

	return MissionInfo{
		TimeDays:        t,
		MissionNumber:   entry.MissionIndex,
		Phase:           phase.String(),
		TimeInMission:   timeInMission,
		MissionDuration: missionDuration,
		MissionSchedule: MissionScheduleSnapshot{
			TStart:            entry.TStart,
			EarthDepart:       entry.LegOutbound.TDepart,
			MarsArrive:        entry.LegOutbound.TArrive,
			MarsDepart:        entry.LegInbound.TDepart,
			EarthArrive:       entry.LegInbound.TArrive,
			EarthStayDuration: entry.LegOutbound.TDepart - entry.TStart,
			MarsStayDuration:  entry.LegInbound.TDepart - entry.LegOutbound.TArrive,
			OutboundDuration:  entry.LegOutbound.Duration(),
			InboundDuration:   entry.LegInbound.Duration(),
		},
		TimelineHorizonEnd: horizonEnd,
		Earth:              PlanetState{Position: earthPos, Velocity: earthVel},
		Mars:                PlanetState{Position: marsPos, Velocity: marsVel},
		SpacecraftPosition: scPos,
		EarthMarsDistance:  Norm(Sub(earthPos, marsPos)),
		Progress:           progress,
	}, nil
}
