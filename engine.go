package marsmission

import (
	"fmt"
	"sync"

	"github.com/go-kit/log"
)

// orbitPointsCacheSize is the N for which GetOrbitPoints results are
// cached, per spec.md §6.
const orbitPointsCacheSize = 360

// Engine is the Mission Trajectory Engine composition root. It owns
// the schedule exclusively (spec.md §3 ownership note); all other
// components are pure functions of engine constants and time.
type Engine struct {
	cfg       EngineConfig
	logger    log.Logger
	mu        sync.Mutex
	schedule  *MissionSchedule
	orbitCache map[string][][]float64
}

// NewEngine constructs an Engine with the given config, growing an
// initial schedule window so the first mission is ready immediately.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:        cfg,
		logger:     NewLogger("engine"),
		schedule:   NewMissionSchedule(cfg),
		orbitCache: make(map[string][][]float64),
	}
	if err := e.schedule.EnsureCoverage(0, cfg.ScheduleLookahead); err != nil {
		return nil, fmt.Errorf("initial schedule growth: %w", err)
	}
	e.logger.Log("level", "info", "subsys", "engine", "status", "initialized", "missions", e.schedule.Len())
	return e, nil
}

// MissionInfoAt returns the §4.10 aggregate snapshot at time t, growing
// the schedule as needed.
func (e *Engine) MissionInfoAt(t float64) (MissionInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if t < 0 {
		t = 0
	}
	return BuildMissionInfo(e.cfg, e.schedule, t, e.cfg.ScheduleLookahead)
}

// SchedulePreview returns the first n computed missions.
func (e *Engine) SchedulePreview(n int) []MissionScheduleEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.schedule.Preview(n)
}

// TimelineHorizonEnd returns the last known mission end time.
func (e *Engine) TimelineHorizonEnd() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	ends := e.schedule.EndTimes()
	if len(ends) == 0 {
		return 0
	}
	return ends[len(ends)-1]
}

// GetOrbitPoints samples planet's orbit at N evenly spaced epochs
// (equal steps in mean anomaly) across one full period (spec.md §6). N must be in [4,5000];
// results for N=360 are cached.
func (e *Engine) GetOrbitPoints(planetName string, n int) ([][]float64, error) {
	if n < 4 || n > 5000 {
		return nil, fmt.Errorf("%w: num_points %d out of [4,5000]", ErrInvalidInput, n)
	}
	planet, err := PlanetByName(planetName)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	cacheKey := planetName
	if n == orbitPointsCacheSize {
		if cached, ok := e.orbitCache[cacheKey]; ok {
			return cached, nil
		}
	}

	points := make([][]float64, n)
	period := planet.Elements.PeriodDays
	for i := 0; i < n; i++ {
		t := period * float64(i) / float64(n)
		p, err := Position(planetName, t)
		if err != nil {
			return nil, err
		}
		points[i] = p
	}
	if n == orbitPointsCacheSize {
		e.orbitCache[cacheKey] = points
	}
	return points, nil
}

// Config returns the engine's tunables.
func (e *Engine) Config() EngineConfig { return e.cfg }
