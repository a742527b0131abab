package marsmission

import (
	"fmt"

	"github.com/spf13/viper"
)

// EngineConfig holds every tunable of the Mission Trajectory Engine
// (spec.md §9: "All tunables ... are engine fields with well-defined
// effects; they must be validated at construction"). Unlike the
// teacher's package-level `smdConfig()` singleton, this is a plain
// value returned by a constructor so the engine carries no global
// mutable state (Open Question ii/iii).
type EngineConfig struct {
	// Parking orbit model (§4.7).
	ParkingRadiusAU      map[string]float64 // per-planet parking radius, AU
	ParkingPeriodDays     map[string]float64 // per-planet nominal parking period, days
	SafetyMarginAU        float64            // added to visual radius for clearance
	SpacecraftCollisionAU float64            // spacecraft's own collision radius, AU

	// Clearance checker (§4.6).
	ClearanceStepDays float64 // sample step Δ, days
	ClearanceRefineAU float64 // refinement trigger margin, AU

	// Launch-window search (§4.8).
	ScanHorizonDays     float64 // total horizon to scan before giving up
	PhaseScanStepDays   float64 // coarse phase-root scan step
	DepartRefineHalfDays float64 // departure refinement half-window
	DepartRefineStepDays float64 // departure refinement step
	TOFMinDays          float64 // Δt grid lower bound
	TOFMaxDays          float64 // Δt grid upper bound
	TOFStepDays         float64 // Δt grid step
	TOFHalfWindowDays   float64 // Δt grid half-window around the warm-started guess
	DvBudgetAUPerDay    float64 // Δv budget proxy, AU/day
	TryLongWay          bool    // also consider the long-way transfer

	// Mission schedule (§4.9).
	ScheduleLookahead int // EnsureCoverage keeps lookahead+1 missions precomputed beyond "now"

	// Realtime simulator (§5).
	TickInterval float64 // wall-clock seconds between ticks (0.05 = 20Hz)
	SubscriberSendTimeout float64 // seconds before a subscriber is declared dead
}

// DefaultEngineConfig returns the engine's default tunables, matching
// the values named in spec.md §4.8/§4.7/§4.6/§5.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		ParkingRadiusAU: map[string]float64{
			"earth": 2.5e-4,
			"mars":  1.5e-4,
		},
		ParkingPeriodDays: map[string]float64{
			"earth": 1.0,
			"mars":  1.2,
		},
		SafetyMarginAU:        2e-5,
		SpacecraftCollisionAU: 1e-6,

		ClearanceStepDays: 0.25,
		ClearanceRefineAU: 5e-3,

		ScanHorizonDays:      1400,
		PhaseScanStepDays:    10,
		DepartRefineHalfDays: 80,
		DepartRefineStepDays: 2,
		TOFMinDays:           180,
		TOFMaxDays:           450,
		TOFStepDays:          5,
		TOFHalfWindowDays:    80,
		DvBudgetAUPerDay:     0.006,
		TryLongWay:           false,

		ScheduleLookahead: 2,

		TickInterval:          0.05,
		SubscriberSendTimeout: 0.5,
	}
}

// Validate enforces spec.md §9's clearance invariant
// (parking_radius > visual_radius + safety_margin + collision_radius)
// for earth and mars, both of which must have a parking radius and a
// positive parking period. Of the remaining tunables it checks only the
// clearance step, the time-of-flight bounds, the Δv budget and the tick
// interval.
func (c EngineConfig) Validate() error {
	for _, name := range []string{"earth", "mars"} {
		planet, err := PlanetByName(name)
		if err != nil {
			return err
		}
		radius, ok := c.ParkingRadiusAU[name]
		if !ok {
			return fmt.Errorf("%w: missing parking radius for %s", ErrInvalidInput, name)
		}
		minRadius := planet.VisualRadiusAU + c.SafetyMarginAU + c.SpacecraftCollisionAU
		if radius <= minRadius {
			return fmt.Errorf("%w: parking radius for %s (%g) must exceed visual radius + safety margin + collision radius (%g)",
				ErrInvalidInput, name, radius, minRadius)
		}
		if c.ParkingPeriodDays[name] <= 0 {
			return fmt.Errorf("%w: parking period for %s must be positive", ErrInvalidInput, name)
		}
	}
	if c.ClearanceStepDays <= 0 {
		return fmt.Errorf("%w: clearance step must be positive", ErrInvalidInput)
	}
	if c.TOFMinDays <= 0 || c.TOFMaxDays <= c.TOFMinDays {
		return fmt.Errorf("%w: invalid time-of-flight grid bounds", ErrInvalidInput)
	}
	if c.DvBudgetAUPerDay <= 0 {
		return fmt.Errorf("%w: dv budget must be positive", ErrInvalidInput)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick interval must be positive", ErrInvalidInput)
	}
	return nil
}

// LoadEngineConfig reads overrides from a TOML file via viper (the
// library config.go uses for the teacher's conf.toml) layered on top
// of DefaultEngineConfig, then validates the result. An empty path
// returns the defaults unmodified.
func LoadEngineConfig(path string) (EngineConfig, error) {
	cfg := DefaultEngineConfig()
	if path == "" {
		return cfg, cfg.Validate()
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return EngineConfig{}, fmt.Errorf("%w: reading engine config %s: %s", ErrInvalidInput, path, err)
	}
	if v.IsSet("dv_budget_au_per_day") {
		cfg.DvBudgetAUPerDay = v.GetFloat64("dv_budget_au_per_day")
	}
	if v.IsSet("tick_interval_seconds") {
		cfg.TickInterval = v.GetFloat64("tick_interval_seconds")
	}
	if v.IsSet("schedule_lookahead") {
		cfg.ScheduleLookahead = v.GetInt("schedule_lookahead")
	}
	if v.IsSet("try_long_way") {
		cfg.TryLongWay = v.GetBool("try_long_way")
	}
	return cfg, cfg.Validate()
}
