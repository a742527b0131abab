package marsmission

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-kit/log"
)

// SimulationState is the process-wide mutable clock state of spec.md
// §3. The tick loop and the command methods all write it under
// Simulator.mu.
type SimulationState struct {
	IsRunning bool    `json:"is_running"`
	Paused    bool    `json:"paused"`
	CurrentTime float64 `json:"current_time"`
	TimeSpeed float64 `json:"time_speed"`
}

// Subscriber receives MissionInfo snapshots from the Simulator's fan-out.
type Subscriber struct {
	ID string
	Ch chan MissionInfo
}

// Simulator drives a single virtual clock at ~20 Hz (spec.md §5) and
// fans snapshots out to subscribers, evicting any subscriber whose
// send exceeds cfg.SubscriberSendTimeout.
type Simulator struct {
	engine *Engine
	cfg    EngineConfig
	logger log.Logger

	mu          sync.Mutex
	state       SimulationState
	subscribers map[string]chan MissionInfo

	commands chan func()
	cancel   context.CancelFunc
}

// NewSimulator builds a Simulator bound to engine, stopped and at t=0.
func NewSimulator(engine *Engine) *Simulator {
	return &Simulator{
		engine:      engine,
		cfg:         engine.Config(),
		logger:      NewLogger("simulator"),
		state:       SimulationState{},
		subscribers: make(map[string]chan MissionInfo),
		commands:    make(chan func(), 64),
	}
}

// Run starts the tick loop; it blocks until ctx is cancelled.
func (s *Simulator) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	ticker := time.NewTicker(time.Duration(s.cfg.TickInterval * float64(time.Second)))
	defer ticker.Stop()

	s.logger.Log("level", "info", "subsys", "simulator", "status", "started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Log("level", "info", "subsys", "simulator", "status", "stopped")
			return
		case cmd := <-s.commands:
			cmd()
		case <-ticker.C:
			s.tick()
		}
	}
}

// Stop cancels the tick loop.
func (s *Simulator) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// tick advances current_time by time_speed, if running and unpaused,
// and broadcasts the resulting snapshot (spec.md §5).
func (s *Simulator) tick() {
	s.mu.Lock()
	if s.state.IsRunning && !s.state.Paused {
		s.state.CurrentTime += s.state.TimeSpeed
	}
	t := s.state.CurrentTime
	s.mu.Unlock()

	info, err := s.engine.MissionInfoAt(t)
	if err != nil {
		s.logger.Log("level", "critical", "subsys", "simulator", "status", "tick failed", "err", err)
		return
	}
	s.broadcast(info)
}

// broadcast fans info out to every subscriber with a per-send timeout,
// evicting any subscriber that does not drain in time (spec.md §5).
func (s *Simulator) broadcast(info MissionInfo) {
	s.mu.Lock()
	targets := make(map[string]chan MissionInfo, len(s.subscribers))
	for id, ch := range s.subscribers {
		targets[id] = ch
	}
	s.mu.Unlock()

	timeout := time.Duration(s.cfg.SubscriberSendTimeout * float64(time.Second))
	for id, ch := range targets {
		select {
		case ch <- info:
		case <-time.After(timeout):
			s.logger.Log("level", "warning", "subsys", "simulator", "subscriber", id, "status", "evicted", "err", ErrSubscriberIO)
			s.Unsubscribe(id)
		}
	}
}

// Subscribe registers a new subscriber and returns its channel.
func (s *Simulator) Subscribe(id string) chan MissionInfo {
	ch := make(chan MissionInfo, 4)
	s.mu.Lock()
	s.subscribers[id] = ch
	s.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a subscriber's channel.
func (s *Simulator) Unsubscribe(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.subscribers[id]; ok {
		delete(s.subscribers, id)
		close(ch)
	}
}

// State returns a copy of the current simulation state.
func (s *Simulator) State() SimulationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start sets is_running=true (spec.md §6 command "start").
func (s *Simulator) Start() {
	s.mu.Lock()
	s.state.IsRunning = true
	s.state.Paused = false
	s.mu.Unlock()
}

// Pause toggles paused without stopping (command "pause"), matching
// original_source/backend/main.py's sim_state.paused = not sim_state.paused.
func (s *Simulator) Pause() {
	s.mu.Lock()
	s.state.Paused = !s.state.Paused
	s.mu.Unlock()
}

// StopSim sets is_running=false (command "stop").
func (s *Simulator) StopSim() {
	s.mu.Lock()
	s.state.IsRunning = false
	s.state.Paused = false
	s.mu.Unlock()
}

// SetSpeed sets time_speed; speed(0) freezes the simulation without
// clearing is_running (spec.md §8 boundary behavior).
func (s *Simulator) SetSpeed(speed float64) error {
	if speed < 0 {
		return fmt.Errorf("%w: time_speed must be >= 0", ErrInvalidInput)
	}
	s.mu.Lock()
	s.state.TimeSpeed = speed
	s.mu.Unlock()
	return nil
}

// SetTime sets current_time directly, clamping negative inputs to 0
// (spec.md §8 boundary behavior).
func (s *Simulator) SetTime(t float64) error {
	if t < 0 {
		t = 0
	}
	s.mu.Lock()
	s.state.CurrentTime = t
	s.mu.Unlock()
	return nil
}

// Snapshot returns the current MissionInfo, growing the schedule if needed.
func (s *Simulator) Snapshot() (MissionInfo, error) {
	return s.engine.MissionInfoAt(s.State().CurrentTime)
}
