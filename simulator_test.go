package marsmission

import "testing"

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := DefaultEngineConfig()
	cfg.ScheduleLookahead = 0
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine error: %v", err)
	}
	return e
}

func TestSetSpeedZeroFreezesWithoutStopping(t *testing.T) {
	sim := NewSimulator(newTestEngine(t))
	sim.Start()
	if err := sim.SetSpeed(0); err != nil {
		t.Fatalf("SetSpeed(0) error: %v", err)
	}
	state := sim.State()
	if !state.IsRunning {
		t.Fatal("SetSpeed(0) must leave is_running=true")
	}
	if state.TimeSpeed != 0 {
		t.Fatalf("time_speed = %v, want 0", state.TimeSpeed)
	}
}

func TestSetSpeedRejectsNegative(t *testing.T) {
	sim := NewSimulator(newTestEngine(t))
	if err := sim.SetSpeed(-1); err == nil {
		t.Fatal("expected error for negative time_speed")
	}
}

func TestSetTimeZeroReturnsToMissionZero(t *testing.T) {
	sim := NewSimulator(newTestEngine(t))
	if err := sim.SetTime(500); err != nil {
		t.Fatalf("SetTime error: %v", err)
	}
	if err := sim.SetTime(0); err != nil {
		t.Fatalf("SetTime error: %v", err)
	}
	info, err := sim.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	if info.MissionNumber != 0 {
		t.Fatalf("mission_number = %v, want 0", info.MissionNumber)
	}
}

func TestSetTimeClampsNegative(t *testing.T) {
	sim := NewSimulator(newTestEngine(t))
	if err := sim.SetTime(-50); err != nil {
		t.Fatalf("SetTime error: %v", err)
	}
	if sim.State().CurrentTime != 0 {
		t.Fatalf("current_time = %v, want clamped to 0", sim.State().CurrentTime)
	}
}

func TestGetOrbitPointsBoundary(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.GetOrbitPoints("earth", 4); err != nil {
		t.Fatalf("N=4 should be accepted: %v", err)
	}
	if _, err := e.GetOrbitPoints("earth", 5000); err != nil {
		t.Fatalf("N=5000 should be accepted: %v", err)
	}
	if _, err := e.GetOrbitPoints("earth", 3); err == nil {
		t.Fatal("N=3 should be rejected")
	}
	if _, err := e.GetOrbitPoints("earth", 6000); err == nil {
		t.Fatal("N=6000 should be rejected")
	}
}

func TestPauseToggles(t *testing.T) {
	sim := NewSimulator(newTestEngine(t))
	sim.Start()
	if sim.State().Paused {
		t.Fatal("freshly started simulator should not be paused")
	}
	sim.Pause()
	if !sim.State().Paused {
		t.Fatal("Pause() should set paused=true on first call")
	}
	sim.Pause()
	if sim.State().Paused {
		t.Fatal("Pause() should toggle paused back to false on second call")
	}
}

func TestSubscribeUnsubscribe(t *testing.T) {
	sim := NewSimulator(newTestEngine(t))
	ch := sim.Subscribe("client-1")
	sim.Unsubscribe("client-1")
	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after Unsubscribe")
	}
}
