package marsmission

import "testing"

func TestScheduleMonotone(t *testing.T) {
	cfg := DefaultEngineConfig()
	s := NewMissionSchedule(cfg)
	if err := s.EnsureCoverage(0, 2); err != nil {
		t.Fatalf("EnsureCoverage error: %v", err)
	}
	entries := s.Preview(s.Len())
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if cur.TStart != prev.LegInbound.TArrive {
			t.Fatalf("mission %d.t_start=%v != mission %d.leg_inbound.t_arrive=%v", i, cur.TStart, i-1, prev.LegInbound.TArrive)
		}
		if !(prev.TStart < prev.LegInbound.TArrive) {
			t.Fatalf("mission %d not strictly monotone internally", i-1)
		}
	}
}

func TestScheduleLegDurationsWithinBounds(t *testing.T) {
	cfg := DefaultEngineConfig()
	s := NewMissionSchedule(cfg)
	if err := s.EnsureCoverage(0, 2); err != nil {
		t.Fatalf("EnsureCoverage error: %v", err)
	}
	for _, e := range s.Preview(3) {
		for _, d := range []float64{e.LegOutbound.Duration(), e.LegInbound.Duration()} {
			if d < 180 || d > 450 {
				t.Fatalf("leg duration %v outside [180,450]", d)
			}
		}
	}
}

func TestEnsureCoverageIdempotent(t *testing.T) {
	cfg := DefaultEngineConfig()
	s := NewMissionSchedule(cfg)
	if err := s.EnsureCoverage(100, 2); err != nil {
		t.Fatalf("EnsureCoverage error: %v", err)
	}
	before := s.Len()
	if err := s.EnsureCoverage(100, 2); err != nil {
		t.Fatalf("EnsureCoverage error: %v", err)
	}
	if s.Len() != before {
		t.Fatalf("second EnsureCoverage grew schedule: %d -> %d", before, s.Len())
	}
}

func TestPhaseIsTotalFunction(t *testing.T) {
	cfg := DefaultEngineConfig()
	s := NewMissionSchedule(cfg)
	if err := s.EnsureCoverage(0, 1); err != nil {
		t.Fatalf("EnsureCoverage error: %v", err)
	}
	entry, err := s.ScheduleForTime(0)
	if err != nil {
		t.Fatalf("ScheduleForTime error: %v", err)
	}
	step := entry.LegInbound.TArrive / 97
	for tt := entry.TStart; tt <= entry.LegInbound.TArrive; tt += step {
		phase := Phase(entry, tt)
		switch phase {
		case EarthOrbitStay, TransferToMars, MarsOrbitStay, TransferToEarth:
		default:
			t.Fatalf("phase(%v) returned invalid value %v", tt, phase)
		}
	}
}
