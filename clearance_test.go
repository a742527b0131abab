package marsmission

import "testing"

func TestClearanceRegressionFirstMission(t *testing.T) {
	// spec.md §8 scenario 6: the first mission's legs must clear both
	// planets' exclusion radii at every 0.25-day sample.
	cfg := DefaultEngineConfig()
	s := NewMissionSchedule(cfg)
	if err := s.EnsureCoverage(0, 0); err != nil {
		t.Fatalf("EnsureCoverage error: %v", err)
	}
	entry := s.Preview(1)[0]

	for _, leg := range []TransferLeg{entry.LegOutbound, entry.LegInbound} {
		margin, ok, err := CheckClearance(cfg, leg)
		if err != nil {
			t.Fatalf("CheckClearance error: %v", err)
		}
		if !ok {
			t.Fatalf("leg %s->%s failed clearance, margin=%v", leg.Source, leg.Target, margin)
		}
	}
}

func TestClearanceCoarseScanMarginPlausible(t *testing.T) {
	cfg := DefaultEngineConfig()
	s := NewMissionSchedule(cfg)
	if err := s.EnsureCoverage(0, 0); err != nil {
		t.Fatalf("EnsureCoverage error: %v", err)
	}
	entry := s.Preview(1)[0]
	margin, ok, err := scanClearance(cfg, entry.LegOutbound, cfg.ClearanceStepDays)
	if err != nil {
		t.Fatalf("scanClearance error: %v", err)
	}
	if !ok && margin < -1 {
		t.Fatalf("coarse scan margin implausibly negative: %v", margin)
	}
}
