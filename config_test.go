package marsmission

import "testing"

func TestDefaultEngineConfigValidates(t *testing.T) {
	if err := DefaultEngineConfig().Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}

func TestValidateRejectsTooSmallParkingRadius(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.ParkingRadiusAU["earth"] = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for undersized parking radius")
	}
}

func TestValidateRejectsBadTOFGrid(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.TOFMaxDays = cfg.TOFMinDays
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for degenerate time-of-flight grid")
	}
}

func TestLoadEngineConfigEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadEngineConfig("")
	if err != nil {
		t.Fatalf("LoadEngineConfig(\"\") error: %v", err)
	}
	if cfg.DvBudgetAUPerDay != DefaultEngineConfig().DvBudgetAUPerDay {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}
