package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.BallsForLevel(1) != 1000 || cfg.BallsForLevel(3) != 1010 {
		t.Fatalf("balls L1=%d L3=%d", cfg.BallsForLevel(1), cfg.BallsForLevel(3))
	}
	if _, ok := cfg.Template(KindKing); ok {
		t.Fatal("kings must not be in the catalogue")
	}
	if tpl, ok := cfg.Template(KindBank); !ok || tpl.Price != 50 || tpl.Income != 15 {
		t.Fatalf("bank template %+v", tpl)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty grid", func(c *Config) { c.Rows = 0 }, "grid"},
		{"no level time", func(c *Config) { c.TimePerLevel = 0 }, "time_per_level"},
		{"no market time", func(c *Config) { c.MarketTurnTime = -1 }, "market_turn_time"},
		{"market cadence", func(c *Config) { c.MarketEvery = 0 }, "market_every"},
		{"zero step", func(c *Config) { c.MaxSimStep = 0 }, "max_sim_step"},
		{"king template", func(c *Config) {
			c.Templates = append(c.Templates, Template{Kind: KindKing, Name: "Crown"})
		}, "cannot be bought"},
		{"duplicate wall", func(c *Config) {
			c.Templates = append(c.Templates, Template{Kind: KindWall, Name: "Wall 2", Lives: 1})
		}, "duplicate"},
		{"lifeless wall", func(c *Config) { c.Templates[0].Lives = 0 }, "lives"},
		{"negative price", func(c *Config) { c.Templates[2].Price = -5 }, "negative price"},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: err = %v, want mention of %q", tc.name, err, tc.want)
		}
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "siege.json")
	body := `{"rows": 9, "cols": 11, "templates": [{"kind": "wall", "name": "Fence", "price": 5, "lives": 1}]}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Rows != 9 || cfg.Cols != 11 {
		t.Fatalf("grid %dx%d", cfg.Rows, cfg.Cols)
	}
	if cfg.KingIncome != 25 || cfg.MarketEvery != 5 {
		t.Fatal("absent fields lost their defaults")
	}
	if len(cfg.Templates) != 1 || cfg.Templates[0].Name != "Fence" {
		t.Fatalf("templates %+v", cfg.Templates)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("missing file accepted")
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"rows": "many"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Fatal("malformed file accepted")
	}
	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`{"market_every": 0}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(invalid); err == nil || !strings.Contains(err.Error(), "market_every") {
		t.Fatalf("invalid config err = %v", err)
	}
}
