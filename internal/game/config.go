package game

import (
	"encoding/json"
	"fmt"
	"os"
)

// Template describes a structure the active player can buy during a market turn.
type Template struct {
	Kind   StructureKind `json:"kind"`
	Name   string        `json:"name"`
	Price  int           `json:"price"`
	Lives  int           `json:"lives,omitempty"`
	Regen  int           `json:"regen,omitempty"`  // regenerating walls: lives added per level
	Income int           `json:"income,omitempty"` // banks: money granted per level
}

// Layout is the pixel layout of the playing surface the grid is fitted into.
type Layout struct {
	CellSize float64 `json:"cell_size"`
	Gap      float64 `json:"gap"`
	Inset    float64 `json:"inset"`
}

// Config holds every tunable of a match. DefaultConfig returns the stock game.
type Config struct {
	Rows           int     `json:"rows"`
	Cols           int     `json:"cols"`
	TimePerLevel   float64 `json:"time_per_level"`   // seconds of ball simulation per level
	MarketEvery    int     `json:"market_every"`     // a market opens after every N levels
	BaseWalls      int     `json:"base_walls"`       // neutral walls generated at setup
	BuildDistance  int     `json:"build_distance"`   // Manhattan radius of a king's exclusion zone
	MarketTurnTime float64 `json:"market_turn_time"` // seconds each player gets to build
	KingLives      int     `json:"king_lives"`
	KingIncome     int     `json:"king_income"`
	StartingMoney  int     `json:"starting_money"`
	BallSpeed      float64 `json:"ball_speed"`
	BallRadius     float64 `json:"ball_radius"`
	BaseBalls      int     `json:"base_balls"`      // balls spawned on level 1
	BallsPerLevel  int     `json:"balls_per_level"` // extra balls per level after the first
	MaxSimStep     float64 `json:"max_sim_step"`    // longest single integration step, seconds

	Layout    Layout     `json:"layout"`
	Templates []Template `json:"templates"`
}

// DefaultConfig returns the stock rules: a 15x29 board, 10 second levels, a
// market every 5 levels and 1000 balls on the first level.
func DefaultConfig() Config {
	return Config{
		Rows:           15,
		Cols:           29,
		TimePerLevel:   10,
		MarketEvery:    5,
		BaseWalls:      16,
		BuildDistance:  6,
		MarketTurnTime: 60,
		KingLives:      1,
		KingIncome:     25,
		StartingMoney:  100,
		BallSpeed:      500,
		BallRadius:     10,
		BaseBalls:      1000,
		BallsPerLevel:  5,
		MaxSimStep:     1.0 / 60,
		Layout: Layout{
			CellSize: 40,
			Gap:      2,
			Inset:    8,
		},
		Templates: []Template{
			{Kind: KindWall, Name: "Wall", Price: 10, Lives: 3},
			{Kind: KindRegeneratingWall, Name: "Regen Wall", Price: 30, Lives: 2, Regen: 1},
			{Kind: KindBank, Name: "Bank", Price: 50, Income: 15},
		},
	}
}

// LoadConfig reads a JSON file and overlays it on DefaultConfig. Fields absent
// from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the match cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Rows < 1 || c.Cols < 1:
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", c.Rows, c.Cols)
	case c.TimePerLevel <= 0:
		return fmt.Errorf("time_per_level must be > 0, got %v", c.TimePerLevel)
	case c.MarketTurnTime <= 0:
		return fmt.Errorf("market_turn_time must be > 0, got %v", c.MarketTurnTime)
	case c.MarketEvery < 1:
		return fmt.Errorf("market_every must be >= 1, got %d", c.MarketEvery)
	case c.BuildDistance < 0:
		return fmt.Errorf("build_distance must be >= 0, got %d", c.BuildDistance)
	case c.BallRadius <= 0:
		return fmt.Errorf("ball_radius must be > 0, got %v", c.BallRadius)
	case c.MaxSimStep <= 0:
		return fmt.Errorf("max_sim_step must be > 0, got %v", c.MaxSimStep)
	case c.KingLives < 1:
		return fmt.Errorf("king_lives must be >= 1, got %d", c.KingLives)
	}
	seen := map[StructureKind]bool{}
	for _, t := range c.Templates {
		switch t.Kind {
		case KindWall, KindRegeneratingWall:
			if t.Lives < 1 {
				return fmt.Errorf("template %q: lives must be >= 1", t.Name)
			}
		case KindBank:
		default:
			return fmt.Errorf("template %q: %s cannot be bought", t.Name, t.Kind)
		}
		if t.Price < 0 {
			return fmt.Errorf("template %q: negative price", t.Name)
		}
		if seen[t.Kind] {
			return fmt.Errorf("duplicate template for %s", t.Kind)
		}
		seen[t.Kind] = true
	}
	return nil
}

// BallsForLevel returns how many balls a level spawns when not overridden.
func (c Config) BallsForLevel(level int) int {
	return c.BaseBalls + (level-1)*c.BallsPerLevel
}

// Template returns the catalogue entry for kind.
func (c Config) Template(kind StructureKind) (Template, bool) {
	for _, t := range c.Templates {
		if t.Kind == kind {
			return t, true
		}
	}
	return Template{}, false
}

// SurfaceSize returns the pixel size of the playing surface implied by Layout.
func (c Config) SurfaceSize() (w, h float64) {
	l := c.Layout
	w = 2*l.Inset + float64(c.Cols)*l.CellSize + float64(c.Cols-1)*l.Gap
	h = 2*l.Inset + float64(c.Rows)*l.CellSize + float64(c.Rows-1)*l.Gap
	return w, h
}

// Geometry fits the grid into the surface described by Layout.
func (c Config) Geometry() GridGeometry {
	w, h := c.SurfaceSize()
	return c.GeometryFor(w, h)
}

// GeometryFor fits the grid into an arbitrary surface, keeping Layout's inset and gap.
func (c Config) GeometryFor(surfaceW, surfaceH float64) GridGeometry {
	in := c.Layout.Inset
	return ComputeGeometry(surfaceW, surfaceH, Insets{Left: in, Top: in, Right: in, Bottom: in},
		c.Layout.Gap, c.Layout.Gap, c.Rows, c.Cols)
}
