package arena

import (
	"strconv"
	"strings"
)

// Params holds the tunable rules of the arena.
type Params struct {
	LaneMin       int
	LaneMax       int
	InitialRows   int
	SpawnChance   float64
	GenerateAhead int
	PruneMargin   float64

	LavaStart float64
	LavaSpeed float64

	PlayerSpeed   float64
	FallSpeed     float64
	DyingDuration float64

	// MatchDuration ends the match after this many running seconds. Zero
	// means the match never ends on its own.
	MatchDuration float64
}

// Bounds of GenerateAhead shared by FromMap and the HUD control. Zero
// generates a row only once the lava reaches the top row.
const (
	MinGenerateAhead = 0
	MaxGenerateAhead = 20
)

// Config controls a World.
type Config struct {
	Seed int64

	Blue Controller
	Red  Controller

	Params Params
}

// DefaultConfig returns the standard configuration: a seven lane arena, the
// blue team on the keyboard and the red team driven by the AI.
func DefaultConfig() Config {
	return Config{
		Seed: 42,
		Blue: ControllerHuman,
		Red:  ControllerAI,
		Params: Params{
			LaneMin:       -3,
			LaneMax:       3,
			InitialRows:   4,
			SpawnChance:   0.7,
			GenerateAhead: 5,
			PruneMargin:   0.5,
			LavaStart:     0,
			LavaSpeed:     0.5,
			PlayerSpeed:   2.0,
			FallSpeed:     5.0,
			DyingDuration: 2.0,
		},
	}
}

// StartRow is the row both players begin on: the top of the initial band.
func (p Params) StartRow() int {
	if p.InitialRows <= 0 {
		return 0
	}
	return p.InitialRows - 1
}

// Lanes returns the number of lateral lanes.
func (p Params) Lanes() int {
	if p.LaneMax < p.LaneMin {
		return 0
	}
	return p.LaneMax - p.LaneMin + 1
}

// ClampLane bounds x to the configured lanes.
func (p Params) ClampLane(x int) int {
	if x < p.LaneMin {
		return p.LaneMin
	}
	if x > p.LaneMax {
		return p.LaneMax
	}
	return x
}

// Controller returns who drives the given team.
func (c Config) Controller(t Team) Controller {
	if t == TeamRed {
		return c.Red
	}
	return c.Blue
}

// ConfigKeys lists the keys FromMap understands.
var ConfigKeys = []string{
	"seed", "blue", "red",
	"lane_min", "lane_max", "initial_rows", "spawn_chance", "generate_ahead",
	"lava_start", "lava_speed",
	"player_speed", "fall_speed", "dying_duration",
	"match_duration",
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unknown keys and unparsable values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["blue"]; ok {
		if parsed, ok := ParseController(v); ok {
			c.Blue = parsed
		}
	}
	if v, ok := cfg["red"]; ok {
		if parsed, ok := ParseController(v); ok {
			c.Red = parsed
		}
	}
	if v, ok := cfg["lane_min"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Params.LaneMin = parsed
		}
	}
	if v, ok := cfg["lane_max"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Params.LaneMax = parsed
		}
	}
	if c.Params.LaneMax < c.Params.LaneMin {
		c.Params.LaneMax = c.Params.LaneMin
	}
	if v, ok := cfg["initial_rows"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.InitialRows = parsed
		}
	}
	if v, ok := cfg["spawn_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.SpawnChance = parsed
		}
	}
	if v, ok := cfg["generate_ahead"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= MinGenerateAhead && parsed <= MaxGenerateAhead {
			c.Params.GenerateAhead = parsed
		}
	}
	if v, ok := cfg["lava_start"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.LavaStart = parsed
		}
	}
	if v, ok := cfg["lava_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.LavaSpeed = parsed
		}
	}
	if v, ok := cfg["player_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.PlayerSpeed = parsed
		}
	}
	if v, ok := cfg["fall_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.FallSpeed = parsed
		}
	}
	if v, ok := cfg["dying_duration"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.DyingDuration = parsed
		}
	}
	if v, ok := cfg["match_duration"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.MatchDuration = parsed
		}
	}
	return c
}

// ParseController accepts "human" or "ai" (case-insensitive).
func ParseController(s string) (Controller, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human", "keys", "keyboard":
		return ControllerHuman, true
	case "ai", "cpu", "bot":
		return ControllerAI, true
	}
	return 0, false
}
