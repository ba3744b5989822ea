package arena

import (
	"strconv"

	log "github.com/sirupsen/logrus"

	"lavahop/internal/core"
)

// Parameters returns a snapshot of the arena tunables for HUD display.
func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "Arena",
			Params: []core.Parameter{
				int64Param("seed", "Seed", w.cfg.Seed),
				intParam("lane_min", "Lane min", params.LaneMin),
				intParam("lane_max", "Lane max", params.LaneMax),
				floatParam("spawn_chance", "Spawn chance", params.SpawnChance),
				intParam("generate_ahead", "Generate ahead", params.GenerateAhead),
			},
		},
		{
			Name: "Lava",
			Params: []core.Parameter{
				floatParam("lava_height", "Lava height", w.lava.Height),
				floatParam("lava_speed", "Lava speed", w.lava.Speed),
			},
		},
		{
			Name: "Players",
			Params: []core.Parameter{
				floatParam("player_speed", "Hop speed", params.PlayerSpeed),
				floatParam("fall_speed", "Fall speed", params.FallSpeed),
				floatParam("dying_duration", "Dying duration", params.DyingDuration),
			},
		},
		{
			Name: "Match",
			Params: []core.Parameter{
				floatParam("match_duration", "Match duration", params.MatchDuration),
				floatParam("run_time", "Run time", w.runTime),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables the HUD may adjust while playing.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "lava_speed", Label: "Lava speed", Type: core.ParamFloat, Step: 0.05, Min: 0, Max: 5},
		{Key: "player_speed", Label: "Hop speed", Type: core.ParamFloat, Step: 0.25, Min: 0.25, Max: 8},
		{Key: "spawn_chance", Label: "Spawn chance", Type: core.ParamFloat, Step: 0.05, Min: 0, Max: 1},
		{Key: "generate_ahead", Label: "Generate ahead", Type: core.ParamInt, Step: 1, Min: MinGenerateAhead, Max: MaxGenerateAhead},
		{Key: "dying_duration", Label: "Dying duration", Type: core.ParamFloat, Step: 0.25, Min: 0, Max: 10},
	}
}

func (w *World) controlFor(key string) (core.ParameterControl, bool) {
	for _, c := range w.ParameterControls() {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// SetFloatParameter adjusts a floating point tunable. Values are clamped to
// the control bounds; unknown keys report false.
func (w *World) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := w.controlFor(key)
	if !ok || ctrl.Type != core.ParamFloat {
		return false
	}
	value = ctrl.Clamp(value)
	switch key {
	case "lava_speed":
		w.cfg.Params.LavaSpeed = value
		w.lava.Speed = value
	case "player_speed":
		w.cfg.Params.PlayerSpeed = value
		for _, p := range w.players {
			p.Speed = value
		}
	case "spawn_chance":
		w.cfg.Params.SpawnChance = value
	case "dying_duration":
		w.cfg.Params.DyingDuration = value
	default:
		return false
	}
	w.log.WithFields(log.Fields{"key": key, "value": value}).Debug("parameter set")
	return true
}

// SetIntParameter adjusts an integer tunable.
func (w *World) SetIntParameter(key string, value int) bool {
	ctrl, ok := w.controlFor(key)
	if !ok || ctrl.Type != core.ParamInt {
		return false
	}
	value = int(ctrl.Clamp(float64(value)))
	switch key {
	case "generate_ahead":
		w.cfg.Params.GenerateAhead = value
	default:
		return false
	}
	w.log.WithFields(log.Fields{"key": key, "value": value}).Debug("parameter set")
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamInt, Value: strconv.Itoa(value)}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamInt, Value: strconv.FormatInt(value, 10)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamFloat, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}
