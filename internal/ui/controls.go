package ui

import (
	"math"
	"strconv"

	"lavahop/internal/core"
)

// Tunable is what the HUD needs from the arena to list and adjust
// parameters.
type Tunable interface {
	Parameters() core.ParameterSnapshot
	ParameterControls() []core.ParameterControl
}

// IntSetter is implemented by targets with integer parameters.
type IntSetter interface {
	SetIntParameter(key string, value int) bool
}

// FloatSetter is implemented by targets with float parameters.
type FloatSetter interface {
	SetFloatParameter(key string, value float64) bool
}

// Controls is the state behind the HUD's parameter rows, kept apart from
// drawing so it works without a window.
type Controls struct {
	target      Tunable
	intSetter   IntSetter
	floatSetter FloatSetter
	states      []controlState
}

type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool
}

// NewControls builds the rows for target. A nil target has no rows.
func NewControls(target Tunable) *Controls {
	c := &Controls{target: target}
	if target == nil {
		return c
	}
	for _, ctrl := range target.ParameterControls() {
		c.states = append(c.states, controlState{control: ctrl, value: "--"})
	}
	if setter, ok := target.(IntSetter); ok {
		c.intSetter = setter
	}
	if setter, ok := target.(FloatSetter); ok {
		c.floatSetter = setter
	}
	c.Refresh()
	return c
}

// Len returns the number of rows.
func (c *Controls) Len() int { return len(c.states) }

// Label returns the display label of row i.
func (c *Controls) Label(i int) string { return c.states[i].control.Label }

// Value returns the formatted value of row i, "--" when unknown.
func (c *Controls) Value(i int) string { return c.states[i].value }

// Known reports whether row i has a parsed value.
func (c *Controls) Known(i int) bool { return c.states[i].hasValue }

// Refresh re-reads every value from the target.
func (c *Controls) Refresh() {
	if c.target == nil || len(c.states) == 0 {
		return
	}
	snapshot := c.target.Parameters()
	for i := range c.states {
		state := &c.states[i]
		param, ok := snapshot.Lookup(state.control.Key)
		state.hasValue = false
		state.value = "--"
		if !ok {
			continue
		}
		switch state.control.Type {
		case core.ParamInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			state.intValue = parsed
			state.floatValue = float64(parsed)
			state.value = strconv.Itoa(parsed)
			state.hasValue = true
		case core.ParamFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			state.floatValue = parsed
			state.value = state.control.Format(parsed)
			state.hasValue = true
		}
	}
}

// CanAdjust reports whether row i can move one step in direction.
func (c *Controls) CanAdjust(i, direction int) bool {
	_, ok := c.stepTarget(i, direction)
	return ok
}

// Adjust moves row i one step in direction and reports whether the target
// accepted it.
func (c *Controls) Adjust(i, direction int) bool {
	next, ok := c.stepTarget(i, direction)
	if !ok {
		return false
	}
	state := &c.states[i]
	switch state.control.Type {
	case core.ParamInt:
		v := int(math.Round(next))
		if !c.intSetter.SetIntParameter(state.control.Key, v) {
			return false
		}
		state.intValue = v
		state.floatValue = float64(v)
		state.value = strconv.Itoa(v)
	case core.ParamFloat:
		if !c.floatSetter.SetFloatParameter(state.control.Key, next) {
			return false
		}
		state.floatValue = next
		state.value = state.control.Format(next)
	}
	return true
}

// stepTarget computes the value one step away, if the row can move there.
func (c *Controls) stepTarget(i, direction int) (float64, bool) {
	if i < 0 || i >= len(c.states) || direction == 0 {
		return 0, false
	}
	state := &c.states[i]
	if !state.hasValue {
		return 0, false
	}
	step := state.control.Step
	switch state.control.Type {
	case core.ParamInt:
		if c.intSetter == nil {
			return 0, false
		}
		step = math.Round(step)
		if step <= 0 {
			step = 1
		}
	case core.ParamFloat:
		if c.floatSetter == nil {
			return 0, false
		}
		if step <= 0 {
			step = 0.05
		}
	default:
		return 0, false
	}
	next := state.floatValue + float64(direction)*step
	next = state.control.Clamp(next)
	if math.Abs(next-state.floatValue) < 1e-9 {
		return 0, false
	}
	return next, true
}
