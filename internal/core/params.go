package core

import "strconv"

// ParamType is the value kind of a tunable.
type ParamType uint8

const (
	ParamInt ParamType = iota + 1
	ParamFloat
)

// Parameter is one named value, already formatted for display.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
}

// ParameterGroup is a titled set of parameters.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot lists every tunable at one instant.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Lookup finds a parameter by key across all groups.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// ParameterControl is a parameter that can be stepped within [Min, Max].
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType
	Step  float64
	Min   float64
	Max   float64
}

// Clamp bounds v to [Min, Max].
func (c ParameterControl) Clamp(v float64) float64 {
	if v < c.Min {
		return c.Min
	}
	if v > c.Max {
		return c.Max
	}
	return v
}

// Format renders v with as many decimals as the step needs.
func (c ParameterControl) Format(v float64) string {
	if c.Type == ParamInt {
		return strconv.Itoa(int(v))
	}
	precision := 1
	switch {
	case c.Step < 0.001:
		precision = 4
	case c.Step < 0.01:
		precision = 3
	case c.Step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
