package ui

import "lavahop/internal/arena"

// PhaseBanner is the centred message for a phase, empty while running.
func PhaseBanner(phase arena.Phase, winner arena.Team) string {
	switch phase {
	case arena.PhaseStart:
		return "press any key to start"
	case arena.PhasePaused:
		return "paused - space to resume"
	case arena.PhaseOver:
		if winner == arena.TeamNone {
			return "game over: draw (R to restart)"
		}
		return "game over: " + winner.String() + " wins (R to restart)"
	}
	return ""
}
