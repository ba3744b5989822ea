package arena

// EventKind tags what happened during a step.
type EventKind uint8

const (
	EventBlockSpawned EventKind = iota + 1
	EventBlockRemoved
	EventClaimed
	EventStateChanged
	EventScored
	EventRespawned
	EventPhaseChanged
)

func (k EventKind) String() string {
	switch k {
	case EventBlockSpawned:
		return "block_spawned"
	case EventBlockRemoved:
		return "block_removed"
	case EventClaimed:
		return "claimed"
	case EventStateChanged:
		return "state_changed"
	case EventScored:
		return "scored"
	case EventRespawned:
		return "respawned"
	case EventPhaseChanged:
		return "phase_changed"
	default:
		return "unknown"
	}
}

// Event is a notification for presentation collaborators. Fields that do not
// apply to a kind are left zero.
type Event struct {
	Kind   EventKind
	Tick   uint64
	Cell   Cell
	Value  uint8
	Player PlayerID
	Team   Team

	// State changes.
	From State
	To   State

	// Scored carries the new total.
	Score int

	// Claimed carries the owner being replaced.
	Previous PlayerID

	// Phase changes.
	Phase Phase
}
