package arena

import log "github.com/sirupsen/logrus"

// claim hands b to p. Claiming is total: any previous owner is replaced and
// reclaiming an own block changes nothing but still reports the claim.
func (w *World) claim(p *Player, b *Block) {
	prev := b.Owner
	b.Owner = p.ID
	w.emit(Event{Kind: EventClaimed, Player: p.ID, Team: p.Team, Cell: b.Cell, Value: b.Value, Previous: prev})
	w.log.WithFields(log.Fields{
		"team":  p.Team.String(),
		"x":     b.Cell.X,
		"y":     b.Cell.Y,
		"value": b.Value,
	}).Debug("block claimed")
}

// OwnerTeam resolves a block's owner to a team. Owners that no longer
// resolve to a player count as unowned.
func (w *World) OwnerTeam(b *Block) Team {
	if b == nil {
		return TeamNone
	}
	p, ok := w.Player(b.Owner)
	if !ok {
		return TeamNone
	}
	return p.Team
}
