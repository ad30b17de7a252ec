package events

import "github.com/rlcoach/replay-analysis/internal/model"

// DetectDemos emits one DemoEvent per demolition state transition
// (false -> true), attributing the nearest non-demolished enemy within
// DemoPositionTolerance as the attacker when one exists.
func DetectDemos(frames []model.Frame) []model.DemoEvent {
	var demos []model.DemoEvent
	wasDemolished := map[string]bool{}

	for _, f := range frames {
		for _, p := range f.Players {
			prev, known := wasDemolished[p.PlayerID]
			if known && !prev && p.Demolished {
				enemy := model.TeamOrange
				if p.Team == model.TeamOrange {
					enemy = model.TeamBlue
				}
				attackerID, dist := nearestPlayerDistance(f, p.Position, p.PlayerID, &enemy)
				var attacker *string
				var attackerTeam *model.Team
				if attackerID != "" && dist < DemoPositionTolerance {
					if ap, ok := f.PlayerByID(attackerID); ok && ap.Team != p.Team && !ap.Demolished {
						a := attackerID
						attacker = &a
						t := ap.Team
						attackerTeam = &t
					}
				}

				victimTeam := p.Team
				demos = append(demos, model.DemoEvent{
					T:            f.Timestamp,
					Victim:       p.PlayerID,
					Attacker:     attacker,
					TeamAttacker: attackerTeam,
					TeamVictim:   victimTeam,
					Location:     p.Position,
				})
			}
			wasDemolished[p.PlayerID] = p.Demolished
		}
	}
	return demos
}
