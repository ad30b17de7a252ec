package analysis

import (
	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// Passing is the possession/passing analyzer. Possession fields are
// team-scoped; the pass/turnover counters are attributed to whichever
// player or team the touch sequence names.
type Passing struct {
	PossessionTimeS   float64
	PossessionPct     float64
	PassesCompleted   int
	PassesAttempted   int
	PassCompletionPct float64
	Turnovers         int
	GiveAndGos        int
}

// RunPassing computes possession time for scope's team (when scope.Team
// is set, or the team of scope.PlayerID) and passing/turnover counts
// attributed to scope's player (when scope.PlayerID is set).
func RunPassing(frames []model.Frame, events model.EventSet, scope Scope) Passing {
	var p Passing
	if len(frames) == 0 {
		return p
	}
	idx := playerTeamIndex(frames)

	var team *model.Team
	if scope.Team != nil {
		team = scope.Team
	} else if scope.PlayerID != nil {
		if t, ok := idx[*scope.PlayerID]; ok {
			team = &t
		}
	}

	if team != nil {
		durations := frameDurations(frames)
		lastTouch := map[model.Team]float64{}
		for fi, f := range frames {
			dt := durations[fi]
			for _, t := range events.Touches {
				if t.T == f.Timestamp {
					if pt, ok := idx[t.PlayerID]; ok {
						lastTouch[pt] = f.Timestamp
					}
				}
			}
			for t, last := range lastTouch {
				if f.Timestamp-last > PossessionTauS {
					continue
				}
				ballIntoOwnHalf := attackRelativeVelocity(t, f.Ball.Velocity.Y) < -OwnHalfHighSpeedUUS
				if !ballIntoOwnHalf && t == *team {
					p.PossessionTimeS += dt
				}
			}
		}
		total := frames[len(frames)-1].Timestamp - frames[0].Timestamp
		if total > 0 {
			p.PossessionPct = geom.Round2(p.PossessionTimeS / total * 100)
		}
		p.PossessionTimeS = geom.Round2(p.PossessionTimeS)
	}

	if scope.PlayerID == nil {
		return p
	}
	playerID := *scope.PlayerID

	touches := events.Touches
	completedPairs := map[[2]string]bool{}
	for i := 1; i < len(touches); i++ {
		prev, cur := touches[i-1], touches[i]
		prevTeam, okPrev := idx[prev.PlayerID]
		curTeam, okCur := idx[cur.PlayerID]
		if !okPrev || !okCur {
			continue
		}
		if cur.T-prev.T > PassWindowS {
			continue
		}
		if prevTeam != curTeam {
			if prev.PlayerID == playerID {
				p.Turnovers++
			}
			continue
		}
		if prev.PlayerID != playerID {
			continue
		}
		p.PassesAttempted++
		forward := attackRelativeVelocityFromPoints(prevTeam, prev.Location, cur.Location)
		planar := prev.Location.PlanarDistance(cur.Location)
		if forward >= ForwardDeltaMinUU && planar >= ForwardDeltaMinUU {
			p.PassesCompleted++
			completedPairs[[2]string{prev.PlayerID, cur.PlayerID}] = true
		}
	}

	for pair := range completedPairs {
		a, b := pair[0], pair[1]
		if a != playerID {
			continue
		}
		for i := 1; i < len(touches); i++ {
			if touches[i].PlayerID == a && touches[i-1].PlayerID == b {
				if touches[i].T-touches[i-1].T <= GiveAndGoWindowS {
					if completedPairs[[2]string{b, a}] {
						p.GiveAndGos++
					}
				}
			}
		}
	}

	if p.PassesAttempted > 0 {
		p.PassCompletionPct = geom.Round2(float64(p.PassesCompleted) / float64(p.PassesAttempted) * 100)
	}
	return p
}

func attackRelativeVelocity(team model.Team, vy float64) float64 {
	if team == model.TeamOrange {
		return -vy
	}
	return vy
}

func attackRelativeVelocityFromPoints(team model.Team, a, b geom.Vec3) float64 {
	delta := b.Y - a.Y
	if team == model.TeamOrange {
		return -delta
	}
	return delta
}
