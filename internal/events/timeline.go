package events

import (
	"sort"

	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// BuildTimeline flattens every detected event stream into one
// chronologically sorted TimelineEvent list, emitting auxiliary ASSIST
// entries for assisted goals and SHOT/SAVE entries for the relevant
// touches. Ties in timestamp break on type, for a stable total order.
func BuildTimeline(set model.EventSet) []model.TimelineEvent {
	var tl []model.TimelineEvent

	for _, g := range set.Goals {
		frame := g.Frame
		team := g.Team
		tl = append(tl, model.TimelineEvent{
			T: g.T, Frame: &frame, Type: "GOAL", PlayerID: g.Scorer, Team: &team,
			Data: map[string]any{
				"shot_speed_kph": g.ShotSpeedKPH,
				"distance_m":     g.DistanceM,
				"assist":         g.Assist,
			},
		})
		if g.Assist != nil {
			tl = append(tl, model.TimelineEvent{
				T: g.T, Frame: &frame, Type: "ASSIST", PlayerID: g.Assist, Team: &team,
				Data: map[string]any{"scorer": g.Scorer},
			})
		}
	}

	for _, d := range set.Demos {
		team := d.TeamVictim
		victim := d.Victim
		tl = append(tl, model.TimelineEvent{
			T: d.T, Type: "DEMO", PlayerID: &victim, Team: &team,
			Data: map[string]any{"attacker": d.Attacker, "location": d.Location},
		})
	}

	for _, k := range set.Kickoffs {
		tl = append(tl, model.TimelineEvent{
			T: k.TStart, Type: "KICKOFF",
			Data: map[string]any{"phase": k.Phase, "players": k.Players, "outcome": k.Outcome},
		})
	}

	for _, b := range set.BoostPickups {
		playerID := b.PlayerID
		tl = append(tl, model.TimelineEvent{
			T: b.T, PlayerID: &playerID, Type: "BOOST_PICKUP",
			Data: map[string]any{"pad_type": b.PadType, "stolen": b.Stolen, "location": b.Location},
		})
	}

	for _, t := range set.Touches {
		frame := t.Frame
		playerID := t.PlayerID
		tl = append(tl, model.TimelineEvent{
			T: t.T, Frame: &frame, Type: "TOUCH", PlayerID: &playerID,
			Data: map[string]any{"location": t.Location, "ball_speed_kph": t.BallSpeedKPH, "outcome": t.Outcome},
		})
		if t.Outcome == model.TouchShot {
			tl = append(tl, model.TimelineEvent{
				T: t.T, Frame: &frame, Type: "SHOT", PlayerID: &playerID,
				Data: map[string]any{"ball_speed_kph": t.BallSpeedKPH},
			})
		}
		if t.IsSave {
			tl = append(tl, model.TimelineEvent{
				T: t.T, Frame: &frame, Type: "SAVE", PlayerID: &playerID,
				Data: map[string]any{"ball_speed_kph": t.BallSpeedKPH},
			})
		}
	}

	for _, c := range set.Challenges {
		firstPlayer := c.FirstPlayer
		firstTeam := c.FirstTeam
		tl = append(tl, model.TimelineEvent{
			T: c.T, Type: "CHALLENGE", PlayerID: &firstPlayer, Team: &firstTeam,
			Data: map[string]any{
				"second_player": c.SecondPlayer,
				"winner_team":   c.WinnerTeam,
				"outcome":       c.Outcome,
				"depth_m":       c.DepthM,
				"duration_s":    geom.Round2(c.Duration),
				"risk_first":    geom.Round2(c.RiskFirst),
				"risk_second":   geom.Round2(c.RiskSecond),
				"location":      c.Location,
			},
		})
	}

	sort.SliceStable(tl, func(i, j int) bool {
		if tl[i].T != tl[j].T {
			return tl[i].T < tl[j].T
		}
		return tl[i].Type < tl[j].Type
	})

	return tl
}
