// Package aggregator orchestrates every analyzer in internal/analysis over
// a normalized frame stream and its detected events, producing one
// per-player and per-team analysis record. The five most expensive
// per-player analyzers (mechanics, recovery, defense, ball prediction,
// xG) are computed once per canonical player id and filled in across
// goroutines, then merged back in canonical id order so the result is
// identical regardless of completion order.
package aggregator

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rlcoach/replay-analysis/internal/analysis"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// PlayerAnalysis bundles every analyzer's output for one player.
type PlayerAnalysis struct {
	PlayerID           string
	Team               model.Team
	Fundamentals       analysis.Fundamentals
	BoostEconomy       analysis.BoostEconomy
	Movement           analysis.Movement
	Positioning        analysis.Positioning
	RotationCompliance analysis.RotationCompliance
	Passing            analysis.Passing
	Challenges         analysis.ChallengeSummary
	Kickoffs           analysis.KickoffSummary
	Mechanics          analysis.Mechanics
	Recovery           analysis.Recovery
	XG                 analysis.XGSummary
	Defense            analysis.Defense
	BallPrediction     analysis.BallPrediction
	Heatmaps           analysis.Heatmaps
}

// TeamAnalysis bundles team-scoped analyzer output.
type TeamAnalysis struct {
	Team                 model.Team
	Fundamentals         analysis.Fundamentals
	BoostEconomy         analysis.BoostEconomy
	Movement             analysis.Movement
	Passing              analysis.Passing
	Defense              analysis.Defense
	Mechanics            TeamMechanics
	FirstPossessionCount int
}

// TeamMechanics sums a team's members' per-player mechanics counts.
type TeamMechanics struct {
	JumpCount       int
	DoubleJumpCount int
	FlipCount       int
	WavedashCount   int
	AerialCount     int
	FlipCancelCount int
	HalfFlipCount   int
	SpeedflipCount  int
}

// sumTeamMechanics totals the mechanics counters of every player on team.
func sumTeamMechanics(players []PlayerAnalysis, team model.Team) TeamMechanics {
	var tm TeamMechanics
	for _, p := range players {
		if p.Team != team {
			continue
		}
		tm.JumpCount += p.Mechanics.JumpCount
		tm.DoubleJumpCount += p.Mechanics.DoubleJumpCount
		tm.FlipCount += p.Mechanics.FlipCount
		tm.WavedashCount += p.Mechanics.WavedashCount
		tm.AerialCount += p.Mechanics.AerialCount
		tm.FlipCancelCount += p.Mechanics.FlipCancelCount
		tm.HalfFlipCount += p.Mechanics.HalfFlipCount
		tm.SpeedflipCount += p.Mechanics.SpeedflipCount
	}
	return tm
}

// MatchAnalysis is every analyzer's output for the whole match.
type MatchAnalysis struct {
	DurationMinutes float64
	Players         []PlayerAnalysis
	Teams           []TeamAnalysis
}

// expensiveResult holds the five per-entity analyzers that are costly
// enough to parallelize across players.
type expensiveResult struct {
	mechanics      analysis.Mechanics
	recovery       analysis.Recovery
	defense        analysis.Defense
	xg             analysis.XGSummary
	ballPrediction analysis.BallPrediction
}

// Aggregate runs every analyzer over frames/events and assembles the
// per-player and per-team records. Canonical player ids are discovered
// from the frame roster and processed in sorted order so the parallel
// fill below is deterministic.
func Aggregate(ctx context.Context, frames []model.Frame, events model.EventSet) (MatchAnalysis, error) {
	var m MatchAnalysis
	if len(frames) == 0 {
		return m, nil
	}
	m.DurationMinutes = (frames[len(frames)-1].Timestamp - frames[0].Timestamp) / 60.0

	roster := canonicalRoster(frames)
	results := make([]expensiveResult, len(roster))

	g, gctx := errgroup.WithContext(ctx)
	for i, player := range roster {
		i, player := i, player
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = expensiveResult{
				mechanics:      analysis.RunMechanics(frames, player.id),
				recovery:       analysis.RunRecovery(frames, player.id),
				defense:        analysis.RunDefense(frames, analysis.Scope{PlayerID: &player.id}),
				xg:             analysis.RunXG(frames, events, analysis.Scope{PlayerID: &player.id}),
				ballPrediction: analysis.RunBallPrediction(frames, player.id),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return m, err
	}

	for i, player := range roster {
		id := player.id
		scope := analysis.Scope{PlayerID: &id}
		pa := PlayerAnalysis{
			PlayerID:           id,
			Team:               player.team,
			Fundamentals:       analysis.RunFundamentals(frames, events, scope),
			BoostEconomy:       analysis.RunBoostEconomy(frames, events, scope, m.DurationMinutes),
			Movement:           analysis.RunMovement(frames, scope),
			Positioning:        analysis.RunPositioning(frames, id),
			RotationCompliance: analysis.RunRotationCompliance(frames, id),
			Passing:            analysis.RunPassing(frames, events, scope),
			Challenges:         analysis.RunChallengeSummary(events, id),
			Kickoffs:           analysis.RunKickoffSummary(events, id),
			Mechanics:          results[i].mechanics,
			Recovery:           results[i].recovery,
			XG:                 results[i].xg,
			Defense:            results[i].defense,
			BallPrediction:     results[i].ballPrediction,
			Heatmaps:           analysis.RunHeatmaps(frames, events, id),
		}
		m.Players = append(m.Players, pa)
	}

	teamKickoffs := analysis.RunTeamKickoffSummary(events)
	for _, team := range []model.Team{model.TeamBlue, model.TeamOrange} {
		t := team
		scope := analysis.Scope{Team: &t}
		m.Teams = append(m.Teams, TeamAnalysis{
			Team:                 t,
			Fundamentals:         analysis.RunFundamentals(frames, events, scope),
			BoostEconomy:         analysis.RunBoostEconomy(frames, events, scope, m.DurationMinutes),
			Movement:             analysis.RunMovement(frames, scope),
			Passing:              analysis.RunPassing(frames, events, scope),
			Defense:              analysis.RunDefense(frames, scope),
			Mechanics:            sumTeamMechanics(m.Players, t),
			FirstPossessionCount: teamKickoffs.FirstPossessionCounts[t],
		})
	}

	return m, nil
}

type rosterEntry struct {
	id   string
	team model.Team
}

// canonicalRoster returns every player id seen in frames, sorted so that
// parallel analyzer results merge back deterministically.
func canonicalRoster(frames []model.Frame) []rosterEntry {
	seen := map[string]model.Team{}
	for _, f := range frames {
		for _, p := range f.Players {
			if _, ok := seen[p.PlayerID]; !ok {
				seen[p.PlayerID] = p.Team
			}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]rosterEntry, len(ids))
	for i, id := range ids {
		out[i] = rosterEntry{id: id, team: seen[id]}
	}
	return out
}
