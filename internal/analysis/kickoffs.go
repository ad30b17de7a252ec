package analysis

import (
	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// KickoffSummary is the per-player aggregate over every kickoff the
// player participated in.
type KickoffSummary struct {
	ApproachCounts       map[model.KickoffApproach]int
	RoleCounts           map[model.KickoffRole]int
	FirstPossessionCount int
	AvgTimeToFirstTouchS float64
}

// RunKickoffSummary aggregates every kickoff event involving playerID.
func RunKickoffSummary(events model.EventSet, playerID string) KickoffSummary {
	ks := KickoffSummary{
		ApproachCounts: map[model.KickoffApproach]int{},
		RoleCounts:     map[model.KickoffRole]int{},
	}
	var touchSum float64
	var touchSamples float64

	for _, k := range events.Kickoffs {
		for _, pr := range k.Players {
			if pr.PlayerID != playerID {
				continue
			}
			ks.ApproachCounts[pr.ApproachType]++
			ks.RoleCounts[pr.Role]++
			if pr.TimeToFirstTouch != nil {
				touchSum += *pr.TimeToFirstTouch
				touchSamples++
			}
		}
		if k.FirstTouchPlayer != nil && *k.FirstTouchPlayer == playerID {
			ks.FirstPossessionCount++
		}
	}

	if touchSamples > 0 {
		ks.AvgTimeToFirstTouchS = geom.Round2(touchSum / touchSamples)
	}
	return ks
}

// TeamKickoffSummary aggregates first-possession counts per team.
type TeamKickoffSummary struct {
	FirstPossessionCounts map[model.Team]int
}

// RunTeamKickoffSummary tallies which team won first possession at each
// kickoff.
func RunTeamKickoffSummary(events model.EventSet) TeamKickoffSummary {
	ts := TeamKickoffSummary{FirstPossessionCounts: map[model.Team]int{}}
	for _, k := range events.Kickoffs {
		switch k.Outcome {
		case model.OutcomeFirstPossessionBlue:
			ts.FirstPossessionCounts[model.TeamBlue]++
		case model.OutcomeFirstPossessionOrange:
			ts.FirstPossessionCounts[model.TeamOrange]++
		}
	}
	return ts
}
