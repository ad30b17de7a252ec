package analysis

import (
	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// ChallengeSummary is the per-player aggregate over every 50/50 the
// player took part in.
type ChallengeSummary struct {
	Wins               int
	Losses             int
	Neutrals           int
	FirstToBallPct     float64
	AvgDepthM          float64
	AvgRisk            float64
}

// RunChallengeSummary aggregates every challenge event involving
// playerID into win/loss/neutral counts and average depth/risk.
func RunChallengeSummary(events model.EventSet, playerID string) ChallengeSummary {
	var cs ChallengeSummary
	var participations, firstToBall float64
	var depthSum, riskSum float64

	for _, c := range events.Challenges {
		isFirst := c.FirstPlayer == playerID
		isSecond := c.SecondPlayer == playerID
		if !isFirst && !isSecond {
			continue
		}
		participations++
		if isFirst {
			firstToBall++
		}

		outcome := c.Outcome
		if isSecond {
			switch c.Outcome {
			case model.ChallengeWin:
				outcome = model.ChallengeLoss
			case model.ChallengeLoss:
				outcome = model.ChallengeWin
			}
		}
		switch outcome {
		case model.ChallengeWin:
			cs.Wins++
		case model.ChallengeLoss:
			cs.Losses++
		default:
			cs.Neutrals++
		}

		depthSum += c.DepthM
		if isFirst {
			riskSum += c.RiskFirst
		} else {
			riskSum += c.RiskSecond
		}
	}

	if participations > 0 {
		cs.FirstToBallPct = geom.Round2(firstToBall / participations * 100)
		cs.AvgDepthM = geom.Round2(depthSum / participations)
		cs.AvgRisk = geom.Round2(riskSum / participations)
	}
	return cs
}
