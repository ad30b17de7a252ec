package events

import (
	"github.com/rlcoach/replay-analysis/internal/constants"
	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// DetectChallenges consumes the sorted touch list and emits one
// ChallengeEvent per contested 50/50 between opposing-team touches that
// fall within the challenge window and spatial radius.
func DetectChallenges(frames []model.Frame, touches []model.TouchEvent) []model.ChallengeEvent {
	var challenges []model.ChallengeEvent

	i := 0
	for i < len(touches)-1 {
		a := touches[i]
		b := touches[i+1]

		aPlayer, aOK := findPlayer(frames, a)
		bPlayer, bOK := findPlayer(frames, b)
		if !aOK || !bOK || aPlayer.Team == bPlayer.Team {
			i++
			continue
		}

		dt := b.T - a.T
		if dt < 0 || dt > ChallengeWindowS {
			i++
			continue
		}

		sep := a.Location.Distance(b.Location)
		if sep < ChallengeMinDistanceUU || sep > ChallengeRadiusUU {
			i++
			continue
		}

		if a.BallSpeedKPH < ChallengeMinBallSpeedKPH && b.BallSpeedKPH < ChallengeMinBallSpeedKPH {
			i++
			continue
		}

		outcome := model.ChallengeNeutral
		var winnerTeam *model.Team
		consumed := 2

		if i+2 < len(touches) {
			c := touches[i+2]
			cPlayer, cOK := findPlayer(frames, c)
			if cOK && cPlayer.Team == bPlayer.Team &&
				c.T-b.T <= NeutralRetouchWindowS &&
				b.Location.Distance(c.Location) <= ChallengeRadiusUU {
				outcome = model.ChallengeNeutral
				consumed = 3
			} else {
				wt := bPlayer.Team
				winnerTeam = &wt
				if aPlayer.Team == wt {
					outcome = model.ChallengeWin
				} else {
					outcome = model.ChallengeLoss
				}
			}
		} else {
			wt := bPlayer.Team
			winnerTeam = &wt
			if aPlayer.Team == wt {
				outcome = model.ChallengeWin
			} else {
				outcome = model.ChallengeLoss
			}
		}

		midpoint := a.Location.Add(b.Location).Scale(0.5)
		depthY := b.Location.Y - a.Location.Y
		riskA := computeChallengeRisk(frames, a, aPlayer)
		riskB := computeChallengeRisk(frames, b, bPlayer)

		challenges = append(challenges, model.ChallengeEvent{
			T:            (a.T + b.T) / 2,
			FirstPlayer:  a.PlayerID,
			SecondPlayer: b.PlayerID,
			FirstTeam:    aPlayer.Team,
			SecondTeam:   bPlayer.Team,
			Outcome:      outcome,
			WinnerTeam:   winnerTeam,
			Location:     midpoint,
			DepthM:       geom.Round2(abs(depthY) * constants.UUToM),
			Duration:     geom.Round2(dt),
			RiskFirst:    geom.Round2(riskA),
			RiskSecond:   geom.Round2(riskB),
		})

		i += consumed
	}

	return challenges
}

func findPlayer(frames []model.Frame, t model.TouchEvent) (model.PlayerFrame, bool) {
	if t.Frame < 0 || t.Frame >= len(frames) {
		return model.PlayerFrame{}, false
	}
	return frames[t.Frame].PlayerByID(t.PlayerID)
}

func computeChallengeRisk(frames []model.Frame, t model.TouchEvent, player model.PlayerFrame) float64 {
	if t.Frame < 0 || t.Frame >= len(frames) {
		return 0
	}
	f := frames[t.Frame]
	risk := 0.0

	aheadOfBall := false
	if player.Team == model.TeamBlue {
		aheadOfBall = player.Position.Y > f.Ball.Position.Y
	} else {
		aheadOfBall = player.Position.Y < f.Ball.Position.Y
	}
	if aheadOfBall {
		risk += RiskAheadOfBallWeight
	}

	if float64(player.Boost) <= RiskLowBoostThreshold {
		risk += RiskLowBoostWeight
	}

	lastMan := true
	for _, other := range f.Players {
		if other.PlayerID == player.PlayerID || other.Team != player.Team {
			continue
		}
		otherBehind := false
		if player.Team == model.TeamBlue {
			otherBehind = other.Position.Y < player.Position.Y
		} else {
			otherBehind = other.Position.Y > player.Position.Y
		}
		if otherBehind {
			lastMan = false
			break
		}
	}
	if lastMan {
		risk += RiskLastManWeight
	}

	if risk > 1 {
		risk = 1
	}
	return risk
}
