package analysis

import (
	"github.com/rlcoach/replay-analysis/internal/constants"
	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// BallAheadThreshold is the centerline tolerance (relative to the ball's
// attack-direction position) used to classify a player as ahead of or
// behind the ball, rather than level with it.
const BallAheadThreshold = 50.0

// Positioning is the per-player field-position analyzer.
type Positioning struct {
	TimeDefensiveHalfS            float64
	TimeOffensiveHalfS            float64
	TimeDefensiveThirdS           float64
	TimeMiddleThirdS              float64
	TimeOffensiveThirdS           float64
	BehindBallPct                 float64
	AheadBallPct                  float64
	FirstManPct                   float64
	SecondManPct                  float64
	ThirdManPct                   *float64
	AvgDistanceToBallM            float64
	AvgDistanceToNearestTeammateM float64
}

// attackRelativeY converts a world Y coordinate into "attack direction"
// space for team: positive means toward the opponent goal.
func attackRelativeY(team model.Team, y float64) float64 {
	if team == model.TeamOrange {
		return -y
	}
	return y
}

// RunPositioning runs the positioning analyzer for one player.
func RunPositioning(frames []model.Frame, playerID string) Positioning {
	var pos Positioning
	if len(frames) == 0 {
		return pos
	}
	durations := frameDurations(frames)

	var behindTime, aheadTime, totalTime float64
	var firstTime, secondTime, thirdTime, rankedTime float64
	var distBallSum, distTeammateSum float64
	var distSamples float64
	teamSizeSeen := map[string]struct{}{}

	for fi, f := range frames {
		dt := durations[fi]
		player, ok := f.PlayerByID(playerID)
		if !ok {
			continue
		}
		totalTime += dt

		rel := attackRelativeY(player.Team, player.Position.Y)
		switch {
		case rel <= -constants.BackWallY/3:
			pos.TimeDefensiveThirdS += dt
		case rel >= constants.BackWallY/3:
			pos.TimeOffensiveThirdS += dt
		default:
			pos.TimeMiddleThirdS += dt
		}
		if rel < 0 {
			pos.TimeDefensiveHalfS += dt
		} else {
			pos.TimeOffensiveHalfS += dt
		}

		ballRel := attackRelativeY(player.Team, f.Ball.Position.Y)
		if rel < ballRel-BallAheadThreshold {
			behindTime += dt
		} else if rel > ballRel+BallAheadThreshold {
			aheadTime += dt
		}

		var teammates []model.PlayerFrame
		for _, p := range f.Players {
			if p.Team == player.Team {
				teammates = append(teammates, p)
				teamSizeSeen[p.PlayerID] = struct{}{}
			}
		}
		rank := rankByBallDistance(teammates, f.Ball.Position, playerID)
		switch rank {
		case 0:
			firstTime += dt
			rankedTime += dt
		case 1:
			secondTime += dt
			rankedTime += dt
		case 2:
			thirdTime += dt
			rankedTime += dt
		}

		distBallSum += player.Position.Distance(f.Ball.Position)
		if nearest, ok := nearestTeammateDistance(teammates, player); ok {
			distTeammateSum += nearest
		}
		distSamples++
	}

	if rankedTime > 0 {
		pos.FirstManPct = geom.Round2(firstTime / rankedTime * 100)
		pos.SecondManPct = geom.Round2(secondTime / rankedTime * 100)
		if len(teamSizeSeen) >= 3 {
			v := geom.Round2(thirdTime / rankedTime * 100)
			pos.ThirdManPct = &v
		}
	}
	if totalTime > 0 {
		pos.BehindBallPct = geom.Round2(behindTime / totalTime * 100)
		pos.AheadBallPct = geom.Round2(aheadTime / totalTime * 100)
	}
	if distSamples > 0 {
		pos.AvgDistanceToBallM = geom.Round2(distBallSum / distSamples * constants.UUToM)
		pos.AvgDistanceToNearestTeammateM = geom.Round2(distTeammateSum / distSamples * constants.UUToM)
	}

	pos.TimeDefensiveHalfS = geom.Round2(pos.TimeDefensiveHalfS)
	pos.TimeOffensiveHalfS = geom.Round2(pos.TimeOffensiveHalfS)
	pos.TimeDefensiveThirdS = geom.Round2(pos.TimeDefensiveThirdS)
	pos.TimeMiddleThirdS = geom.Round2(pos.TimeMiddleThirdS)
	pos.TimeOffensiveThirdS = geom.Round2(pos.TimeOffensiveThirdS)
	return pos
}

func rankByBallDistance(teammates []model.PlayerFrame, ball geom.Vec3, playerID string) int {
	type entry struct {
		id   string
		dist float64
	}
	entries := make([]entry, len(teammates))
	for i, p := range teammates {
		entries[i] = entry{p.PlayerID, p.Position.Distance(ball)}
	}
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].dist < entries[j-1].dist; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
	for rank, e := range entries {
		if e.id == playerID {
			return rank
		}
	}
	return -1
}

func nearestTeammateDistance(teammates []model.PlayerFrame, self model.PlayerFrame) (float64, bool) {
	best := -1.0
	for _, p := range teammates {
		if p.PlayerID == self.PlayerID {
			continue
		}
		d := p.Position.Distance(self.Position)
		if best < 0 || d < best {
			best = d
		}
	}
	return best, best >= 0
}
