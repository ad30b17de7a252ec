package analysis

import (
	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// RotationCompliance is the per-player defensive-shape analyzer.
type RotationCompliance struct {
	Score              float64
	DoubleCommitRate   float64
	OvercommitRate     float64
	Flags              []string
}

// RunRotationCompliance scores one player's rotational discipline across
// the match. It is meaningless outside a single-player scope and always
// operates on the player's own team.
func RunRotationCompliance(frames []model.Frame, playerID string) RotationCompliance {
	var rc RotationCompliance
	if len(frames) == 0 {
		return rc
	}

	var playerFrames, doubleCommitFrames, overcommitFrames float64

	for _, f := range frames {
		player, ok := f.PlayerByID(playerID)
		if !ok {
			continue
		}
		playerFrames++

		var teammates []model.PlayerFrame
		for _, p := range f.Players {
			if p.Team == player.Team {
				teammates = append(teammates, p)
			}
		}

		withinCount := 0
		playerWithin := false
		for _, p := range teammates {
			if p.Position.Distance(f.Ball.Position) <= DoubleCommitDistance {
				withinCount++
				if p.PlayerID == playerID {
					playerWithin = true
				}
			}
		}
		if withinCount >= 2 && playerWithin {
			doubleCommitFrames++
		}

		lastDefenderID := ""
		lastDefenderRel := 0.0
		first := true
		for _, p := range teammates {
			rel := attackRelativeY(p.Team, p.Position.Y)
			if first || rel < lastDefenderRel {
				lastDefenderRel = rel
				lastDefenderID = p.PlayerID
				first = false
			}
		}
		if lastDefenderID == playerID {
			rel := attackRelativeY(player.Team, player.Position.Y)
			if rel > 0 && player.Boost < OvercommitBoostThreshold {
				overcommitFrames++
			}
		}
	}

	if playerFrames > 0 {
		rc.DoubleCommitRate = geom.Round2(doubleCommitFrames / playerFrames * 100)
		rc.OvercommitRate = geom.Round2(overcommitFrames / playerFrames * 100)
	}

	rc.Score = 100 - 30*(rc.DoubleCommitRate/100) - 25*(rc.OvercommitRate/100)
	rc.Score = geom.Round2(rc.Score)

	if rc.DoubleCommitRate > 10 {
		rc.Flags = append(rc.Flags, "high_double_commit_rate")
	}
	if rc.OvercommitRate > 5 {
		rc.Flags = append(rc.Flags, "high_overcommit_rate")
	}
	if rc.Score < 70 {
		rc.Flags = append(rc.Flags, "below_70_rotation_score")
	}
	if rc.Score < 50 {
		rc.Flags = append(rc.Flags, "below_50_rotation_score")
	}
	return rc
}
