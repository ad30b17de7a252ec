package events

import (
	"strings"

	"github.com/rlcoach/replay-analysis/internal/constants"
	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/identity"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// DetectGoals emits one GoalEvent per scored goal, preferring the
// header-driven path when header.Goals is populated and falling back to
// scanning the ball's trajectory across the goal line otherwise.
func DetectGoals(frames []model.Frame, header model.Header, identities []model.PlayerIdentity, fps float64) []model.GoalEvent {
	if len(header.Goals) > 0 {
		return detectGoalsFromHeader(frames, header, identities, fps)
	}
	return detectGoalsFromBall(frames, fps)
}

func detectGoalsFromHeader(frames []model.Frame, header model.Header, identities []model.PlayerIdentity, fps float64) []model.GoalEvent {
	nameLookup := identity.SanitizedNameLookup(identities)

	goals := make([]model.GoalEvent, 0, len(header.Goals))
	for i, gh := range header.Goals {
		team := model.TeamBlue
		if gh.PlayerTeam != nil {
			team = *gh.PlayerTeam
		}

		ts := float64(gh.Frame) / fps
		if gh.Frame >= 0 && gh.Frame < len(frames) {
			ts = frames[gh.Frame].Timestamp
		}

		var scorer *string
		if key := strings.ToLower(identity.Sanitize(gh.PlayerName)); key != "" {
			if id, ok := nameLookup[key]; ok {
				s := id
				scorer = &s
			}
		}
		if scorer == nil {
			for _, id := range identities {
				if id.Team == team {
					s := id.CanonicalID
					scorer = &s
					break
				}
			}
		}

		speed, distanceM, onTarget := shotSpeedAt(frames, gh.Frame, fps, team)

		lead := 0.0
		if i < len(header.Highlights) {
			d := float64(gh.Frame-header.Highlights[i].Frame) / fps
			if d > 0 {
				lead = d
			}
		}

		goals = append(goals, model.GoalEvent{
			T:                   ts,
			Frame:               gh.Frame,
			Scorer:              scorer,
			Team:                team,
			Assist:              nil,
			ShotSpeedKPH:        speed,
			DistanceM:           distanceM,
			OnTarget:            onTarget,
			TickmarkLeadSeconds: lead,
		})
	}
	return goals
}

func shotSpeedAt(frames []model.Frame, goalFrame int, fps float64, team model.Team) (speedKPH, distanceM float64, onTarget bool) {
	if len(frames) == 0 {
		return 0, 0, false
	}
	if goalFrame < 0 {
		goalFrame = 0
	}
	if goalFrame >= len(frames) {
		goalFrame = len(frames) - 1
	}

	lookback := int(GoalLookbackWindowS * fps)
	start := goalFrame - lookback
	if start < 0 {
		start = 0
	}

	for i := goalFrame; i >= start; i-- {
		v := frames[i].Ball.Velocity
		mag := v.Magnitude()
		if mag >= MinShotVelocityUUS {
			goalCenter := geom.Vec3{X: 0, Y: opponentGoalY(team), Z: constants.GoalHeight / 2}
			dist := frames[i].Ball.Position.Distance(goalCenter) * constants.UUToM
			return geom.Round2(mag * constants.UUToKPH), geom.Round2(dist), isShotOnTarget(team, frames[i].Ball.Position, v)
		}
	}
	return 0, 0, false
}

func detectGoalsFromBall(frames []model.Frame, fps float64) []model.GoalEvent {
	if len(frames) == 0 {
		return nil
	}

	type touchRecord struct {
		playerID string
		team     model.Team
		t        float64
	}
	var recent []touchRecord
	inGoalVolume := false
	var goals []model.GoalEvent

	blueGoalLine := -(constants.BackWallY - constants.GoalDepth)
	orangeGoalLine := constants.BackWallY - constants.GoalDepth

	for i, f := range frames {
		for _, p := range f.Players {
			if p.Position.Distance(f.Ball.Position) < TouchProximityThreshold {
				recent = append(recent, touchRecord{p.PlayerID, p.Team, f.Timestamp})
				if len(recent) > 32 {
					recent = recent[len(recent)-32:]
				}
			}
		}

		crossedOrange := f.Ball.Position.Y >= orangeGoalLine
		crossedBlue := f.Ball.Position.Y <= blueGoalLine

		if (crossedOrange || crossedBlue) && !inGoalVolume {
			inGoalVolume = true
			team := model.TeamOrange
			if crossedOrange {
				team = model.TeamBlue
			}

			var scorer, assist *string
			if len(recent) > 0 {
				last := recent[len(recent)-1]
				s := last.playerID
				scorer = &s
				for j := len(recent) - 2; j >= 0; j-- {
					cand := recent[j]
					if cand.playerID != last.playerID && cand.team == last.team && f.Timestamp-cand.t <= 5.0 {
						a := cand.playerID
						assist = &a
						break
					}
				}
			}

			speed, distanceM, onTarget := shotSpeedAt(frames, i, fps, team)

			goals = append(goals, model.GoalEvent{
				T:            f.Timestamp,
				Frame:        i,
				Scorer:       scorer,
				Team:         team,
				Assist:       assist,
				ShotSpeedKPH: speed,
				DistanceM:    distanceM,
				OnTarget:     onTarget,
			})
			recent = nil
		} else if !crossedOrange && !crossedBlue {
			inGoalVolume = false
		}
	}
	return goals
}
