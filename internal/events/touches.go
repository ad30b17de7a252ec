package events

import (
	"github.com/rlcoach/replay-analysis/internal/constants"
	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// DetectTouches sweeps the frame list for player-ball contacts, debouncing
// repeated contacts from the same player in the same area and classifying
// each touch's outcome and context.
func DetectTouches(frames []model.Frame) []model.TouchEvent {
	var touches []model.TouchEvent
	lastTouch := map[string]model.TouchEvent{}
	var prevBallVelocity *geom.Vec3
	var prevBallPosition *geom.Vec3
	firstTouchRecorded := false

	for frameIndex, f := range frames {
		ballVelocity := f.Ball.Velocity
		ballSpeed := ballVelocity.Magnitude()

		for _, p := range f.Players {
			dist := p.Position.Distance(f.Ball.Position)
			if dist >= TouchProximityThreshold {
				continue
			}

			if prev, ok := lastTouch[p.PlayerID]; ok {
				deltaT := f.Timestamp - prev.T
				if deltaT < 0.05 {
					continue
				}
				sameArea := p.Position.Distance(prev.Location) <= TouchLocationEps
				if sameArea && deltaT < TouchDebounceTime {
					relSpeed := relativeSpeed(p.Velocity, ballVelocity)
					if ballSpeed < MinBallSpeedForTouch && relSpeed < MinRelativeSpeedForTouch {
						continue
					}
				}
			}

			outcome, isSave := classifyTouchOutcome(p, f, prevBallVelocity, prevBallPosition)
			context := classifyTouchContext(p, f.Ball.Position)
			isFirst := !firstTouchRecorded
			firstTouchRecorded = true

			touch := model.TouchEvent{
				T:            f.Timestamp,
				Frame:        frameIndex,
				PlayerID:     p.PlayerID,
				Location:     p.Position,
				BallSpeedKPH: geom.Round2(ballSpeed * constants.UUToKPH),
				Outcome:      outcome,
				IsSave:       isSave,
				TouchContext: context,
				CarHeight:    geom.Round2(p.Position.Z),
				IsFirstTouch: isFirst,
			}
			touches = append(touches, touch)
			lastTouch[p.PlayerID] = touch
		}

		bv := ballVelocity
		bp := f.Ball.Position
		prevBallVelocity = &bv
		prevBallPosition = &bp
	}

	return touches
}

func classifyTouchContext(player model.PlayerFrame, ballPosition geom.Vec3) model.TouchContext {
	carHeight := player.Position.Z
	carX := abs(player.Position.X)
	carY := abs(player.Position.Y)
	ballHeight := ballPosition.Z

	if carHeight >= CeilingHeightThreshold {
		return model.ContextCeiling
	}

	nearSideWall := carX >= constants.SideWallX-WallProximityThreshold
	nearBackWall := carY >= constants.BackWallY-WallProximityThreshold
	if (nearSideWall || nearBackWall) && carHeight > 100.0 {
		return model.ContextWall
	}

	if carHeight >= AerialHeightThreshold && ballHeight >= AerialHeightThreshold {
		return model.ContextAerial
	}

	if carHeight > 17.0 && carHeight < HalfVolleyHeight && !player.OnGround {
		return model.ContextHalfVolley
	}

	if carHeight < 30.0 || player.OnGround {
		return model.ContextGround
	}

	if carHeight >= 100.0 {
		return model.ContextAerial
	}
	return model.ContextGround
}

func classifyTouchOutcome(player model.PlayerFrame, f model.Frame, prevBallVelocity, prevBallPosition *geom.Vec3) (model.TouchOutcome, bool) {
	ballVelocity := f.Ball.Velocity
	ballSpeed := ballVelocity.Magnitude()
	team := player.Team

	if ballSpeed > 1500.0 {
		return model.TouchShot, false
	}

	if isShotOnTarget(team, f.Ball.Position, ballVelocity) && ballSpeed >= 650.0 {
		return model.TouchShot, false
	}

	isSaveTouch := false
	if prevBallVelocity != nil && prevBallPosition != nil {
		if isTowardOwnGoal(team, *prevBallVelocity) && !isTowardOwnGoal(team, ballVelocity) {
			if isInDefensiveThird(team, *prevBallPosition) {
				isSaveTouch = true
			}
		}
	}
	if isSaveTouch {
		return model.TouchClear, true
	}

	if ballSpeed > 900.0 && isTowardOpponentGoal(team, ballVelocity) {
		return model.TouchPass, false
	}
	if ballSpeed < 250.0 {
		return model.TouchDribble, false
	}
	if ballSpeed > 600.0 && isTowardOpponentGoal(team, ballVelocity) {
		return model.TouchPass, false
	}
	return model.TouchNeutral, false
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
