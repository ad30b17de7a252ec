package analysis

import (
	"github.com/rlcoach/replay-analysis/internal/constants"
	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// PredictionBand classifies how close a player's projected intercept was
// to the ball's actual position after the prediction horizon.
type PredictionBand string

const (
	PredictionExcellent PredictionBand = "EXCELLENT"
	PredictionGood      PredictionBand = "GOOD"
	PredictionAverage   PredictionBand = "AVERAGE"
	PredictionPoor      PredictionBand = "POOR"
	PredictionWhiff     PredictionBand = "WHIFF"
)

// BallPredictionSample is one read: a simulated ball trajectory compared
// against the player's actual position and the ball's actual landing spot.
type BallPredictionSample struct {
	T          float64
	ErrorM     float64
	Band       PredictionBand
	Proactive  bool
}

// BallPrediction is the per-player read-quality analyzer.
type BallPrediction struct {
	Samples      []BallPredictionSample
	AvgErrorM    float64
	ProactiveRate float64
	Counts       map[PredictionBand]int
}

// RunBallPrediction samples the frame list every sampleInterval seconds,
// simulates the ball forward, and scores the player's positioning
// against the simulated intercept versus the ball's true position later.
func RunBallPrediction(frames []model.Frame, playerID string) BallPrediction {
	bp := BallPrediction{Counts: map[PredictionBand]int{}}
	if len(frames) < 2 {
		return bp
	}

	nextSampleT := frames[0].Timestamp
	var errSum float64
	var proactiveCount int

	for i, f := range frames {
		if f.Timestamp < nextSampleT {
			continue
		}
		nextSampleT += SampleIntervalS

		player, ok := f.PlayerByID(playerID)
		if !ok {
			continue
		}

		simBall := simulateBall(f.Ball, PredictionHorizonS)

		actualIdx := i
		for actualIdx < len(frames) && frames[actualIdx].Timestamp-f.Timestamp < PredictionHorizonS {
			actualIdx++
		}
		if actualIdx >= len(frames) {
			break
		}
		actualBall := frames[actualIdx].Ball.Position

		maxSpeed := player.Velocity.Magnitude() + 500
		if maxSpeed < 1400 {
			maxSpeed = 1400
		}
		intercept := projectIntercept(player, simBall, maxSpeed)

		errM := intercept.Distance(actualBall) * constants.UUToM
		band := bandFor(errM)
		bp.Counts[band]++

		toIntercept := geom.Vec3{X: intercept.X - player.Position.X, Y: intercept.Y - player.Position.Y, Z: intercept.Z - player.Position.Z}
		proactive := false
		if player.Velocity.Magnitude() > 0 && toIntercept.Magnitude() > 0 {
			dot := player.Velocity.Normalized().Dot(toIntercept.Normalized())
			proactive = dot >= ProactiveDotThreshold
		}
		if proactive {
			proactiveCount++
		}

		bp.Samples = append(bp.Samples, BallPredictionSample{
			T:         f.Timestamp,
			ErrorM:    geom.Round2(errM),
			Band:      band,
			Proactive: proactive,
		})
		errSum += errM
	}

	if len(bp.Samples) > 0 {
		bp.AvgErrorM = geom.Round2(errSum / float64(len(bp.Samples)))
		bp.ProactiveRate = geom.Round2(float64(proactiveCount) / float64(len(bp.Samples)) * 100)
	}
	return bp
}

func bandFor(errM float64) PredictionBand {
	switch {
	case errM <= 1:
		return PredictionExcellent
	case errM <= 3:
		return PredictionGood
	case errM <= 6:
		return PredictionAverage
	case errM <= 12:
		return PredictionPoor
	default:
		return PredictionWhiff
	}
}

// simulateBall steps a ball's trajectory forward by durationS using
// simplified physics: constant gravity, linear drag, and bounces off the
// floor, ceiling, side walls, and back walls outside the goal mouth.
func simulateBall(ball model.BallFrame, durationS float64) geom.Vec3 {
	const step = 1.0 / 60.0
	pos := ball.Position
	vel := ball.Velocity
	remaining := durationS
	for remaining > 0 {
		dt := step
		if dt > remaining {
			dt = remaining
		}
		vel.Z += BallGravityUU * dt
		speed := vel.Magnitude()
		if speed > 0 {
			drag := 1 - BallDragCoefficient*dt
			if drag < 0 {
				drag = 0
			}
			vel = vel.Scale(drag)
		}
		pos = pos.Add(vel.Scale(dt))

		if pos.Z <= 0 {
			pos.Z = 0
			if vel.Z < 0 {
				vel.Z = -vel.Z * BounceFloorCeilCoef
			}
		}
		if pos.Z >= constants.CeilingZ {
			pos.Z = constants.CeilingZ
			if vel.Z > 0 {
				vel.Z = -vel.Z * BounceFloorCeilCoef
			}
		}
		if pos.X <= -constants.SideWallX {
			pos.X = -constants.SideWallX
			if vel.X < 0 {
				vel.X = -vel.X * BounceWallCoef
			}
		}
		if pos.X >= constants.SideWallX {
			pos.X = constants.SideWallX
			if vel.X > 0 {
				vel.X = -vel.X * BounceWallCoef
			}
		}
		inGoalMouth := pos.X > -constants.GoalWidth/2 && pos.X < constants.GoalWidth/2 && pos.Z < constants.GoalHeight
		if pos.Y <= -constants.BackWallY && !inGoalMouth {
			pos.Y = -constants.BackWallY
			if vel.Y < 0 {
				vel.Y = -vel.Y * BounceWallCoef
			}
		}
		if pos.Y >= constants.BackWallY && !inGoalMouth {
			pos.Y = constants.BackWallY
			if vel.Y > 0 {
				vel.Y = -vel.Y * BounceWallCoef
			}
		}
		remaining -= dt
	}
	return pos
}

func projectIntercept(player model.PlayerFrame, ballPos geom.Vec3, maxSpeed float64) geom.Vec3 {
	dist := player.Position.PlanarDistance(ballPos)
	timeToReach := dist / maxSpeed
	if timeToReach <= PredictionHorizonS {
		return ballPos
	}
	dir := geom.Vec3{X: ballPos.X - player.Position.X, Y: ballPos.Y - player.Position.Y, Z: 0}.Normalized()
	reach := maxSpeed * PredictionHorizonS
	return geom.Vec3{X: player.Position.X + dir.X*reach, Y: player.Position.Y + dir.Y*reach, Z: ballPos.Z}
}
