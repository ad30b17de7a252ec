package analysis

import (
	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// MechanicEvent is one detected movement primitive.
type MechanicEvent struct {
	T         float64
	Type      string
	Direction string
}

// Mechanics is the per-player movement-primitive timeline and tally.
type Mechanics struct {
	Events        []MechanicEvent
	JumpCount     int
	DoubleJumpCount int
	FlipCount     int
	WavedashCount int
	AerialCount   int
	FlipCancelCount int
	HalfFlipCount int
	SpeedflipCount int
}

type mechanicState struct {
	onGround      bool
	jumped        bool
	flipped       bool
	airStart      float64
	flipStart     float64
	flipping      bool
	flipPitchSign float64
	flipYawAtStart float64
	lastPitchRate float64
}

// RunMechanics walks one player's frames, folding jump/flip/aerial state
// and emitting the detected primitive timeline.
func RunMechanics(frames []model.Frame, playerID string) Mechanics {
	var m Mechanics
	var st mechanicState
	st.onGround = true

	var prevRot *geom.Rotation
	var prevVel *geom.Vec3
	var prevT float64
	have := false

	for _, f := range frames {
		p, ok := f.PlayerByID(playerID)
		if !ok {
			continue
		}
		if !have {
			prevRot = &geom.Rotation{Pitch: p.Rotation.Pitch, Yaw: p.Rotation.Yaw, Roll: p.Rotation.Roll}
			v := p.Velocity
			prevVel = &v
			prevT = f.Timestamp
			st.onGround = p.OnGround
			have = true
			continue
		}
		dt := f.Timestamp - prevT
		if dt <= 0 {
			dt = 1.0 / 30.0
		}

		pitchRate := geom.NormalizeAngle(p.Rotation.Pitch-prevRot.Pitch) / dt
		yawRate := geom.NormalizeAngle(p.Rotation.Yaw-prevRot.Yaw) / dt
		rollRate := geom.NormalizeAngle(p.Rotation.Roll-prevRot.Roll) / dt
		combinedRate := abs(pitchRate) + abs(rollRate)

		dvz := p.Velocity.Z - prevVel.Z

		groundToAir := st.onGround && !p.OnGround
		if groundToAir {
			st.airStart = f.Timestamp
			st.jumped = false
			st.flipped = false
		}

		if !p.OnGround {
			if dvz >= JumpZVelocityThreshold && abs(pitchRate)+abs(rollRate)+abs(yawRate) < 1.0 {
				if !st.jumped {
					st.jumped = true
					m.Events = append(m.Events, MechanicEvent{T: f.Timestamp, Type: "JUMP"})
					m.JumpCount++
				} else if !st.flipped {
					m.Events = append(m.Events, MechanicEvent{T: f.Timestamp, Type: "DOUBLE_JUMP"})
					m.DoubleJumpCount++
				}
			}
			if dvz >= JumpZVelocityThreshold && combinedRate >= FlipAngularThreshold && !st.flipped {
				st.flipped = true
				st.flipping = true
				st.flipStart = f.Timestamp
				st.flipPitchSign = pitchRate
				st.flipYawAtStart = p.Rotation.Yaw
				dir := flipDirection(pitchRate, rollRate)
				m.Events = append(m.Events, MechanicEvent{T: f.Timestamp, Type: "FLIP", Direction: dir})
				m.FlipCount++
				if dir == "forward_diagonal" || dir == "backward_diagonal" {
					m.SpeedflipCount++
				}
			}

			if st.flipping && f.Timestamp-st.flipStart <= FlipCancelWindowS {
				if (st.flipPitchSign > 0) != (pitchRate > 0) && pitchRate != 0 {
					m.Events = append(m.Events, MechanicEvent{T: f.Timestamp, Type: "FLIP_CANCEL"})
					m.FlipCancelCount++
					st.flipping = false

					yawDelta := abs(geom.NormalizeAngle(p.Rotation.Yaw - st.flipYawAtStart))
					if st.flipPitchSign > 0 && yawDelta > HalfFlipYawChangeRad && f.Timestamp-st.flipStart <= HalfFlipWindowS {
						m.Events = append(m.Events, MechanicEvent{T: f.Timestamp, Type: "HALF_FLIP"})
						m.HalfFlipCount++
					}
				}
			}

			if p.Position.Z >= AerialHeightThreshold && f.Timestamp-st.airStart >= 0.5 {
				m.AerialCount++
			}
		}

		if !st.onGround && p.OnGround {
			if have && f.Timestamp-st.flipStart <= WavedashLandingWindow && st.flipped {
				m.Events = append(m.Events, MechanicEvent{T: f.Timestamp, Type: "WAVEDASH"})
				m.WavedashCount++
			}
			st.jumped = false
			st.flipped = false
			st.flipping = false
		}

		st.onGround = p.OnGround
		st.lastPitchRate = pitchRate
		prevRot = &geom.Rotation{Pitch: p.Rotation.Pitch, Yaw: p.Rotation.Yaw, Roll: p.Rotation.Roll}
		v := p.Velocity
		prevVel = &v
		prevT = f.Timestamp
	}
	_ = st.lastPitchRate
	return m
}

func flipDirection(pitchRate, rollRate float64) string {
	switch {
	case abs(pitchRate) >= abs(rollRate)*2:
		if pitchRate < 0 {
			return "forward"
		}
		return "backward"
	case abs(rollRate) >= abs(pitchRate)*2:
		if rollRate < 0 {
			return "left"
		}
		return "right"
	default:
		if pitchRate < 0 {
			return "forward_diagonal"
		}
		return "backward_diagonal"
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
