package analysis

import (
	"github.com/rlcoach/replay-analysis/internal/constants"
	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// Movement is the speed/height/mechanics-time-share analyzer.
type Movement struct {
	TimeSlowS       float64
	TimeBoostSpeedS float64
	TimeSupersonicS float64
	TimeGroundS     float64
	TimeLowAirS     float64
	TimeHighAirS    float64
	PowerslideCount int
	AerialCount     int
	AvgSpeedKPH     float64
}

// RunMovement walks the frame list for scope's player(s), bucketing
// duration-weighted speed/height time and counting powerslides/aerials.
func RunMovement(frames []model.Frame, scope Scope) Movement {
	idx := playerTeamIndex(frames)
	var m Movement
	if len(frames) == 0 {
		return m
	}
	durations := frameDurations(frames)

	var speedSum, speedSamples float64
	prevYaw := map[string]float64{}
	slideStart := map[string]float64{}
	sliding := map[string]bool{}
	airStart := map[string]float64{}
	airborne := map[string]bool{}

	for fi, f := range frames {
		dt := durations[fi]
		for _, p := range f.Players {
			if !scope.IncludesPlayer(p.PlayerID, idx) {
				continue
			}

			speed := p.Velocity.Magnitude()
			speedSum += speed
			speedSamples++

			switch {
			case speed >= constants.Supersonic || p.Supersonic:
				m.TimeSupersonicS += dt
			case speed >= 500 && speed < 1410:
				m.TimeBoostSpeedS += dt
			case speed <= 500:
				m.TimeSlowS += dt
			}

			switch {
			case p.Position.Z <= 25 || p.OnGround:
				m.TimeGroundS += dt
			case p.Position.Z <= 500:
				m.TimeLowAirS += dt
			default:
				m.TimeHighAirS += dt
			}

			if py, ok := prevYaw[p.PlayerID]; ok && dt > 0 {
				rate := geom.NormalizeAngle(p.Rotation.Yaw-py) / dt
				if rate < 0 {
					rate = -rate
				}
				if p.OnGround && rate >= 2.0 {
					if !sliding[p.PlayerID] {
						sliding[p.PlayerID] = true
						slideStart[p.PlayerID] = f.Timestamp
					}
				} else if sliding[p.PlayerID] {
					if f.Timestamp-slideStart[p.PlayerID] >= 0.1 {
						m.PowerslideCount++
					}
					sliding[p.PlayerID] = false
				}
			}
			prevYaw[p.PlayerID] = p.Rotation.Yaw

			if p.Position.Z >= 200 && !p.OnGround {
				if !airborne[p.PlayerID] {
					airborne[p.PlayerID] = true
					airStart[p.PlayerID] = f.Timestamp
				}
			} else if airborne[p.PlayerID] {
				if f.Timestamp-airStart[p.PlayerID] >= 0.5 {
					m.AerialCount++
				}
				airborne[p.PlayerID] = false
			}
		}
	}

	if speedSamples > 0 {
		m.AvgSpeedKPH = geom.Round2(speedSum / speedSamples * constants.UUToKPH)
	}
	m.TimeSlowS = geom.Round2(m.TimeSlowS)
	m.TimeBoostSpeedS = geom.Round2(m.TimeBoostSpeedS)
	m.TimeSupersonicS = geom.Round2(m.TimeSupersonicS)
	m.TimeGroundS = geom.Round2(m.TimeGroundS)
	m.TimeLowAirS = geom.Round2(m.TimeLowAirS)
	m.TimeHighAirS = geom.Round2(m.TimeHighAirS)
	return m
}
