package analysis

import (
	"github.com/rlcoach/replay-analysis/internal/constants"
	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// ShotXG is one SHOT touch's expected-goals estimate.
type ShotXG struct {
	T          float64
	PlayerID   string
	DistanceM  float64
	AngleDeg   float64
	SpeedKPH   float64
	XG         float64
}

// XGSummary is the per-player (or per-team) expected-goals analyzer.
type XGSummary struct {
	Shots    []ShotXG
	TotalXG  float64
	GoalsXG  float64
}

var baseXGByContext = map[model.TouchContext]float64{
	model.ContextGround:     0.12,
	model.ContextAerial:     0.08,
	model.ContextWall:       0.06,
	model.ContextCeiling:    0.04,
	model.ContextHalfVolley: 0.15,
	model.ContextUnknown:    0.08,
}

// RunXG estimates expected goals for every SHOT touch attributable to
// scope.
func RunXG(frames []model.Frame, events model.EventSet, scope Scope) XGSummary {
	var x XGSummary
	idx := playerTeamIndex(frames)

	for _, t := range events.Touches {
		if t.Outcome != model.TouchShot {
			continue
		}
		if !scope.IncludesPlayer(t.PlayerID, idx) {
			continue
		}
		team := idx[t.PlayerID]
		goalCenter := geom.Vec3{X: 0, Y: opponentGoalYFor(team), Z: 0}
		distUU := t.Location.PlanarDistance(goalCenter)
		distM := distUU * constants.UUToM

		toGoal := geom.Vec3{X: goalCenter.X - t.Location.X, Y: goalCenter.Y - t.Location.Y, Z: 0}
		shotDir := shotDirectionAt(frames, t)
		angle := geom.AngleBetweenDeg(shotDir, toGoal)

		base := baseXGByContext[t.TouchContext]
		if base == 0 {
			base = 0.08
		}

		distFactor := distanceFactor(distM)
		angleFactor := angleFactorFor(angle)
		speedFactor := speedFactorFor(t.BallSpeedKPH)
		coverage := coverageFactor(frames, t, team)

		xg := base * distFactor * angleFactor * speedFactor * coverage
		if xg < 0.01 {
			xg = 0.01
		}
		if xg > 0.95 {
			xg = 0.95
		}

		sx := ShotXG{
			T:         t.T,
			PlayerID:  t.PlayerID,
			DistanceM: geom.Round2(distM),
			AngleDeg:  geom.Round2(angle),
			SpeedKPH:  geom.Round2(t.BallSpeedKPH),
			XG:        geom.Round2(xg),
		}
		x.Shots = append(x.Shots, sx)
		x.TotalXG += sx.XG
	}
	x.TotalXG = geom.Round2(x.TotalXG)

	for _, g := range events.Goals {
		if g.Scorer != nil && scope.IncludesPlayer(*g.Scorer, idx) {
			x.GoalsXG++
		}
	}
	return x
}

func opponentGoalYFor(team model.Team) float64 {
	if team == model.TeamBlue {
		return constants.BackWallY
	}
	return -constants.BackWallY
}

func distanceFactor(distM float64) float64 {
	switch {
	case distM <= 15:
		return 1.0
	case distM >= 80:
		return 0.2
	default:
		return 1.0 - (distM-15)/(80-15)*0.8
	}
}

func angleFactorFor(angleDeg float64) float64 {
	switch {
	case angleDeg <= 20:
		return 1.0
	case angleDeg >= 60:
		return 0.15
	default:
		return 1.0 - (angleDeg-20)/(60-20)*0.85
	}
}

func speedFactorFor(speedKPH float64) float64 {
	switch {
	case speedKPH <= 20:
		return 0.4
	case speedKPH >= 70:
		return 1.3
	default:
		return 0.4 + (speedKPH-20)/(70-20)*0.9
	}
}

func shotDirectionAt(frames []model.Frame, t model.TouchEvent) geom.Vec3 {
	for i := range frames {
		if frames[i].Timestamp == t.T {
			v := frames[i].Ball.Velocity
			return geom.Vec3{X: v.X, Y: v.Y, Z: 0}
		}
	}
	return geom.Vec3{}
}

func coverageFactor(frames []model.Frame, t model.TouchEvent, shooterTeam model.Team) float64 {
	var frame *model.Frame
	for i := range frames {
		if frames[i].Timestamp == t.T {
			frame = &frames[i]
			break
		}
	}
	if frame == nil {
		return 1.0
	}
	covered := false
	for _, p := range frame.Players {
		if p.Team == shooterTeam {
			continue
		}
		d := p.Position.Distance(t.Location)
		if d < 800 {
			covered = true
			break
		}
	}
	if covered {
		return 0.5
	}
	return 1.3
}
