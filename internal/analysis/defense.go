package analysis

import (
	"sort"

	"github.com/rlcoach/replay-analysis/internal/constants"
	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// DefenseRole is a per-frame defensive assignment.
type DefenseRole string

const (
	RoleLastDefender    DefenseRole = "LAST_DEFENDER"
	RoleSecondDefender  DefenseRole = "SECOND_DEFENDER"
	RolePressuring      DefenseRole = "PRESSURING"
	RoleShadow          DefenseRole = "SHADOW"
	RoleRecovering      DefenseRole = "RECOVERING"
	RoleOutOfPosition   DefenseRole = "OUT_OF_POSITION"
)

// Defense is the per-player (or team) defensive-shape analyzer.
type Defense struct {
	RoleTimeS      map[DefenseRole]float64
	DangerZoneTimeS float64
}

// RunDefense assigns a defensive role to scope's player every frame and
// accumulates danger-zone time for scope's team.
func RunDefense(frames []model.Frame, scope Scope) Defense {
	d := Defense{RoleTimeS: map[DefenseRole]float64{}}
	if len(frames) == 0 {
		return d
	}
	idx := playerTeamIndex(frames)
	durations := frameDurations(frames)

	for fi, f := range frames {
		dt := durations[fi]
		byTeam := map[model.Team][]model.PlayerFrame{}
		for _, p := range f.Players {
			byTeam[p.Team] = append(byTeam[p.Team], p)
		}
		for team, roster := range byTeam {
			sort.Slice(roster, func(i, j int) bool {
				return distToOwnGoal(roster[i]) < distToOwnGoal(roster[j])
			})
			for i, p := range roster {
				if !scope.IncludesPlayer(p.PlayerID, idx) {
					continue
				}
				role := classifyDefenseRole(i, p, f.Ball, team)
				d.RoleTimeS[role] += dt
			}

			if team == teamOfScope(scope, idx) || scope.Team == nil {
				ballRel := attackRelativeY(team, f.Ball.Position.Y)
				if ballRel <= -constants.BackWallY/3 {
					coverage := goalCoverage(roster, f.Ball, team)
					if coverage < 0.5 {
						d.DangerZoneTimeS += dt
					}
				}
			}
		}
	}
	for k, v := range d.RoleTimeS {
		d.RoleTimeS[k] = geom.Round2(v)
	}
	d.DangerZoneTimeS = geom.Round2(d.DangerZoneTimeS)
	return d
}

func teamOfScope(scope Scope, idx map[string]model.Team) model.Team {
	if scope.Team != nil {
		return *scope.Team
	}
	if scope.PlayerID != nil {
		if t, ok := idx[*scope.PlayerID]; ok {
			return t
		}
	}
	return model.TeamBlue
}

func distToOwnGoal(p model.PlayerFrame) float64 {
	goalY := -constants.BackWallY
	if p.Team == model.TeamOrange {
		goalY = constants.BackWallY
	}
	return p.Position.Distance(geom.Vec3{X: 0, Y: goalY, Z: 0})
}

func classifyDefenseRole(rank int, p model.PlayerFrame, ball model.BallFrame, team model.Team) DefenseRole {
	if rank == 0 {
		return RoleLastDefender
	}
	if rank == 1 {
		return RoleSecondDefender
	}
	if p.Position.Distance(ball.Position) <= 800 {
		return RolePressuring
	}
	goalY := -constants.BackWallY
	if team == model.TeamOrange {
		goalY = constants.BackWallY
	}
	toGoal := geom.Vec3{X: 0 - p.Position.X, Y: goalY - p.Position.Y, Z: 0}
	toBall := geom.Vec3{X: ball.Position.X - p.Position.X, Y: ball.Position.Y - p.Position.Y, Z: 0}
	shadowAngle := geom.AngleBetweenDeg(toGoal, toBall)
	ballSideOfPlayer := attackRelativeY(team, ball.Position.Y) > attackRelativeY(team, p.Position.Y)
	if shadowAngle < 45 && !ballSideOfPlayer {
		return RoleShadow
	}
	if ballSideOfPlayer {
		return RoleOutOfPosition
	}
	return RoleRecovering
}

func goalCoverage(roster []model.PlayerFrame, ball model.BallFrame, team model.Team) float64 {
	goalY := -constants.BackWallY
	if team == model.TeamOrange {
		goalY = constants.BackWallY
	}
	const samples = 6
	covered := 0
	for i := 0; i < samples; i++ {
		offset := (float64(i)/(samples-1) - 0.5) * constants.GoalWidth
		point := geom.Vec3{X: offset, Y: goalY, Z: 0}
		axis := geom.Vec3{X: ball.Position.X - point.X, Y: ball.Position.Y - point.Y, Z: 0}
		for _, p := range roster {
			goalSide := attackRelativeY(team, p.Position.Y) <= attackRelativeY(team, ball.Position.Y)
			if !goalSide {
				continue
			}
			toPlayer := geom.Vec3{X: p.Position.X - point.X, Y: p.Position.Y - point.Y, Z: 0}
			angle := geom.AngleBetweenDeg(axis, toPlayer)
			if angle <= 30 {
				covered++
				break
			}
		}
	}
	return float64(covered) / samples
}
