package events

import (
	"github.com/rlcoach/replay-analysis/internal/constants"
	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// relativeSpeed returns the magnitude of the velocity difference between
// two bodies.
func relativeSpeed(a, b geom.Vec3) float64 {
	return a.Sub(b).Magnitude()
}

// teamGoalY returns the Y coordinate of team's own goal line.
func teamGoalY(team model.Team) float64 {
	if team == model.TeamBlue {
		return -constants.BackWallY
	}
	return constants.BackWallY
}

// opponentGoalY returns the Y coordinate of team's target goal line.
func opponentGoalY(team model.Team) float64 {
	return -teamGoalY(team)
}

// isTowardOpponentGoal reports whether a ball moving with velocity is
// heading toward the opposing goal from team's perspective.
func isTowardOpponentGoal(team model.Team, velocity geom.Vec3) bool {
	if team == model.TeamBlue {
		return velocity.Y > 250
	}
	return velocity.Y < -250
}

// isTowardOwnGoal reports whether a ball moving with velocity is heading
// toward team's own goal.
func isTowardOwnGoal(team model.Team, velocity geom.Vec3) bool {
	if team == model.TeamBlue {
		return velocity.Y < -400
	}
	return velocity.Y > 400
}

// isInDefensiveThird reports whether position lies in team's defensive
// third.
func isInDefensiveThird(team model.Team, position geom.Vec3) bool {
	if team == model.TeamBlue {
		return position.Y <= -constants.BackWallY*0.33
	}
	return position.Y >= constants.BackWallY*0.33
}

// isShotOnTarget projects the ball's trajectory forward and reports
// whether it intersects the opponent's goal mouth within 3.5 seconds.
func isShotOnTarget(team model.Team, position, velocity geom.Vec3) bool {
	if !isTowardOpponentGoal(team, velocity) {
		return false
	}
	goalY := opponentGoalY(team)
	if velocity.Y == 0 {
		return false
	}
	timeToGoal := (goalY - position.Y) / velocity.Y
	if timeToGoal <= 0 || timeToGoal > 3.5 {
		return false
	}
	estX := position.X + velocity.X*timeToGoal
	estZ := position.Z + velocity.Z*timeToGoal
	return estX >= -constants.GoalWidth && estX <= constants.GoalWidth &&
		estZ >= 0 && estZ <= constants.GoalHeight
}

// nearestPlayerDistance returns the minimum distance from position to any
// player in frame, and that player's id.
func nearestPlayerDistance(frame model.Frame, position geom.Vec3, exclude string, team *model.Team) (string, float64) {
	best := ""
	bestDist := -1.0
	for _, p := range frame.Players {
		if p.PlayerID == exclude {
			continue
		}
		if team != nil && p.Team != *team {
			continue
		}
		d := p.Position.Distance(position)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = p.PlayerID
		}
	}
	return best, bestDist
}
