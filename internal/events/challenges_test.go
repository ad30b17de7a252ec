package events

import (
	"testing"

	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

func frameWithPlayer(id string, team model.Team, pos geom.Vec3, boost int) model.Frame {
	return model.Frame{
		Players: []model.PlayerFrame{{PlayerID: id, Team: team, Position: pos, Boost: boost}},
		Ball:    model.BallFrame{Position: pos},
	}
}

func TestDetectChallengesPairsOpposingTeamTouches(t *testing.T) {
	frames := []model.Frame{
		frameWithPlayer("p1", model.TeamBlue, geom.Vec3{X: 0, Y: 0, Z: 17}, 50),
		frameWithPlayer("p2", model.TeamOrange, geom.Vec3{X: 100, Y: 0, Z: 17}, 50),
	}
	touches := []model.TouchEvent{
		{T: 1.0, Frame: 0, PlayerID: "p1", Location: geom.Vec3{X: 0, Y: 0, Z: 17}, BallSpeedKPH: 50},
		{T: 1.2, Frame: 1, PlayerID: "p2", Location: geom.Vec3{X: 100, Y: 0, Z: 17}, BallSpeedKPH: 40},
	}

	challenges := DetectChallenges(frames, touches)
	if len(challenges) != 1 {
		t.Fatalf("got %d challenges, want 1", len(challenges))
	}
	c := challenges[0]
	if c.FirstPlayer != "p1" || c.SecondPlayer != "p2" {
		t.Errorf("players = %s/%s, want p1/p2", c.FirstPlayer, c.SecondPlayer)
	}
	if c.FirstTeam != model.TeamBlue || c.SecondTeam != model.TeamOrange {
		t.Errorf("teams = %v/%v, want Blue/Orange", c.FirstTeam, c.SecondTeam)
	}
	if c.WinnerTeam == nil || *c.WinnerTeam != model.TeamOrange {
		t.Fatalf("WinnerTeam = %v, want Orange (the second toucher's team)", c.WinnerTeam)
	}
	if c.Outcome != model.ChallengeLoss {
		t.Errorf("Outcome = %v, want LOSS from the first toucher's perspective", c.Outcome)
	}
}

func TestDetectChallengesSkipsSameTeamTouches(t *testing.T) {
	frames := []model.Frame{
		frameWithPlayer("p1", model.TeamBlue, geom.Vec3{X: 0, Y: 0, Z: 17}, 50),
		frameWithPlayer("p2", model.TeamBlue, geom.Vec3{X: 100, Y: 0, Z: 17}, 50),
	}
	touches := []model.TouchEvent{
		{T: 1.0, Frame: 0, PlayerID: "p1", Location: geom.Vec3{X: 0, Y: 0, Z: 17}, BallSpeedKPH: 50},
		{T: 1.2, Frame: 1, PlayerID: "p2", Location: geom.Vec3{X: 100, Y: 0, Z: 17}, BallSpeedKPH: 40},
	}
	challenges := DetectChallenges(frames, touches)
	if len(challenges) != 0 {
		t.Errorf("got %d challenges, want 0 for same-team touches", len(challenges))
	}
}

func TestDetectChallengesSkipsOutOfWindowTouches(t *testing.T) {
	frames := []model.Frame{
		frameWithPlayer("p1", model.TeamBlue, geom.Vec3{X: 0, Y: 0, Z: 17}, 50),
		frameWithPlayer("p2", model.TeamOrange, geom.Vec3{X: 100, Y: 0, Z: 17}, 50),
	}
	touches := []model.TouchEvent{
		{T: 1.0, Frame: 0, PlayerID: "p1", Location: geom.Vec3{X: 0, Y: 0, Z: 17}, BallSpeedKPH: 50},
		{T: 5.0, Frame: 1, PlayerID: "p2", Location: geom.Vec3{X: 100, Y: 0, Z: 17}, BallSpeedKPH: 40},
	}
	challenges := DetectChallenges(frames, touches)
	if len(challenges) != 0 {
		t.Errorf("got %d challenges, want 0 when touches fall outside ChallengeWindowS", len(challenges))
	}
}

func TestDetectChallengesNeutralOnSameTeamRetouch(t *testing.T) {
	frames := []model.Frame{
		frameWithPlayer("p1", model.TeamBlue, geom.Vec3{X: 0, Y: 0, Z: 17}, 50),
		frameWithPlayer("p2", model.TeamOrange, geom.Vec3{X: 100, Y: 0, Z: 17}, 50),
		frameWithPlayer("p3", model.TeamOrange, geom.Vec3{X: 150, Y: 0, Z: 17}, 50),
	}
	touches := []model.TouchEvent{
		{T: 1.0, Frame: 0, PlayerID: "p1", Location: geom.Vec3{X: 0, Y: 0, Z: 17}, BallSpeedKPH: 50},
		{T: 1.2, Frame: 1, PlayerID: "p2", Location: geom.Vec3{X: 100, Y: 0, Z: 17}, BallSpeedKPH: 40},
		{T: 1.3, Frame: 2, PlayerID: "p3", Location: geom.Vec3{X: 150, Y: 0, Z: 17}, BallSpeedKPH: 40},
	}
	challenges := DetectChallenges(frames, touches)
	if len(challenges) != 1 {
		t.Fatalf("got %d challenges, want 1", len(challenges))
	}
	if challenges[0].Outcome != model.ChallengeNeutral {
		t.Errorf("Outcome = %v, want NEUTRAL when the same team retouches within the window", challenges[0].Outcome)
	}
}
