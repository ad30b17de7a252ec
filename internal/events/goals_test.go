package events

import (
	"testing"

	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

func teamPtr(t model.Team) *model.Team { return &t }

func TestDetectGoalsFromHeaderResolvesScorerByName(t *testing.T) {
	header := model.Header{
		Goals: []model.GoalHeader{
			{Frame: 0, PlayerName: "Alice", PlayerTeam: teamPtr(model.TeamBlue)},
		},
	}
	identities := []model.PlayerIdentity{
		{CanonicalID: "alice-id", DisplayName: "Alice", Team: model.TeamBlue},
	}
	frames := []model.Frame{
		{Timestamp: 12.5, Ball: model.BallFrame{Position: geom.Vec3{X: 0, Y: 0, Z: 93}}},
	}

	goals := DetectGoals(frames, header, identities, 30)
	if len(goals) != 1 {
		t.Fatalf("got %d goals, want 1", len(goals))
	}
	g := goals[0]
	if g.Scorer == nil || *g.Scorer != "alice-id" {
		t.Fatalf("Scorer = %v, want alice-id", g.Scorer)
	}
	if g.Team != model.TeamBlue {
		t.Errorf("Team = %v, want TeamBlue", g.Team)
	}
	if g.T != 12.5 {
		t.Errorf("T = %v, want 12.5 (taken from the frame's timestamp)", g.T)
	}
}

func TestDetectGoalsFromHeaderFallsBackToFirstTeammateOnUnresolvedName(t *testing.T) {
	header := model.Header{
		Goals: []model.GoalHeader{
			{Frame: 0, PlayerName: "Nobody Matching", PlayerTeam: teamPtr(model.TeamOrange)},
		},
	}
	identities := []model.PlayerIdentity{
		{CanonicalID: "teammate-id", DisplayName: "Someone", Team: model.TeamOrange},
	}
	frames := []model.Frame{{Timestamp: 0}}

	goals := DetectGoals(frames, header, identities, 30)
	if len(goals) != 1 {
		t.Fatalf("got %d goals, want 1", len(goals))
	}
	if goals[0].Scorer == nil || *goals[0].Scorer != "teammate-id" {
		t.Errorf("Scorer = %v, want teammate-id (fallback to first same-team identity)", goals[0].Scorer)
	}
}

func TestDetectGoalsFromBallAttributesScorerAndAssist(t *testing.T) {
	frames := []model.Frame{
		{
			Timestamp: 0,
			Ball:      model.BallFrame{Position: geom.Vec3{X: 0, Y: 3000, Z: 93}},
			Players: []model.PlayerFrame{
				{PlayerID: "assister", Team: model.TeamBlue, Position: geom.Vec3{X: 0, Y: 2950, Z: 17}},
			},
		},
		{
			Timestamp: 0.2,
			Ball:      model.BallFrame{Position: geom.Vec3{X: 0, Y: 4000, Z: 93}},
			Players: []model.PlayerFrame{
				{PlayerID: "scorer", Team: model.TeamBlue, Position: geom.Vec3{X: 0, Y: 3950, Z: 17}},
			},
		},
		{
			Timestamp: 0.3,
			Ball: model.BallFrame{
				Position: geom.Vec3{X: 0, Y: 4250, Z: 93},
				Velocity: geom.Vec3{X: 0, Y: 1000, Z: 0},
			},
		},
	}

	goals := DetectGoals(frames, model.Header{}, nil, 30)
	if len(goals) != 1 {
		t.Fatalf("got %d goals, want 1", len(goals))
	}
	g := goals[0]
	if g.Scorer == nil || *g.Scorer != "scorer" {
		t.Fatalf("Scorer = %v, want scorer (most recent toucher)", g.Scorer)
	}
	if g.Assist == nil || *g.Assist != "assister" {
		t.Fatalf("Assist = %v, want assister (prior same-team toucher)", g.Assist)
	}
	if g.ShotSpeedKPH <= 0 {
		t.Errorf("ShotSpeedKPH = %v, want > 0", g.ShotSpeedKPH)
	}
}

func TestDetectGoalsFromBallNoDuplicateOnSustainedCrossing(t *testing.T) {
	frames := []model.Frame{
		{Timestamp: 0, Ball: model.BallFrame{Position: geom.Vec3{X: 0, Y: 4250, Z: 93}}},
		{Timestamp: 0.1, Ball: model.BallFrame{Position: geom.Vec3{X: 0, Y: 4300, Z: 93}}},
	}
	goals := DetectGoals(frames, model.Header{}, nil, 30)
	if len(goals) != 1 {
		t.Fatalf("got %d goals, want 1 (should not re-fire while still inside the goal volume)", len(goals))
	}
}
