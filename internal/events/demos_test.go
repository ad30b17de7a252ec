package events

import (
	"testing"

	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

func TestDetectDemosAttributesNearestOpponent(t *testing.T) {
	frames := []model.Frame{
		{
			Timestamp: 0,
			Players: []model.PlayerFrame{
				{PlayerID: "victim", Team: model.TeamBlue, Position: geom.Vec3{X: 0, Y: 0, Z: 17}, Demolished: false},
				{PlayerID: "attacker", Team: model.TeamOrange, Position: geom.Vec3{X: 50, Y: 0, Z: 17}, Demolished: false},
				{PlayerID: "farAway", Team: model.TeamOrange, Position: geom.Vec3{X: 4000, Y: 4000, Z: 17}, Demolished: false},
			},
		},
		{
			Timestamp: 1,
			Players: []model.PlayerFrame{
				{PlayerID: "victim", Team: model.TeamBlue, Position: geom.Vec3{X: 0, Y: 0, Z: 17}, Demolished: true},
				{PlayerID: "attacker", Team: model.TeamOrange, Position: geom.Vec3{X: 50, Y: 0, Z: 17}, Demolished: false},
				{PlayerID: "farAway", Team: model.TeamOrange, Position: geom.Vec3{X: 4000, Y: 4000, Z: 17}, Demolished: false},
			},
		},
	}

	demos := DetectDemos(frames)
	if len(demos) != 1 {
		t.Fatalf("got %d demos, want 1", len(demos))
	}
	d := demos[0]
	if d.Victim != "victim" {
		t.Errorf("Victim = %q, want victim", d.Victim)
	}
	if d.Attacker == nil || *d.Attacker != "attacker" {
		t.Fatalf("Attacker = %v, want attacker (the nearest opponent)", d.Attacker)
	}
	if d.TeamAttacker == nil || *d.TeamAttacker != model.TeamOrange {
		t.Errorf("TeamAttacker = %v, want TeamOrange", d.TeamAttacker)
	}
	if d.TeamVictim != model.TeamBlue {
		t.Errorf("TeamVictim = %v, want TeamBlue", d.TeamVictim)
	}
}

func TestDetectDemosNoAttackerBeyondTolerance(t *testing.T) {
	frames := []model.Frame{
		{
			Timestamp: 0,
			Players: []model.PlayerFrame{
				{PlayerID: "victim", Team: model.TeamBlue, Position: geom.Vec3{X: 0, Y: 0, Z: 17}, Demolished: false},
				{PlayerID: "farAway", Team: model.TeamOrange, Position: geom.Vec3{X: 4000, Y: 4000, Z: 17}, Demolished: false},
			},
		},
		{
			Timestamp: 1,
			Players: []model.PlayerFrame{
				{PlayerID: "victim", Team: model.TeamBlue, Position: geom.Vec3{X: 0, Y: 0, Z: 17}, Demolished: true},
				{PlayerID: "farAway", Team: model.TeamOrange, Position: geom.Vec3{X: 4000, Y: 4000, Z: 17}, Demolished: false},
			},
		},
	}

	demos := DetectDemos(frames)
	if len(demos) != 1 {
		t.Fatalf("got %d demos, want 1", len(demos))
	}
	if demos[0].Attacker != nil {
		t.Errorf("Attacker = %v, want nil when nobody is within tolerance", *demos[0].Attacker)
	}
}

func TestDetectDemosIgnoresAlreadyDemolishedState(t *testing.T) {
	frames := []model.Frame{
		{
			Timestamp: 0,
			Players: []model.PlayerFrame{
				{PlayerID: "victim", Team: model.TeamBlue, Position: geom.Vec3{}, Demolished: true},
			},
		},
		{
			Timestamp: 1,
			Players: []model.PlayerFrame{
				{PlayerID: "victim", Team: model.TeamBlue, Position: geom.Vec3{}, Demolished: true},
			},
		},
	}
	demos := DetectDemos(frames)
	if len(demos) != 0 {
		t.Errorf("got %d demos, want 0 (no false->true transition)", len(demos))
	}
}
