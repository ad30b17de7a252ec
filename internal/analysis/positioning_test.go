package analysis

import (
	"testing"

	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

func positioningFrame(ts float64) model.Frame {
	return model.Frame{
		Timestamp: ts,
		Ball:      model.BallFrame{Position: geom.Vec3{Y: 1000}},
		Players: []model.PlayerFrame{
			{PlayerID: "p1", Team: model.TeamBlue, Position: geom.Vec3{Y: 2000}},
			{PlayerID: "p2", Team: model.TeamBlue, Position: geom.Vec3{Y: -2000}},
		},
	}
}

func TestRunPositioningClassifiesThirdAndRank(t *testing.T) {
	frames := []model.Frame{positioningFrame(0), positioningFrame(1)}
	pos := RunPositioning(frames, "p1")

	if pos.TimeOffensiveThirdS != 2 {
		t.Errorf("TimeOffensiveThirdS = %v, want 2", pos.TimeOffensiveThirdS)
	}
	if pos.TimeOffensiveHalfS != 2 {
		t.Errorf("TimeOffensiveHalfS = %v, want 2", pos.TimeOffensiveHalfS)
	}
	if pos.AheadBallPct != 100 {
		t.Errorf("AheadBallPct = %v, want 100", pos.AheadBallPct)
	}
	if pos.FirstManPct != 100 {
		t.Errorf("FirstManPct = %v, want 100 (p1 is always nearer the ball)", pos.FirstManPct)
	}
	if pos.ThirdManPct != nil {
		t.Errorf("ThirdManPct = %v, want nil (only 2 teammates observed)", pos.ThirdManPct)
	}
	if pos.AvgDistanceToBallM != 19 {
		t.Errorf("AvgDistanceToBallM = %v, want 19", pos.AvgDistanceToBallM)
	}
	if pos.AvgDistanceToNearestTeammateM != 76 {
		t.Errorf("AvgDistanceToNearestTeammateM = %v, want 76", pos.AvgDistanceToNearestTeammateM)
	}
}

func TestRunPositioningEmptyFramesReturnsZeroValue(t *testing.T) {
	pos := RunPositioning(nil, "p1")
	if pos.TimeOffensiveThirdS != 0 || pos.AvgDistanceToBallM != 0 {
		t.Errorf("expected a zero value for no frames, got %+v", pos)
	}
}
