package analysis

import (
	"testing"

	"github.com/rlcoach/replay-analysis/internal/model"
)

func TestRunKickoffSummaryAggregatesApproachAndRole(t *testing.T) {
	ttft := 0.4
	events := model.EventSet{
		Kickoffs: []model.KickoffEvent{
			{
				Players: []model.KickoffPlayerResult{
					{PlayerID: "p1", Role: model.RoleGo, ApproachType: model.ApproachSpeedflip, TimeToFirstTouch: &ttft},
				},
				FirstTouchPlayer: strPtr("p1"),
			},
		},
	}
	ks := RunKickoffSummary(events, "p1")
	if ks.ApproachCounts[model.ApproachSpeedflip] != 1 {
		t.Errorf("ApproachCounts[SPEEDFLIP] = %d, want 1", ks.ApproachCounts[model.ApproachSpeedflip])
	}
	if ks.RoleCounts[model.RoleGo] != 1 {
		t.Errorf("RoleCounts[GO] = %d, want 1", ks.RoleCounts[model.RoleGo])
	}
	if ks.FirstPossessionCount != 1 {
		t.Errorf("FirstPossessionCount = %d, want 1", ks.FirstPossessionCount)
	}
	if ks.AvgTimeToFirstTouchS != 0.4 {
		t.Errorf("AvgTimeToFirstTouchS = %v, want 0.4", ks.AvgTimeToFirstTouchS)
	}
}

func strPtr(s string) *string { return &s }

func TestRunTeamKickoffSummaryTalliesOutcomesPerTeam(t *testing.T) {
	events := model.EventSet{
		Kickoffs: []model.KickoffEvent{
			{Outcome: model.OutcomeFirstPossessionBlue},
			{Outcome: model.OutcomeFirstPossessionBlue},
			{Outcome: model.OutcomeFirstPossessionOrange},
			{Outcome: model.OutcomeNeutral},
		},
	}
	ts := RunTeamKickoffSummary(events)
	if ts.FirstPossessionCounts[model.TeamBlue] != 2 {
		t.Errorf("Blue count = %d, want 2", ts.FirstPossessionCounts[model.TeamBlue])
	}
	if ts.FirstPossessionCounts[model.TeamOrange] != 1 {
		t.Errorf("Orange count = %d, want 1", ts.FirstPossessionCounts[model.TeamOrange])
	}
}
