package analysis

import (
	"testing"

	"github.com/rlcoach/replay-analysis/internal/model"
)

func TestRunChallengeSummaryFlipsOutcomeForSecondPlayer(t *testing.T) {
	events := model.EventSet{
		Challenges: []model.ChallengeEvent{
			{FirstPlayer: "p1", SecondPlayer: "p2", Outcome: model.ChallengeWin, DepthM: 2, RiskFirst: 0.3, RiskSecond: 0.1},
		},
	}

	first := RunChallengeSummary(events, "p1")
	if first.Wins != 1 {
		t.Errorf("p1 (first player) Wins = %d, want 1", first.Wins)
	}
	if first.FirstToBallPct != 100 {
		t.Errorf("p1 FirstToBallPct = %v, want 100", first.FirstToBallPct)
	}

	second := RunChallengeSummary(events, "p2")
	if second.Losses != 1 {
		t.Errorf("p2 (second player) Losses = %d, want 1 (outcome flips from p2's perspective)", second.Losses)
	}
	if second.FirstToBallPct != 0 {
		t.Errorf("p2 FirstToBallPct = %v, want 0", second.FirstToBallPct)
	}
}

func TestRunChallengeSummaryIgnoresUninvolvedPlayer(t *testing.T) {
	events := model.EventSet{
		Challenges: []model.ChallengeEvent{{FirstPlayer: "p1", SecondPlayer: "p2", Outcome: model.ChallengeNeutral}},
	}
	cs := RunChallengeSummary(events, "bystander")
	if cs.Wins+cs.Losses+cs.Neutrals != 0 {
		t.Errorf("expected zero participations for an uninvolved player, got %+v", cs)
	}
}

func TestRunChallengeSummaryAveragesDepthAndRisk(t *testing.T) {
	events := model.EventSet{
		Challenges: []model.ChallengeEvent{
			{FirstPlayer: "p1", SecondPlayer: "p2", Outcome: model.ChallengeNeutral, DepthM: 4, RiskFirst: 0.4},
			{FirstPlayer: "p1", SecondPlayer: "p3", Outcome: model.ChallengeNeutral, DepthM: 2, RiskFirst: 0.2},
		},
	}
	cs := RunChallengeSummary(events, "p1")
	if cs.AvgDepthM != 3 {
		t.Errorf("AvgDepthM = %v, want 3", cs.AvgDepthM)
	}
	if cs.AvgRisk != 0.3 {
		t.Errorf("AvgRisk = %v, want 0.3", cs.AvgRisk)
	}
}
