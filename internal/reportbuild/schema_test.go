package reportbuild

import (
	"testing"

	"github.com/rlcoach/replay-analysis/internal/aggregator"
)

func validReport() *Report {
	return &Report{
		ReplayID:       "deadbeef",
		SchemaVersion:  SchemaVersion,
		GeneratedAtUTC: "2026-01-01T00:00:00Z",
		Metadata:       Metadata{Map: "stadium_p"},
		Teams: []TeamReport{
			{Name: "BLUE", PlayerIDs: []string{"p1"}},
			{Name: "ORANGE"},
		},
		Players: []PlayerReport{{CanonicalID: "p1", Team: "BLUE"}},
		Analysis: Analysis{
			PerTeam:   map[string]aggregator.TeamAnalysis{"BLUE": {}, "ORANGE": {}},
			PerPlayer: map[string]aggregator.PlayerAnalysis{"p1": {}},
		},
	}
}

func TestValidateAcceptsAWellFormedReport(t *testing.T) {
	if err := Validate(validReport()); err != nil {
		t.Errorf("Validate returned an error for a well-formed report: %v", err)
	}
}

func TestValidateRejectsMissingReplayID(t *testing.T) {
	r := validReport()
	r.ReplayID = ""
	if err := Validate(r); err == nil {
		t.Error("expected an error for a missing replay_id")
	}
}

func TestValidateRejectsWrongTeamCount(t *testing.T) {
	r := validReport()
	r.Teams = r.Teams[:1]
	if err := Validate(r); err == nil {
		t.Error("expected an error for fewer than 2 teams")
	}
}

func TestValidateRejectsPlayerMissingFromAnalysis(t *testing.T) {
	r := validReport()
	r.Players = append(r.Players, PlayerReport{CanonicalID: "p2", Team: "ORANGE"})
	if err := Validate(r); err == nil {
		t.Error("expected an error for a player absent from analysis.per_player")
	}
}
