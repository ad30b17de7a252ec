package reportbuild

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rlcoach/replay-analysis/internal/parseradapter"
)

func TestBuildReturnsUnreadableForMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.replay")
	r, errReport := Build(path, parseradapter.NullAdapter{})
	if r != nil {
		t.Fatalf("expected a nil report for a missing file, got %+v", r)
	}
	if errReport == nil || errReport.Error != "unreadable_replay_file" {
		t.Fatalf("errReport = %+v, want unreadable_replay_file", errReport)
	}
}

func TestBuildProducesHeaderOnlyReportForExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stub.replay")
	if err := os.WriteFile(path, []byte("stub"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r, errReport := Build(path, parseradapter.NullAdapter{})
	if errReport != nil {
		t.Fatalf("unexpected error report: %+v", errReport)
	}
	if r.SchemaVersion != SchemaVersion {
		t.Errorf("SchemaVersion = %q, want %q", r.SchemaVersion, SchemaVersion)
	}
	if r.Metadata.Map != "unknown" {
		t.Errorf("Metadata.Map = %q, want %q", r.Metadata.Map, "unknown")
	}
	if len(r.Teams) != 2 {
		t.Fatalf("Teams = %d, want 2", len(r.Teams))
	}
	if r.Teams[0].Name != "BLUE" || r.Teams[1].Name != "ORANGE" {
		t.Errorf("team names = %q, %q, want BLUE, ORANGE", r.Teams[0].Name, r.Teams[1].Name)
	}
	if len(r.Events.Timeline) != 0 {
		t.Errorf("expected an empty timeline for a header-only report, got %d entries", len(r.Events.Timeline))
	}
	if _, ok := r.Analysis.PerTeam["BLUE"]; !ok {
		t.Error("expected a BLUE entry in analysis.per_team")
	}
}
