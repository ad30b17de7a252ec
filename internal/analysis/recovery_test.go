package analysis

import (
	"testing"

	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

func recoveryFrame(t, z, speed float64, onGround bool) model.Frame {
	return model.Frame{
		Timestamp: t,
		Players:   []model.PlayerFrame{{PlayerID: "p1", Position: geom.Vec3{Z: z}, Velocity: geom.Vec3{X: speed}, OnGround: onGround}},
	}
}

func TestRunRecoveryGradesAnImmediateStableLandingExcellent(t *testing.T) {
	frames := []model.Frame{
		recoveryFrame(0, 17, 1000, true),
		recoveryFrame(0.1, 250, 1000, false),
		recoveryFrame(0.2, 50, 1000, false),
		recoveryFrame(0.25, 17, 1000, true),
		recoveryFrame(0.35, 17, 1000, true),
	}
	r := RunRecovery(frames, "p1")
	if len(r.Episodes) != 1 {
		t.Fatalf("Episodes = %d, want 1", len(r.Episodes))
	}
	ep := r.Episodes[0]
	if ep.PeakHeight != 250 {
		t.Errorf("PeakHeight = %v, want 250", ep.PeakHeight)
	}
	if ep.TimeAirborneS != 0.15 {
		t.Errorf("TimeAirborneS = %v, want 0.15", ep.TimeAirborneS)
	}
	if ep.Quality != RecoveryExcellent {
		t.Errorf("Quality = %v, want EXCELLENT", ep.Quality)
	}
}

func TestRunRecoveryGradesAHardCrashLandingFailed(t *testing.T) {
	frames := []model.Frame{
		recoveryFrame(0, 17, 1000, true),
		recoveryFrame(0.1, 250, 1000, false),
		recoveryFrame(0.2, 17, 1000, true),
	}
	r := RunRecovery(frames, "p1")
	if len(r.Episodes) != 1 {
		t.Fatalf("Episodes = %d, want 1", len(r.Episodes))
	}
	if r.Episodes[0].Quality != RecoveryFailed {
		t.Errorf("Quality = %v, want FAILED", r.Episodes[0].Quality)
	}
}

func TestRunRecoveryNoAirborneTimeProducesNoEpisodes(t *testing.T) {
	frames := []model.Frame{recoveryFrame(0, 17, 0, true), recoveryFrame(0.1, 17, 0, true)}
	r := RunRecovery(frames, "p1")
	if len(r.Episodes) != 0 {
		t.Errorf("expected no recovery episodes while grounded, got %d", len(r.Episodes))
	}
}
