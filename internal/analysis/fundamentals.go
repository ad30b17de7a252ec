package analysis

import (
	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// Fundamentals is the basic box-score analyzer: counts and a headline
// score derived from them.
type Fundamentals struct {
	Goals              int
	Assists            int
	Shots              int
	Saves              int
	DemosInflicted     int
	DemosTaken         int
	Score              float64
	ShootingPercentage float64
}

// RunFundamentals counts goals/assists/shots/saves/demos attributable to
// scope and derives the headline score and shooting percentage.
func RunFundamentals(frames []model.Frame, events model.EventSet, scope Scope) Fundamentals {
	idx := playerTeamIndex(frames)
	var f Fundamentals

	for _, g := range events.Goals {
		if g.Scorer != nil && scope.IncludesPlayer(*g.Scorer, idx) {
			f.Goals++
		}
		if g.Assist != nil && scope.IncludesPlayer(*g.Assist, idx) {
			f.Assists++
		}
	}

	for _, t := range events.Touches {
		if !scope.IncludesPlayer(t.PlayerID, idx) {
			continue
		}
		if t.Outcome == model.TouchShot {
			f.Shots++
		}
		if t.IsSave {
			f.Saves++
		}
	}

	for _, d := range events.Demos {
		if d.Attacker != nil && scope.IncludesPlayer(*d.Attacker, idx) {
			f.DemosInflicted++
		}
		if scope.IncludesPlayer(d.Victim, idx) {
			f.DemosTaken++
		}
	}

	f.Score = 100*float64(f.Goals) + 50*float64(f.Assists) + 20*float64(f.Shots) + 75*float64(f.Saves) + 25*float64(f.DemosInflicted)
	if f.Shots > 0 {
		f.ShootingPercentage = geom.Round2(float64(f.Goals) / float64(f.Shots) * 100)
	}
	return f
}
