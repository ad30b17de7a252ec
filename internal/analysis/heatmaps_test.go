package analysis

import (
	"testing"

	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

func TestRunHeatmapsOccupancyNormalizesToOne(t *testing.T) {
	frames := []model.Frame{
		{Players: []model.PlayerFrame{{PlayerID: "p1", Position: geom.Vec3{X: 0, Y: 0, Z: 17}}}},
		{Players: []model.PlayerFrame{{PlayerID: "p1", Position: geom.Vec3{X: 0, Y: 0, Z: 17}}}},
	}
	h := RunHeatmaps(frames, model.EventSet{}, "p1")

	var total float64
	for r := 0; r < HeatmapRows; r++ {
		for c := 0; c < HeatmapCols; c++ {
			total += h.Occupancy[r][c]
		}
	}
	if total < 0.999 || total > 1.001 {
		t.Errorf("occupancy grid sums to %v, want ~1.0", total)
	}
}

func TestRunHeatmapsBoostDensityWeightsBigPadsMore(t *testing.T) {
	events := model.EventSet{
		BoostPickups: []model.BoostPickupEvent{
			{PlayerID: "p1", PadType: model.PadSmall, Location: geom.Vec3{X: -4000, Y: -5000, Z: 17}},
			{PlayerID: "p1", PadType: model.PadBig, Location: geom.Vec3{X: 4000, Y: 5000, Z: 17}},
		},
	}
	h := RunHeatmaps(nil, events, "p1")

	var maxVal float64
	for r := 0; r < HeatmapRows; r++ {
		for c := 0; c < HeatmapCols; c++ {
			if h.BoostDensity[r][c] > maxVal {
				maxVal = h.BoostDensity[r][c]
			}
		}
	}
	if maxVal != 1.0 {
		t.Errorf("max-normalized boost density peak = %v, want 1.0 (the big pad cell)", maxVal)
	}
	if h.BoostDensity[0][0] != 0.5 {
		t.Errorf("small pad cell density = %v, want 0.5 (weight 1 against the big pad's 2)", h.BoostDensity[0][0])
	}
}

func TestRunHeatmapsIgnoresOtherPlayers(t *testing.T) {
	frames := []model.Frame{{Players: []model.PlayerFrame{{PlayerID: "other", Position: geom.Vec3{}}}}}
	h := RunHeatmaps(frames, model.EventSet{}, "p1")
	for r := 0; r < HeatmapRows; r++ {
		for c := 0; c < HeatmapCols; c++ {
			if h.Occupancy[r][c] != 0 {
				t.Fatalf("expected an all-zero occupancy grid for an uninvolved player, found nonzero at [%d][%d]", r, c)
			}
		}
	}
}
