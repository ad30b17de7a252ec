package analysis

import (
	"github.com/rlcoach/replay-analysis/internal/constants"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// Heatmaps holds three HeatmapRows x HeatmapCols grids for one player,
// each normalized into [0,1].
type Heatmaps struct {
	Occupancy    [HeatmapRows][HeatmapCols]float64
	TouchDensity [HeatmapRows][HeatmapCols]float64
	BoostDensity [HeatmapRows][HeatmapCols]float64
}

// RunHeatmaps builds occupancy, touch-density, and boost-pickup-density
// grids for playerID over the full pitch extent.
func RunHeatmaps(frames []model.Frame, events model.EventSet, playerID string) Heatmaps {
	var h Heatmaps
	var occCounts, touchCounts, boostCounts [HeatmapRows][HeatmapCols]float64

	for _, f := range frames {
		p, ok := f.PlayerByID(playerID)
		if !ok {
			continue
		}
		c, r := cellFor(p.Position.X, p.Position.Y)
		occCounts[r][c]++
	}
	for _, t := range events.Touches {
		if t.PlayerID != playerID {
			continue
		}
		c, r := cellFor(t.Location.X, t.Location.Y)
		touchCounts[r][c]++
	}
	for _, pk := range events.BoostPickups {
		if pk.PlayerID != playerID {
			continue
		}
		c, r := cellFor(pk.Location.X, pk.Location.Y)
		weight := 1.0
		if pk.PadType == model.PadBig {
			weight = 2.0
		}
		boostCounts[r][c] += weight
	}

	normalizeSum(&occCounts, &h.Occupancy)
	normalizeMax(&touchCounts, &h.TouchDensity)
	normalizeMax(&boostCounts, &h.BoostDensity)
	return h
}

func cellFor(x, y float64) (col, row int) {
	u := (x + constants.SideWallX) / (2 * constants.SideWallX)
	v := (y + constants.BackWallY) / (2 * constants.BackWallY)
	col = int(u * HeatmapCols)
	row = int(v * HeatmapRows)
	if col < 0 {
		col = 0
	}
	if col >= HeatmapCols {
		col = HeatmapCols - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= HeatmapRows {
		row = HeatmapRows - 1
	}
	return col, row
}

func normalizeSum(counts *[HeatmapRows][HeatmapCols]float64, out *[HeatmapRows][HeatmapCols]float64) {
	var total float64
	for r := 0; r < HeatmapRows; r++ {
		for c := 0; c < HeatmapCols; c++ {
			total += counts[r][c]
		}
	}
	if total == 0 {
		return
	}
	for r := 0; r < HeatmapRows; r++ {
		for c := 0; c < HeatmapCols; c++ {
			out[r][c] = counts[r][c] / total
		}
	}
}

func normalizeMax(counts *[HeatmapRows][HeatmapCols]float64, out *[HeatmapRows][HeatmapCols]float64) {
	var max float64
	for r := 0; r < HeatmapRows; r++ {
		for c := 0; c < HeatmapCols; c++ {
			if counts[r][c] > max {
				max = counts[r][c]
			}
		}
	}
	if max == 0 {
		return
	}
	for r := 0; r < HeatmapRows; r++ {
		for c := 0; c < HeatmapCols; c++ {
			out[r][c] = counts[r][c] / max
		}
	}
}
