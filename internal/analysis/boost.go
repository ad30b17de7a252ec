package analysis

import (
	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// BoostEconomy is the boost-usage analyzer.
type BoostEconomy struct {
	TimeZeroBoostS    float64
	TimeHundredBoostS float64
	MeanBoost         float64
	WastedBoost       float64
	AmountCollected   float64
	AmountStolen      float64
	OverfillWasted    float64
	BPM               float64
	BCPM              float64
}

// RunBoostEconomy walks the frame list for scope's player(s), accumulating
// boost-state time buckets and a waste heuristic, then folds in pickup
// totals and overfill.
func RunBoostEconomy(frames []model.Frame, events model.EventSet, scope Scope, durationMinutes float64) BoostEconomy {
	idx := playerTeamIndex(frames)
	var b BoostEconomy
	if len(frames) == 0 {
		return b
	}

	durations := frameDurations(frames)
	var boostSum, boostSamples float64
	prevBoost := map[string]int{}
	prevSpeed := map[string]float64{}

	for fi, f := range frames {
		dt := durations[fi]
		for _, p := range f.Players {
			if !scope.IncludesPlayer(p.PlayerID, idx) {
				continue
			}
			boostSum += float64(p.Boost)
			boostSamples++
			if p.Boost <= 3 {
				b.TimeZeroBoostS += dt
			}
			if p.Boost >= 99 {
				b.TimeHundredBoostS += dt
			}

			speed := p.Velocity.Magnitude()
			if prev, ok := prevBoost[p.PlayerID]; ok {
				consumed := float64(prev - p.Boost)
				if consumed > 0 {
					if p.Supersonic {
						b.WastedBoost += 0.7 * consumed
					} else if speed <= prevSpeed[p.PlayerID] {
						b.WastedBoost += 0.3 * consumed
					}
				}
			}
			prevBoost[p.PlayerID] = p.Boost
			prevSpeed[p.PlayerID] = speed
		}
	}
	if boostSamples > 0 {
		b.MeanBoost = geom.Round2(boostSum / boostSamples)
	}

	for _, pk := range events.BoostPickups {
		if !scope.IncludesPlayer(pk.PlayerID, idx) {
			continue
		}
		b.AmountCollected += pk.BoostGain
		if pk.Stolen {
			b.AmountStolen += pk.BoostGain
		}

		if pk.BoostBefore >= 80 {
			if pk.PadType == model.PadBig {
				floor := pk.BoostBefore
				if floor < 85 {
					floor = 85
				}
				if wasted := 100.0 - (pk.BoostAfter - floor); wasted > 0 {
					b.OverfillWasted += wasted
				}
			} else if wasted := 12.0 - pk.BoostGain; wasted > 0 {
				b.OverfillWasted += wasted
			}
		}
	}

	if durationMinutes <= 0 {
		durationMinutes = 1
	}
	b.BPM = geom.Round2(b.AmountCollected / durationMinutes)

	pickupCount := 0
	for _, pk := range events.BoostPickups {
		if scope.IncludesPlayer(pk.PlayerID, idx) {
			pickupCount++
		}
	}
	b.BCPM = geom.Round2(float64(pickupCount) / durationMinutes)

	b.TimeZeroBoostS = geom.Round2(b.TimeZeroBoostS)
	b.TimeHundredBoostS = geom.Round2(b.TimeHundredBoostS)
	b.WastedBoost = geom.Round2(b.WastedBoost)
	b.AmountCollected = geom.Round2(b.AmountCollected)
	b.AmountStolen = geom.Round2(b.AmountStolen)
	b.OverfillWasted = geom.Round2(b.OverfillWasted)
	return b
}
