package analysis

import (
	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// RecoveryQuality classifies how well a player recovered from an aerial.
type RecoveryQuality string

const (
	RecoveryExcellent RecoveryQuality = "EXCELLENT"
	RecoveryGood      RecoveryQuality = "GOOD"
	RecoveryAverage   RecoveryQuality = "AVERAGE"
	RecoveryPoor      RecoveryQuality = "POOR"
	RecoveryFailed    RecoveryQuality = "FAILED"
)

// RecoveryEvent is one assessed airborne episode.
type RecoveryEvent struct {
	TStart          float64
	TimeAirborneS   float64
	TimeToControlS  float64
	PeakHeight      float64
	MomentumRetained float64
	WasWavedash     bool
	Quality         RecoveryQuality
}

// Recovery is the per-player aerial-recovery analyzer.
type Recovery struct {
	Episodes            []RecoveryEvent
	AvgTimeToControlS   float64
	AvgMomentumRetained float64
	AvgPeakHeight       float64
}

// RunRecovery segments every airborne episode for playerID and scores the
// landing.
func RunRecovery(frames []model.Frame, playerID string) Recovery {
	var r Recovery

	type sample struct {
		t     float64
		z     float64
		speed float64
		onGround bool
	}
	var samples []sample
	for _, f := range frames {
		p, ok := f.PlayerByID(playerID)
		if !ok {
			continue
		}
		samples = append(samples, sample{f.Timestamp, p.Position.Z, p.Velocity.Magnitude(), p.OnGround})
	}

	i := 0
	for i < len(samples) {
		if samples[i].onGround || samples[i].z <= AirborneMinHeight {
			i++
			continue
		}
		start := i
		peak := samples[i].z
		for i < len(samples) && !samples[i].onGround {
			if samples[i].z > peak {
				peak = samples[i].z
			}
			i++
		}
		if i >= len(samples) {
			break
		}
		landIdx := i
		ep := RecoveryEvent{
			TStart:        samples[start].t,
			TimeAirborneS: geom.Round2(samples[landIdx].t - samples[start].t),
			PeakHeight:    geom.Round2(peak),
		}

		speedAtLanding := samples[landIdx].speed
		vzAtLanding := 0.0
		if landIdx > 0 {
			dt := samples[landIdx].t - samples[landIdx-1].t
			if dt > 0 {
				vzAtLanding = (samples[landIdx].z - samples[landIdx-1].z) / dt
			}
		}

		controlIdx := -1
		deadline := samples[landIdx].t + ControlTimeoutS
		for j := landIdx; j < len(samples) && samples[j].t <= deadline; j++ {
			if j+ControlFrameCount-1 < len(samples) {
				stable := true
				for k := j; k < j+ControlFrameCount-1; k++ {
					if abs(samples[k+1].speed-samples[k].speed) >= ControlDeltaVUU {
						stable = false
						break
					}
				}
				if stable {
					controlIdx = j
					break
				}
			}
		}
		if controlIdx >= 0 {
			ep.TimeToControlS = geom.Round2(samples[controlIdx].t - samples[landIdx].t)
		} else {
			ep.TimeToControlS = ControlTimeoutS
		}

		speedAfter := speedAtLanding
		afterIdx := controlIdx
		if afterIdx < 0 {
			afterIdx = landIdx
		}
		if afterIdx < len(samples) {
			speedAfter = samples[afterIdx].speed
		}
		if speedAtLanding > 0 {
			ep.MomentumRetained = speedAfter / speedAtLanding
			if ep.MomentumRetained > 1.0 {
				ep.MomentumRetained = 1.0
			}
			ep.MomentumRetained = geom.Round2(ep.MomentumRetained)
		}

		for j := landIdx; j < len(samples) && samples[j].t-samples[landIdx].t <= WavedashWindowS; j++ {
			if samples[j].speed > speedAtLanding*1.15 {
				ep.WasWavedash = true
				break
			}
		}

		ep.Quality = classifyRecovery(ep, vzAtLanding)
		r.Episodes = append(r.Episodes, ep)
	}

	if len(r.Episodes) > 0 {
		var ttc, mom, peak float64
		for _, ep := range r.Episodes {
			ttc += ep.TimeToControlS
			mom += ep.MomentumRetained
			peak += ep.PeakHeight
		}
		n := float64(len(r.Episodes))
		r.AvgTimeToControlS = geom.Round2(ttc / n)
		r.AvgMomentumRetained = geom.Round2(mom / n)
		r.AvgPeakHeight = geom.Round2(peak / n)
	}
	return r
}

func classifyRecovery(ep RecoveryEvent, vzAtLanding float64) RecoveryQuality {
	if vzAtLanding < FailedLandingVz {
		return RecoveryFailed
	}
	ttcScore := 1.0 - ep.TimeToControlS/ControlTimeoutS
	if ttcScore < 0 {
		ttcScore = 0
	}
	vzScore := 1.0 - abs(vzAtLanding)/800.0
	if vzScore < 0 {
		vzScore = 0
	}
	weighted := 0.4*ttcScore + 0.4*ep.MomentumRetained + 0.2*vzScore
	switch {
	case weighted >= 0.8:
		return RecoveryExcellent
	case weighted >= 0.6:
		return RecoveryGood
	case weighted >= 0.4:
		return RecoveryAverage
	default:
		return RecoveryPoor
	}
}
