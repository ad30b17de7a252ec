package events

import (
	"fmt"
	"sort"

	"github.com/rlcoach/replay-analysis/internal/constants"
	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
)

// teamSides samples the first 120 frames and reports, per team, the sign
// of the mean Y of that team's players — used to decide whether a pickup
// on the opposite side of the field counts as "stolen."
func teamSides(frames []model.Frame) map[model.Team]float64 {
	const sampleFrames = 120
	sums := map[model.Team]float64{}
	counts := map[model.Team]int{}

	n := len(frames)
	if n > sampleFrames {
		n = sampleFrames
	}
	for i := 0; i < n; i++ {
		for _, p := range frames[i].Players {
			sums[p.Team] += p.Position.Y
			counts[p.Team]++
		}
	}

	sides := map[model.Team]float64{}
	for _, team := range []model.Team{model.TeamBlue, model.TeamOrange} {
		if counts[team] == 0 {
			if team == model.TeamBlue {
				sides[team] = -1
			} else {
				sides[team] = 1
			}
			continue
		}
		mean := sums[team] / float64(counts[team])
		if mean < 0 {
			sides[team] = -1
		} else {
			sides[team] = 1
		}
	}
	return sides
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

func isStolen(sides map[model.Team]float64, team model.Team, padY float64) bool {
	if abs(padY) <= PadNeutralTolerance {
		return false
	}
	return sign(padY) != sides[team]
}

// padAvailability tracks, per pad id, the timestamp at which it becomes
// collectible again.
type padAvailability struct {
	availableAt map[int]float64
}

func newPadAvailability() *padAvailability {
	return &padAvailability{availableAt: map[int]float64{}}
}

func (a *padAvailability) isAvailable(padID int, t float64) bool {
	at, ok := a.availableAt[padID]
	if !ok {
		return true
	}
	return t+PadRespawnTolerance >= at
}

func (a *padAvailability) markCollected(padID int, t, respawn float64) {
	a.availableAt[padID] = t + respawn
}

const PadRespawnTolerance = constants.PadRespawnTolerance

// DetectBoostPickups emits one BoostPickupEvent per detected pad pickup,
// preferring parser-provided pad events when present and falling back to
// a boost-delta heuristic otherwise. Results are merged across the same
// (player, pad) within BoostPickupMergeWindow.
func DetectBoostPickups(frames []model.Frame) []model.BoostPickupEvent {
	if len(frames) == 0 {
		return nil
	}

	hasPadEvents := false
	for _, f := range frames {
		if len(f.BoostPadEvents) > 0 {
			hasPadEvents = true
			break
		}
	}

	sides := teamSides(frames)
	avail := newPadAvailability()

	var pickups []model.BoostPickupEvent
	if hasPadEvents {
		pickups = detectFromPadEvents(frames, avail, sides)
	} else {
		pickups = detectFromDeltaHeuristic(frames, avail, sides)
	}

	return mergePickups(pickups)
}

func detectFromPadEvents(frames []model.Frame, avail *padAvailability, sides map[model.Team]float64) []model.BoostPickupEvent {
	var pickups []model.BoostPickupEvent

	for _, f := range frames {
		for _, ev := range f.BoostPadEvents {
			if !ev.Collected {
				continue
			}
			if ev.PadID < 0 || ev.PadID >= len(constants.BoostPads) {
				continue
			}
			pad := constants.BoostPads[ev.PadID]

			if !avail.isAvailable(pad.ID, ev.Timestamp) {
				continue
			}

			playerID := ev.PlayerID
			player, ok := f.PlayerByID(playerID)
			if !ok {
				for idx, p := range f.Players {
					if playerID == fmt.Sprintf("player_%d", idx) {
						player = p
						ok = true
						break
					}
				}
			}
			if !ok {
				avail.markCollected(pad.ID, ev.Timestamp, pad.Respawn)
				continue
			}

			before := float64(player.Boost)
			capacity := pad.Capacity()
			after := before + capacity
			if after > 100 {
				after = 100
			}
			gain := after - before
			if gain < 0 {
				gain = 0
			}

			padType := model.PadSmall
			if pad.Type == constants.PadBig {
				padType = model.PadBig
			}

			pickups = append(pickups, model.BoostPickupEvent{
				T:           ev.Timestamp,
				PlayerID:    player.PlayerID,
				PadType:     padType,
				Stolen:      isStolen(sides, player.Team, pad.Position.Y),
				PadID:       pad.ID,
				Location:    pad.Position,
				BoostBefore: before,
				BoostAfter:  after,
				BoostGain:   gain,
			})
			avail.markCollected(pad.ID, ev.Timestamp, pad.Respawn)
		}
	}
	return pickups
}

func detectFromDeltaHeuristic(frames []model.Frame, avail *padAvailability, sides map[model.Team]float64) []model.BoostPickupEvent {
	var pickups []model.BoostPickupEvent
	prevBoost := map[string]int{}

	windowByPlayer := map[string][]posSample{}

	for fi, f := range frames {
		for _, p := range f.Players {
			windowByPlayer[p.PlayerID] = append(windowByPlayer[p.PlayerID], posSample{f.Timestamp, p.Position})
			w := windowByPlayer[p.PlayerID]
			cut := 0
			for cut < len(w) && f.Timestamp-w[cut].t > 0.4 {
				cut++
			}
			windowByPlayer[p.PlayerID] = w[cut:]

			prev, known := prevBoost[p.PlayerID]
			prevBoost[p.PlayerID] = p.Boost
			if !known {
				continue
			}
			delta := float64(p.Boost - prev)
			if delta < BoostPickupMinGain {
				continue
			}
			// Respawn fill heuristic: ~33 boost granted with the player not
			// near any pad looks like a post-demo respawn refill, not a pickup.
			if delta >= 30 && delta <= 36 && !nearAnyPad(p.Position, 400) {
				continue
			}

			padID, padDist := bestPadCandidate(windowByPlayer[p.PlayerID], p.Boost-int(delta), delta, avail, f.Timestamp)
			if padID < 0 {
				continue
			}
			pad := constants.BoostPads[padID]
			if padDist > pad.Radius*3 {
				continue
			}

			padType := model.PadSmall
			if pad.Type == constants.PadBig {
				padType = model.PadBig
			}

			before := float64(p.Boost) - delta
			pickups = append(pickups, model.BoostPickupEvent{
				T:           f.Timestamp,
				PlayerID:    p.PlayerID,
				PadType:     padType,
				Stolen:      isStolen(sides, p.Team, pad.Position.Y),
				PadID:       pad.ID,
				Frame:       fi,
				Location:    pad.Position,
				BoostBefore: before,
				BoostAfter:  float64(p.Boost),
				BoostGain:   delta,
			})
			avail.markCollected(pad.ID, f.Timestamp, pad.Respawn)
		}
	}
	return pickups
}

func nearAnyPad(pos geom.Vec3, radius float64) bool {
	for _, pad := range constants.BoostPads {
		if pos.PlanarDistance(pad.Position) <= radius {
			return true
		}
	}
	return false
}

// posSample is one player position sample in the sliding window
// bestPadCandidate scans for the nearest pad to a boost pickup.
type posSample struct {
	t   float64
	pos geom.Vec3
}

// bestPadCandidate scores every pad by proximity across the recent
// position window, weighted toward pads whose capacity best explains the
// observed gain, and returns the lowest-score candidate's id and distance.
func bestPadCandidate(window []posSample, approxBoostBefore int, observedGain float64, avail *padAvailability, now float64) (int, float64) {
	type scored struct {
		id    int
		score float64
		dist  float64
	}
	var candidates []scored

	for _, pad := range constants.BoostPads {
		if !avail.isAvailable(pad.ID, now) {
			continue
		}
		minDist := -1.0
		for _, s := range window {
			d := s.pos.PlanarDistance(pad.Position)
			if minDist < 0 || d < minDist {
				minDist = d
			}
		}
		if minDist < 0 || minDist > pad.Radius*4 {
			continue
		}
		room := 100 - approxBoostBefore
		expectedGain := pad.Capacity()
		if expectedGain > float64(room) {
			expectedGain = float64(room)
		}
		capacityError := abs(expectedGain - observedGain)
		score := minDist/100.0 + capacityError
		candidates = append(candidates, scored{pad.ID, score, minDist})
	}
	if len(candidates) == 0 {
		return -1, 0
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].score < candidates[j].score })
	return candidates[0].id, candidates[0].dist
}

func mergePickups(pickups []model.BoostPickupEvent) []model.BoostPickupEvent {
	sort.SliceStable(pickups, func(i, j int) bool { return pickups[i].T < pickups[j].T })

	merged := make([]model.BoostPickupEvent, 0, len(pickups))
	lastIndex := map[string]int{}

	for _, p := range pickups {
		key := fmt.Sprintf("%s:%d", p.PlayerID, p.PadID)
		if idx, ok := lastIndex[key]; ok {
			prev := &merged[idx]
			if p.T-prev.T <= BoostPickupMergeWindow {
				prev.BoostGain += p.BoostGain
				prev.BoostAfter = p.BoostAfter
				prev.T = p.T
				continue
			}
		}
		merged = append(merged, p)
		lastIndex[key] = len(merged) - 1
	}
	return merged
}
