// Package analysis implements the single-pass analyzers that turn a frame
// stream plus a detected event set into per-player and per-team
// statistics. Every analyzer is a pure function of (frames, events,
// optional player filter, optional team filter); none retains state
// between calls, and empty inputs yield the zero-value record for that
// analyzer's result type.
package analysis

import (
	"sort"

	"github.com/rlcoach/replay-analysis/internal/model"
)

// Scope narrows an analyzer to one player, one team, or the whole match
// when both fields are nil.
type Scope struct {
	PlayerID *string
	Team     *model.Team
}

// Includes reports whether a player frame falls within scope.
func (s Scope) Includes(p model.PlayerFrame) bool {
	if s.PlayerID != nil && p.PlayerID != *s.PlayerID {
		return false
	}
	if s.Team != nil && p.Team != *s.Team {
		return false
	}
	return true
}

// rosterFromFrames extracts the set of canonical player ids (and their
// team, from first appearance) seen across frames.
func rosterFromFrames(frames []model.Frame) []struct {
	ID   string
	Team model.Team
} {
	seen := map[string]model.Team{}
	var order []string
	for _, f := range frames {
		for _, p := range f.Players {
			if _, ok := seen[p.PlayerID]; !ok {
				seen[p.PlayerID] = p.Team
				order = append(order, p.PlayerID)
			}
		}
	}
	sort.Strings(order)
	out := make([]struct {
		ID   string
		Team model.Team
	}, len(order))
	for i, id := range order {
		out[i] = struct {
			ID   string
			Team model.Team
		}{id, seen[id]}
	}
	return out
}

// frameDurations returns the elapsed time each frame represents (distance
// to the next frame's timestamp; the last frame reuses the prior delta).
func frameDurations(frames []model.Frame) []float64 {
	d := make([]float64, len(frames))
	for i := 0; i < len(frames)-1; i++ {
		d[i] = frames[i+1].Timestamp - frames[i].Timestamp
		if d[i] < 0 {
			d[i] = 0
		}
	}
	if len(frames) > 1 {
		d[len(frames)-1] = d[len(frames)-2]
	} else if len(frames) == 1 {
		d[0] = 0
	}
	return d
}

// playerTeamIndex maps every canonical player id seen in frames to its
// team, so analyzers can resolve team-scoped filters on events that don't
// themselves carry a team field (e.g. touches, boost pickups).
func playerTeamIndex(frames []model.Frame) map[string]model.Team {
	idx := map[string]model.Team{}
	for _, f := range frames {
		for _, p := range f.Players {
			if _, ok := idx[p.PlayerID]; !ok {
				idx[p.PlayerID] = p.Team
			}
		}
	}
	return idx
}

// IncludesPlayer reports whether playerID falls within scope, resolving
// team membership through idx when the event itself carries no team.
func (s Scope) IncludesPlayer(playerID string, idx map[string]model.Team) bool {
	if s.PlayerID != nil {
		return *s.PlayerID == playerID
	}
	if s.Team != nil {
		team, ok := idx[playerID]
		return ok && team == *s.Team
	}
	return true
}
