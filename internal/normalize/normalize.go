// Package normalize turns an adapter's raw header + frame stream into the
// canonical Frame slice, player identity table and measured frame rate the
// rest of the pipeline consumes. This is the one place parser-output
// polymorphism (loose position/rotation shapes, frame ids that differ from
// header ids) gets resolved; everything downstream reads canonical types
// only.
package normalize

import (
	"math"
	"sort"

	"github.com/rlcoach/replay-analysis/internal/constants"
	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/identity"
	"github.com/rlcoach/replay-analysis/internal/model"
	"github.com/rlcoach/replay-analysis/internal/parseradapter"
)

// Result is everything normalization produces.
type Result struct {
	Frames      []model.Frame
	Identities  []model.PlayerIdentity
	Aliases     *identity.AliasTable
	FrameRateHz float64
	Warnings    []string
}

// sampleWindow is how many leading frames are inspected to discover
// frame-id -> header-id aliases.
const sampleWindow = 10

// Normalize builds the canonical frame stream from a header and an
// optional raw stream (nil for header-only mode).
func Normalize(header model.Header, stream *parseradapter.FrameStream) Result {
	identities := identity.BuildIdentities(header.Players)
	aliases := identity.NewAliasTable(identities)

	var warnings []string
	var raw []parseradapter.RawFrame
	if stream != nil {
		raw = stream.Frames
		warnings = append(warnings, stream.Warnings...)
	}

	fps := MeasureFrameRate(raw)

	if len(raw) == 0 {
		return Result{
			Frames:      []model.Frame{sentinelFrame()},
			Identities:  identities,
			Aliases:     aliases,
			FrameRateHz: fps,
			Warnings:    warnings,
		}
	}

	registerAliases(raw, identities, aliases)

	frames := make([]model.Frame, 0, len(raw))
	dropped := 0
	for _, rf := range raw {
		f, ok := assembleFrame(rf, aliases)
		if !ok {
			dropped++
			continue
		}
		frames = append(frames, f)
	}
	if dropped > 0 {
		warnings = append(warnings, model.WarnFrameDropped)
	}

	if len(frames) == 0 {
		frames = []model.Frame{sentinelFrame()}
	}

	sort.SliceStable(frames, func(i, j int) bool {
		return frames[i].Timestamp < frames[j].Timestamp
	})

	return Result{
		Frames:      frames,
		Identities:  identities,
		Aliases:     aliases,
		FrameRateHz: fps,
		Warnings:    warnings,
	}
}

func sentinelFrame() model.Frame {
	return model.Frame{
		Timestamp: 0,
		Ball: model.BallFrame{
			Position: geom.Vec3{X: 0, Y: 0, Z: constants.KickoffBallZ},
		},
		Players: nil,
	}
}

// MeasureFrameRate computes the median delta between consecutive
// timestamps and returns 1/median, clamped to [1, 240]. Falls back to
// 30.0 Hz with fewer than two frames.
func MeasureFrameRate(frames []parseradapter.RawFrame) float64 {
	if len(frames) < 2 {
		return 30.0
	}
	deltas := make([]float64, 0, len(frames)-1)
	for i := 1; i < len(frames); i++ {
		d := frames[i].Timestamp - frames[i-1].Timestamp
		if d > 0 {
			deltas = append(deltas, d)
		}
	}
	if len(deltas) == 0 {
		return 30.0
	}
	sort.Float64s(deltas)
	median := deltas[len(deltas)/2]
	if len(deltas)%2 == 0 {
		median = (deltas[len(deltas)/2-1] + deltas[len(deltas)/2]) / 2
	}
	if median <= 0 {
		return 30.0
	}
	fps := 1 / median
	if fps < 1 {
		return 1
	}
	if fps > 240 {
		return 240
	}
	return fps
}

// registerAliases samples the first sampleWindow frames, matching frame
// player ids to header identities positionally when they differ.
func registerAliases(raw []parseradapter.RawFrame, identities []model.PlayerIdentity, aliases *identity.AliasTable) {
	n := len(raw)
	if n > sampleWindow {
		n = sampleWindow
	}
	seen := map[string]struct{}{}
	position := 0
	for i := 0; i < n; i++ {
		for _, p := range raw[i].Players {
			if _, ok := seen[p.PlayerID]; ok {
				continue
			}
			seen[p.PlayerID] = struct{}{}
			if _, known := aliases.Resolve(p.PlayerID); known {
				continue
			}
			if position < len(identities) {
				aliases.RegisterAlias(p.PlayerID, identities[position].CanonicalID)
			}
			position++
		}
	}
}

func assembleFrame(rf parseradapter.RawFrame, aliases *identity.AliasTable) (model.Frame, bool) {
	ball := model.BallFrame{
		Position: geom.Vec3{X: 0, Y: 0, Z: constants.KickoffBallZ},
	}
	if rf.Ball != nil {
		if rf.Ball.Position != nil {
			ball.Position = ToFieldCoords(rf.Ball.Position)
		}
		if rf.Ball.Velocity != nil {
			ball.Velocity = ToFieldCoords(rf.Ball.Velocity)
		}
		if rf.Ball.AngularVelocity != nil {
			ball.AngularVelocity = ToFieldCoords(rf.Ball.AngularVelocity)
		}
	}

	players := make([]model.PlayerFrame, 0, len(rf.Players))
	for _, rp := range rf.Players {
		canonicalID, ok := aliases.Resolve(rp.PlayerID)
		if !ok {
			canonicalID = rp.PlayerID
		}

		team := model.TeamBlue
		if rp.Team != nil {
			team = *rp.Team
		} else if id, ok := aliases.Identity(canonicalID); ok {
			team = id.Team
		}

		boost := clampBoost(rp.Boost)

		pf := model.PlayerFrame{
			PlayerID:   canonicalID,
			Team:       team,
			Position:   ToFieldCoords(rp.Position),
			Velocity:   ToFieldCoords(rp.Velocity),
			Rotation:   ToRotation(rp.Rotation),
			Boost:      boost,
			Supersonic: boolOrDefault(rp.Supersonic, false),
			OnGround:   boolOrDefault(rp.OnGround, true),
			Demolished: boolOrDefault(rp.Demolished, false),
		}
		players = append(players, pf)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].PlayerID < players[j].PlayerID })

	return model.Frame{
		Timestamp:      rf.Timestamp,
		Ball:           ball,
		Players:        players,
		BoostPadEvents: rf.BoostPadEvents,
	}, true
}

func boolOrDefault(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func clampBoost(v any) int {
	f, ok := toFloat(v)
	if !ok {
		return 0
	}
	if f < 0 {
		f = 0
	}
	if f > 100 {
		f = 100
	}
	return int(math.Round(f))
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

// ToFieldCoords accepts a position/velocity in any of the shapes an
// adapter may produce and clamps it into the pitch bounds extended 10%.
// Invalid or missing values map to the zero vector.
func ToFieldCoords(v any) geom.Vec3 {
	vec := coerceVec3(v)
	return vec.Clamp(-constants.ClampX, constants.ClampX, -constants.ClampY, constants.ClampY, constants.ClampZMin, constants.ClampZMax)
}

func coerceVec3(v any) geom.Vec3 {
	switch t := v.(type) {
	case geom.Vec3:
		return t
	case [3]float64:
		return geom.Vec3{X: t[0], Y: t[1], Z: t[2]}
	case []float64:
		if len(t) == 3 {
			return geom.Vec3{X: t[0], Y: t[1], Z: t[2]}
		}
	case map[string]float64:
		return geom.Vec3{X: t["x"], Y: t["y"], Z: t["z"]}
	}
	return geom.Vec3{}
}

// ToRotation accepts either a canonical geom.Rotation or a legacy
// three-component vector (x=pitch, y=yaw, z=roll) and returns the
// canonical form.
func ToRotation(v any) geom.Rotation {
	switch t := v.(type) {
	case geom.Rotation:
		return t
	case geom.Vec3:
		return geom.FromLegacyVec3(t)
	case [3]float64:
		return geom.FromLegacyVec3(geom.Vec3{X: t[0], Y: t[1], Z: t[2]})
	case map[string]float64:
		if _, ok := t["pitch"]; ok {
			return geom.Rotation{Pitch: t["pitch"], Yaw: t["yaw"], Roll: t["roll"]}
		}
		return geom.FromLegacyVec3(geom.Vec3{X: t["x"], Y: t["y"], Z: t["z"]})
	}
	return geom.Rotation{}
}
