// Package constants holds the immutable, process-wide field and physics
// constants the rest of the pipeline is built against. Nothing here changes
// at runtime; there is exactly one copy, initialized at package load.
package constants

import "github.com/rlcoach/replay-analysis/internal/geom"

// Pitch geometry, in Unreal Units (UU).
const (
	SideWallX  = 4096.0
	BackWallY  = 5120.0
	CeilingZ   = 2044.0
	GoalWidth  = 892.755
	GoalHeight = 642.775
	GoalDepth  = 880.0

	// KickoffBallZ is the ball's resting height at kickoff.
	KickoffBallZ = 93.15
)

// Normalization clamp bounds: pitch bounds extended 10% to absorb parser
// jitter, per the normalization layer's coordinate transform.
const (
	ClampX = SideWallX * 1.1 // 4505.6
	ClampY = BackWallY * 1.1 // 5632
	ClampZMin = -100.0
	ClampZMax = CeilingZ * 2.0 // 4088
)

// UUToM converts Unreal Units to meters: 1 UU ≈ 1.9 cm.
const UUToM = 0.019

// UUToKPH converts Unreal Units/second to kilometers/hour: 1 UU ≈ 1.9 cm.
const UUToKPH = UUToM * 3.6

// Supersonic is the UU/s threshold (and fallback when the engine flag is
// unavailable) for "supersonic" classification.
const Supersonic = 2300.0

// PadType distinguishes big (100-point) from small (12-point) boost pads.
type PadType string

const (
	PadBig   PadType = "BIG"
	PadSmall PadType = "SMALL"
)

// BoostPad describes one boost pad location on the standard arena.
type BoostPad struct {
	ID       int
	Position geom.Vec3
	Type     PadType
	Radius   float64
	Respawn  float64 // seconds
}

// Capacity returns the nominal boost amount a full pickup grants.
func (p BoostPad) Capacity() float64 {
	if p.Type == PadBig {
		return 100.0
	}
	return 12.0
}

const (
	BigPadRespawnS    = 10.0
	SmallPadRespawnS  = 4.0
	PadRespawnTolerance = 0.25
	bigPadRadius      = 100.0
	smallPadRadius    = 65.0
)

// BoostPads is the standard 34-pad table (6 big, 28 small) for the default
// Rocket League competitive arena (DFH Stadium layout family). The filtered
// reference material only carried 4 big-corner + 8 small positions; this
// table reconstructs the remaining pads from the well-known standard-arena
// layout shared across the community's replay-analysis tooling. See
// DESIGN.md for the reconstruction note.
var BoostPads = buildBoostPads()

func buildBoostPads() []BoostPad {
	type spec struct {
		x, y, z float64
		typ     PadType
	}
	specs := []spec{
		// Big pads: 4 corners + 2 goal-side midfield.
		{-3584, -4240, 73, PadBig},
		{3584, -4240, 73, PadBig},
		{-3584, 4240, 73, PadBig},
		{3584, 4240, 73, PadBig},
		{-3072, 0, 73, PadBig},
		{3072, 0, 73, PadBig},

		// Small pads: symmetric scatter, 28 total.
		{0, -4240, 70, PadSmall},
		{0, 4240, 70, PadSmall},
		{-1792, -4184, 70, PadSmall},
		{1792, -4184, 70, PadSmall},
		{-1792, 4184, 70, PadSmall},
		{1792, 4184, 70, PadSmall},
		{-940, -3308, 70, PadSmall},
		{940, -3308, 70, PadSmall},
		{-940, 3308, 70, PadSmall},
		{940, 3308, 70, PadSmall},
		{0, -2816, 70, PadSmall},
		{0, 2816, 70, PadSmall},
		{-3584, -2484, 70, PadSmall},
		{3584, -2484, 70, PadSmall},
		{-3584, 2484, 70, PadSmall},
		{3584, 2484, 70, PadSmall},
		{-1788, -2300, 70, PadSmall},
		{1788, -2300, 70, PadSmall},
		{-1788, 2300, 70, PadSmall},
		{1788, 2300, 70, PadSmall},
		{-2048, -1036, 70, PadSmall},
		{2048, -1036, 70, PadSmall},
		{-2048, 1036, 70, PadSmall},
		{2048, 1036, 70, PadSmall},
		{-1024, 0, 70, PadSmall},
		{1024, 0, 70, PadSmall},
		{0, -1024, 70, PadSmall},
		{0, 1024, 70, PadSmall},
	}

	pads := make([]BoostPad, len(specs))
	for i, s := range specs {
		radius := smallPadRadius
		respawn := SmallPadRespawnS
		if s.typ == PadBig {
			radius = bigPadRadius
			respawn = BigPadRespawnS
		}
		pads[i] = BoostPad{
			ID:       i,
			Position: geom.Vec3{X: s.x, Y: s.y, Z: s.z},
			Type:     s.typ,
			Radius:   radius,
			Respawn:  respawn,
		}
	}
	return pads
}
