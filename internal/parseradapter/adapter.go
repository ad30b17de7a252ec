// Package parseradapter defines the boundary between this module and the
// low-level replay bitstream decoder: a pluggable interface the pipeline
// consumes, never implements. Concrete decoders live outside this module;
// this package only carries the contract and one reference adapter
// (NullAdapter) used for header-only reports.
package parseradapter

import (
	"fmt"

	"github.com/rlcoach/replay-analysis/internal/model"
)

// HeaderParseError wraps an unrecoverable header-parsing failure from an
// adapter.
type HeaderParseError struct {
	Adapter string
	Err     error
}

func (e *HeaderParseError) Error() string {
	return fmt.Sprintf("parse header via %s: %v", e.Adapter, e.Err)
}

func (e *HeaderParseError) Unwrap() error { return e.Err }

// RawPlayerFrame is one player's state as handed back by an adapter, before
// normalization. Position, Velocity and Rotation are accepted in whatever
// shape the adapter naturally produces (geom.Vec3, [3]float64, or
// map[string]float64 with x/y/z keys); Rotation may additionally be a
// geom.Rotation or a legacy (x=pitch, y=yaw, z=roll) vector. Normalization
// is the only place that cares about this polymorphism.
type RawPlayerFrame struct {
	PlayerID   string
	Team       *model.Team
	Position   any
	Velocity   any
	Rotation   any
	Boost      any
	Supersonic *bool
	OnGround   *bool
	Demolished *bool
}

// RawBallFrame is the ball's state as handed back by an adapter, before
// normalization. A nil Position/Velocity defaults to the kickoff rest
// state during frame assembly.
type RawBallFrame struct {
	Position        any
	Velocity        any
	AngularVelocity any
}

// RawFrame is one adapter-produced sample, before normalization.
type RawFrame struct {
	Timestamp      float64
	Ball           *RawBallFrame
	Players        []RawPlayerFrame
	BoostPadEvents []model.BoostPadEvent
}

// FrameStream is an adapter's full network-data output.
type FrameStream struct {
	Frames   []RawFrame
	Warnings []string
}

// Adapter is the contract a low-level replay decoder must satisfy to feed
// this pipeline. Implementations live outside this module.
type Adapter interface {
	// Name identifies the adapter for diagnostics.
	Name() string
	// SupportsNetworkParsing reports whether ParseNetwork can ever return
	// non-nil data for this adapter.
	SupportsNetworkParsing() bool
	// BackendChain names the chain of implementations this adapter
	// delegates to, if any (for adapters that wrap multiple decoders).
	BackendChain() []string
	// ParseHeader extracts header metadata. Required; failures are
	// unrecoverable and must be wrapped in *HeaderParseError by the caller.
	ParseHeader(path string) (model.Header, error)
	// ParseNetwork extracts the full frame-by-frame stream. Returns
	// (nil, nil) when the adapter does not support network parsing at
	// all; returns a non-nil, possibly-empty stream with diagnostic
	// Warnings when it tried and failed.
	ParseNetwork(path string) (*FrameStream, error)
}
