package parseradapter

import (
	"os"

	"github.com/rlcoach/replay-analysis/internal/model"
)

// NullAdapter is a minimal, always-succeeding adapter: it reports a valid
// header-only match (two empty teams, zero score) and never supports
// network parsing. It serves two roles: the CLI's default adapter for
// header-only reports, and the adapter the reportbuild tests run the
// whole pipeline through. Detector and analyzer tests do not use it; they
// construct model.Frame values by hand.
type NullAdapter struct{}

var _ Adapter = NullAdapter{}

func (NullAdapter) Name() string                  { return "null" }
func (NullAdapter) SupportsNetworkParsing() bool  { return false }
func (NullAdapter) BackendChain() []string        { return nil }

// ParseHeader returns a minimal valid header. It only fails if the file
// does not exist, mirroring an adapter's baseline obligation to at least
// confirm the input is readable.
func (NullAdapter) ParseHeader(path string) (model.Header, error) {
	if _, err := os.Stat(path); err != nil {
		return model.Header{}, err
	}
	return model.Header{
		PlaylistID:  "unknown",
		MapName:     "unknown",
		TeamSize:    0,
		Team0Score:  0,
		Team1Score:  0,
		MatchLength: 0,
		Mutators:    map[string]string{},
		Players:     nil,
		Goals:       nil,
		Highlights:  nil,
		Warnings:    []string{model.WarnHeaderOnlyFallback},
	}, nil
}

// ParseNetwork always returns (nil, nil): this adapter never supports
// network parsing.
func (NullAdapter) ParseNetwork(path string) (*FrameStream, error) {
	return nil, nil
}
