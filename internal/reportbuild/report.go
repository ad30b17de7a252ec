// Package reportbuild assembles the final report document: header
// metadata, quality warnings, per-team and per-player rosters, the
// detected event streams, and the full analysis tree, each tagged for
// the exact JSON shape the published schema names. On any unrecoverable
// failure it produces the single-shape error record instead.
package reportbuild

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rlcoach/replay-analysis/internal/aggregator"
	"github.com/rlcoach/replay-analysis/internal/constants"
	"github.com/rlcoach/replay-analysis/internal/events"
	"github.com/rlcoach/replay-analysis/internal/model"
	"github.com/rlcoach/replay-analysis/internal/normalize"
	"github.com/rlcoach/replay-analysis/internal/parseradapter"
)

// SchemaVersion is the current published schema's semver string.
const SchemaVersion = "1.0.0"

// ErrorReport is the single-shape error record returned when a replay
// cannot be processed at all.
type ErrorReport struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func unreadable(err error) *ErrorReport {
	return &ErrorReport{Error: "unreadable_replay_file", Details: err.Error()}
}

// CoordinateReference mirrors the field/physics constants the report
// consumer needs to interpret raw UU positions without hardcoding them.
type CoordinateReference struct {
	SideWallX float64 `json:"side_wall_x"`
	BackWallY float64 `json:"back_wall_y"`
	CeilingZ  float64 `json:"ceiling_z"`
	UUToM     float64 `json:"uu_to_m"`
}

// Metadata is the report's match-level descriptive block.
type Metadata struct {
	Playlist            string               `json:"playlist"`
	Map                 string               `json:"map"`
	TeamSize            int                  `json:"team_size"`
	Overtime            bool                 `json:"overtime"`
	Mutators            map[string]string    `json:"mutators"`
	MatchGUID           string               `json:"match_guid"`
	DurationS           float64              `json:"duration_s"`
	MeasuredFrameRateHz float64              `json:"measured_frame_rate_hz"`
	TotalFrames         int                  `json:"total_frames"`
	CoordinateReference CoordinateReference  `json:"coordinate_reference"`
}

// Quality carries parser diagnostics and every warning the pipeline
// accumulated along the way.
type Quality struct {
	ParserName             string   `json:"parser_name"`
	SupportsNetworkParsing bool     `json:"supports_network_parsing"`
	BackendChain           []string `json:"backend_chain,omitempty"`
	Warnings               []string `json:"warnings"`
}

// TeamReport is one team's roster and score.
type TeamReport struct {
	Name      string   `json:"name"`
	Score     int      `json:"score"`
	PlayerIDs []string `json:"player_ids"`
}

// PlayerReport is one player's canonical identity metadata.
type PlayerReport struct {
	CanonicalID string            `json:"canonical_id"`
	DisplayName string            `json:"display_name"`
	Team        string            `json:"team"`
	PlatformIDs map[string]string `json:"platform_ids"`
}

// Events bundles the flattened timeline and every per-type event list.
type Events struct {
	Timeline     []model.TimelineEvent     `json:"timeline"`
	Goals        []model.GoalEvent         `json:"goals"`
	Demos        []model.DemoEvent         `json:"demos"`
	Kickoffs     []model.KickoffEvent      `json:"kickoffs"`
	BoostPickups []model.BoostPickupEvent  `json:"boost_pickups"`
	Touches      []model.TouchEvent        `json:"touches"`
	Challenges   []model.ChallengeEvent    `json:"challenges"`
}

// Analysis is the per-team and per-player analyzer output, keyed by
// canonical id (team color for per_team).
type Analysis struct {
	PerTeam   map[string]aggregator.TeamAnalysis   `json:"per_team"`
	PerPlayer map[string]aggregator.PlayerAnalysis  `json:"per_player"`
}

// Report is the complete, schema-conformant document.
type Report struct {
	ReplayID        string   `json:"replay_id"`
	SourceFile      string   `json:"source_file"`
	SchemaVersion   string   `json:"schema_version"`
	GeneratedAtUTC  string   `json:"generated_at_utc"`
	Metadata        Metadata `json:"metadata"`
	Quality         Quality  `json:"quality"`
	Teams           []TeamReport   `json:"teams"`
	Players         []PlayerReport `json:"players"`
	Events          Events   `json:"events"`
	Analysis        Analysis `json:"analysis"`
}

// Build runs the full pipeline for sourceFile through adapter and
// assembles the report, or returns the unreadable-replay error shape.
func Build(sourceFile string, adapter parseradapter.Adapter) (*Report, *ErrorReport) {
	header, err := adapter.ParseHeader(sourceFile)
	if err != nil {
		if _, ok := err.(*parseradapter.HeaderParseError); !ok {
			err = &parseradapter.HeaderParseError{Adapter: adapter.Name(), Err: err}
		}
		return nil, unreadable(err)
	}

	var stream *parseradapter.FrameStream
	if adapter.SupportsNetworkParsing() {
		s, nerr := adapter.ParseNetwork(sourceFile)
		if nerr != nil {
			header.Warnings = append(header.Warnings, model.WarnNetworkUnparsed)
		} else {
			stream = s
		}
	}

	norm := normalize.Normalize(header, stream)
	eventSet := events.DetectAll(norm.Frames, header, norm.Identities, norm.FrameRateHz)

	mtx, aggErr := aggregator.Aggregate(context.Background(), norm.Frames, eventSet)
	if aggErr != nil {
		return nil, unreadable(aggErr)
	}

	replayID, err := sha256File(sourceFile)
	if err != nil {
		return nil, unreadable(err)
	}

	r := &Report{
		ReplayID:       replayID,
		SourceFile:     sourceFile,
		SchemaVersion:  SchemaVersion,
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Metadata: Metadata{
			Playlist:            header.PlaylistID,
			Map:                 header.MapName,
			TeamSize:            header.TeamSize,
			Overtime:            header.Overtime,
			Mutators:            header.Mutators,
			MatchGUID:           header.MatchGUID,
			DurationS:           header.MatchLength,
			MeasuredFrameRateHz: norm.FrameRateHz,
			TotalFrames:         len(norm.Frames),
			CoordinateReference: CoordinateReference{
				SideWallX: constants.SideWallX,
				BackWallY: constants.BackWallY,
				CeilingZ:  constants.CeilingZ,
				UUToM:     constants.UUToM,
			},
		},
		Quality: Quality{
			ParserName:             adapter.Name(),
			SupportsNetworkParsing: adapter.SupportsNetworkParsing(),
			BackendChain:           adapter.BackendChain(),
			Warnings:               append(header.Warnings, norm.Warnings...),
		},
		Events: Events{
			Timeline:     eventSet.Timeline,
			Goals:        eventSet.Goals,
			Demos:        eventSet.Demos,
			Kickoffs:     eventSet.Kickoffs,
			BoostPickups: eventSet.BoostPickups,
			Touches:      eventSet.Touches,
			Challenges:   eventSet.Challenges,
		},
		Analysis: Analysis{
			PerTeam:   map[string]aggregator.TeamAnalysis{},
			PerPlayer: map[string]aggregator.PlayerAnalysis{},
		},
	}

	for _, t := range mtx.Teams {
		r.Teams = append(r.Teams, TeamReport{
			Name:      t.Team.String(),
			Score:     teamScore(header, t.Team),
			PlayerIDs: playerIDsForTeam(norm.Identities, t.Team),
		})
		r.Analysis.PerTeam[t.Team.String()] = t
	}
	for _, id := range norm.Identities {
		r.Players = append(r.Players, PlayerReport{
			CanonicalID: id.CanonicalID,
			DisplayName: id.DisplayName,
			Team:        id.Team.String(),
			PlatformIDs: id.PlatformIDs,
		})
	}
	for _, p := range mtx.Players {
		r.Analysis.PerPlayer[p.PlayerID] = p
	}

	if verr := Validate(r); verr != nil {
		return nil, unreadable(verr)
	}
	return r, nil
}

func teamScore(header model.Header, team model.Team) int {
	if team == model.TeamBlue {
		return header.Team0Score
	}
	return header.Team1Score
}

func playerIDsForTeam(identities []model.PlayerIdentity, team model.Team) []string {
	var ids []string
	for _, id := range identities {
		if id.Team == team {
			ids = append(ids, id.CanonicalID)
		}
	}
	return ids
}

func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
