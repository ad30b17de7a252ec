package normalize

import (
	"testing"

	"github.com/rlcoach/replay-analysis/internal/geom"
	"github.com/rlcoach/replay-analysis/internal/model"
	"github.com/rlcoach/replay-analysis/internal/parseradapter"
)

func header(players ...model.PlayerInfo) model.Header {
	return model.Header{PlaylistID: "ranked-duels", MapName: "dfh_stadium", Players: players}
}

func TestNormalizeHeaderOnlyProducesSentinelFrame(t *testing.T) {
	h := header(model.PlayerInfo{DisplayName: "Alice", Team: model.TeamBlue})
	res := Normalize(h, nil)

	if len(res.Frames) != 1 {
		t.Fatalf("got %d frames, want 1 sentinel frame", len(res.Frames))
	}
	if res.Frames[0].Ball.Position.Z != 93.15 {
		t.Errorf("sentinel ball Z = %v, want kickoff rest height", res.Frames[0].Ball.Position.Z)
	}
	if len(res.Identities) != 1 {
		t.Fatalf("got %d identities, want 1", len(res.Identities))
	}
}

func TestNormalizeAssemblesAndSortsFrames(t *testing.T) {
	h := header(
		model.PlayerInfo{DisplayName: "Alice", Team: model.TeamBlue, PlatformIDs: map[string]string{"steam": "steam-a"}},
	)
	stream := &parseradapter.FrameStream{
		Frames: []parseradapter.RawFrame{
			{
				Timestamp: 1.0,
				Players: []parseradapter.RawPlayerFrame{
					{PlayerID: "steam-a", Position: geom.Vec3{X: 100, Y: 200, Z: 17}, Velocity: geom.Vec3{X: 1, Y: 2, Z: 3}},
				},
			},
			{
				Timestamp: 0.0,
				Players: []parseradapter.RawPlayerFrame{
					{PlayerID: "steam-a", Position: geom.Vec3{X: 0, Y: 0, Z: 17}},
				},
			},
		},
	}
	res := Normalize(h, stream)

	if len(res.Frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(res.Frames))
	}
	if res.Frames[0].Timestamp != 0.0 || res.Frames[1].Timestamp != 1.0 {
		t.Errorf("frames not sorted by timestamp: %v, %v", res.Frames[0].Timestamp, res.Frames[1].Timestamp)
	}
	pf, ok := res.Frames[1].PlayerByID("steam-a")
	if !ok {
		t.Fatalf("expected player steam-a in frame 1")
	}
	if pf.Position != (geom.Vec3{X: 100, Y: 200, Z: 17}) {
		t.Errorf("player position = %+v, want {100 200 17}", pf.Position)
	}
}

func TestNormalizeResolvesFrameIDAliasPositionally(t *testing.T) {
	h := header(
		model.PlayerInfo{DisplayName: "Alice", Team: model.TeamBlue, PlatformIDs: map[string]string{"steam": "steam-a"}},
	)
	stream := &parseradapter.FrameStream{
		Frames: []parseradapter.RawFrame{
			{Timestamp: 0, Players: []parseradapter.RawPlayerFrame{{PlayerID: "frame-actor-12"}}},
		},
	}
	res := Normalize(h, stream)
	pf, ok := res.Frames[0].PlayerByID("steam-a")
	if !ok {
		t.Fatalf("expected frame actor id to resolve to canonical id steam-a, got players: %+v", res.Frames[0].Players)
	}
	_ = pf
}

func TestMeasureFrameRateMedianAndClamping(t *testing.T) {
	cases := []struct {
		name   string
		deltas []float64
		want   float64
	}{
		{"too few frames", nil, 30.0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := MeasureFrameRate(nil)
			if got != c.want {
				t.Errorf("MeasureFrameRate = %v, want %v", got, c.want)
			}
		})
	}

	frames := []parseradapter.RawFrame{
		{Timestamp: 0.0}, {Timestamp: 1.0 / 120}, {Timestamp: 2.0 / 120}, {Timestamp: 3.0 / 120},
	}
	fps := MeasureFrameRate(frames)
	if fps < 119 || fps > 121 {
		t.Errorf("MeasureFrameRate = %v, want ~120", fps)
	}
}

func TestToFieldCoordsClampsAndCoercesShapes(t *testing.T) {
	far := ToFieldCoords([3]float64{100000, -100000, 100000})
	if far.X != 4505.6 || far.Y != -5632 {
		t.Errorf("ToFieldCoords did not clamp out-of-bounds position: %+v", far)
	}

	fromMap := ToFieldCoords(map[string]float64{"x": 10, "y": 20, "z": 30})
	if fromMap != (geom.Vec3{X: 10, Y: 20, Z: 30}) {
		t.Errorf("ToFieldCoords(map) = %+v, want {10 20 30}", fromMap)
	}

	invalid := ToFieldCoords("not a vector")
	if invalid != (geom.Vec3{}) {
		t.Errorf("ToFieldCoords(invalid) = %+v, want zero vector", invalid)
	}
}

func TestToRotationCoercesLegacyAndCanonicalShapes(t *testing.T) {
	canonical := geom.Rotation{Pitch: 0.1, Yaw: 0.2, Roll: 0.3}
	if got := ToRotation(canonical); got != canonical {
		t.Errorf("ToRotation(canonical) = %+v, want %+v", got, canonical)
	}

	legacy := geom.Vec3{X: 0.1, Y: 0.2, Z: 0.3}
	want := geom.Rotation{Pitch: 0.1, Yaw: 0.2, Roll: 0.3}
	if got := ToRotation(legacy); got != want {
		t.Errorf("ToRotation(legacy vec3) = %+v, want %+v", got, want)
	}

	fromMap := ToRotation(map[string]float64{"pitch": 0.5, "yaw": 0.6, "roll": 0.7})
	wantMap := geom.Rotation{Pitch: 0.5, Yaw: 0.6, Roll: 0.7}
	if fromMap != wantMap {
		t.Errorf("ToRotation(map with pitch key) = %+v, want %+v", fromMap, wantMap)
	}
}

func TestNormalizeClampsBoostAndDefaultsFlags(t *testing.T) {
	h := header(model.PlayerInfo{DisplayName: "Alice", Team: model.TeamBlue, PlatformIDs: map[string]string{"steam": "p1"}})
	stream := &parseradapter.FrameStream{
		Frames: []parseradapter.RawFrame{
			{Timestamp: 0, Players: []parseradapter.RawPlayerFrame{{PlayerID: "p1", Boost: 150.0}}},
		},
	}
	res := Normalize(h, stream)
	pf, ok := res.Frames[0].PlayerByID("p1")
	if !ok {
		t.Fatalf("expected player p1")
	}
	if pf.Boost != 100 {
		t.Errorf("Boost = %d, want clamped to 100", pf.Boost)
	}
	if !pf.OnGround {
		t.Errorf("OnGround should default true when adapter omits it")
	}
	if pf.Supersonic {
		t.Errorf("Supersonic should default false when adapter omits it")
	}
}
