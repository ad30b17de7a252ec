package parseradapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rlcoach/replay-analysis/internal/model"
)

func TestNullAdapterParseHeaderMissingFile(t *testing.T) {
	var a NullAdapter
	_, err := a.ParseHeader(filepath.Join(t.TempDir(), "does-not-exist.replay"))
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestNullAdapterParseHeaderReadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.replay")
	if err := os.WriteFile(path, []byte("not a real replay"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var a NullAdapter
	h, err := a.ParseHeader(path)
	if err != nil {
		t.Fatalf("ParseHeader returned error for a readable file: %v", err)
	}
	if len(h.Warnings) != 1 || h.Warnings[0] != model.WarnHeaderOnlyFallback {
		t.Errorf("Warnings = %v, want [%s]", h.Warnings, model.WarnHeaderOnlyFallback)
	}
}

func TestNullAdapterNeverSupportsNetworkParsing(t *testing.T) {
	var a NullAdapter
	if a.SupportsNetworkParsing() {
		t.Errorf("NullAdapter.SupportsNetworkParsing() = true, want false")
	}
	stream, err := a.ParseNetwork("irrelevant")
	if stream != nil || err != nil {
		t.Errorf("ParseNetwork = (%v, %v), want (nil, nil)", stream, err)
	}
}

func TestHeaderParseErrorUnwrap(t *testing.T) {
	inner := os.ErrNotExist
	e := &HeaderParseError{Adapter: "null", Err: inner}
	if e.Unwrap() != inner {
		t.Errorf("Unwrap() did not return the wrapped error")
	}
	if e.Error() == "" {
		t.Errorf("Error() should not be empty")
	}
}
