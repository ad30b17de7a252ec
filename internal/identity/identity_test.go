package identity

import (
	"testing"

	"github.com/rlcoach/replay-analysis/internal/model"
)

func TestBuildIdentitiesPlatformPriority(t *testing.T) {
	players := []model.PlayerInfo{
		{
			DisplayName: "Alice",
			Team:        model.TeamBlue,
			PlatformIDs: map[string]string{"xbox": "xbox-1", "steam": "steam-1"},
		},
	}
	ids := BuildIdentities(players)
	if len(ids) != 1 {
		t.Fatalf("got %d identities, want 1", len(ids))
	}
	if ids[0].CanonicalID != "steam-1" {
		t.Errorf("CanonicalID = %q, want %q (steam should win over xbox)", ids[0].CanonicalID, "steam-1")
	}
}

func TestBuildIdentitiesFallsBackToSlug(t *testing.T) {
	players := []model.PlayerInfo{
		{DisplayName: "No Platform Ids", Team: model.TeamOrange, PlatformIDs: map[string]string{}},
	}
	ids := BuildIdentities(players)
	want := "slug:no-platform-ids"
	if ids[0].CanonicalID != want {
		t.Errorf("CanonicalID = %q, want %q", ids[0].CanonicalID, want)
	}
}

func TestBuildIdentitiesCollisionSuffix(t *testing.T) {
	players := []model.PlayerInfo{
		{DisplayName: "Dupe", Team: model.TeamBlue, PlatformIDs: map[string]string{}},
		{DisplayName: "Dupe", Team: model.TeamOrange, PlatformIDs: map[string]string{}},
		{DisplayName: "Dupe", Team: model.TeamOrange, PlatformIDs: map[string]string{}},
	}
	ids := BuildIdentities(players)
	got := []string{ids[0].CanonicalID, ids[1].CanonicalID, ids[2].CanonicalID}
	want := []string{"slug:dupe", "slug:dupe-2", "slug:dupe-3"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("identity[%d].CanonicalID = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSanitizeCollapsesWhitespaceAndDefaults(t *testing.T) {
	if got := Sanitize("  multi   space   name "); got != "multi space name" {
		t.Errorf("Sanitize = %q, want %q", got, "multi space name")
	}
	if got := Sanitize(""); got != "Unknown" {
		t.Errorf("Sanitize(\"\") = %q, want Unknown", got)
	}
	if got := Sanitize("   "); got != "Unknown" {
		t.Errorf("Sanitize of all-whitespace = %q, want Unknown", got)
	}
}

func TestSlugifyStripsPunctuationAndCollapsesDashes(t *testing.T) {
	cases := map[string]string{
		"Sk1lzz!!":        "sk1lzz",
		"Foo -- Bar":      "foo-bar",
		"":                "unknown",
		"___":             "unknown",
		"Weird@#$Chars42": "weirdchars42",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAliasTableResolveAndRegister(t *testing.T) {
	players := []model.PlayerInfo{
		{DisplayName: "Alice", Team: model.TeamBlue, PlatformIDs: map[string]string{"steam": "steam-1"}},
	}
	ids := BuildIdentities(players)
	table := NewAliasTable(ids)

	if got, ok := table.Resolve("steam-1"); !ok || got != "steam-1" {
		t.Errorf("Resolve(canonical) = (%q, %v), want (steam-1, true)", got, ok)
	}
	if _, ok := table.Resolve("frame-alias-7"); ok {
		t.Errorf("Resolve of unregistered alias should be (_, false)")
	}

	table.RegisterAlias("frame-alias-7", "steam-1")
	got, ok := table.Resolve("frame-alias-7")
	if !ok || got != "steam-1" {
		t.Errorf("Resolve(alias) = (%q, %v), want (steam-1, true)", got, ok)
	}

	id, ok := table.Identity("steam-1")
	if !ok || id.DisplayName != "Alice" {
		t.Errorf("Identity(steam-1) = (%+v, %v), want Alice identity", id, ok)
	}
}

func TestAliasTableRegisterAliasIgnoresUnknownCanonical(t *testing.T) {
	table := NewAliasTable(nil)
	table.RegisterAlias("frame-1", "does-not-exist")
	if _, ok := table.Resolve("frame-1"); ok {
		t.Errorf("RegisterAlias for an unknown canonical id should be a no-op")
	}
}

func TestSanitizedNameLookupIsCaseInsensitiveAndKeepsFirst(t *testing.T) {
	ids := []model.PlayerIdentity{
		{CanonicalID: "a", DisplayName: "Alice"},
		{CanonicalID: "b", DisplayName: "ALICE"},
	}
	lookup := SanitizedNameLookup(ids)
	if got := lookup["alice"]; got != "a" {
		t.Errorf("lookup[\"alice\"] = %q, want %q (first occurrence wins)", got, "a")
	}
}
