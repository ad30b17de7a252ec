// Package identity resolves canonical player identities from header data
// and builds the alias table normalization uses to reconcile frame-level
// player ids that differ from header ids. This is the one place player
// identity cycles get cut: every downstream package reads canonical ids
// only.
package identity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rlcoach/replay-analysis/internal/model"
)

// platformPriority is the canonical-id selection order from the header's
// platform id map.
var platformPriority = []string{
	"steam", "epic", "psn", "ps4", "ps5", "xbox", "xboxone", "xboxseries", "switch", "nintendo",
}

// Sanitize normalizes a display name the way the identity table keys on it:
// trimmed, collapsed internal whitespace, defaulting to "Unknown" when
// empty.
func Sanitize(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "Unknown"
	}
	return strings.Join(fields, " ")
}

func slugify(name string) string {
	s := strings.ToLower(Sanitize(name))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")
	if s == "" {
		s = "unknown"
	}
	return s
}

// BuildIdentities constructs one PlayerIdentity per header.Players entry, in
// header order, applying the canonical-id selection rules and suffixing
// collisions with -2, -3, ...
func BuildIdentities(players []model.PlayerInfo) []model.PlayerIdentity {
	identities := make([]model.PlayerIdentity, len(players))
	seen := map[string]int{}

	for i, p := range players {
		base := canonicalBase(p, i)
		id := base
		if n, ok := seen[base]; ok {
			n++
			id = fmt.Sprintf("%s-%d", base, n+1)
			seen[base] = n
		} else {
			seen[base] = 0
		}

		identities[i] = model.PlayerIdentity{
			CanonicalID: id,
			DisplayName: Sanitize(p.DisplayName),
			Team:        p.Team,
			PlatformIDs: p.PlatformIDs,
			Slug:        slugify(p.DisplayName),
			HeaderIndex: i,
			Aliases:     map[string]struct{}{},
		}
	}
	return identities
}

func canonicalBase(p model.PlayerInfo, headerIndex int) string {
	for _, plat := range platformPriority {
		if id, ok := p.PlatformIDs[plat]; ok && id != "" {
			return id
		}
	}
	if len(p.PlatformIDs) > 0 {
		keys := make([]string, 0, len(p.PlatformIDs))
		for k := range p.PlatformIDs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if v := p.PlatformIDs[keys[0]]; v != "" {
			return v
		}
	}
	return fmt.Sprintf("slug:%s", slugify(p.DisplayName))
}

// AliasTable maps a frame-reported player id to its canonical identity.
type AliasTable struct {
	byCanonical map[string]*model.PlayerIdentity
	byAlias     map[string]string
}

// NewAliasTable seeds the table with every canonical id mapping to itself.
func NewAliasTable(identities []model.PlayerIdentity) *AliasTable {
	t := &AliasTable{
		byCanonical: map[string]*model.PlayerIdentity{},
		byAlias:     map[string]string{},
	}
	for i := range identities {
		id := &identities[i]
		t.byCanonical[id.CanonicalID] = id
		t.byAlias[id.CanonicalID] = id.CanonicalID
	}
	return t
}

// RegisterAlias records that frameID refers to the player identified by
// canonicalID, positionally matched during frame sampling.
func (t *AliasTable) RegisterAlias(frameID, canonicalID string) {
	if _, ok := t.byCanonical[canonicalID]; !ok {
		return
	}
	t.byAlias[frameID] = canonicalID
	t.byCanonical[canonicalID].Aliases[frameID] = struct{}{}
}

// Resolve returns the canonical id for a frame-reported id, or ("", false)
// if it is unknown.
func (t *AliasTable) Resolve(frameID string) (string, bool) {
	id, ok := t.byAlias[frameID]
	return id, ok
}

// Identity returns the canonical identity for a canonical id.
func (t *AliasTable) Identity(canonicalID string) (model.PlayerIdentity, bool) {
	id, ok := t.byCanonical[canonicalID]
	if !ok {
		return model.PlayerIdentity{}, false
	}
	return *id, true
}

// SanitizedNameLookup builds a case-insensitive sanitized-name -> canonical
// id index, used by the header-driven goal detector to resolve scorers by
// name.
func SanitizedNameLookup(identities []model.PlayerIdentity) map[string]string {
	out := make(map[string]string, len(identities))
	for _, id := range identities {
		key := strings.ToLower(id.DisplayName)
		if _, exists := out[key]; !exists {
			out[key] = id.CanonicalID
		}
	}
	return out
}
