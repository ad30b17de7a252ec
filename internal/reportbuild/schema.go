package reportbuild

import "fmt"

// Validate performs the structural checks the published JSON schema
// requires before a report is returned: every required top-level field
// present and non-empty where emptiness would indicate a broken pipeline,
// and every enum-bearing field already constrained by its Go type.
func Validate(r *Report) error {
	if r.ReplayID == "" {
		return fmt.Errorf("schema validation: replay_id is required")
	}
	if r.SchemaVersion == "" {
		return fmt.Errorf("schema validation: schema_version is required")
	}
	if r.GeneratedAtUTC == "" {
		return fmt.Errorf("schema validation: generated_at_utc is required")
	}
	if r.Metadata.Map == "" {
		return fmt.Errorf("schema validation: metadata.map is required")
	}
	if len(r.Teams) != 2 {
		return fmt.Errorf("schema validation: expected exactly 2 teams, got %d", len(r.Teams))
	}
	for _, t := range r.Teams {
		if t.Name != "BLUE" && t.Name != "ORANGE" {
			return fmt.Errorf("schema validation: unknown team name %q", t.Name)
		}
	}
	for _, p := range r.Players {
		if p.CanonicalID == "" {
			return fmt.Errorf("schema validation: player entry missing canonical_id")
		}
		if _, ok := r.Analysis.PerPlayer[p.CanonicalID]; !ok {
			return fmt.Errorf("schema validation: player %s missing from analysis.per_player", p.CanonicalID)
		}
	}
	for _, t := range r.Teams {
		if _, ok := r.Analysis.PerTeam[t.Name]; !ok {
			return fmt.Errorf("schema validation: team %s missing from analysis.per_team", t.Name)
		}
	}
	return nil
}
