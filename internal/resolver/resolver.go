// Package resolver maps free-text statement line-item labels onto the
// engine's canonical field vocabulary.
//
// Resolution is a pure lookup over a mapping snapshot: organization-scoped
// mappings first, then global ones, then an ordered substring-rule fallback.
package resolver

import (
	"strings"

	"github.com/google/uuid"

	"github.com/coopstack/ratio-engine/internal/entity"
)

// Resolver resolves raw labels against a read-only mapping snapshot.
// Snapshots are loaded once per ingestion so an in-flight run never observes
// a configuration update.
type Resolver struct {
	mappings []entity.FieldMapping
}

func New(mappings []entity.FieldMapping) *Resolver {
	return &Resolver{mappings: mappings}
}

// Normalize lowercases, trims, and collapses internal whitespace to single
// underscores so that "Opening Inventory" and "opening_inventory" compare
// equal. There is no fuzzy matching beyond this.
func Normalize(label string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(label)))
	return strings.Join(fields, "_")
}

// Resolve returns the canonical field name for rawLabel, or "" when nothing
// matches. Organization-scoped mappings win over global ones; within a scope
// the first configured mapping whose canonical name, display name, or any
// alias matches the normalized label wins. Ambiguous alias configuration
// (one label matching two canonical fields in a scope) is not detected; the
// first match silently wins.
func (r *Resolver) Resolve(orgID uuid.UUID, st entity.StatementType, rawLabel string) string {
	normalized := Normalize(rawLabel)
	if normalized == "" {
		return ""
	}

	if orgID != uuid.Nil {
		if field := r.matchScope(orgID, st, normalized); field != "" {
			return field
		}
	}
	if field := r.matchScope(uuid.Nil, st, normalized); field != "" {
		return field
	}

	// Configured mappings may be incomplete; degrade to the hand-coded
	// substring rules rather than dropping the item outright.
	return fallbackField(st, normalized)
}

func (r *Resolver) matchScope(orgID uuid.UUID, st entity.StatementType, normalized string) string {
	for _, m := range r.mappings {
		if m.OrganizationID != orgID || m.StatementType != st {
			continue
		}
		if mappingMatches(m, normalized) {
			return m.CanonicalField
		}
	}
	return ""
}

func mappingMatches(m entity.FieldMapping, normalized string) bool {
	if m.CanonicalField != "" && Normalize(m.CanonicalField) == normalized {
		return true
	}
	if m.DisplayName != "" && Normalize(m.DisplayName) == normalized {
		return true
	}
	for _, alias := range m.Aliases {
		if Normalize(alias) == normalized {
			return true
		}
	}
	return false
}
