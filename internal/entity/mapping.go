package entity

import "github.com/google/uuid"

// FieldMapping maps raw document labels onto a canonical field name.
// OrganizationID of uuid.Nil means the mapping is global and acts as a
// fallback after organization-scoped mappings.
type FieldMapping struct {
	OrganizationID uuid.UUID     `json:"organization_id"`
	StatementType  StatementType `json:"statement_type"`
	CanonicalField string        `json:"canonical_field"`
	DisplayName    string        `json:"display_name"`
	Aliases        []string      `json:"aliases"`
	IsRequired     bool          `json:"is_required"`
}

// Global reports whether the mapping applies to every organization.
func (m FieldMapping) Global() bool {
	return m.OrganizationID == uuid.Nil
}

// RawLineItem is one (label, amount) pair pulled from a document table.
// Produced by an extractor, consumed immediately by the resolver; never
// persisted.
type RawLineItem struct {
	Label         string
	Amount        string
	StatementType StatementType
}
