package resolver

import (
	"testing"

	"github.com/google/uuid"

	"github.com/coopstack/ratio-engine/internal/entity"
)

var testOrg = uuid.MustParse("6e9a2c5a-88aa-4c8f-9d22-0c5b7a9e1f30")

func testMappings() []entity.FieldMapping {
	return []entity.FieldMapping{
		{
			OrganizationID: uuid.Nil,
			StatementType:  entity.StatementTrading,
			CanonicalField: "opening_stock",
			DisplayName:    "Opening Stock",
			Aliases:        []string{"Opening Inventory", "Stock at Commencement"},
		},
		{
			OrganizationID: uuid.Nil,
			StatementType:  entity.StatementBalance,
			CanonicalField: "deposits",
			DisplayName:    "Deposits",
			Aliases:        []string{"Member Deposits"},
		},
		{
			OrganizationID: testOrg,
			StatementType:  entity.StatementBalance,
			CanonicalField: "borrowings",
			DisplayName:    "Borrowings",
			Aliases:        []string{"Member Deposits"}, // org override of the same label
		},
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"  Opening Stock ":   "opening_stock",
		"opening_stock":      "opening_stock",
		"OPENING   STOCK":    "opening_stock",
		"Share\tCapital":     "share_capital",
		"":                   "",
		"   ":                "",
		"Loans & Advances":   "loans_&_advances",
		"Interest on Loans ": "interest_on_loans",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolve_AliasAndDisplayName(t *testing.T) {
	t.Parallel()

	r := New(testMappings())

	if got := r.Resolve(uuid.Nil, entity.StatementTrading, "Opening Inventory"); got != "opening_stock" {
		t.Fatalf("alias resolve = %q, want opening_stock", got)
	}
	if got := r.Resolve(uuid.Nil, entity.StatementTrading, "opening stock"); got != "opening_stock" {
		t.Fatalf("display-name resolve = %q, want opening_stock", got)
	}
	if got := r.Resolve(uuid.Nil, entity.StatementTrading, "STOCK AT COMMENCEMENT"); got != "opening_stock" {
		t.Fatalf("case-insensitive alias resolve = %q, want opening_stock", got)
	}
}

func TestResolve_OrganizationScopeWinsOverGlobal(t *testing.T) {
	t.Parallel()

	r := New(testMappings())

	// Same label is configured globally for deposits and per-org for
	// borrowings; the organization scope must win.
	if got := r.Resolve(testOrg, entity.StatementBalance, "Member Deposits"); got != "borrowings" {
		t.Fatalf("org-scoped resolve = %q, want borrowings", got)
	}
	if got := r.Resolve(uuid.Nil, entity.StatementBalance, "Member Deposits"); got != "deposits" {
		t.Fatalf("global resolve = %q, want deposits", got)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	t.Parallel()

	r := New(testMappings())
	first := r.Resolve(testOrg, entity.StatementBalance, "Member Deposits")
	second := r.Resolve(testOrg, entity.StatementBalance, "Member Deposits")
	if first != second {
		t.Fatalf("resolution not idempotent: %q then %q", first, second)
	}
}

func TestResolve_FallbackRules(t *testing.T) {
	t.Parallel()

	r := New(nil) // no configured mappings at all

	cases := []struct {
		st    entity.StatementType
		label string
		want  string
	}{
		{entity.StatementBalance, "Paid-up Share Capital", "share_capital"},
		{entity.StatementBalance, "Loans and Advances to Members", "loans_advances"},
		{entity.StatementBalance, "Cash in Hand", "cash_in_hand"},
		{entity.StatementBalance, "Cash at Bank (Current A/c)", "cash_at_bank"},
		{entity.StatementBalance, "Statutory Reserve Fund", "reserves_statutory_free"},
		{entity.StatementBalance, "Fixed Deposits from Members", "deposits"},
		{entity.StatementTrading, "Purchases during the year", "purchases"},
		{entity.StatementTrading, "Sales", "sales"},
		{entity.StatementTrading, "Closing Stock", "closing_stock"},
		{entity.StatementIncome, "Interest Paid on Deposits", "interest_on_deposits"},
		{entity.StatementIncome, "Interest Received on Loans", "interest_on_loans"},
		{entity.StatementIncome, "Establishment & Contingencies", "establishment_contingencies"},
		{entity.StatementOperational, "Number of Employees", "staff_count"},
		{entity.StatementBalance, "Completely Unknown Item", ""},
	}
	for _, tc := range cases {
		if got := r.Resolve(uuid.Nil, tc.st, tc.label); got != tc.want {
			t.Errorf("Resolve(%s, %q) = %q, want %q", tc.st, tc.label, got, tc.want)
		}
	}
}

func TestResolve_EmptyLabel(t *testing.T) {
	t.Parallel()

	r := New(testMappings())
	if got := r.Resolve(uuid.Nil, entity.StatementTrading, "   "); got != "" {
		t.Fatalf("empty label resolve = %q, want empty", got)
	}
}
