package resolver

import (
	"strings"

	"github.com/coopstack/ratio-engine/internal/entity"
)

// fallbackRule resolves a normalized label to a canonical field when every
// listed keyword is contained in it. Rules are consulted in order; the first
// hit wins, so more specific rules must come before broader ones.
type fallbackRule struct {
	keywords []string
	field    string
}

var fallbackRules = map[entity.StatementType][]fallbackRule{
	entity.StatementTrading: {
		{[]string{"opening", "stock"}, "opening_stock"},
		{[]string{"opening", "inventory"}, "opening_stock"},
		{[]string{"closing", "stock"}, "closing_stock"},
		{[]string{"closing", "inventory"}, "closing_stock"},
		{[]string{"trade", "charge"}, "trade_charges"},
		{[]string{"purchase"}, "purchases"},
		{[]string{"sale"}, "sales"},
	},
	entity.StatementIncome: {
		{[]string{"interest", "deposit"}, "interest_on_deposits"},
		{[]string{"interest", "borrowing"}, "interest_on_borrowings"},
		{[]string{"interest", "loan"}, "interest_on_loans"},
		{[]string{"interest", "bank"}, "interest_on_bank_ac"},
		{[]string{"return", "investment"}, "return_on_investment"},
		{[]string{"misc"}, "miscellaneous_income"},
		{[]string{"establishment"}, "establishment_contingencies"},
		{[]string{"contingen"}, "establishment_contingencies"},
		{[]string{"provision"}, "provisions"},
		{[]string{"net", "profit"}, "net_profit"},
	},
	entity.StatementBalance: {
		{[]string{"share", "capital"}, "share_capital"},
		{[]string{"undistributed"}, "undistributed_profit"},
		{[]string{"reserve"}, "reserves_statutory_free"},
		{[]string{"borrowing"}, "borrowings"},
		{[]string{"loan", "advance"}, "loans_advances"},
		{[]string{"cash", "hand"}, "cash_in_hand"},
		{[]string{"cash", "bank"}, "cash_at_bank"},
		{[]string{"investment"}, "investments"},
		{[]string{"fixed", "asset"}, "fixed_assets"},
		{[]string{"other", "asset"}, "other_assets"},
		{[]string{"other", "liabilit"}, "other_liabilities"},
		{[]string{"stock", "trade"}, "stock_in_trade"},
		{[]string{"provision"}, "provisions"},
		// "deposits" must come after "interest on deposits" style labels
		// cannot occur on the balance sheet, so a bare containment is safe.
		{[]string{"deposit"}, "deposits"},
	},
	entity.StatementOperational: {
		{[]string{"staff"}, "staff_count"},
		{[]string{"employee"}, "staff_count"},
		{[]string{"head", "count"}, "staff_count"},
	},
}

func fallbackField(st entity.StatementType, normalized string) string {
	for _, rule := range fallbackRules[st] {
		if containsAll(normalized, rule.keywords) {
			return rule.field
		}
	}
	return ""
}

func containsAll(s string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(s, kw) {
			return false
		}
	}
	return true
}
