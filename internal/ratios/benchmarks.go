package ratios

// BenchmarkSet maps benchmark keys to ideal values. A nil value means the
// benchmark is contextual: no fixed constant exists, and classification
// either consults a partner ratio or stays neutral.
type BenchmarkSet map[string]*float64

func f(v float64) *float64 { return &v }

// DefaultBenchmarks returns the built-in benchmark constants for
// co-operative societies. Operator overrides replace selected keys via
// Merge; the defaults themselves are never mutated.
func DefaultBenchmarks() BenchmarkSet {
	return BenchmarkSet{
		// Trading
		"stock_turnover":         f(15.0),
		"gross_profit_ratio_min": f(10.0),
		"gross_profit_ratio_max": f(15.0),
		"net_profit_ratio":       nil, // ~50% of gross profit ratio, contextual

		// Fund structure (% of working fund)
		"own_fund_to_wf":              f(8.0),
		"deposits_to_wf":              nil,
		"borrowings_to_wf":            nil,
		"loans_to_wf_min":             f(70.0),
		"loans_to_wf_max":             f(75.0),
		"investments_to_wf_min":       f(25.0),
		"investments_to_wf_max":       f(30.0),
		"earning_assets_to_wf":        nil, // benchmarked against interest-tagged funds
		"interest_tagged_funds_to_wf": nil,

		// Yield and cost
		"cost_of_deposits":                nil, // should run 4% under yield on loans
		"yield_on_loans":                  nil,
		"yield_on_investments":            nil,
		"credit_deposit_ratio_min":        f(70.0),
		"avg_cost_of_wf":                  f(3.5),
		"avg_yield_on_wf":                 f(3.5),
		"misc_income_to_wf":               nil,
		"interest_exp_to_interest_income": nil,

		// Margins
		"gross_financial_margin":   f(3.5),
		"operating_cost_to_wf_min": f(2.0),
		"operating_cost_to_wf_max": f(2.5),
		"net_financial_margin":     f(1.5),
		"risk_cost_to_wf_max":      f(0.25),
		"net_margin":               f(1.0),

		// Capital efficiency and productivity, contextual
		"capital_turnover_ratio":      nil,
		"per_employee_deposit":        nil,
		"per_employee_loan":           nil,
		"per_employee_contribution":   nil,
		"per_employee_operating_cost": nil,
	}
}

// BenchmarkKeyOrder is the stable presentation order for benchmark keys.
var BenchmarkKeyOrder = []string{
	"stock_turnover",
	"gross_profit_ratio_min",
	"gross_profit_ratio_max",
	"net_profit_ratio",
	"own_fund_to_wf",
	"deposits_to_wf",
	"borrowings_to_wf",
	"loans_to_wf_min",
	"loans_to_wf_max",
	"investments_to_wf_min",
	"investments_to_wf_max",
	"earning_assets_to_wf",
	"interest_tagged_funds_to_wf",
	"cost_of_deposits",
	"yield_on_loans",
	"yield_on_investments",
	"credit_deposit_ratio_min",
	"avg_cost_of_wf",
	"avg_yield_on_wf",
	"misc_income_to_wf",
	"interest_exp_to_interest_income",
	"gross_financial_margin",
	"operating_cost_to_wf_min",
	"operating_cost_to_wf_max",
	"net_financial_margin",
	"risk_cost_to_wf_max",
	"net_margin",
	"capital_turnover_ratio",
	"per_employee_deposit",
	"per_employee_loan",
	"per_employee_contribution",
	"per_employee_operating_cost",
}

// BenchmarkLabels holds display names for the benchmark keys.
var BenchmarkLabels = map[string]string{
	"stock_turnover":                  "Stock Turnover (times)",
	"gross_profit_ratio_min":          "Gross Profit Ratio Min (%)",
	"gross_profit_ratio_max":          "Gross Profit Ratio Max (%)",
	"net_profit_ratio":                "Net Profit Ratio (%)",
	"own_fund_to_wf":                  "Own Fund to Working Fund (%)",
	"deposits_to_wf":                  "Deposits to Working Fund (%)",
	"borrowings_to_wf":                "Borrowings to Working Fund (%)",
	"loans_to_wf_min":                 "Loans to Working Fund Min (%)",
	"loans_to_wf_max":                 "Loans to Working Fund Max (%)",
	"investments_to_wf_min":           "Investments to Working Fund Min (%)",
	"investments_to_wf_max":           "Investments to Working Fund Max (%)",
	"earning_assets_to_wf":            "Earning Assets to Working Fund (%)",
	"interest_tagged_funds_to_wf":     "Interest Tagged Funds to Working Fund (%)",
	"cost_of_deposits":                "Cost of Deposits (%)",
	"yield_on_loans":                  "Yield on Loans (%)",
	"yield_on_investments":            "Yield on Investments (%)",
	"credit_deposit_ratio_min":        "Credit Deposit Ratio Min (%)",
	"avg_cost_of_wf":                  "Avg Cost of Working Fund (%)",
	"avg_yield_on_wf":                 "Avg Yield on Working Fund (%)",
	"misc_income_to_wf":               "Miscellaneous Income to Working Fund (%)",
	"interest_exp_to_interest_income": "Interest Expenses to Interest Income (%)",
	"gross_financial_margin":          "Gross Financial Margin (%)",
	"operating_cost_to_wf_min":        "Operating Cost to Working Fund Min (%)",
	"operating_cost_to_wf_max":        "Operating Cost to Working Fund Max (%)",
	"net_financial_margin":            "Net Financial Margin (%)",
	"risk_cost_to_wf_max":             "Risk Cost to Working Fund Max (%)",
	"net_margin":                      "Net Margin (%)",
	"capital_turnover_ratio":          "Capital Turnover Ratio (times)",
	"per_employee_deposit":            "Per Employee Deposit (Lakhs)",
	"per_employee_loan":               "Per Employee Loan (Lakhs)",
	"per_employee_contribution":       "Per Employee Contribution (Lakhs)",
	"per_employee_operating_cost":     "Per Employee Operating Cost (Lakhs)",
}

// Merge overlays overrides on the receiver and returns a new set. Only keys
// present in the built-in defaults are retained; unknown keys are silently
// dropped. A nil override value resets the key to contextual.
func (b BenchmarkSet) Merge(overrides map[string]*float64) BenchmarkSet {
	out := make(BenchmarkSet, len(b))
	for k, v := range b {
		out[k] = v
	}
	known := DefaultBenchmarks()
	for k, v := range overrides {
		if _, ok := known[k]; !ok {
			continue
		}
		out[k] = v
	}
	return out
}

// SanitizeOverrides keeps only known benchmark keys, for persistence.
func SanitizeOverrides(overrides map[string]*float64) map[string]*float64 {
	known := DefaultBenchmarks()
	out := make(map[string]*float64, len(overrides))
	for k, v := range overrides {
		if _, ok := known[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Value returns the fixed ideal for key, or (0, false) when contextual or
// absent.
func (b BenchmarkSet) Value(key string) (float64, bool) {
	v, ok := b[key]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}
