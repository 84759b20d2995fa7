package ratios

// RatioKeyOrder is the stable presentation order for computed values, base
// variables first, then the ratio battery grouped the way the statements
// feed it.
var RatioKeyOrder = []string{
	"working_fund",
	"own_funds",
	"average_stock",
	"cogs",

	"stock_turnover",
	"gross_profit_ratio",
	"net_profit_ratio",
	"net_own_funds",
	"capital_turnover_ratio",

	"own_fund_to_wf",
	"deposits_to_wf",
	"borrowings_to_wf",
	"loans_to_wf",
	"investments_to_wf",
	"earning_assets_to_wf",
	"interest_tagged_funds_to_wf",

	"cost_of_deposits",
	"yield_on_loans",
	"yield_on_investments",
	"credit_deposit_ratio",
	"avg_cost_of_wf",
	"avg_yield_on_wf",
	"misc_income_to_wf",
	"interest_exp_to_interest_income",

	"gross_fin_margin",
	"operating_cost_to_wf",
	"net_fin_margin",
	"risk_cost_to_wf",
	"net_margin",

	"per_employee_deposit",
	"per_employee_loan",
	"per_employee_contribution",
	"per_employee_operating_cost",
}

// RatioLabels holds display names for computed value keys.
var RatioLabels = map[string]string{
	"working_fund":  "Working Fund",
	"own_funds":     "Own Funds",
	"average_stock": "Average Stock",
	"cogs":          "Cost of Goods Sold",

	"stock_turnover":         "Stock Turnover (times)",
	"gross_profit_ratio":     "Gross Profit Ratio (%)",
	"net_profit_ratio":       "Net Profit Ratio (%)",
	"net_own_funds":          "Net Own Funds",
	"capital_turnover_ratio": "Capital Turnover Ratio (times)",

	"own_fund_to_wf":              "Own Fund to Working Fund (%)",
	"deposits_to_wf":              "Deposits to Working Fund (%)",
	"borrowings_to_wf":            "Borrowings to Working Fund (%)",
	"loans_to_wf":                 "Loans to Working Fund (%)",
	"investments_to_wf":           "Investments to Working Fund (%)",
	"earning_assets_to_wf":        "Earning Assets to Working Fund (%)",
	"interest_tagged_funds_to_wf": "Interest Tagged Funds to Working Fund (%)",

	"cost_of_deposits":                "Cost of Deposits (%)",
	"yield_on_loans":                  "Yield on Loans (%)",
	"yield_on_investments":            "Yield on Investments (%)",
	"credit_deposit_ratio":            "Credit Deposit Ratio (%)",
	"avg_cost_of_wf":                  "Avg Cost of Working Fund (%)",
	"avg_yield_on_wf":                 "Avg Yield on Working Fund (%)",
	"misc_income_to_wf":               "Miscellaneous Income to Working Fund (%)",
	"interest_exp_to_interest_income": "Interest Expenses to Interest Income (%)",

	"gross_fin_margin":     "Gross Financial Margin (%)",
	"operating_cost_to_wf": "Operating Cost to Working Fund (%)",
	"net_fin_margin":       "Net Financial Margin (%)",
	"risk_cost_to_wf":      "Risk Cost to Working Fund (%)",
	"net_margin":           "Net Margin (%)",

	"per_employee_deposit":        "Per Employee Deposit (Lakhs)",
	"per_employee_loan":           "Per Employee Loan (Lakhs)",
	"per_employee_contribution":   "Per Employee Contribution (Lakhs)",
	"per_employee_operating_cost": "Per Employee Operating Cost (Lakhs)",
}
