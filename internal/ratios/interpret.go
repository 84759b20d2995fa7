package ratios

import "strings"

// Interpret renders the canned textual interpretation for a computed value
// map. The sentence order is fixed and must stay stable: downstream
// consumers and tests rely on reproducible output.
func Interpret(values map[string]float64) string {
	var sentences []string
	add := func(s string) { sentences = append(sentences, s) }

	// Credit-deposit efficiency.
	if values["credit_deposit_ratio"] > 70 {
		add("Efficiency in deploying resources is high.")
	} else {
		add("Under-utilization of mobilized deposits.")
	}

	// Cost-effectiveness of deposits vs loan yield.
	if cod, yol := values["cost_of_deposits"], values["yield_on_loans"]; cod > 0 && yol > 0 {
		if cod < yol-4 {
			add("Cost-effective deposit management.")
		} else {
			add("Deposit costs are relatively high compared to loan yields.")
		}
	}

	// Profitability tier.
	switch nm := values["net_margin"]; {
	case nm >= 1.0:
		add("Healthy profitability.")
	case nm >= 0.5:
		add("Moderate profitability - room for improvement.")
	default:
		add("Low profitability - requires immediate attention.")
	}

	// Risk exposure tier.
	switch rc := values["risk_cost_to_wf"]; {
	case rc > 0.25:
		add("High risk exposure - review provisions.")
	case rc > 0.15:
		add("Moderate risk exposure.")
	default:
		add("Low risk exposure.")
	}

	// Inventory turnover tier.
	switch st := values["stock_turnover"]; {
	case st >= 15:
		add("Good inventory management.")
	case st >= 10:
		add("Adequate inventory turnover.")
	default:
		add("Low inventory turnover - review stock management.")
	}

	// Loan-deployment band; silent inside the band.
	if lw := values["loans_to_wf"]; lw < 70 {
		add("Loans deployment below optimal level.")
	} else if lw > 75 {
		add("High loan deployment - ensure adequate liquidity.")
	}

	// Own-funds sign.
	if values["net_own_funds"] >= 0 {
		add("Net own funds are positive.")
	} else {
		add("Negative net own funds - capital erosion requires attention.")
	}

	// Earning assets vs interest-tagged funds.
	if values["earning_assets_to_wf"] >= values["interest_tagged_funds_to_wf"] {
		add("Earning assets fully cover interest-tagged funds.")
	} else {
		add("Earning assets fall short of interest-tagged funds.")
	}

	// Non-fund income adequacy.
	if values["misc_income_to_wf"] >= 0.5 {
		add("Non-fund income is adequate.")
	} else {
		add("Non-fund based income is negligible.")
	}

	// Interest-expense efficiency.
	if values["interest_exp_to_interest_income"] <= 70 {
		add("Interest expenses are well covered by interest income.")
	} else {
		add("High interest expenses relative to interest income.")
	}

	// Capital-turnover caveat, only when turnover is notably low.
	if values["capital_turnover_ratio"] < 1.0 {
		add("Low capital turnover relative to trading volume.")
	}

	return strings.Join(sentences, " ")
}
