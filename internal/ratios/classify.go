package ratios

import "github.com/coopstack/ratio-engine/internal/entity"

// Classify maps every computed ratio to a traffic-light status. Values must
// be the complete computed map: several ratios are benchmarked against a
// partner ratio's already-computed value rather than a fixed constant, and
// the partner is looked up here, never recomputed. A ratio is never used as
// its own threshold.
//
// The tolerance multipliers are fixed historical constants per ratio; they
// are reproduced exactly and deliberately not parameterized.
func Classify(values map[string]float64, bm BenchmarkSet) map[string]entity.Status {
	statuses := make(map[string]entity.Status, len(values))
	for key, value := range values {
		if baseVariables[key] {
			continue
		}
		statuses[key] = classifyOne(key, value, values, bm)
	}
	return statuses
}

func classifyOne(key string, value float64, values map[string]float64, bm BenchmarkSet) entity.Status {
	switch key {
	case "net_margin":
		return atLeast(value, bm, "net_margin", 0.5)

	case "net_fin_margin":
		return atLeast(value, bm, "net_financial_margin", 0.7)

	case "gross_fin_margin":
		return atLeast(value, bm, "gross_financial_margin", 0.7)

	case "stock_turnover":
		return atLeast(value, bm, "stock_turnover", 0.7)

	case "own_fund_to_wf":
		return atLeast(value, bm, "own_fund_to_wf", 0.7)

	case "avg_yield_on_wf":
		return atLeast(value, bm, "avg_yield_on_wf", 0.7)

	case "credit_deposit_ratio":
		return atLeast(value, bm, "credit_deposit_ratio_min", 0.8)

	case "gross_profit_ratio":
		return insideBand(value, bm, "gross_profit_ratio_min", "gross_profit_ratio_max", 0.7)

	case "loans_to_wf":
		return insideBand(value, bm, "loans_to_wf_min", "loans_to_wf_max", 0.8)

	case "investments_to_wf":
		return insideBand(value, bm, "investments_to_wf_min", "investments_to_wf_max", 0.7)

	case "risk_cost_to_wf":
		// Lower is better; twice the cap is still tolerable.
		max, ok := bm.Value("risk_cost_to_wf_max")
		if !ok {
			return entity.StatusYellow
		}
		switch {
		case value <= max:
			return entity.StatusGreen
		case value <= max*2:
			return entity.StatusYellow
		default:
			return entity.StatusRed
		}

	case "avg_cost_of_wf":
		// Lower is better.
		ideal, ok := bm.Value("avg_cost_of_wf")
		if !ok {
			return entity.StatusYellow
		}
		switch {
		case value <= ideal:
			return entity.StatusGreen
		case value <= ideal*1.2:
			return entity.StatusYellow
		default:
			return entity.StatusRed
		}

	case "operating_cost_to_wf":
		min, okMin := bm.Value("operating_cost_to_wf_min")
		max, okMax := bm.Value("operating_cost_to_wf_max")
		if !okMin || !okMax {
			return entity.StatusYellow
		}
		switch {
		case value >= min && value <= max:
			return entity.StatusGreen
		case value <= max*1.2:
			return entity.StatusYellow
		default:
			return entity.StatusRed
		}

	// Pairwise benchmarks: the threshold is a partner ratio's computed value.

	case "net_profit_ratio":
		// Ideal is half the gross profit ratio.
		threshold := values["gross_profit_ratio"] * 0.5
		return against(value, threshold, 0.7)

	case "earning_assets_to_wf":
		return against(value, values["interest_tagged_funds_to_wf"], 0.9)

	case "per_employee_contribution":
		return against(value, values["per_employee_operating_cost"], 0.9)

	case "cost_of_deposits":
		// Healthy when deposits cost at least four points under loan yield.
		yield := values["yield_on_loans"]
		if value <= 0 || yield <= 0 {
			return entity.StatusYellow
		}
		switch {
		case value <= yield-4:
			return entity.StatusGreen
		case value < yield:
			return entity.StatusYellow
		default:
			return entity.StatusRed
		}
	}

	// Anything with a fixed benchmark follows the default at-least rule.
	if _, ok := bm.Value(key); ok {
		return atLeast(value, bm, key, 0.7)
	}
	// No benchmark available: neutral.
	return entity.StatusYellow
}

// atLeast is the standard higher-is-better rule: at or above the ideal is
// green, at or above tolerance x ideal is yellow, below is red.
func atLeast(value float64, bm BenchmarkSet, key string, tolerance float64) entity.Status {
	ideal, ok := bm.Value(key)
	if !ok {
		return entity.StatusYellow
	}
	return against(value, ideal, tolerance)
}

func against(value, threshold, tolerance float64) entity.Status {
	switch {
	case threshold == 0:
		return entity.StatusYellow
	case value >= threshold:
		return entity.StatusGreen
	case value >= threshold*tolerance:
		return entity.StatusYellow
	default:
		return entity.StatusRed
	}
}

// insideBand is the band rule: inside [min, max] is green, at or above
// tolerance x min is yellow, below is red.
func insideBand(value float64, bm BenchmarkSet, minKey, maxKey string, tolerance float64) entity.Status {
	min, okMin := bm.Value(minKey)
	max, okMax := bm.Value(maxKey)
	if !okMin || !okMax {
		return entity.StatusYellow
	}
	switch {
	case value >= min && value <= max:
		return entity.StatusGreen
	case value >= min*tolerance:
		return entity.StatusYellow
	default:
		return entity.StatusRed
	}
}
