// Package ratios derives the financial ratio battery from a set of canonical
// statements and classifies each ratio against its benchmark.
//
// Computation is a pure function of its inputs: statements and benchmark
// snapshots go in, an immutable bundle comes out. Amounts stay decimal until
// the final float conversion so large working funds accumulate without drift.
package ratios

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/coopstack/ratio-engine/internal/entity"
)

// IncompleteStatementSetError is returned when ratio computation is invoked
// without all four canonical statements for the period.
type IncompleteStatementSetError struct {
	Missing entity.StatementType
}

func (e *IncompleteStatementSetError) Error() string {
	return fmt.Sprintf("cannot compute ratios: %s not found for this period", e.Missing.DisplayName())
}

var hundred = decimal.NewFromInt(100)
var lakh = decimal.NewFromInt(100000)

// ratio divides num by den, guarding the denominator: zero or negative
// denominators yield 0.0 rather than an error. This is deliberate policy so
// a partial or degenerate statement never aborts the whole computation.
func ratio(num, den decimal.Decimal) float64 {
	if den.Sign() <= 0 {
		return 0.0
	}
	return num.Div(den).InexactFloat64()
}

// pct is ratio expressed as a percentage.
func pct(num, den decimal.Decimal) float64 {
	if den.Sign() <= 0 {
		return 0.0
	}
	return num.Div(den).Mul(hundred).InexactFloat64()
}

// Compute derives every ratio for the period in dependency order and returns
// the full bundle including classification and interpretation. The benchmark
// set must be a snapshot taken before the call; it is read, never written.
func Compute(set *entity.StatementSet, bm BenchmarkSet) (*entity.RatioBundle, error) {
	if missing, ok := set.MissingStatement(); ok {
		return nil, &IncompleteStatementSetError{Missing: missing}
	}

	values := computeValues(set)
	bundle := &entity.RatioBundle{
		PeriodLabel:  set.PeriodLabel,
		Values:       values,
		CalculatedAt: time.Now().UTC(),
	}
	// Two-phase: all values exist before any classification, so pairwise
	// benchmarks read partner values from the same immutable map.
	bundle.Statuses = Classify(values, bm)
	bundle.Interpretation = Interpret(values)
	return bundle, nil
}

func computeValues(set *entity.StatementSet) map[string]float64 {
	ta, pl, bs, ops := set.Trading, set.ProfitLoss, set.Balance, set.Operational

	// Base variables, kept decimal for downstream divisions.
	wf := bs.WorkingFund()
	own := bs.OwnFunds()
	avgStock := ta.OpeningStock.Add(ta.ClosingStock).Div(decimal.NewFromInt(2))
	gross := ta.GrossProfit()
	cogs := ta.Sales.Sub(gross)

	v := make(map[string]float64, 36)
	v["working_fund"] = wf.InexactFloat64()
	v["own_funds"] = own.InexactFloat64()
	v["average_stock"] = avgStock.InexactFloat64()
	v["cogs"] = cogs.InexactFloat64()

	// Trading ratios.
	v["stock_turnover"] = ratio(cogs, avgStock)
	v["gross_profit_ratio"] = pct(gross, ta.Sales)
	v["net_profit_ratio"] = pct(pl.NetProfit, ta.Sales)

	// Capital efficiency.
	v["net_own_funds"] = own.InexactFloat64()
	v["capital_turnover_ratio"] = ratio(ta.Sales, own)

	// Fund structure (all as % of working fund; zero when wf <= 0).
	v["own_fund_to_wf"] = pct(own, wf)
	v["deposits_to_wf"] = pct(bs.Deposits, wf)
	v["borrowings_to_wf"] = pct(bs.Borrowings, wf)
	v["loans_to_wf"] = pct(bs.LoansAdvances, wf)
	v["investments_to_wf"] = pct(bs.Investments, wf)
	v["earning_assets_to_wf"] = pct(bs.LoansAdvances.Add(bs.Investments).Add(bs.CashAtBank), wf)
	v["interest_tagged_funds_to_wf"] = pct(bs.Deposits.Add(bs.Borrowings), wf)

	// Yield and cost.
	v["cost_of_deposits"] = pct(pl.InterestOnDeposits, bs.Deposits)
	v["yield_on_loans"] = pct(pl.InterestOnLoans, bs.LoansAdvances)
	v["yield_on_investments"] = pct(pl.ReturnOnInvestment, bs.Investments)
	v["credit_deposit_ratio"] = pct(bs.LoansAdvances, bs.Deposits)
	v["avg_cost_of_wf"] = pct(pl.TotalInterestExpense(), wf)
	v["avg_yield_on_wf"] = pct(pl.TotalInterestIncome(), wf)
	v["misc_income_to_wf"] = pct(pl.MiscellaneousIncome, wf)
	v["interest_exp_to_interest_income"] = pct(pl.TotalInterestExpense(), pl.TotalInterestIncome())

	// Margins, derived from already-computed percentages.
	v["gross_fin_margin"] = v["avg_yield_on_wf"] - v["avg_cost_of_wf"]
	v["operating_cost_to_wf"] = pct(pl.EstablishmentContingencies, wf)
	v["net_fin_margin"] = v["gross_fin_margin"] + v["misc_income_to_wf"] - v["operating_cost_to_wf"]
	v["risk_cost_to_wf"] = pct(pl.Provisions, wf)
	v["net_margin"] = v["net_fin_margin"] - v["risk_cost_to_wf"]

	// Productivity, in lakhs per employee.
	if ops.StaffCount > 0 {
		staff := decimal.NewFromInt(int64(ops.StaffCount))
		perEmployee := func(amount decimal.Decimal) float64 {
			return amount.Div(staff).Div(lakh).InexactFloat64()
		}
		v["per_employee_deposit"] = perEmployee(bs.Deposits)
		v["per_employee_loan"] = perEmployee(bs.LoansAdvances)
		v["per_employee_contribution"] = perEmployee(pl.TotalIncome().Sub(pl.TotalInterestExpense()))
		v["per_employee_operating_cost"] = perEmployee(pl.EstablishmentContingencies)
	} else {
		v["per_employee_deposit"] = 0.0
		v["per_employee_loan"] = 0.0
		v["per_employee_contribution"] = 0.0
		v["per_employee_operating_cost"] = 0.0
	}

	return v
}

// baseVariables are output alongside the ratios but never classified.
var baseVariables = map[string]bool{
	"working_fund":  true,
	"own_funds":     true,
	"average_stock": true,
	"cogs":          true,
	"net_own_funds": true,
}
