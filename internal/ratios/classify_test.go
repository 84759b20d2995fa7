package ratios

import (
	"testing"

	"github.com/coopstack/ratio-engine/internal/entity"
)

func TestClassify_FixedRules(t *testing.T) {
	t.Parallel()

	bm := DefaultBenchmarks()
	tests := []struct {
		name  string
		key   string
		value float64
		want  entity.Status
	}{
		{"net margin at ideal", "net_margin", 1.0, entity.StatusGreen},
		{"net margin half ideal", "net_margin", 0.5, entity.StatusYellow},
		{"net margin below half", "net_margin", 0.49, entity.StatusRed},
		{"stock turnover above ideal", "stock_turnover", 17.4, entity.StatusGreen},
		{"stock turnover at 70pct", "stock_turnover", 10.5, entity.StatusYellow},
		{"stock turnover low", "stock_turnover", 10.0, entity.StatusRed},
		{"credit deposit at min", "credit_deposit_ratio", 70.0, entity.StatusGreen},
		{"credit deposit at 80pct of min", "credit_deposit_ratio", 56.0, entity.StatusYellow},
		{"credit deposit far below", "credit_deposit_ratio", 55.0, entity.StatusRed},
		{"gross profit inside band", "gross_profit_ratio", 12.0, entity.StatusGreen},
		{"gross profit above band", "gross_profit_ratio", 20.0, entity.StatusYellow},
		{"gross profit below tolerance", "gross_profit_ratio", 6.0, entity.StatusRed},
		{"loans inside band", "loans_to_wf", 72.0, entity.StatusGreen},
		{"loans above band", "loans_to_wf", 84.0, entity.StatusYellow},
		{"loans below tolerance", "loans_to_wf", 50.0, entity.StatusRed},
		{"risk cost under cap", "risk_cost_to_wf", 0.2, entity.StatusGreen},
		{"risk cost under twice cap", "risk_cost_to_wf", 0.5, entity.StatusYellow},
		{"risk cost over twice cap", "risk_cost_to_wf", 0.51, entity.StatusRed},
		{"avg cost under ideal", "avg_cost_of_wf", 3.5, entity.StatusGreen},
		{"avg cost within 20pct over", "avg_cost_of_wf", 4.2, entity.StatusYellow},
		{"avg cost high", "avg_cost_of_wf", 4.21, entity.StatusRed},
		{"operating cost inside band", "operating_cost_to_wf", 2.25, entity.StatusGreen},
		{"operating cost slightly over", "operating_cost_to_wf", 3.0, entity.StatusYellow},
		{"operating cost excessive", "operating_cost_to_wf", 3.01, entity.StatusRed},
		{"operating cost under min still green band miss", "operating_cost_to_wf", 1.0, entity.StatusYellow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyOne(tt.key, tt.value, map[string]float64{}, bm)
			if got != tt.want {
				t.Errorf("classifyOne(%s, %v) = %s, want %s", tt.key, tt.value, got, tt.want)
			}
		})
	}
}

func TestClassify_PairwiseBenchmarks(t *testing.T) {
	t.Parallel()

	bm := DefaultBenchmarks()
	tests := []struct {
		name   string
		key    string
		value  float64
		values map[string]float64
		want   entity.Status
	}{
		{
			"net profit at half gross", "net_profit_ratio", 6.0,
			map[string]float64{"gross_profit_ratio": 12.0}, entity.StatusGreen,
		},
		{
			"net profit within tolerance of half gross", "net_profit_ratio", 4.2,
			map[string]float64{"gross_profit_ratio": 12.0}, entity.StatusYellow,
		},
		{
			"net profit far under half gross", "net_profit_ratio", 4.0,
			map[string]float64{"gross_profit_ratio": 12.0}, entity.StatusRed,
		},
		{
			"earning assets cover tagged funds", "earning_assets_to_wf", 104.0,
			map[string]float64{"interest_tagged_funds_to_wf": 95.0}, entity.StatusGreen,
		},
		{
			"earning assets within 90pct of tagged", "earning_assets_to_wf", 86.0,
			map[string]float64{"interest_tagged_funds_to_wf": 95.0}, entity.StatusYellow,
		},
		{
			"earning assets far short", "earning_assets_to_wf", 85.0,
			map[string]float64{"interest_tagged_funds_to_wf": 95.0}, entity.StatusRed,
		},
		{
			"contribution covers operating cost", "per_employee_contribution", 6.0,
			map[string]float64{"per_employee_operating_cost": 5.6}, entity.StatusGreen,
		},
		{
			"deposits cost four under yield", "cost_of_deposits", 5.5,
			map[string]float64{"yield_on_loans": 9.7}, entity.StatusGreen,
		},
		{
			"deposits cost under yield but close", "cost_of_deposits", 6.0,
			map[string]float64{"yield_on_loans": 9.7}, entity.StatusYellow,
		},
		{
			"deposits cost at or above yield", "cost_of_deposits", 9.7,
			map[string]float64{"yield_on_loans": 9.7}, entity.StatusRed,
		},
		{
			"deposits cost undefined without yield", "cost_of_deposits", 5.5,
			map[string]float64{"yield_on_loans": 0.0}, entity.StatusYellow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyOne(tt.key, tt.value, tt.values, bm)
			if got != tt.want {
				t.Errorf("classifyOne(%s, %v) = %s, want %s", tt.key, tt.value, got, tt.want)
			}
		})
	}
}

func TestClassify_SkipsBaseVariables(t *testing.T) {
	t.Parallel()

	values := map[string]float64{
		"working_fund":  518425409,
		"own_funds":     26717299,
		"average_stock": 32540,
		"cogs":          565700,
		"net_own_funds": 26717299,
		"net_margin":    1.52,
	}
	statuses := Classify(values, DefaultBenchmarks())
	for key := range baseVariables {
		if _, ok := statuses[key]; ok {
			t.Errorf("base variable %q must not be classified", key)
		}
	}
	if _, ok := statuses["net_margin"]; !ok {
		t.Error("net_margin was not classified")
	}
}

func TestClassify_ZeroThresholdNeutral(t *testing.T) {
	t.Parallel()

	// When the partner ratio is zero there is nothing to compare against.
	got := classifyOne("earning_assets_to_wf", 50.0,
		map[string]float64{"interest_tagged_funds_to_wf": 0.0}, DefaultBenchmarks())
	if got != entity.StatusYellow {
		t.Errorf("got %s, want yellow for zero partner threshold", got)
	}
}

func TestClassify_ContextualWithoutPartnerIsNeutral(t *testing.T) {
	t.Parallel()

	// Keys with nil benchmarks and no pairwise rule stay neutral.
	for _, key := range []string{"deposits_to_wf", "yield_on_investments", "per_employee_deposit"} {
		got := classifyOne(key, 42.0, map[string]float64{}, DefaultBenchmarks())
		if got != entity.StatusYellow {
			t.Errorf("classifyOne(%s) = %s, want yellow", key, got)
		}
	}
}

func TestClassify_XYZFixtureStatuses(t *testing.T) {
	t.Parallel()

	bundle, err := Compute(xyzSet(), DefaultBenchmarks())
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]entity.Status{
		"stock_turnover":       entity.StatusGreen,  // 17.38 >= 15
		"credit_deposit_ratio": entity.StatusGreen,  // 90.2 >= 70
		"cost_of_deposits":     entity.StatusGreen,  // 5.51 <= 9.72 - 4
		"earning_assets_to_wf": entity.StatusGreen,  // 104.27 >= 94.85
		"net_margin":           entity.StatusGreen,  // 1.52 >= 1.0
		"risk_cost_to_wf":      entity.StatusRed,    // 0.87 > 2 x 0.25
		"loans_to_wf":          entity.StatusYellow, // 84.34 above band
		"gross_profit_ratio":   entity.StatusRed,    // negative
		"operating_cost_to_wf": entity.StatusYellow, // 2.60 <= 1.2 x 2.5
	}
	for key, status := range want {
		if got := bundle.Statuses[key]; got != status {
			t.Errorf("%s = %s, want %s (value %.4f)", key, got, status, bundle.Values[key])
		}
	}
}
