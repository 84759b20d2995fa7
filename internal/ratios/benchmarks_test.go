package ratios

import "testing"

func TestDefaultBenchmarks_CoverKeyOrder(t *testing.T) {
	t.Parallel()

	defaults := DefaultBenchmarks()
	if len(defaults) != len(BenchmarkKeyOrder) {
		t.Fatalf("defaults has %d keys, key order has %d", len(defaults), len(BenchmarkKeyOrder))
	}
	for _, key := range BenchmarkKeyOrder {
		if _, ok := defaults[key]; !ok {
			t.Errorf("key %q missing from defaults", key)
		}
		if _, ok := BenchmarkLabels[key]; !ok {
			t.Errorf("key %q missing a display label", key)
		}
	}
}

func TestRatioKeyOrder_CoversComputedValues(t *testing.T) {
	t.Parallel()

	values := computeValues(xyzSet())
	if len(values) != len(RatioKeyOrder) {
		t.Fatalf("computed %d values, key order has %d", len(values), len(RatioKeyOrder))
	}
	for _, key := range RatioKeyOrder {
		if _, ok := values[key]; !ok {
			t.Errorf("ordered key %q never computed", key)
		}
		if _, ok := RatioLabels[key]; !ok {
			t.Errorf("key %q missing a display label", key)
		}
	}
}

func TestBenchmarkSet_Merge(t *testing.T) {
	t.Parallel()

	base := DefaultBenchmarks()
	merged := base.Merge(map[string]*float64{
		"net_margin":     f(2.0),
		"stock_turnover": nil,     // reset to contextual
		"no_such_ratio":  f(99.0), // unknown, dropped
	})

	if v, ok := merged.Value("net_margin"); !ok || v != 2.0 {
		t.Errorf("net_margin = %v (ok=%v), want 2.0", v, ok)
	}
	if _, ok := merged.Value("stock_turnover"); ok {
		t.Error("stock_turnover should be contextual after nil override")
	}
	if _, exists := merged["no_such_ratio"]; exists {
		t.Error("unknown override key must be dropped")
	}

	// Originals untouched.
	if v, _ := base.Value("net_margin"); v != 1.0 {
		t.Errorf("base mutated: net_margin = %v", v)
	}
}

func TestParseOverrides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, got map[string]*float64)
	}{
		{
			name:  "valid numbers and null",
			input: `{"net_margin": 1.25, "stock_turnover": null}`,
			check: func(t *testing.T, got map[string]*float64) {
				if got["net_margin"] == nil || *got["net_margin"] != 1.25 {
					t.Errorf("net_margin = %v", got["net_margin"])
				}
				if v, ok := got["stock_turnover"]; !ok || v != nil {
					t.Errorf("stock_turnover = %v (present=%v), want present nil", v, ok)
				}
			},
		},
		{
			name:  "unknown keys sanitized",
			input: `{"bogus": 1, "net_margin": 1.0}`,
			check: func(t *testing.T, got map[string]*float64) {
				if _, ok := got["bogus"]; ok {
					t.Error("unknown key survived sanitization")
				}
				if len(got) != 1 {
					t.Errorf("got %d keys, want 1", len(got))
				}
			},
		},
		{name: "string value rejected", input: `{"net_margin": "high"}`, wantErr: true},
		{name: "array rejected", input: `[1, 2]`, wantErr: true},
		{name: "malformed json", input: `{`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOverrides([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			tt.check(t, got)
		})
	}
}
