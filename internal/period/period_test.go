package period

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input     string
		wantLabel string
		wantType  Type
		wantStart string
		wantEnd   string
	}{
		{"Apr_2024", "Apr_2024", TypeMonthly, "2024-04-01", "2024-04-30"},
		{"feb_2024", "Feb_2024", TypeMonthly, "2024-02-01", "2024-02-29"},
		{"Mar-2025 statements", "Mar_2025", TypeMonthly, "2025-03-01", "2025-03-31"},
		{"Q1_FY_2024_25", "Q1_FY_2024_25", TypeQuarterly, "2024-04-01", "2024-06-30"},
		{"Q2_FY_2024_25", "Q2_FY_2024_25", TypeQuarterly, "2024-07-01", "2024-09-30"},
		{"Q3_FY_2024_25", "Q3_FY_2024_25", TypeQuarterly, "2024-10-01", "2024-12-31"},
		{"Q4_FY_2024_25", "Q4_FY_2024_25", TypeQuarterly, "2025-01-01", "2025-03-31"},
		{"H1_FY_2024_25", "H1_FY_2024_25", TypeHalfYearly, "2024-04-01", "2024-09-30"},
		{"H2_FY_2024_25", "H2_FY_2024_25", TypeHalfYearly, "2024-10-01", "2025-03-31"},
		{"FY_2024_25", "FY_2024_25", TypeYearly, "2024-04-01", "2025-03-31"},
		{"FY-2012-13", "FY_2012_13", TypeYearly, "2012-04-01", "2013-03-31"},
		{"society FY 2024 25 audited", "FY_2024_25", TypeYearly, "2024-04-01", "2025-03-31"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, ok := Parse(tt.input)
			if !ok {
				t.Fatalf("Parse(%q) did not match", tt.input)
			}
			if p.Label != tt.wantLabel {
				t.Errorf("label = %q, want %q", p.Label, tt.wantLabel)
			}
			if p.Type != tt.wantType {
				t.Errorf("type = %q, want %q", p.Type, tt.wantType)
			}
			if got := p.Start.Format(time.DateOnly); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if got := p.End.Format(time.DateOnly); got != tt.wantEnd {
				t.Errorf("end = %s, want %s", got, tt.wantEnd)
			}
		})
	}
}

func TestParse_NoMatch(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", "statements", "2024", "Q1 2024"} {
		if _, ok := Parse(input); ok {
			t.Errorf("Parse(%q) matched, want no match", input)
		}
	}
}
