package entity

import "time"

// Status is the three-level traffic-light classification of a ratio.
type Status string

const (
	StatusGreen  Status = "green"
	StatusYellow Status = "yellow"
	StatusRed    Status = "red"
)

// RatioBundle is the full output of one ratio computation: every ratio key
// mapped to its computed value, a parallel status map, and the templated
// interpretation text. A bundle is recomputed in full on every request and
// never partially updated.
type RatioBundle struct {
	PeriodLabel    string             `json:"period_label"`
	Values         map[string]float64 `json:"all_ratios"`
	Statuses       map[string]Status  `json:"traffic_light_status"`
	Interpretation string             `json:"interpretation"`
	CalculatedAt   time.Time          `json:"calculated_at"`
}

// Value returns the computed value for key, or zero when absent.
func (b *RatioBundle) Value(key string) float64 {
	return b.Values[key]
}
