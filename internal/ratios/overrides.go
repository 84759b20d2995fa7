package ratios

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// overridesSchema constrains an operator-supplied benchmark document to a
// flat object of numeric-or-null values.
const overridesSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"additionalProperties": {
		"type": ["number", "null"]
	}
}`

var overridesCompiled = jsonschema.MustCompileString("benchmarks.json", overridesSchema)

// ParseOverrides validates a JSON benchmark-override document and returns the
// override map with unknown keys already dropped. Values must be numbers or
// null; anything else fails validation before merge.
func ParseOverrides(data []byte) (map[string]*float64, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse benchmark overrides: %w", err)
	}
	if err := overridesCompiled.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid benchmark overrides: %w", err)
	}

	obj := doc.(map[string]any)
	out := make(map[string]*float64, len(obj))
	for k, raw := range obj {
		key := strings.TrimSpace(k)
		if raw == nil {
			out[key] = nil
			continue
		}
		num := raw.(float64)
		out[key] = &num
	}
	return SanitizeOverrides(out), nil
}
