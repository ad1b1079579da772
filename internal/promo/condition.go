package promo

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/diegoholiveira/jsonlogic/v3"
)

// evaluate runs a JSON Logic condition against the cart facts and reports
// whether the result is truthy.
func evaluate(cond map[string]any, facts Facts) (bool, error) {
	ruleJSON, err := json.Marshal(cond)
	if err != nil {
		return false, fmt.Errorf("encode condition: %w", err)
	}
	dataJSON, err := json.Marshal(facts)
	if err != nil {
		return false, fmt.Errorf("encode facts: %w", err)
	}

	var out bytes.Buffer
	if err := jsonlogic.Apply(bytes.NewReader(ruleJSON), bytes.NewReader(dataJSON), &out); err != nil {
		return false, fmt.Errorf("apply condition: %w", err)
	}

	var res any
	if err := json.Unmarshal(bytes.TrimSpace(out.Bytes()), &res); err != nil {
		return false, fmt.Errorf("decode condition result: %w", err)
	}
	return truthy(res), nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	default:
		return true
	}
}
