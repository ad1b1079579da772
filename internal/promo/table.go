// Package promo holds the promo-code rule table and its discount arithmetic.
package promo

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"sams-storefront/internal/domain"
)

//go:embed rules.yaml
var defaultRules []byte

// Rule is one accepted promo code.
type Rule struct {
	Code     string
	Fraction decimal.Decimal
	When     map[string]any
}

// Discount returns round(subtotal * Fraction), halves rounded away from zero.
func (r Rule) Discount(subtotal int64) int64 {
	return decimal.NewFromInt(subtotal).Mul(r.Fraction).Round(0).IntPart()
}

// Facts are the cart values a rule condition may inspect.
type Facts struct {
	Subtotal          int64 `json:"subtotal"`
	TotalItemCount    int   `json:"totalItemCount"`
	DistinctItemCount int   `json:"distinctItemCount"`
}

// Table maps normalized codes to rules. It is immutable once built.
type Table struct {
	rules map[string]Rule
}

type fileRule struct {
	Code     string         `yaml:"code"`
	Discount string         `yaml:"discount"`
	When     map[string]any `yaml:"when"`
}

type fileRules struct {
	Rules []fileRule `yaml:"rules"`
}

// Default returns the built-in table: SAMS10 10%, BIENVENUE 15%, WELCOME 15%.
func Default() *Table {
	t, err := Parse(defaultRules)
	if err != nil {
		panic(fmt.Sprintf("promo: embedded rules: %v", err))
	}
	return t
}

// Load reads a rule table from a YAML file. An empty path yields Default().
func Load(path string) (*Table, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read promo rules: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML rule document.
func Parse(data []byte) (*Table, error) {
	var doc fileRules
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode promo rules: %w", err)
	}
	seen := make(map[string]bool, len(doc.Rules))
	rules := make([]Rule, 0, len(doc.Rules))
	for _, fr := range doc.Rules {
		code := Normalize(fr.Code)
		if code == "" {
			return nil, fmt.Errorf("promo rule with empty code")
		}
		if seen[code] {
			return nil, fmt.Errorf("duplicate promo code %q", code)
		}
		frac, err := decimal.NewFromString(strings.TrimSpace(fr.Discount))
		if err != nil {
			return nil, fmt.Errorf("promo %s: discount %q: %w", code, fr.Discount, err)
		}
		if frac.IsNegative() || frac.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("promo %s: discount must be between 0 and 1, got %s", code, frac)
		}
		if len(fr.When) > 0 {
			if _, err := evaluate(fr.When, Facts{}); err != nil {
				return nil, fmt.Errorf("promo %s: when: %w", code, err)
			}
		}
		seen[code] = true
		rules = append(rules, Rule{Code: code, Fraction: frac, When: fr.When})
	}
	return FromRules(rules...), nil
}

// FromRules builds a table keyed by each rule's normalized code. Later rules
// replace earlier ones with the same code. Conditions are not checked here;
// Parse does that.
func FromRules(rules ...Rule) *Table {
	t := &Table{rules: make(map[string]Rule, len(rules))}
	for _, r := range rules {
		r.Code = Normalize(r.Code)
		t.rules[r.Code] = r
	}
	return t
}

// Normalize trims surrounding whitespace and upper-cases code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup finds the rule for an already normalized code.
func (t *Table) Lookup(code string) (Rule, bool) {
	r, ok := t.rules[code]
	return r, ok
}

// Len reports the number of codes in the table.
func (t *Table) Len() int {
	return len(t.rules)
}

// Match normalizes raw, finds its rule and checks the rule's condition
// against facts. Shopper mistakes are domain.ErrEmptyPromoCode,
// domain.ErrInvalidPromoCode and domain.ErrPromoNotEligible; any other error
// means the rule's condition could not be evaluated.
func (t *Table) Match(raw string, facts Facts) (Rule, error) {
	code := Normalize(raw)
	if code == "" {
		return Rule{}, domain.ErrEmptyPromoCode
	}
	rule, ok := t.Lookup(code)
	if !ok {
		return Rule{}, domain.ErrInvalidPromoCode
	}
	if len(rule.When) > 0 {
		ok, err := evaluate(rule.When, facts)
		if err != nil {
			return Rule{}, fmt.Errorf("promo %s: %w", code, err)
		}
		if !ok {
			return Rule{}, domain.ErrPromoNotEligible
		}
	}
	return rule, nil
}
