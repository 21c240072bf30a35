package rule

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Supported profile operators.
// Numeric operators compare with exact decimal arithmetic.
const (
	OpEq  = "eq"
	OpNeq = "neq"
	OpIn  = "in"
	OpGt  = "gt"
	OpGte = "gte"
	OpLt  = "lt"
	OpLte = "lte"
)

var profileOperators = map[string]bool{
	OpEq: true, OpNeq: true, OpIn: true,
	OpGt: true, OpGte: true, OpLt: true, OpLte: true,
}

// ValidProfileOperator reports whether op is a supported profile operator.
func ValidProfileOperator(op string) bool {
	return profileOperators[op]
}

// ProfileCondition is a static attribute check against a device profile.
type ProfileCondition struct {
	Tag   string `yaml:"tag" json:"tag"`
	Op    string `yaml:"op" json:"op"`
	Value string `yaml:"value" json:"value"`
}

// Evaluate checks the condition against profile tags.
// A missing tag never matches, whatever the operator.
func (c ProfileCondition) Evaluate(profile map[string]string) bool {
	got, ok := profile[c.Tag]
	if !ok {
		return false
	}

	switch c.Op {
	case OpEq, "":
		return got == c.Value
	case OpNeq:
		return got != c.Value
	case OpIn:
		for _, v := range strings.Split(c.Value, ",") {
			if strings.TrimSpace(v) == got {
				return true
			}
		}
		return false
	}

	have, ok := parseDecimal(got)
	if !ok {
		return false
	}
	want, ok := parseDecimal(c.Value)
	if !ok {
		return false
	}

	switch c.Op {
	case OpGt:
		return have.GreaterThan(want)
	case OpGte:
		return have.GreaterThanOrEqual(want)
	case OpLt:
		return have.LessThan(want)
	case OpLte:
		return have.LessThanOrEqual(want)
	default:
		return false
	}
}

// MatchProfile reports whether every condition holds. An empty list matches.
func MatchProfile(profile map[string]string, conds []ProfileCondition) bool {
	for _, c := range conds {
		if !c.Evaluate(profile) {
			return false
		}
	}
	return true
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
