package filterir

import "fmt"

// Operator is one comparison operator from the closed catalog.
//
// Each operator carries three renderings: the user-facing symbol as the
// parser spells it, the JDOQL form, and the direct-SQL form. The three may
// differ (LIKE renders as a "matches" method call in JDOQL and as "like" in
// SQL; both not-equals spellings render as "!=" and "<>").
//
// Operators are values from a static table, never constructed by callers,
// so two Operator values compare equal exactly when they are the same
// catalog entry.
type Operator struct {
	symbol string
	jdo    string
	sql    string
}

// The operator catalog. NotEqualsAlt is the "!=" spelling; NotEquals is
// "<>". They compile identically in both dialects.
var (
	Equals         = Operator{symbol: "=", jdo: "==", sql: "="}
	GreaterThan    = Operator{symbol: ">", jdo: ">", sql: ">"}
	LessThan       = Operator{symbol: "<", jdo: "<", sql: "<"}
	LessOrEqual    = Operator{symbol: "<=", jdo: "<=", sql: "<="}
	GreaterOrEqual = Operator{symbol: ">=", jdo: ">=", sql: ">="}
	Like           = Operator{symbol: "LIKE", jdo: "matches", sql: "like"}
	NotEqualsAlt   = Operator{symbol: "!=", jdo: "!=", sql: "<>"}
	NotEquals      = Operator{symbol: "<>", jdo: "!=", sql: "<>"}
)

var operators = []Operator{
	Equals,
	GreaterThan,
	LessThan,
	LessOrEqual,
	GreaterOrEqual,
	Like,
	NotEqualsAlt,
	NotEquals,
}

// OperatorFromSymbol looks up an operator by its user-facing symbol.
// An unknown symbol returns a FilterError with ErrCodeUnknownOperator;
// it is never silently mapped to a default. The parser and this catalog
// must agree on the symbol set, so an unknown symbol indicates a version
// mismatch rather than a user mistake.
func OperatorFromSymbol(symbol string) (Operator, error) {
	for _, op := range operators {
		if op.symbol == symbol {
			return op, nil
		}
	}
	return Operator{}, &FilterError{
		Code:    ErrCodeUnknownOperator,
		Message: fmt.Sprintf("invalid operator symbol %q", symbol),
	}
}

// Symbol returns the user-facing spelling.
func (o Operator) Symbol() string { return o.symbol }

// JDO returns the JDOQL rendering.
func (o Operator) JDO() string { return o.jdo }

// SQL returns the direct-SQL rendering.
func (o Operator) SQL() string { return o.sql }

// IsEquality reports whether o is equals or either not-equals spelling.
// Only these operators take the partition-name optimization path and only
// they support integral constants.
func (o Operator) IsEquality() bool {
	return o == Equals || o == NotEquals || o == NotEqualsAlt
}

func (o Operator) String() string { return o.symbol }

// LogicalOperator is the connective carried by a Branch node.
type LogicalOperator string

const (
	And LogicalOperator = "AND"
	Or  LogicalOperator = "OR"
)

// JDO returns the JDOQL connective rendering.
func (l LogicalOperator) JDO() string {
	if l == And {
		return "&&"
	}
	return "||"
}

// SQL returns the direct-SQL connective rendering.
func (l LogicalOperator) SQL() string {
	return string(l)
}
