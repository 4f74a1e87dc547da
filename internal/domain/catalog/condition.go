package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ConditionType identifies the product field a condition tests
type ConditionType string

const (
	ConditionTypeTag      ConditionType = "tag"
	ConditionTypePrice    ConditionType = "price"
	ConditionTypeTitle    ConditionType = "title"
	ConditionTypeStock    ConditionType = "stock"
	ConditionTypeCategory ConditionType = "category"
)

// ConditionOperator is the comparison a condition applies
type ConditionOperator string

const (
	OperatorContains    ConditionOperator = "contains"
	OperatorEquals      ConditionOperator = "equals"
	OperatorGreaterThan ConditionOperator = "greater_than"
	OperatorLessThan    ConditionOperator = "less_than"
	OperatorBetween     ConditionOperator = "between"
	OperatorInStock     ConditionOperator = "in_stock"
	OperatorOutOfStock  ConditionOperator = "out_of_stock"
)

// Condition is one declarative predicate in a smart collection's rule set.
// Value, Min and Max are operator-dependent payloads; numeric payloads are
// carried as strings and parsed at compile time.
//
// A condition with an unrecognized type/operator combination, or with a
// missing or unparseable payload, is not an error: it is silently skipped
// during compilation and contributes no filter. Shape-level validation of
// a whole rule set happens at the API boundary, not here.
type Condition struct {
	Type     ConditionType     `json:"type"`
	Operator ConditionOperator `json:"operator"`
	Value    string            `json:"value,omitempty"`
	Min      string            `json:"min,omitempty"`
	Max      string            `json:"max,omitempty"`
}

// ConditionList is an ordered rule set, persisted as a jsonb column
type ConditionList []Condition

// Value implements driver.Valuer for jsonb storage
func (l ConditionList) Value() (driver.Value, error) {
	if l == nil {
		l = ConditionList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for jsonb storage
func (l *ConditionList) Scan(src any) error {
	if src == nil {
		*l = ConditionList{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into ConditionList", src)
	}
}

// parsePrice parses a price payload; ok is false for empty or malformed input
func parsePrice(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
