package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClauseKind identifies the shape of one compiled query clause
type ClauseKind string

const (
	ClauseTagContains    ClauseKind = "tag_contains"
	ClauseTagEquals      ClauseKind = "tag_equals"
	ClausePriceMin       ClauseKind = "price_min"
	ClausePriceMax       ClauseKind = "price_max"
	ClausePriceBetween   ClauseKind = "price_between"
	ClauseTitleContains  ClauseKind = "title_contains"
	ClauseInStock        ClauseKind = "in_stock"
	ClauseOutOfStock     ClauseKind = "out_of_stock"
	ClauseCategoryEquals ClauseKind = "category_equals"
)

// QueryClause is one compiled predicate. Text carries tag/title/category
// payloads; Min and Max carry price bounds.
type QueryClause struct {
	Kind ClauseKind
	Text string
	Min  decimal.Decimal
	Max  decimal.Decimal
}

// ProductQuery is the compiled form of a smart collection's rule set.
// It is a deferred query object, not a materialized result: the
// persistence layer translates it into SQL at execution time.
//
// Every query is scoped to the owning seller and to sellable products,
// independent of any stock condition in the rule set. Clauses combine
// with AND; each well-formed condition compiles to its own independent
// clause, so repeated conditions on the same field intersect rather
// than overwrite each other.
type ProductQuery struct {
	SellerID uuid.UUID
	Clauses  []QueryClause
}

// CompileRules translates an ordered rule set into a ProductQuery.
// Malformed conditions are skipped silently and contribute no clause.
func CompileRules(sellerID uuid.UUID, rules []Condition) ProductQuery {
	q := ProductQuery{SellerID: sellerID}
	for _, cond := range rules {
		if clause, ok := compileCondition(cond); ok {
			q.Clauses = append(q.Clauses, clause)
		}
	}
	return q
}

// compileCondition compiles a single condition; ok is false when the
// condition is malformed and should be skipped.
func compileCondition(cond Condition) (QueryClause, bool) {
	switch cond.Type {
	case ConditionTypeTag:
		if cond.Value == "" {
			return QueryClause{}, false
		}
		switch cond.Operator {
		case OperatorContains:
			return QueryClause{Kind: ClauseTagContains, Text: cond.Value}, true
		case OperatorEquals:
			return QueryClause{Kind: ClauseTagEquals, Text: cond.Value}, true
		}

	case ConditionTypePrice:
		switch cond.Operator {
		case OperatorGreaterThan:
			if min, ok := parsePrice(cond.Value); ok {
				return QueryClause{Kind: ClausePriceMin, Min: min}, true
			}
		case OperatorLessThan:
			if max, ok := parsePrice(cond.Value); ok {
				return QueryClause{Kind: ClausePriceMax, Max: max}, true
			}
		case OperatorBetween:
			min, okMin := parsePrice(cond.Min)
			max, okMax := parsePrice(cond.Max)
			if okMin && okMax {
				return QueryClause{Kind: ClausePriceBetween, Min: min, Max: max}, true
			}
		}

	case ConditionTypeTitle:
		if cond.Operator == OperatorContains && cond.Value != "" {
			return QueryClause{Kind: ClauseTitleContains, Text: cond.Value}, true
		}

	case ConditionTypeStock:
		switch cond.Operator {
		case OperatorInStock:
			return QueryClause{Kind: ClauseInStock}, true
		case OperatorOutOfStock:
			return QueryClause{Kind: ClauseOutOfStock}, true
		}

	case ConditionTypeCategory:
		// Any operator: category conditions are always an exact match on Value
		if cond.Value != "" {
			return QueryClause{Kind: ClauseCategoryEquals, Text: cond.Value}, true
		}
	}

	return QueryClause{}, false
}

// Matches reports whether a product satisfies the query. This is the
// reference semantics for clause evaluation; the SQL translation in the
// persistence layer must agree with it.
func (q ProductQuery) Matches(p *Product) bool {
	if p.SellerID != q.SellerID || !p.IsSellable() {
		return false
	}
	for _, clause := range q.Clauses {
		if !clauseMatches(clause, p) {
			return false
		}
	}
	return true
}

func clauseMatches(clause QueryClause, p *Product) bool {
	switch clause.Kind {
	case ClauseTagContains:
		for _, t := range p.Tags {
			if strings.EqualFold(t, clause.Text) {
				return true
			}
		}
		return false
	case ClauseTagEquals:
		return p.HasTag(clause.Text)
	case ClausePriceMin:
		return p.Price.GreaterThan(clause.Min)
	case ClausePriceMax:
		return p.Price.LessThan(clause.Max)
	case ClausePriceBetween:
		return p.Price.GreaterThanOrEqual(clause.Min) && p.Price.LessThanOrEqual(clause.Max)
	case ClauseTitleContains:
		return strings.Contains(strings.ToLower(p.Title), strings.ToLower(clause.Text))
	case ClauseInStock:
		return p.Quantity > 0
	case ClauseOutOfStock:
		return p.Quantity == 0
	case ClauseCategoryEquals:
		return p.Category == clause.Text
	default:
		return false
	}
}
