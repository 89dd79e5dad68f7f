// Package query compiles dynamic (field, operator, value) filter triples into
// an executable query plan. The underlying store allows inequality comparisons
// on at most one field per query, and requires that field to be the primary
// sort key; the compiler enforces both rules up front so repositories can
// translate a Plan mechanically.
package query

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrInvalidFilter is returned for an unknown field or operator symbol,
	// or a value that cannot be coerced to the field's type.
	ErrInvalidFilter = errors.New("filter contains invalid field or operator")
	// ErrMultipleInequalityFields is returned when non-equality operators are
	// applied to more than one distinct field.
	ErrMultipleInequalityFields = errors.New("inequality filter is allowed on only one field")
)

// Operator is a closed enumeration of the supported comparison operators.
type Operator int

const (
	OpEq Operator = iota
	OpGt
	OpGtEq
	OpLt
	OpLtEq
	OpNotEq
)

// ParseOperator maps an operator symbol to its Operator.
func ParseOperator(symbol string) (Operator, error) {
	switch symbol {
	case "EQ":
		return OpEq, nil
	case "GT":
		return OpGt, nil
	case "GTEQ":
		return OpGtEq, nil
	case "LT":
		return OpLt, nil
	case "LTEQ":
		return OpLtEq, nil
	case "NE":
		return OpNotEq, nil
	}
	return 0, fmt.Errorf("%w: unknown operator %q", ErrInvalidFilter, symbol)
}

// SQL returns the SQL comparison operator.
func (op Operator) SQL() string {
	switch op {
	case OpEq:
		return "="
	case OpGt:
		return ">"
	case OpGtEq:
		return ">="
	case OpLt:
		return "<"
	case OpLtEq:
		return "<="
	case OpNotEq:
		return "<>"
	}
	return "="
}

// IsInequality reports whether the operator is anything other than equality.
func (op Operator) IsInequality() bool {
	return op != OpEq
}

// ValueKind is the semantic type filter values are coerced to.
type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
)

// Field describes a queryable entity field: the client-facing symbol, the
// store column it maps to, its value kind, and whether it is a repeated
// (array) field, where a comparison means membership.
type Field struct {
	Symbol   string
	Column   string
	Kind     ValueKind
	Repeated bool
}

// FieldParser resolves a field symbol for a particular entity kind.
type FieldParser func(symbol string) (Field, error)

// ParseConferenceField resolves the queryable conference fields.
func ParseConferenceField(symbol string) (Field, error) {
	switch symbol {
	case "CITY":
		return Field{Symbol: symbol, Column: "city", Kind: KindString}, nil
	case "TOPIC":
		return Field{Symbol: symbol, Column: "topics", Kind: KindString, Repeated: true}, nil
	case "MONTH":
		return Field{Symbol: symbol, Column: "month", Kind: KindInt}, nil
	case "MAX_ATTENDEES":
		return Field{Symbol: symbol, Column: "max_attendees", Kind: KindInt}, nil
	case "NAME":
		return Field{Symbol: symbol, Column: "name", Kind: KindString}, nil
	}
	return Field{}, fmt.Errorf("%w: unknown conference field %q", ErrInvalidFilter, symbol)
}

// ParseSpeakerField resolves the queryable speaker fields.
func ParseSpeakerField(symbol string) (Field, error) {
	switch symbol {
	case "NAME":
		return Field{Symbol: symbol, Column: "name", Kind: KindString}, nil
	case "ORGANIZATION":
		return Field{Symbol: symbol, Column: "organization", Kind: KindString}, nil
	case "INTERESTS":
		return Field{Symbol: symbol, Column: "interests", Kind: KindString, Repeated: true}, nil
	}
	return Field{}, fmt.Errorf("%w: unknown speaker field %q", ErrInvalidFilter, symbol)
}

// Filter is an inbound filter triple as submitted by clients.
type Filter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// Condition is a compiled comparison ready for the store.
type Condition struct {
	Field Field
	Op    Operator
	Value any
}

// Plan is an executable query plan: ordered conditions plus the sort columns
// the store must apply, inequality field first when one is present.
type Plan struct {
	Conditions []Condition
	OrderBy    []string
}

// Compile validates and translates the submitted filters. parseField selects
// the entity's field table; defaultSort is the natural sort column applied
// after any inequality field.
func Compile(filters []Filter, parseField FieldParser, defaultSort string) (*Plan, error) {
	plan := &Plan{}
	inequalityColumn := ""

	for _, f := range filters {
		field, err := parseField(f.Field)
		if err != nil {
			return nil, err
		}
		op, err := ParseOperator(f.Operator)
		if err != nil {
			return nil, err
		}
		if field.Repeated && op != OpEq {
			return nil, fmt.Errorf("%w: field %q supports only EQ", ErrInvalidFilter, field.Symbol)
		}

		var value any = f.Value
		if field.Kind == KindInt {
			n, err := strconv.Atoi(f.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: value %q is not a number", ErrInvalidFilter, f.Value)
			}
			value = n
		}

		if op.IsInequality() {
			if inequalityColumn != "" && inequalityColumn != field.Column {
				return nil, ErrMultipleInequalityFields
			}
			inequalityColumn = field.Column
		}

		plan.Conditions = append(plan.Conditions, Condition{Field: field, Op: op, Value: value})
	}

	if inequalityColumn != "" && inequalityColumn != defaultSort {
		plan.OrderBy = []string{inequalityColumn, defaultSort}
	} else {
		plan.OrderBy = []string{defaultSort}
	}
	return plan, nil
}
