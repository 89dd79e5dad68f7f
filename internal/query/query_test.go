package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Empty(t *testing.T) {
	plan, err := Compile(nil, ParseConferenceField, "name")
	require.NoError(t, err)
	assert.Empty(t, plan.Conditions)
	assert.Equal(t, []string{"name"}, plan.OrderBy)
}

func TestCompile_EqualityFilters(t *testing.T) {
	plan, err := Compile([]Filter{
		{Field: "CITY", Operator: "EQ", Value: "London"},
		{Field: "TOPIC", Operator: "EQ", Value: "Medical Innovations"},
	}, ParseConferenceField, "name")
	require.NoError(t, err)
	require.Len(t, plan.Conditions, 2)

	assert.Equal(t, "city", plan.Conditions[0].Field.Column)
	assert.Equal(t, OpEq, plan.Conditions[0].Op)
	assert.Equal(t, "London", plan.Conditions[0].Value)

	assert.Equal(t, "topics", plan.Conditions[1].Field.Column)
	assert.True(t, plan.Conditions[1].Field.Repeated)

	assert.Equal(t, []string{"name"}, plan.OrderBy)
}

func TestCompile_IntCoercion(t *testing.T) {
	plan, err := Compile([]Filter{
		{Field: "MONTH", Operator: "EQ", Value: "6"},
		{Field: "MAX_ATTENDEES", Operator: "GT", Value: "10"},
	}, ParseConferenceField, "name")
	require.NoError(t, err)
	require.Len(t, plan.Conditions, 2)
	assert.Equal(t, 6, plan.Conditions[0].Value)
	assert.Equal(t, 10, plan.Conditions[1].Value)
}

func TestCompile_IntCoercion_BadValue(t *testing.T) {
	_, err := Compile([]Filter{
		{Field: "MONTH", Operator: "EQ", Value: "June"},
	}, ParseConferenceField, "name")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestCompile_InequalityOrdersFirst(t *testing.T) {
	plan, err := Compile([]Filter{
		{Field: "CITY", Operator: "EQ", Value: "London"},
		{Field: "MAX_ATTENDEES", Operator: "GT", Value: "10"},
	}, ParseConferenceField, "name")
	require.NoError(t, err)
	assert.Equal(t, []string{"max_attendees", "name"}, plan.OrderBy)
}

func TestCompile_InequalityOnDefaultSort(t *testing.T) {
	plan, err := Compile([]Filter{
		{Field: "NAME", Operator: "GT", Value: "F"},
	}, ParseConferenceField, "name")
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, plan.OrderBy)
}

func TestCompile_MultipleInequalitySameField(t *testing.T) {
	plan, err := Compile([]Filter{
		{Field: "MAX_ATTENDEES", Operator: "GT", Value: "10"},
		{Field: "MAX_ATTENDEES", Operator: "LT", Value: "100"},
	}, ParseConferenceField, "name")
	require.NoError(t, err)
	require.Len(t, plan.Conditions, 2)
	assert.Equal(t, []string{"max_attendees", "name"}, plan.OrderBy)
}

func TestCompile_MultipleInequalityFields(t *testing.T) {
	_, err := Compile([]Filter{
		{Field: "MONTH", Operator: "GT", Value: "3"},
		{Field: "MAX_ATTENDEES", Operator: "LT", Value: "100"},
	}, ParseConferenceField, "name")
	assert.ErrorIs(t, err, ErrMultipleInequalityFields)
}

func TestCompile_UnknownField(t *testing.T) {
	_, err := Compile([]Filter{
		{Field: "BOGUS", Operator: "EQ", Value: "x"},
	}, ParseConferenceField, "name")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestCompile_UnknownOperator(t *testing.T) {
	_, err := Compile([]Filter{
		{Field: "CITY", Operator: "LIKE", Value: "Lon%"},
	}, ParseConferenceField, "name")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestCompile_RepeatedFieldRejectsInequality(t *testing.T) {
	_, err := Compile([]Filter{
		{Field: "TOPIC", Operator: "GT", Value: "A"},
	}, ParseConferenceField, "name")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestParseSpeakerField(t *testing.T) {
	field, err := ParseSpeakerField("ORGANIZATION")
	require.NoError(t, err)
	assert.Equal(t, "organization", field.Column)
	assert.False(t, field.Repeated)

	field, err = ParseSpeakerField("INTERESTS")
	require.NoError(t, err)
	assert.True(t, field.Repeated)

	_, err = ParseSpeakerField("CITY")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestOperatorSQL(t *testing.T) {
	cases := map[string]string{
		"EQ": "=", "GT": ">", "GTEQ": ">=", "LT": "<", "LTEQ": "<=", "NE": "<>",
	}
	for symbol, want := range cases {
		op, err := ParseOperator(symbol)
		require.NoError(t, err)
		assert.Equal(t, want, op.SQL())
	}
}
