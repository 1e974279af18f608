package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKind_Matches(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		v    any
		want bool
	}{
		{"any accepts nil", KindAny, nil, true},
		{"any accepts struct", KindAny, struct{}{}, true},
		{"string", KindString, "x", true},
		{"string rejects int", KindString, 1, false},
		{"int from int", KindInt, 38, true},
		{"int from int64", KindInt, int64(-5), true},
		{"int from uint8", KindInt, uint8(7), true},
		{"int rejects huge uint64", KindInt, uint64(1 << 63), false},
		{"int rejects float", KindInt, 1.5, false},
		{"float", KindFloat, 1.5, true},
		{"bool", KindBool, true, true},
		{"strings", KindStrings, []string{"a"}, true},
		{"strings rejects any slice", KindStrings, []any{"a"}, false},
		{"time", KindTime, time.Now(), true},
		{"bool thunk named", KindBoolThunk, BoolThunk(func() bool { return true }), true},
		{"bool thunk bare", KindBoolThunk, func() bool { return true }, true},
		{"bool thunk nil", KindBoolThunk, BoolThunk(nil), false},
		{"string thunk bare", KindStringThunk, func() string { return "" }, true},
		{"string thunk rejects string", KindStringThunk, "x", false},
		{"number style", KindNumberStyle, NumberStyleDecimal, true},
		{"number style rejects plain string", KindNumberStyle, "decimal", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Matches(tt.v))
		})
	}
}

func TestKind_NilPredicate(t *testing.T) {
	k := NewKind("broken", nil)
	assert.False(t, k.Matches("x"))
	assert.Equal(t, "broken", k.String())
	assert.False(t, k.IsAny())
	assert.True(t, KindAny.IsAny())
}

func TestToInt64(t *testing.T) {
	n, ok := ToInt64(int32(-12))
	assert.True(t, ok)
	assert.Equal(t, int64(-12), n)

	_, ok = ToInt64("12")
	assert.False(t, ok)
}

func TestShape_Matches(t *testing.T) {
	shape := Shape{KindInt, KindNumberStyle}

	assert.True(t, shape.Matches([]any{38, NumberStyleSpellOut}))
	assert.False(t, shape.Matches([]any{38}))
	assert.False(t, shape.Matches([]any{"38", NumberStyleSpellOut}))
	assert.True(t, Shape{}.Matches(nil))
}

func TestShape_EqualAndOverlaps(t *testing.T) {
	a := Shape{KindString, KindInt}
	b := Shape{KindString, KindInt}
	c := Shape{KindAny, KindInt}
	d := Shape{KindString, KindBool}
	e := Shape{KindString}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	assert.True(t, a.Overlaps(b))
	assert.True(t, a.Overlaps(c))
	assert.True(t, c.Overlaps(a))
	assert.False(t, a.Overlaps(d))
	assert.False(t, a.Overlaps(e))
}

func TestShape_String(t *testing.T) {
	assert.Equal(t, "(int, number_style)", Shape{KindInt, KindNumberStyle}.String())
	assert.Equal(t, "()", Shape{}.String())
}

func TestDescribeArgs(t *testing.T) {
	assert.Equal(t, "(int, string, nil)", DescribeArgs([]any{1, "a", nil}))
	assert.Equal(t, "()", DescribeArgs(nil))
}
