package internal

import (
	"fmt"
	"strings"
	"time"
)

// Kind is a named predicate over a single handler argument.
// Two kinds are considered equal when their names are equal.
type Kind struct {
	name  string
	match func(v any) bool
}

// NewKind creates a kind with the given name and predicate.
// A nil predicate never matches.
func NewKind(name string, match func(v any) bool) Kind {
	return Kind{name: name, match: match}
}

// Name returns the kind name.
func (k Kind) Name() string {
	return k.name
}

// IsAny reports whether the kind accepts every value.
func (k Kind) IsAny() bool {
	return k.name == KindNameAny
}

// Matches reports whether v is an acceptable argument for this kind.
func (k Kind) Matches(v any) bool {
	if k.match == nil {
		return false
	}
	return k.match(v)
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return k.name
}

// BoolThunk is a deferred boolean, evaluated only when a handler needs it.
type BoolThunk func() bool

// StringThunk is a deferred string, evaluated only when a handler needs it.
type StringThunk func() string

// NumberStyle names a number formatting style.
type NumberStyle string

// Built-in kinds
var (
	KindAny = NewKind(KindNameAny, func(any) bool { return true })

	KindString = NewKind(KindNameString, func(v any) bool {
		_, ok := v.(string)
		return ok
	})

	KindInt = NewKind(KindNameInt, func(v any) bool {
		_, ok := ToInt64(v)
		return ok
	})

	KindFloat = NewKind(KindNameFloat, func(v any) bool {
		switch v.(type) {
		case float32, float64:
			return true
		}
		return false
	})

	KindBool = NewKind(KindNameBool, func(v any) bool {
		_, ok := v.(bool)
		return ok
	})

	KindStrings = NewKind(KindNameStrings, func(v any) bool {
		_, ok := v.([]string)
		return ok
	})

	KindTime = NewKind(KindNameTime, func(v any) bool {
		_, ok := v.(time.Time)
		return ok
	})

	KindBoolThunk = NewKind(KindNameBoolThunk, func(v any) bool {
		_, ok := ToBoolThunk(v)
		return ok
	})

	KindStringThunk = NewKind(KindNameStringThunk, func(v any) bool {
		_, ok := ToStringThunk(v)
		return ok
	})

	KindNumberStyle = NewKind(KindNameNumberStyle, func(v any) bool {
		_, ok := v.(NumberStyle)
		return ok
	})
)

// ToInt64 converts any signed or unsigned integer type to int64.
// Unsigned values above the int64 range are rejected.
func ToInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return uintToInt64(uint64(n))
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return uintToInt64(n)
	}
	return 0, false
}

func uintToInt64(n uint64) (int64, bool) {
	if n > 1<<63-1 {
		return 0, false
	}
	return int64(n), true
}

// ToBoolThunk accepts both the named thunk type and a bare func() bool.
func ToBoolThunk(v any) (BoolThunk, bool) {
	switch f := v.(type) {
	case BoolThunk:
		return f, f != nil
	case func() bool:
		return f, f != nil
	}
	return nil, false
}

// ToStringThunk accepts both the named thunk type and a bare func() string.
func ToStringThunk(v any) (StringThunk, bool) {
	switch f := v.(type) {
	case StringThunk:
		return f, f != nil
	case func() string:
		return f, f != nil
	}
	return nil, false
}

// Shape is the ordered list of argument kinds a handler accepts.
type Shape []Kind

// Arity returns the number of arguments.
func (s Shape) Arity() int {
	return len(s)
}

// Matches reports whether args are structurally compatible with the shape.
func (s Shape) Matches(args []any) bool {
	if len(args) != len(s) {
		return false
	}
	for i, k := range s {
		if !k.Matches(args[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether both shapes list the same kinds in the same order.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i].name != other[i].name {
			return false
		}
	}
	return true
}

// Overlaps reports whether some argument list could match both shapes.
// Positions overlap when the kinds are equal or either one is KindAny.
func (s Shape) Overlaps(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i].name == other[i].name || s[i].IsAny() || other[i].IsAny() {
			continue
		}
		return false
	}
	return true
}

// String renders the shape as "(kind, kind)".
func (s Shape) String() string {
	names := make([]string, len(s))
	for i, k := range s {
		names[i] = k.name
	}
	return ShapeOpen + strings.Join(names, ShapeSeparator) + ShapeClose
}

// DescribeArgs renders the dynamic types of args for diagnostics.
func DescribeArgs(args []any) string {
	names := make([]string, len(args))
	for i, a := range args {
		if a == nil {
			names[i] = StringValueNil
			continue
		}
		names[i] = typeName(a)
	}
	return ShapeOpen + strings.Join(names, ShapeSeparator) + ShapeClose
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
