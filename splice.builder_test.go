package splice

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

var hater = Subject{Type: "hater", Action: "hate"}

func finalize(t *testing.T, b *Builder) string {
	t.Helper()
	text, err := b.Finalize()
	require.NoError(t, err)
	return text
}

func TestBuilder_OrderLaw(t *testing.T) {
	engine := MustNew()
	b := engine.NewBuilder()

	require.NoError(t, b.AppendLiteral("a"))
	require.NoError(t, b.Twitter("x"))
	require.NoError(t, b.AppendLiteral("b"))
	require.NoError(t, b.Join([]string{"1", "2"}, LazyString("none")))
	require.NoError(t, b.AppendLiteral(""))

	assert.Equal(t, 5, b.Len())
	frags := b.Fragments()
	assert.Equal(t, FragmentLiteral, frags[0].Kind)
	assert.Equal(t, FragmentComputed, frags[1].Kind)
	assert.Equal(t, HandlerTwitter, frags[1].Handler)

	assert.Equal(t, `a<a href="https://twitter.com/x">@x</a>b1, 2`, finalize(t, b))
}

func TestBuilder_Finalize(t *testing.T) {
	t.Run("empty builder", func(t *testing.T) {
		assert.Equal(t, "", finalize(t, MustNew().NewBuilder()))
	})

	t.Run("idempotent", func(t *testing.T) {
		b := MustNew().NewBuilder()
		require.NoError(t, b.AppendLiteral("Hi"))

		first := finalize(t, b)
		second := finalize(t, b)
		assert.Equal(t, "Hi", first)
		assert.Equal(t, first, second)
		assert.True(t, b.Finalized())
	})

	t.Run("append after finalize", func(t *testing.T) {
		b := MustNew().NewBuilder()
		require.NoError(t, b.AppendLiteral("Hi"))
		finalize(t, b)

		requireKind(t, b.AppendLiteral("more"), ErrorKindFinalizedState)
		requireKind(t, b.Twitter("x"), ErrorKindFinalizedState)
		assert.Equal(t, "Hi", finalize(t, b))
	})
}

func TestBuilder_Literal(t *testing.T) {
	b := MustNew().NewBuilder()
	require.NoError(t, b.AppendLiteral("Hello, "))
	require.NoError(t, b.AppendLiteral("{not a template}"))
	assert.Equal(t, "Hello, {not a template}", finalize(t, b))
}

func TestBuilder_Format(t *testing.T) {
	t.Run("spell out", func(t *testing.T) {
		b := MustNew().NewBuilder()
		require.NoError(t, b.AppendLiteral("Hi, I'm "))
		require.NoError(t, b.Format(38, NumberStyleSpellOut))
		require.NoError(t, b.AppendLiteral("."))
		assert.Equal(t, "Hi, I'm thirty-eight.", finalize(t, b))
	})

	t.Run("declined input is skipped", func(t *testing.T) {
		b := MustNew().NewBuilder()
		require.NoError(t, b.AppendLiteral("["))
		require.NoError(t, b.Format(38, NumberStyle("roman")))
		require.NoError(t, b.AppendLiteral("]"))
		assert.Equal(t, "[]", finalize(t, b))
		assert.Equal(t, 2, b.Len())
	})

	t.Run("custom formatter", func(t *testing.T) {
		engine := MustNew(WithNumberFormatter(NumberFormatFunc(func(v int64, _ NumberStyle) (string, error) {
			return "#", nil
		})))
		b := engine.NewBuilder()
		require.NoError(t, b.Format(1, NumberStyleDecimal))
		assert.Equal(t, "#", finalize(t, b))
	})

	t.Run("any integer type", func(t *testing.T) {
		b := MustNew().NewBuilder()
		require.NoError(t, b.AppendComputed(HandlerFormat, uint16(1234), NumberStyleDecimal))
		assert.Equal(t, "1,234", finalize(t, b))
	})
}

func TestBuilder_Date(t *testing.T) {
	ts := time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)

	b := MustNew().NewBuilder()
	require.NoError(t, b.AppendLiteral("Today's date is "))
	require.NoError(t, b.Date(ts))
	assert.Equal(t, "Today's date is Sunday, October 18, 2026", finalize(t, b))

	custom := MustNew(WithDateFormatter(DateFormatFunc(func(t time.Time) string {
		return t.Format(time.DateOnly)
	}))).NewBuilder()
	require.NoError(t, custom.Date(ts))
	assert.Equal(t, "2026-10-18", finalize(t, custom))
}

func TestBuilder_Join(t *testing.T) {
	t.Run("values", func(t *testing.T) {
		b := MustNew().NewBuilder()
		require.NoError(t, b.AppendLiteral("Crew: "))
		require.NoError(t, b.Join([]string{"Malcolm", "Jayne", "Kaylee"}, LazyString("No one")))
		require.NoError(t, b.AppendLiteral("."))
		assert.Equal(t, "Crew: Malcolm, Jayne, Kaylee.", finalize(t, b))
	})

	t.Run("fallback", func(t *testing.T) {
		b := MustNew().NewBuilder()
		require.NoError(t, b.AppendLiteral("Crew: "))
		require.NoError(t, b.Join([]string{}, LazyString("No one")))
		require.NoError(t, b.AppendLiteral("."))
		assert.Equal(t, "Crew: No one.", finalize(t, b))
	})

	t.Run("fallback not evaluated", func(t *testing.T) {
		called := false
		b := MustNew().NewBuilder()
		require.NoError(t, b.Join([]string{"a"}, func() string {
			called = true
			return "x"
		}))
		assert.Equal(t, "a", finalize(t, b))
		assert.False(t, called)
	})

	t.Run("formatted helper", func(t *testing.T) {
		assert.Equal(t, "Malcolm, Jayne, Kaylee", Formatted([]string{"Malcolm", "Jayne", "Kaylee"}, LazyString("No one")))
		assert.Equal(t, "No one", Formatted(nil, LazyString("No one")))
		assert.Equal(t, "", Formatted(nil, nil))
		assert.Equal(t, "a", Formatted([]string{"a"}, nil))
	})
}

func TestBuilder_If(t *testing.T) {
	t.Run("true guard", func(t *testing.T) {
		b := MustNew().NewBuilder()
		require.NoError(t, b.AppendLiteral("Splice rocks: "))
		require.NoError(t, b.If(Lazy(true), "(*)"))
		assert.Equal(t, "Splice rocks: (*)", finalize(t, b))
	})

	t.Run("false guard", func(t *testing.T) {
		b := MustNew().NewBuilder()
		require.NoError(t, b.AppendLiteral("Splice rocks: "))
		require.NoError(t, b.If(Lazy(false), "(*)"))
		assert.Equal(t, "Splice rocks: ", finalize(t, b))
	})

	t.Run("guard evaluated once", func(t *testing.T) {
		calls := 0
		b := MustNew().NewBuilder()
		require.NoError(t, b.If(func() bool {
			calls++
			return true
		}, "x"))
		assert.Equal(t, 1, calls)
	})

	t.Run("guard not evaluated after strict failure", func(t *testing.T) {
		calls := 0
		b := MustNew().NewBuilder()
		require.Error(t, b.AppendComputed("nope"))
		require.Error(t, b.If(func() bool {
			calls++
			return true
		}, "x"))
		assert.Equal(t, 0, calls)
	})
}

func TestBuilder_Subject(t *testing.T) {
	t.Run("repeat", func(t *testing.T) {
		b := MustNew().NewBuilder()
		require.NoError(t, b.Repeat(hater, 5))
		assert.Equal(t, "Haters gonna hate hate hate hate hate ", finalize(t, b))
	})

	t.Run("repeat zero", func(t *testing.T) {
		b := MustNew().NewBuilder()
		require.NoError(t, b.Repeat(hater, 0))
		assert.Equal(t, "Haters gonna ", finalize(t, b))
	})

	t.Run("repeat negative", func(t *testing.T) {
		b := MustNew().NewBuilder()
		err := b.Repeat(hater, -1)
		requireKind(t, err, ErrorKindHandlerFailure)
		assert.True(t, errors.Is(err, errNegativeCount))

		_, err = b.Finalize()
		require.Error(t, err)
	})

	t.Run("repeat over limit", func(t *testing.T) {
		b := MustNew().NewBuilder()
		require.NoError(t, b.Repeat(hater, MaxRepeatCount))

		b = MustNew().NewBuilder()
		err := b.Repeat(hater, 1<<62)
		requireKind(t, err, ErrorKindHandlerFailure)
		assert.True(t, errors.Is(err, errRepeatTooLarge))

		b = MustNew().NewBuilder()
		err = b.AppendComputed(HandlerSubject, hater, MaxRepeatCount+1)
		assert.True(t, errors.Is(err, errRepeatTooLarge))
	})

	t.Run("sentence", func(t *testing.T) {
		b := MustNew().NewBuilder()
		require.NoError(t, b.Subject(hater))
		assert.Equal(t, "I'm a hater and I'm gonna hate.", finalize(t, b))
	})
}

func TestBuilder_Debug(t *testing.T) {
	faker := Subject{Type: "faker", Action: "fake"}

	t.Run("json", func(t *testing.T) {
		b := MustNew().NewBuilder()
		require.NoError(t, b.AppendLiteral("Here's some data: "))
		require.NoError(t, b.Debug(faker))
		require.NoError(t, b.AppendLiteral("."))
		assert.Equal(t, "Here's some data: {\n  \"type\": \"faker\",\n  \"action\": \"fake\"\n}.", finalize(t, b))
	})

	t.Run("path", func(t *testing.T) {
		b := MustNew().NewBuilder()
		require.NoError(t, b.DebugPath(faker, "action"))
		assert.Equal(t, `"fake"`, finalize(t, b))
	})

	t.Run("missing path", func(t *testing.T) {
		b := MustNew().NewBuilder()
		requireKind(t, b.DebugPath(faker, "cargo"), ErrorKindSerializationFailure)
	})

	t.Run("unserializable", func(t *testing.T) {
		b := MustNew().NewBuilder()
		err := b.Debug(make(chan int))
		requireKind(t, err, ErrorKindSerializationFailure)
		assert.Equal(t, HandlerDebug, metadata(t, err, MetaKeyHandler))

		_, err = b.Finalize()
		requireKind(t, err, ErrorKindSerializationFailure)
	})

	t.Run("yaml", func(t *testing.T) {
		b := MustNew().NewBuilder()
		require.NoError(t, b.YAML(faker))
		assert.Equal(t, "type: faker\naction: fake", finalize(t, b))
	})

	t.Run("custom serializer", func(t *testing.T) {
		b := MustNew(WithSerializer(YAMLSerializer())).NewBuilder()
		require.NoError(t, b.Debug(faker))
		assert.Equal(t, "type: faker\naction: fake", finalize(t, b))
	})
}

func TestBuilder_RichOnlyHandler(t *testing.T) {
	b := MustNew().NewBuilder()
	err := b.AppendComputed(HandlerMessage, "Red", ColorRed)
	requireKind(t, err, ErrorKindUnresolvedHandler)
	assert.Equal(t, ErrMsgRichOnlyHandler, metadata(t, err, MetaKeyReason))
}

func TestBuilder_StrictPolicy(t *testing.T) {
	b := MustNew().NewBuilder()
	require.NoError(t, b.AppendLiteral("a"))

	first := b.AppendComputed("nope", 1)
	requireKind(t, first, ErrorKindUnresolvedHandler)

	assert.Equal(t, first, b.AppendLiteral("b"))
	assert.Equal(t, first, b.Err())
	assert.Equal(t, 1, b.Len())

	text, err := b.Finalize()
	assert.Equal(t, first, err)
	assert.Empty(t, text)
}

func TestBuilder_CollectPolicy(t *testing.T) {
	b := MustNew(WithErrorPolicy(ErrorPolicyCollect)).NewBuilder()

	require.NoError(t, b.AppendLiteral("a"))
	require.Error(t, b.AppendComputed("nope", 1))
	require.NoError(t, b.AppendLiteral("b"))
	require.Error(t, b.Repeat(hater, -2))
	require.NoError(t, b.AppendLiteral("c"))

	assert.Equal(t, 3, b.Len())

	text, err := b.Finalize()
	require.Error(t, err)
	assert.Empty(t, text)

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.True(t, IsErrorKind(errs[0], ErrorKindUnresolvedHandler))
	assert.True(t, IsErrorKind(errs[1], ErrorKindHandlerFailure))
}

func TestBuilder_HandlerFailure(t *testing.T) {
	cause := errors.New("boom")
	failing := func(policy FailurePolicy) *Handler {
		return &Handler{
			Name:      "fail",
			Shape:     Shape{},
			OnFailure: policy,
			Fn:        func(*Call) (Fragment, error) { return Fragment{}, cause },
		}
	}

	t.Run("propagate wraps plain errors", func(t *testing.T) {
		engine := MustNew(WithoutBuiltins())
		engine.MustRegister(failing(FailurePropagate))

		err := engine.NewBuilder().AppendComputed("fail")
		requireKind(t, err, ErrorKindHandlerFailure)
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("skip drops fragment", func(t *testing.T) {
		engine := MustNew(WithoutBuiltins())
		engine.MustRegister(failing(FailureSkip))

		b := engine.NewBuilder()
		require.NoError(t, b.AppendLiteral("x"))
		require.NoError(t, b.AppendComputed("fail"))
		assert.Equal(t, "x", finalize(t, b))
	})
}

func TestErrorPolicy_Parse(t *testing.T) {
	assert.Equal(t, ErrorPolicyCollect, ParseErrorPolicy("collect"))
	assert.Equal(t, ErrorPolicyStrict, ParseErrorPolicy("strict"))
	assert.Equal(t, ErrorPolicyStrict, ParseErrorPolicy("other"))
	assert.Equal(t, "collect", ErrorPolicyCollect.String())
}
