package splice

import (
	"errors"
	"strings"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// builtinHandlerCount is the number of (name, shape) pairs New registers.
const builtinHandlerCount = 12

func shoutHandler() *Handler {
	return &Handler{
		Name:  "shout",
		Shape: Shape{KindString},
		Fn: func(call *Call) (Fragment, error) {
			return Computed(strings.ToUpper(call.StringArg(0))), nil
		},
	}
}

func requireKind(t *testing.T, err error, kind string) {
	t.Helper()
	require.Error(t, err)
	got, ok := ErrorKindOf(err)
	require.True(t, ok, "error carries no kind: %v", err)
	assert.Equal(t, kind, got)
}

func metadata(t *testing.T, err error, key string) string {
	t.Helper()
	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	v, ok := customErr.GetMetadata(key)
	require.True(t, ok, "missing metadata %q", key)
	return v
}

func TestNew(t *testing.T) {
	t.Run("default builtins", func(t *testing.T) {
		engine, err := New()
		require.NoError(t, err)
		assert.Equal(t, builtinHandlerCount, engine.HandlerCount())
		assert.True(t, engine.HasHandler(HandlerFormat))
		assert.True(t, engine.HasHandler(HandlerMessage))
		assert.Equal(t, ErrorPolicyStrict, engine.ErrorPolicy())
		assert.False(t, engine.Sealed())
	})

	t.Run("without builtins", func(t *testing.T) {
		engine, err := New(WithoutBuiltins())
		require.NoError(t, err)
		assert.Equal(t, 0, engine.HandlerCount())
	})

	t.Run("metrics registered twice", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		_, err := New(WithMetrics(reg))
		require.NoError(t, err)

		_, err = New(WithMetrics(reg))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgMetricsRegistration)
	})

	t.Run("logs engine creation", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		_, err := New(WithLogger(zap.New(core)))
		require.NoError(t, err)
		assert.Equal(t, 1, logs.FilterMessage(LogMsgEngineCreated).Len())
	})
}

func TestMustNew(t *testing.T) {
	assert.NotPanics(t, func() {
		MustNew()
	})
}

func TestEngine_Register(t *testing.T) {
	t.Run("custom handler", func(t *testing.T) {
		engine := MustNew()
		require.NoError(t, engine.Register(shoutHandler()))
		assert.Equal(t, builtinHandlerCount+1, engine.HandlerCount())

		b := engine.NewBuilder()
		require.NoError(t, b.AppendComputed("shout", "hi"))
		text, err := b.Finalize()
		require.NoError(t, err)
		assert.Equal(t, "HI", text)
	})

	t.Run("nil handler", func(t *testing.T) {
		engine := MustNew()
		err := engine.Register(nil)
		requireKind(t, err, ErrorKindInvalidHandler)
		assert.Contains(t, err.Error(), ErrMsgNilHandler)
	})

	t.Run("nil function", func(t *testing.T) {
		engine := MustNew()
		requireKind(t, engine.Register(&Handler{Name: "x", Shape: Shape{KindString}}), ErrorKindInvalidHandler)
	})

	t.Run("empty name", func(t *testing.T) {
		engine := MustNew()
		h := shoutHandler()
		h.Name = ""
		requireKind(t, engine.Register(h), ErrorKindInvalidHandler)
	})

	t.Run("duplicate", func(t *testing.T) {
		engine := MustNew()
		h := shoutHandler()
		h.Name = HandlerTwitter

		err := engine.Register(h)
		requireKind(t, err, ErrorKindDuplicateRegistration)
		assert.Equal(t, HandlerTwitter, metadata(t, err, MetaKeyHandler))
		assert.Equal(t, "(string)", metadata(t, err, MetaKeyShape))
	})

	t.Run("ambiguous", func(t *testing.T) {
		engine := MustNew()
		err := engine.Register(&Handler{
			Name:  HandlerMessage,
			Shape: Shape{KindAny, KindColor},
			Fn:    func(*Call) (Fragment, error) { return Computed(""), nil },
		})
		requireKind(t, err, ErrorKindAmbiguousHandler)
	})

	t.Run("sealed by builder", func(t *testing.T) {
		engine := MustNew()
		_ = engine.NewBuilder()
		assert.True(t, engine.Sealed())

		requireKind(t, engine.Register(shoutHandler()), ErrorKindRegistrySealed)
	})

	t.Run("caller mutation does not leak", func(t *testing.T) {
		engine := MustNew(WithoutBuiltins())
		h := shoutHandler()
		require.NoError(t, engine.Register(h))

		h.Name = "changed"
		h.Shape[0] = KindInt

		got, err := engine.Resolve("shout", "x")
		require.NoError(t, err)
		assert.Equal(t, "shout", got.Name)
		assert.Equal(t, KindString.Name(), got.Shape[0].Name())
	})

	t.Run("must register panics", func(t *testing.T) {
		engine := MustNew()
		assert.Panics(t, func() {
			engine.MustRegister(nil)
		})
	})
}

func TestEngine_RegisterAll(t *testing.T) {
	engine := MustNew(WithoutBuiltins())
	bad := shoutHandler()

	err := engine.RegisterAll(shoutHandler(), &Handler{Name: "other", Shape: Shape{KindInt}, Fn: bad.Fn}, bad)
	requireKind(t, err, ErrorKindDuplicateRegistration)
	assert.Equal(t, 0, engine.HandlerCount())
}

func TestEngine_Resolve(t *testing.T) {
	engine := MustNew()

	t.Run("by shape", func(t *testing.T) {
		h, err := engine.Resolve(HandlerSubject, Subject{Type: "hater", Action: "hate"}, 3)
		require.NoError(t, err)
		assert.Equal(t, DescSubjectCount, h.Description)

		h, err = engine.Resolve(HandlerSubject, Subject{Type: "hater", Action: "hate"})
		require.NoError(t, err)
		assert.Equal(t, DescSubject, h.Description)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := engine.Resolve("nope", 1)
		requireKind(t, err, ErrorKindUnresolvedHandler)
		assert.Equal(t, "nope", metadata(t, err, MetaKeyHandler))
		assert.Equal(t, "(int)", metadata(t, err, MetaKeyArgs))
	})

	t.Run("misspelled name suggests", func(t *testing.T) {
		_, err := engine.Resolve("twiter", "twostraws")
		requireKind(t, err, ErrorKindUnresolvedHandler)
		assert.Contains(t, metadata(t, err, MetaKeyReason), "Did you mean 'twitter'")
	})

	t.Run("no shape matches", func(t *testing.T) {
		_, err := engine.Resolve(HandlerFormat, "38", NumberStyleDecimal)
		requireKind(t, err, ErrorKindUnresolvedHandler)
	})

	t.Run("overlapping user kinds", func(t *testing.T) {
		e := MustNew(WithoutBuiltins())
		short := NewKind("short", func(v any) bool { s, ok := v.(string); return ok && len(s) < 4 })
		word := NewKind("word", func(v any) bool { _, ok := v.(string); return ok })
		fn := func(*Call) (Fragment, error) { return Computed(""), nil }
		require.NoError(t, e.RegisterAll(
			&Handler{Name: "x", Shape: Shape{short}, Fn: fn},
			&Handler{Name: "x", Shape: Shape{word}, Fn: fn},
		))

		_, err := e.Resolve("x", "abc")
		requireKind(t, err, ErrorKindAmbiguousHandler)
	})
}

func TestEngine_Handlers(t *testing.T) {
	engine := MustNew()
	infos := engine.Handlers()
	require.Len(t, infos, builtinHandlerCount)

	assert.Equal(t, HandlerDate, infos[0].Name)

	var format HandlerInfo
	for _, info := range infos {
		if info.Name == HandlerFormat {
			format = info
		}
	}
	assert.Equal(t, "(int, number_style)", format.Shape)
	assert.Equal(t, FailurePolicyNameSkip, format.OnFailure)
	assert.Equal(t, VariantNameAny, format.Variant)
}

func TestEngine_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	engine := MustNew(WithMetrics(reg))
	b := engine.NewBuilder()

	require.NoError(t, b.Twitter("twostraws"))
	require.NoError(t, b.Format(1, NumberStyle("roman")))
	_ = b.AppendComputed(HandlerMessage, "Red", ColorRed)

	calls := engine.metrics.calls
	assert.Equal(t, 1.0, testutil.ToFloat64(calls.WithLabelValues(HandlerTwitter, OutcomeAppended)))
	assert.Equal(t, 1.0, testutil.ToFloat64(calls.WithLabelValues(HandlerFormat, OutcomeSkipped)))
	assert.Equal(t, 1.0, testutil.ToFloat64(calls.WithLabelValues(HandlerMessage, OutcomeUnresolved)))

	b2 := engine.NewBuilder()
	_ = b2.Repeat(Subject{Type: "hater", Action: "hate"}, -1)
	assert.Equal(t, 1.0, testutil.ToFloat64(calls.WithLabelValues(HandlerSubject, OutcomeFailed)))
}
