package splice

import (
	"time"

	"github.com/itsatony/go-splice/internal"
	"go.uber.org/zap"
)

// Kind is a named predicate over one handler argument. Handlers sharing a
// name are told apart by the kinds of their arguments.
type Kind = internal.Kind

// Shape is the ordered list of argument kinds a handler accepts.
type Shape = internal.Shape

// NumberStyle names a number formatting style understood by a LocaleFormatter.
type NumberStyle = internal.NumberStyle

// BoolThunk is a deferred guard, evaluated only if the handler needs it.
type BoolThunk = internal.BoolThunk

// StringThunk is a deferred string, evaluated only if the handler needs it.
type StringThunk = internal.StringThunk

// Number styles
const (
	NumberStyleDecimal    = internal.NumberStyleDecimal
	NumberStyleSpellOut   = internal.NumberStyleSpellOut
	NumberStyleCurrency   = internal.NumberStyleCurrency
	NumberStylePercent    = internal.NumberStylePercent
	NumberStyleScientific = internal.NumberStyleScientific
)

// NewKind creates a custom argument kind. Kinds are compared by name, so two
// kinds with the same name are treated as the same kind during registration.
func NewKind(name string, match func(v any) bool) Kind {
	return internal.NewKind(name, match)
}

// Argument kinds
var (
	KindAny         = internal.KindAny
	KindString      = internal.KindString
	KindInt         = internal.KindInt
	KindFloat       = internal.KindFloat
	KindBool        = internal.KindBool
	KindStrings     = internal.KindStrings
	KindTime        = internal.KindTime
	KindBoolThunk   = internal.KindBoolThunk
	KindStringThunk = internal.KindStringThunk
	KindNumberStyle = internal.KindNumberStyle

	KindSubject = NewKind(KindNameSubject, func(v any) bool {
		_, ok := v.(Subject)
		return ok
	})

	KindColor = NewKind(KindNameColor, func(v any) bool {
		_, ok := v.(Color)
		return ok
	})

	KindStyle = NewKind(KindNameStyle, func(v any) bool {
		_, ok := v.(Style)
		return ok
	})
)

// Lazy wraps an already known boolean as a guard.
func Lazy(v bool) BoolThunk {
	return func() bool { return v }
}

// LazyString wraps an already known string as a fallback.
func LazyString(s string) StringThunk {
	return func() string { return s }
}

// Subject is someone who does something, e.g. {Type: "hater", Action: "hate"}.
type Subject struct {
	Type   string `json:"type" yaml:"type"`
	Action string `json:"action" yaml:"action"`
}

// FragmentKind distinguishes literal text from handler output.
type FragmentKind int

const (
	// FragmentLiteral is text appended verbatim.
	FragmentLiteral FragmentKind = iota
	// FragmentComputed is text produced by a handler.
	FragmentComputed
)

// Fragment kind names
const (
	FragmentKindNameLiteral  = "literal"
	FragmentKindNameComputed = "computed"
)

// String returns the string representation of the fragment kind
func (k FragmentKind) String() string {
	if k == FragmentComputed {
		return FragmentKindNameComputed
	}
	return FragmentKindNameLiteral
}

// Fragment is one ordered unit of output. Handlers return fragments whose
// Style is an override; once appended, Style holds the effective style.
type Fragment struct {
	Kind    FragmentKind
	Text    string
	Style   Style
	Handler string
	// Markup marks Text as sanitized HTML that RenderHTML keeps. Literals
	// never carry it.
	Markup bool
}

// Computed creates an unstyled handler fragment.
func Computed(text string) Fragment {
	return Fragment{Kind: FragmentComputed, Text: text}
}

// StyledComputed creates a handler fragment carrying a style override.
func StyledComputed(text string, override Style) Fragment {
	return Fragment{Kind: FragmentComputed, Text: text, Style: override.Clone()}
}

// MarkupComputed creates a handler fragment whose text is HTML markup.
func MarkupComputed(text string) Fragment {
	return Fragment{Kind: FragmentComputed, Text: text, Markup: true}
}

// HandlerFunc produces a fragment from the arguments in call.
type HandlerFunc func(call *Call) (Fragment, error)

// Handler is a named, shaped fragment producer.
type Handler struct {
	// Name is the dispatch name, e.g. "format".
	Name string
	// Shape lists the argument kinds, e.g. Shape{KindInt, KindNumberStyle}.
	Shape Shape
	// Variant restricts the builders the handler runs in.
	Variant Variant
	// OnFailure decides what a returned error does to the composition.
	OnFailure FailurePolicy
	// Description is shown by handler listings.
	Description string
	// Fn is the implementation.
	Fn HandlerFunc
}

// HandlerInfo is a printable summary of a registered handler.
type HandlerInfo struct {
	Name        string `json:"name"`
	Shape       string `json:"shape"`
	Variant     string `json:"variant"`
	OnFailure   string `json:"on_failure"`
	Description string `json:"description,omitempty"`
}

// Call carries the arguments of one handler invocation together with the
// engine collaborators. Argument accessors assume the shape already matched.
type Call struct {
	Name string
	Args []any

	engine *Engine
	base   Style
}

// Arg returns argument i.
func (c *Call) Arg(i int) any {
	return c.Args[i]
}

// StringArg returns argument i as a string.
func (c *Call) StringArg(i int) string {
	s, _ := c.Args[i].(string)
	return s
}

// IntArg returns argument i as an int64.
func (c *Call) IntArg(i int) int64 {
	n, _ := internal.ToInt64(c.Args[i])
	return n
}

// StringsArg returns argument i as a string slice.
func (c *Call) StringsArg(i int) []string {
	s, _ := c.Args[i].([]string)
	return s
}

// TimeArg returns argument i as a timestamp.
func (c *Call) TimeArg(i int) time.Time {
	t, _ := c.Args[i].(time.Time)
	return t
}

// BoolThunkArg returns argument i as a deferred guard.
func (c *Call) BoolThunkArg(i int) BoolThunk {
	f, _ := internal.ToBoolThunk(c.Args[i])
	return f
}

// StringThunkArg returns argument i as a deferred string.
func (c *Call) StringThunkArg(i int) StringThunk {
	f, _ := internal.ToStringThunk(c.Args[i])
	return f
}

// BaseStyle returns a copy of the calling builder's base style (nil for
// plain builders).
func (c *Call) BaseStyle() Style {
	return c.base.Clone()
}

// Numbers returns the engine's locale formatter.
func (c *Call) Numbers() LocaleFormatter {
	return c.engine.config.numbers
}

// Dates returns the engine's date formatter.
func (c *Call) Dates() DateFormatter {
	return c.engine.config.dates
}

// Serializer returns the engine's structured serializer.
func (c *Call) Serializer() Serializer {
	return c.engine.config.serializer
}

// Logger returns the engine logger.
func (c *Call) Logger() *zap.Logger {
	return c.engine.logger
}
