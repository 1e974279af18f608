package splice

import (
	"strings"
	"time"

	"github.com/itsatony/go-splice/internal"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// builderState tracks the Open -> Finalized lifecycle.
type builderState int

const (
	stateOpen builderState = iota
	stateFinalized
)

// composer is the fragment accumulator shared by Builder and RichBuilder.
// It is owned by a single caller and must not be used concurrently.
type composer struct {
	engine    *Engine
	variant   Variant
	policy    ErrorPolicy
	base      Style
	fragments []Fragment
	state     builderState
	err       error
}

func (c *composer) init(e *Engine, variant Variant, base Style) {
	c.engine = e
	c.variant = variant
	c.policy = e.config.errorPolicy
	c.base = base
	c.state = stateOpen
	e.logger.Debug(LogMsgBuilderCreated,
		zap.Stringer(LogFieldVariant, variant),
		zap.Stringer(LogFieldPolicy, c.policy),
	)
}

// check returns the error an append must fail with before doing any work.
func (c *composer) check() error {
	if c.state == stateFinalized {
		c.engine.logger.Debug(LogMsgAppendRejected)
		return NewFinalizedStateError()
	}
	if c.policy == ErrorPolicyStrict && c.err != nil {
		return c.err
	}
	return nil
}

func (c *composer) record(err error, handler string) error {
	c.engine.logger.Debug(LogMsgAppendFailed, zap.String(LogFieldHandler, handler), zap.Error(err))
	if c.policy == ErrorPolicyCollect {
		c.err = multierr.Append(c.err, err)
	} else {
		c.err = err
	}
	return err
}

func (c *composer) push(f Fragment) {
	if f.Kind == FragmentLiteral {
		f.Style = c.base.Clone()
		f.Markup = false
	} else {
		f.Style = c.base.Merge(f.Style)
	}
	c.fragments = append(c.fragments, f)
	c.engine.logger.Debug(LogMsgFragmentAppended,
		zap.Stringer(LogFieldKind, f.Kind),
		zap.String(LogFieldHandler, f.Handler),
		zap.Int(LogFieldLength, len(f.Text)),
	)
}

// AppendLiteral appends text verbatim. In a rich builder the fragment takes
// the current base style.
func (c *composer) AppendLiteral(text string) error {
	if err := c.check(); err != nil {
		return err
	}
	c.push(Fragment{Kind: FragmentLiteral, Text: text})
	return nil
}

// AppendComputed dispatches to the handler registered under name whose shape
// matches args, and appends its fragment.
func (c *composer) AppendComputed(name string, args ...any) error {
	if err := c.check(); err != nil {
		return err
	}
	frag, appended, err := c.engine.dispatch(name, args, c.variant, c.base)
	if err != nil {
		return c.record(err, name)
	}
	if appended {
		c.push(frag)
	}
	return nil
}

// Err returns the error recorded so far: the first failure under
// ErrorPolicyStrict, all failures combined under ErrorPolicyCollect.
func (c *composer) Err() error {
	return c.err
}

// Len returns the number of appended fragments.
func (c *composer) Len() int {
	return len(c.fragments)
}

// Fragments returns a copy of the appended fragments, each carrying its
// effective style.
func (c *composer) Fragments() []Fragment {
	out := make([]Fragment, len(c.fragments))
	for i, f := range c.fragments {
		f.Style = f.Style.Clone()
		out[i] = f
	}
	return out
}

// Finalized reports whether Finalize has been called.
func (c *composer) Finalized() bool {
	return c.state == stateFinalized
}

// finalize moves the builder to the terminal state.
func (c *composer) finalize() error {
	if c.state == stateOpen {
		c.state = stateFinalized
		c.engine.logger.Debug(LogMsgBuilderFinalized,
			zap.Stringer(LogFieldVariant, c.variant),
			zap.Int(LogFieldFragments, len(c.fragments)),
			zap.Bool(LogFieldFailed, c.err != nil),
		)
	}
	return c.err
}

// Format appends value formatted in the given number style. Formatter
// failures drop the fragment silently.
func (c *composer) Format(value int64, style NumberStyle) error {
	return c.AppendComputed(HandlerFormat, value, style)
}

// Date appends t in full date style.
func (c *composer) Date(t time.Time) error {
	return c.AppendComputed(HandlerDate, t)
}

// Twitter appends a link to the given twitter handle.
func (c *composer) Twitter(handle string) error {
	return c.AppendComputed(HandlerTwitter, handle)
}

// Join appends values joined by ", ", or fallback() when values is empty.
func (c *composer) Join(values []string, fallback StringThunk) error {
	return c.AppendComputed(HandlerJoin, values, fallback)
}

// If appends literal only when guard() is true. The guard is not evaluated
// before the handler runs.
func (c *composer) If(guard BoolThunk, literal string) error {
	return c.AppendComputed(HandlerIf, guard, literal)
}

// Subject appends "I'm a <type> and I'm gonna <action>."
func (c *composer) Subject(s Subject) error {
	return c.AppendComputed(HandlerSubject, s)
}

// Repeat appends "<Type>s gonna " followed by the action count times.
func (c *composer) Repeat(s Subject, count int) error {
	return c.AppendComputed(HandlerSubject, s, count)
}

// Debug appends v serialized by the engine serializer.
func (c *composer) Debug(v any) error {
	return c.AppendComputed(HandlerDebug, v)
}

// DebugPath appends the serialized value found at a gjson path inside v.
func (c *composer) DebugPath(v any, path string) error {
	return c.AppendComputed(HandlerDebug, v, path)
}

// YAML appends v serialized as YAML.
func (c *composer) YAML(v any) error {
	return c.AppendComputed(HandlerYAML, v)
}

// Builder composes plain text.
type Builder struct {
	composer
	value string
}

// Finalize returns the concatenated text of all fragments and closes the
// builder. Calling it again returns the same value. If any append failed
// (and was not skipped by its handler) no text is returned.
func (b *Builder) Finalize() (string, error) {
	wasOpen := b.state == stateOpen
	if err := b.finalize(); err != nil {
		return "", err
	}
	if wasOpen {
		var sb strings.Builder
		for _, f := range b.fragments {
			sb.WriteString(f.Text)
		}
		b.value = sb.String()
	}
	return b.value, nil
}

// Formatted joins values with ", " or returns fallback() when values is empty.
// A nil fallback yields "".
func Formatted(values []string, fallback StringThunk) string {
	return internal.JoinOr(values, fallback)
}
