package splice

import (
	"encoding/json"
	"strings"
)

// Run is a span of text with its effective style.
type Run struct {
	Text   string `json:"text"`
	Style  Style  `json:"style,omitempty"`
	Markup bool   `json:"markup,omitempty"`
}

// RichText is an immutable sequence of styled runs. Adjacent runs with equal
// styles are kept apart so that each run maps to one append.
type RichText struct {
	runs []Run
}

// NewRichText returns a value holding text as a single unstyled run.
func NewRichText(text string) RichText {
	if text == "" {
		return RichText{}
	}
	return RichText{runs: []Run{{Text: text}}}
}

// Runs returns a copy of the runs.
func (r RichText) Runs() []Run {
	out := make([]Run, len(r.runs))
	for i, run := range r.runs {
		out[i] = Run{Text: run.Text, Style: run.Style.Clone(), Markup: run.Markup}
	}
	return out
}

// Len returns the number of runs.
func (r RichText) Len() int {
	return len(r.runs)
}

// String returns the text of all runs without styling.
func (r RichText) String() string {
	var sb strings.Builder
	for _, run := range r.runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

// MarshalJSON encodes the value as {"runs": [...]}.
func (r RichText) MarshalJSON() ([]byte, error) {
	runs := r.runs
	if runs == nil {
		runs = []Run{}
	}
	return json.Marshal(struct {
		Runs []Run `json:"runs"`
	}{Runs: runs})
}

// RichBuilder composes styled text. Literals take the current base style;
// handler fragments take the base style merged with their own override.
type RichBuilder struct {
	composer
	value RichText
}

// SetBaseStyle replaces the base style for fragments appended afterwards.
// Fragments already appended keep the style they were appended with.
func (b *RichBuilder) SetBaseStyle(style Style) error {
	if err := b.check(); err != nil {
		return err
	}
	b.base = style.Clone()
	return nil
}

// BaseStyle returns a copy of the current base style.
func (b *RichBuilder) BaseStyle() Style {
	return b.base.Clone()
}

// Message appends text whose color overrides the base style's color.
func (b *RichBuilder) Message(text string, color Color) error {
	return b.AppendComputed(HandlerMessage, text, color)
}

// MessageStyle appends text with a style override merged onto the base style.
func (b *RichBuilder) MessageStyle(text string, override Style) error {
	return b.AppendComputed(HandlerMessage, text, override)
}

// Finalize returns the runs built so far and closes the builder. Empty
// fragments produce no run. Calling it again returns the same value.
func (b *RichBuilder) Finalize() (RichText, error) {
	wasOpen := b.state == stateOpen
	if err := b.finalize(); err != nil {
		return RichText{}, err
	}
	if wasOpen {
		runs := make([]Run, 0, len(b.fragments))
		for _, f := range b.fragments {
			if f.Text == "" {
				continue
			}
			runs = append(runs, Run{Text: f.Text, Style: f.Style.Clone(), Markup: f.Markup})
		}
		b.value = RichText{runs: runs}
	}
	return b.value, nil
}
