package splice

import (
	"time"

	"github.com/itsatony/go-splice/internal"
	"golang.org/x/text/language"
)

// LocaleFormatter formats integers in a named style.
type LocaleFormatter interface {
	FormatNumber(value int64, style NumberStyle) (string, error)
}

// DateFormatter formats timestamps. It is expected to always succeed.
type DateFormatter interface {
	FormatDate(t time.Time) string
}

// Serializer encodes a structured value as text.
type Serializer interface {
	Serialize(v any) ([]byte, error)
}

// NumberFormatFunc is a function adapter for the LocaleFormatter interface.
type NumberFormatFunc func(value int64, style NumberStyle) (string, error)

// FormatNumber implements the LocaleFormatter interface.
func (f NumberFormatFunc) FormatNumber(value int64, style NumberStyle) (string, error) {
	return f(value, style)
}

// DateFormatFunc is a function adapter for the DateFormatter interface.
type DateFormatFunc func(t time.Time) string

// FormatDate implements the DateFormatter interface.
func (f DateFormatFunc) FormatDate(t time.Time) string {
	return f(t)
}

// SerializeFunc is a function adapter for the Serializer interface.
type SerializeFunc func(v any) ([]byte, error)

// Serialize implements the Serializer interface.
func (f SerializeFunc) Serialize(v any) ([]byte, error) {
	return f(v)
}

// NewLocaleFormatter returns the default formatter for tag, backed by
// golang.org/x/text. Spell-out is available for English locales only.
func NewLocaleFormatter(tag language.Tag) LocaleFormatter {
	return internal.NewNumberFormatter(tag)
}

// NewFullDateFormatter returns a formatter producing e.g.
// "Sunday, October 18, 2026". A nil location keeps each timestamp's own.
func NewFullDateFormatter(location *time.Location) DateFormatter {
	return internal.NewDateFormatter(internal.DateLayoutFull, location)
}

// JSONSerializer returns the default serializer: JSON indented by two spaces.
func JSONSerializer() Serializer {
	return internal.JSONSerializer{}
}

// YAMLSerializer returns a YAML serializer.
func YAMLSerializer() Serializer {
	return internal.YAMLSerializer{}
}
