package internal

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Number style constants
const (
	NumberStyleDecimal    NumberStyle = "decimal"
	NumberStyleSpellOut   NumberStyle = "spellout"
	NumberStyleCurrency   NumberStyle = "currency"
	NumberStylePercent    NumberStyle = "percent"
	NumberStyleScientific NumberStyle = "scientific"
)

// Number formatter error messages
const (
	ErrMsgUnknownNumberStyle  = "unknown number style"
	ErrMsgNoRegionCurrency    = "no currency known for locale"
	ErrMsgSpellOutUnsupported = "spell-out is only available for English locales"
)

// NumberFormatter formats integers for a locale using golang.org/x/text.
type NumberFormatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewNumberFormatter creates a formatter bound to the given locale.
func NewNumberFormatter(tag language.Tag) *NumberFormatter {
	return &NumberFormatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
}

// Locale returns the formatter's language tag.
func (f *NumberFormatter) Locale() language.Tag {
	return f.tag
}

// FormatNumber formats value using the named style.
func (f *NumberFormatter) FormatNumber(value int64, style NumberStyle) (string, error) {
	switch style {
	case NumberStyleDecimal:
		return f.printer.Sprint(number.Decimal(value)), nil
	case NumberStylePercent:
		return f.printer.Sprint(number.Percent(value)), nil
	case NumberStyleScientific:
		return f.printer.Sprint(number.Scientific(value)), nil
	case NumberStyleCurrency:
		unit, conf := currency.FromTag(f.tag)
		if conf == language.No {
			return StringValueEmpty, NewFormatError(ErrMsgNoRegionCurrency, string(style), f.tag.String())
		}
		return f.printer.Sprint(currency.Symbol(unit.Amount(value))), nil
	case NumberStyleSpellOut:
		base, _ := f.tag.Base()
		english, _ := language.English.Base()
		if base != english {
			return StringValueEmpty, NewFormatError(ErrMsgSpellOutUnsupported, string(style), f.tag.String())
		}
		return SpellOut(value), nil
	default:
		return StringValueEmpty, NewFormatError(ErrMsgUnknownNumberStyle, string(style), f.tag.String())
	}
}

// FormatError reports that a formatter declined its input.
type FormatError struct {
	Message string
	Style   string
	Locale  string
}

// NewFormatError creates a new format error
func NewFormatError(message, style, locale string) *FormatError {
	return &FormatError{
		Message: message,
		Style:   style,
		Locale:  locale,
	}
}

// Error implements the error interface
func (e *FormatError) Error() string {
	return fmt.Sprintf(ErrFmtFormatError, e.Message, e.Style, e.Locale)
}
