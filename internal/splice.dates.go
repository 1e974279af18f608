package internal

import "time"

// Date layout constants
const (
	// DateLayoutFull mirrors the "full" date style: weekday, month name, day, year.
	DateLayoutFull = "Monday, January 2, 2006"
	// DateLayoutLong omits the weekday.
	DateLayoutLong = "January 2, 2006"
)

// DateFormatter renders timestamps with a fixed layout in a fixed location.
type DateFormatter struct {
	layout   string
	location *time.Location
}

// NewDateFormatter creates a date formatter. A nil location keeps the
// timestamp's own location; an empty layout selects DateLayoutFull.
func NewDateFormatter(layout string, location *time.Location) *DateFormatter {
	if layout == StringValueEmpty {
		layout = DateLayoutFull
	}
	return &DateFormatter{
		layout:   layout,
		location: location,
	}
}

// FormatDate renders t.
func (f *DateFormatter) FormatDate(t time.Time) string {
	if f.location != nil {
		t = t.In(f.location)
	}
	return t.Format(f.layout)
}
