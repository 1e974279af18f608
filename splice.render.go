package splice

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/microcosm-cc/bluemonday"
)

// HTML rendering constants
const (
	htmlSpanOpen    = `<span style="`
	htmlSpanMid     = `">`
	htmlSpanClose   = `</span>`
	htmlElementSpan = "span"
	htmlElementLink = "a"
	htmlAttrHref    = "href"

	cssFontFamily     = "font-family"
	cssFontSize       = "font-size"
	cssColor          = "color"
	cssBackground     = "background-color"
	cssFontWeight     = "font-weight"
	cssFontStyle      = "font-style"
	cssTextDecoration = "text-decoration"

	cssValueBold      = "bold"
	cssValueItalic    = "italic"
	cssValueUnderline = "underline"
	cssUnitPixels     = "px"
	cssDeclSeparator  = "; "
	cssPropSeparator  = ": "
)

// Table rendering constants
const (
	TableHeaderIndex       = "#"
	TableHeaderText        = "TEXT"
	TableHeaderStyle       = "STYLE"
	TableHeaderName        = "NAME"
	TableHeaderShape       = "SHAPE"
	TableHeaderVariant     = "VARIANT"
	TableHeaderOnFailure   = "ON FAILURE"
	TableHeaderDescription = "DESCRIPTION"

	tableStyleSeparator = ", "
	tableStyleAssign    = "="
)

// cssValuePattern is matched against lower-cased style values.
var cssValuePattern = regexp.MustCompile(`^[a-z0-9#.,%\- ]+$`)

var (
	htmlPolicy     *bluemonday.Policy
	htmlPolicyOnce sync.Once
)

// runPolicy allows styled spans and plain links, nothing else.
func runPolicy() *bluemonday.Policy {
	htmlPolicyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements(htmlElementSpan)
		p.AllowStyles(cssFontFamily, cssFontSize, cssColor, cssBackground,
			cssFontWeight, cssFontStyle, cssTextDecoration).
			Matching(cssValuePattern).
			OnElements(htmlElementSpan)
		p.AllowStandardURLs()
		p.AllowAttrs(htmlAttrHref).OnElements(htmlElementLink)
		htmlPolicy = p
	})
	return htmlPolicy
}

// RenderHTML renders each run as a styled span. Run text is escaped unless
// the run carries handler markup, which is sanitized down to links.
func RenderHTML(r RichText) string {
	var sb strings.Builder
	for _, run := range r.runs {
		sb.WriteString(htmlSpanOpen)
		sb.WriteString(styleCSS(run.Style))
		sb.WriteString(htmlSpanMid)
		if run.Markup {
			sb.WriteString(run.Text)
		} else {
			sb.WriteString(html.EscapeString(run.Text))
		}
		sb.WriteString(htmlSpanClose)
	}
	return runPolicy().Sanitize(sb.String())
}

// styleCSS converts a style into CSS declarations in a stable order.
func styleCSS(s Style) string {
	decls := make([]string, 0, len(s))
	add := func(prop, value string) {
		decls = append(decls, prop+cssPropSeparator+value)
	}
	if v, ok := s.Get(StyleKeyFont); ok {
		add(cssFontFamily, v)
	}
	if v, ok := s.Get(StyleKeyFontSize); ok {
		if _, err := strconv.Atoi(v); err == nil {
			v += cssUnitPixels
		}
		add(cssFontSize, v)
	}
	if v, ok := s.Get(StyleKeyColor); ok {
		add(cssColor, v)
	}
	if v, ok := s.Get(StyleKeyBackground); ok {
		add(cssBackground, v)
	}
	if s.Flag(StyleKeyBold) {
		add(cssFontWeight, cssValueBold)
	}
	if s.Flag(StyleKeyItalic) {
		add(cssFontStyle, cssValueItalic)
	}
	if s.Flag(StyleKeyUnderline) {
		add(cssTextDecoration, cssValueUnderline)
	}
	return strings.Join(decls, cssDeclSeparator)
}

var (
	foregrounds = map[Color]color.Attribute{
		ColorBlack:   color.FgBlack,
		ColorRed:     color.FgRed,
		ColorGreen:   color.FgGreen,
		ColorYellow:  color.FgYellow,
		ColorBlue:    color.FgBlue,
		ColorMagenta: color.FgMagenta,
		ColorCyan:    color.FgCyan,
		ColorWhite:   color.FgWhite,
	}
	backgrounds = map[Color]color.Attribute{
		ColorBlack:   color.BgBlack,
		ColorRed:     color.BgRed,
		ColorGreen:   color.BgGreen,
		ColorYellow:  color.BgYellow,
		ColorBlue:    color.BgBlue,
		ColorMagenta: color.BgMagenta,
		ColorCyan:    color.BgCyan,
		ColorWhite:   color.BgWhite,
	}
)

// RenderANSI renders runs with terminal escape sequences. Colors outside the
// eight named ones, and font attributes, have no terminal equivalent and are
// ignored.
func RenderANSI(r RichText) string {
	var sb strings.Builder
	for _, run := range r.runs {
		attrs := ansiAttributes(run.Style)
		if len(attrs) == 0 {
			sb.WriteString(run.Text)
			continue
		}
		c := color.New(attrs...)
		c.EnableColor()
		sb.WriteString(c.Sprint(run.Text))
	}
	return sb.String()
}

func ansiAttributes(s Style) []color.Attribute {
	var attrs []color.Attribute
	if c, ok := s.Color(); ok {
		if a, known := foregrounds[c]; known {
			attrs = append(attrs, a)
		}
	}
	if v, ok := s.Get(StyleKeyBackground); ok {
		if a, known := backgrounds[Color(v)]; known {
			attrs = append(attrs, a)
		}
	}
	if s.Flag(StyleKeyBold) {
		attrs = append(attrs, color.Bold)
	}
	if s.Flag(StyleKeyItalic) {
		attrs = append(attrs, color.Italic)
	}
	if s.Flag(StyleKeyUnderline) {
		attrs = append(attrs, color.Underline)
	}
	return attrs
}

// RenderTable lists runs with their effective styles.
func RenderTable(r RichText) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{TableHeaderIndex, TableHeaderText, TableHeaderStyle})
	for i, run := range r.runs {
		t.AppendRow(table.Row{i + 1, run.Text, describeStyle(run.Style)})
	}
	return t.Render()
}

// RenderHandlers lists handler summaries, e.g. the output of Engine.Handlers.
func RenderHandlers(infos []HandlerInfo) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{
		TableHeaderName, TableHeaderShape, TableHeaderVariant,
		TableHeaderOnFailure, TableHeaderDescription,
	})
	for _, info := range infos {
		t.AppendRow(table.Row{info.Name, info.Shape, info.Variant, info.OnFailure, info.Description})
	}
	return t.Render()
}

func describeStyle(s Style) string {
	parts := make([]string, 0, len(s))
	for _, k := range s.Keys() {
		parts = append(parts, string(k)+tableStyleAssign+s[k])
	}
	return strings.Join(parts, tableStyleSeparator)
}
