package splice

// Built-in handler names
const (
	HandlerFormat  = "format"
	HandlerDate    = "date"
	HandlerTwitter = "twitter"
	HandlerJoin    = "join"
	HandlerIf      = "if"
	HandlerSubject = "subject"
	HandlerDebug   = "debug"
	HandlerYAML    = "yaml"
	HandlerMessage = "message"
)

// Built-in handler descriptions, shown by handler listings
const (
	DescFormat       = "integer formatted with a locale number style"
	DescDate         = "timestamp in full date style"
	DescTwitter      = "anchor markup linking a twitter handle"
	DescJoin         = "comma-joined values, or a lazily evaluated fallback"
	DescIf           = "literal appended only when the lazy guard is true"
	DescSubject      = "sentence describing a subject and its action"
	DescSubjectCount = "capitalized subject label followed by a repeated action"
	DescDebug        = "pretty-printed serialization of a value"
	DescDebugPath    = "pretty-printed serialization of the value found at a path"
	DescYAML         = "YAML serialization of a value"
	DescMessage      = "text styled with a color override"
	DescMessageStyle = "text styled with a style override"
)

// Kind names for root-level argument kinds
const (
	KindNameSubject = "subject"
	KindNameColor   = "color"
	KindNameStyle   = "style"
)

// Style attribute keys
const (
	StyleKeyFont       StyleKey = "font"
	StyleKeyFontSize   StyleKey = "font_size"
	StyleKeyColor      StyleKey = "color"
	StyleKeyBackground StyleKey = "background"
	StyleKeyBold       StyleKey = "bold"
	StyleKeyItalic     StyleKey = "italic"
	StyleKeyUnderline  StyleKey = "underline"
)

// StyleFlagOn switches bold, italic or underline on. Any other value is off.
const StyleFlagOn = "true"

// Color constants
const (
	ColorBlack   Color = "black"
	ColorRed     Color = "red"
	ColorGreen   Color = "green"
	ColorYellow  Color = "yellow"
	ColorBlue    Color = "blue"
	ColorMagenta Color = "magenta"
	ColorCyan    Color = "cyan"
	ColorWhite   Color = "white"
)

// Default base style values
const (
	DefaultFont     = "Georgia-Italic"
	DefaultFontSize = "64"
	DefaultColor    = ColorBlack
)

// MaxRepeatCount caps the count accepted by the subject repeat handler.
const MaxRepeatCount = 10000

// Default locale
const (
	DefaultLocale = "en-US"
)

// ErrorPolicy decides how a builder reacts to a failing append.
type ErrorPolicy int

const (
	// ErrorPolicyStrict stops composition at the first error. The error is
	// sticky: later appends return it and Finalize reports it.
	ErrorPolicyStrict ErrorPolicy = iota
	// ErrorPolicyCollect keeps appending after failures and reports every
	// failure, combined, from Finalize.
	ErrorPolicyCollect
)

// Error policy string names
const (
	ErrorPolicyNameStrict  = "strict"
	ErrorPolicyNameCollect = "collect"
)

// String returns the string representation of the policy
func (p ErrorPolicy) String() string {
	switch p {
	case ErrorPolicyCollect:
		return ErrorPolicyNameCollect
	default:
		return ErrorPolicyNameStrict
	}
}

// ParseErrorPolicy converts a string to an ErrorPolicy.
// Unknown names map to ErrorPolicyStrict.
func ParseErrorPolicy(s string) ErrorPolicy {
	switch s {
	case ErrorPolicyNameCollect:
		return ErrorPolicyCollect
	default:
		return ErrorPolicyStrict
	}
}

// Variant identifies which builder kind a handler may run in.
type Variant int

const (
	// VariantAny handlers run in plain and rich builders.
	VariantAny Variant = iota
	// VariantRich handlers run only in rich builders.
	VariantRich
)

// Variant string names
const (
	VariantNameAny  = "any"
	VariantNameText = "text"
	VariantNameRich = "rich"
)

// String returns the string representation of the variant
func (v Variant) String() string {
	if v == VariantRich {
		return VariantNameRich
	}
	return VariantNameAny
}

// FailurePolicy decides what happens when a handler returns an error.
// It is fixed per handler at registration time.
type FailurePolicy int

const (
	// FailurePropagate surfaces the error to the builder's ErrorPolicy.
	FailurePropagate FailurePolicy = iota
	// FailureSkip drops the fragment and logs the error.
	FailureSkip
)

// Failure policy string names
const (
	FailurePolicyNamePropagate = "propagate"
	FailurePolicyNameSkip      = "skip"
)

// String returns the string representation of the failure policy
func (p FailurePolicy) String() string {
	if p == FailureSkip {
		return FailurePolicyNameSkip
	}
	return FailurePolicyNamePropagate
}

// Log message constants
const (
	LogMsgEngineCreated     = "engine created"
	LogMsgBuilderCreated    = "builder created"
	LogMsgFragmentAppended  = "fragment appended"
	LogMsgFragmentSkipped   = "fragment skipped after handler failure"
	LogMsgAppendFailed      = "append failed"
	LogMsgAppendRejected    = "append rejected on finalized builder"
	LogMsgBuilderFinalized  = "builder finalized"
	LogMsgRecipeRun         = "running recipe"
	LogMsgRecipeLoaded      = "stored recipe loaded"
	LogMsgMetricsRegistered = "metrics registered"
)

// Log field constants
const (
	LogFieldHandler   = "handler"
	LogFieldVariant   = "variant"
	LogFieldPolicy    = "policy"
	LogFieldFragments = "fragments"
	LogFieldLength    = "length"
	LogFieldKind      = "kind"
	LogFieldSteps     = "steps"
	LogFieldLocale    = "locale"
	LogFieldHandlers  = "handlers"
	LogFieldFailed    = "failed"
	LogFieldRecipe    = "recipe"
)
