package internal

// Log message constants
const (
	LogMsgRegistryCreated   = "registry created"
	LogMsgHandlerRegistered = "handler registered"
	LogMsgHandlerCollision  = "handler registration rejected"
	LogMsgRegistrySealed    = "registry sealed"
	LogMsgHandlerResolved   = "handler resolved"
	LogMsgHandlerUnresolved = "handler unresolved"
	LogMsgBatchRejected     = "handler batch rejected"
)

// Log field constants
const (
	LogFieldHandler  = "handler"
	LogFieldShape    = "shape"
	LogFieldExisting = "existing"
	LogFieldCount    = "count"
	LogFieldArgs     = "args"
)

// String value constants
const (
	StringValueEmpty = ""
	StringValueNil   = "nil"
)

// Shape rendering
const (
	ShapeOpen      = "("
	ShapeClose     = ")"
	ShapeSeparator = ", "
)

// Error format constants
const (
	ErrFmtNameMessage  = "%s: %s"
	ErrFmtShapeMessage = "%s: %s%s"
	ErrFmtFormatError  = "%s: %s (%s)"
)

// Kind names for the built-in argument kinds
const (
	KindNameAny         = "any"
	KindNameString      = "string"
	KindNameInt         = "int"
	KindNameFloat       = "float"
	KindNameBool        = "bool"
	KindNameStrings     = "strings"
	KindNameTime        = "time"
	KindNameBoolThunk   = "bool_thunk"
	KindNameStringThunk = "string_thunk"
	KindNameNumberStyle = "number_style"
)
