package main

// CLI identity
const (
	CLIName        = "splice"
	CLIDescription = "compose text from literals and fragment handlers"
)

// Command names
const (
	CmdNameDemo     = "demo"
	CmdNameRender   = "render"
	CmdNameHandlers = "handlers"
	CmdNameVersion  = "version"
	CmdNameRecipes  = "recipes"
	CmdNameList     = "list"
	CmdNameSave     = "save"
	CmdNameDelete   = "delete"
)

// Command descriptions
const (
	CmdShortDemo     = "Print a tour of the built-in handlers"
	CmdShortRender   = "Run a YAML recipe and print the composed text"
	CmdShortHandlers = "List registered handlers"
	CmdShortVersion  = "Show version information"
	CmdShortRecipes  = "Manage a directory of named recipes"
	CmdShortList     = "List stored recipes"
	CmdShortSave     = "Validate a recipe file and store it under a name"
	CmdShortDelete   = "Delete a stored recipe"
)

// Command usage lines
const (
	CmdUseRender = "render [name]"
	CmdUseSave   = "save <name>"
	CmdUseDelete = "delete <name>"
)

// Flag names - long form
const (
	FlagLocale  = "locale"
	FlagPolicy  = "policy"
	FlagVerbose = "verbose"
	FlagFile    = "file"
	FlagFormat  = "format"
	FlagDate    = "date"
	FlagDir     = "dir"
)

// Flag names - short form
const (
	FlagFileShort    = "f"
	FlagFormatShort  = "F"
	FlagVerboseShort = "v"
	FlagDirShort     = "d"
)

// Flag usage
const (
	FlagUsageLocale  = "BCP 47 locale for number formatting"
	FlagUsagePolicy  = "error policy: strict or collect"
	FlagUsageVerbose = "write debug logs to stderr"
	FlagUsageFile    = `recipe file ("-" for stdin)`
	FlagUsageFormat  = "output format: text, ansi, html, json or table"
	FlagUsageDate    = "date shown by the demo, RFC 3339 (default: now)"
	FlagUsageHandler = "output format: table or json"
	FlagUsageVersion = "output format: text or json"
	FlagUsageDir     = "recipe store directory"
)

// Flag default values
const (
	FlagDefaultLocale = "en-US"
	FlagDefaultPolicy = "strict"
	FlagDefaultFormat = "text"
	FlagDefaultTable  = "table"
	FlagDefaultDir    = "recipes"
)

// Output formats
const (
	OutputFormatText  = "text"
	OutputFormatANSI  = "ansi"
	OutputFormatHTML  = "html"
	OutputFormatJSON  = "json"
	OutputFormatTable = "table"
)

// Exit codes
const (
	ExitCodeSuccess     = 0
	ExitCodeError       = 1
	ExitCodeUsageError  = 2
	ExitCodeRenderError = 3
	ExitCodeInputError  = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages - ALL must be constants
const (
	ErrMsgInvalidLocale     = "invalid locale"
	ErrMsgInvalidPolicy     = "invalid error policy"
	ErrMsgInvalidFormat     = "invalid output format"
	ErrMsgInvalidDate       = "invalid date"
	ErrMsgMissingRecipe     = "recipe file or stored recipe name required"
	ErrMsgFileAndName       = "use either a recipe file or a stored recipe name"
	ErrMsgOpenStoreFailed   = "failed to open recipe store"
	ErrMsgStoreFailed       = "recipe store operation failed"
	ErrMsgReadFileFailed    = "failed to read file"
	ErrMsgReadStdinFailed   = "failed to read from stdin"
	ErrMsgLoadRecipeFailed  = "recipe loading failed"
	ErrMsgRenderFailed      = "composition failed"
	ErrMsgEngineFailed      = "engine setup failed"
	ErrMsgJSONMarshalFailed = "failed to marshal JSON"
)

// Output formatting
const (
	FmtErrorWithCause = "%s: %v\n"
	FmtMessageCause   = "%s: %v"
	FmtError          = "%s\n"
	FmtNewline        = "\n"
	FmtQuoted         = "%q"
	JSONIndent        = "  "
	JSONPrefix        = ""
)

// Version information
const (
	VersionUnknown      = "unknown"
	VersionDevel        = "(devel)"
	VersionTextTemplate = "splice %s\ngo: %s"
)

// Demo content
const (
	DemoAge          = 38
	DemoTwitter      = "twostraws"
	DemoEmptyCrew    = "No one"
	DemoRocksLiteral = "(*)"
	DemoRepeatCount  = 5

	DemoIntro       = "Hi, I'm "
	DemoDate        = "Today's date is "
	DemoFollow      = "You should follow me on Twitter: "
	DemoCrew        = "Crew: "
	DemoRocks       = "Splice rocks: "
	DemoSing        = "Let's sing: "
	DemoData        = "Here's some data: "
	DemoSpace       = " "
	DemoPeriod      = "."
	DemoColorRed    = "Red"
	DemoColorWhite  = "White"
	DemoColorBlue   = "Blue"
	DemoSectionRich = "Rich text:"
)

// demoCrew lists the demo join values.
var demoCrew = []string{"Malcolm", "Jayne", "Kaylee"}
