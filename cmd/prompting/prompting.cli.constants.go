package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameGenerate = "generate"
	CmdNameValidate = "validate"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagTemplate = "template"
	FlagVars     = "vars"
	FlagVarsFile = "vars-file"
	FlagSchema   = "schema"
	FlagData     = "data"
	FlagDataFile = "data-file"
	FlagFormat   = "format"
	FlagOutput   = "output"
)

// Flag names - short form
const (
	FlagTemplateShort = "t"
	FlagVarsShort     = "d"
	FlagVarsFileShort = "f"
	FlagSchemaShort   = "s"
	FlagOutputShort   = "o"
	FlagFormatShort   = "F"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	InputSourceStdin  = "-"
)

// Exit codes
const (
	ExitCodeSuccess    = 0
	ExitCodeError      = 1
	ExitCodeUsageError = 2
	ExitCodeInputError = 3
)

// File permissions for output files
const FilePermissions = 0644

// Environment variable names for the generate command's backend
const (
	EnvAPIURL    = "PROMPTING_API_URL"
	EnvAPIKey    = "PROMPTING_API_KEY"
	EnvModel     = "PROMPTING_MODEL"
	EnvMaxTokens = "PROMPTING_MAX_TOKENS"
)

// Version information (set via -ldflags at build time)
var (
	buildVersion = "dev"
	buildCommit  = "unknown"
)

// Error messages
const (
	ErrMsgMissingTemplate   = "template is required (-t)"
	ErrMsgMissingSchema     = "schema is required (-s)"
	ErrMsgReadFileFailed    = "failed to read input"
	ErrMsgInvalidVars       = "failed to parse variables"
	ErrMsgInvalidSchema     = "failed to parse schema"
	ErrMsgInvalidData       = "failed to parse data"
	ErrMsgResolveFailed     = "failed to resolve template"
	ErrMsgGenerateFailed    = "generation failed"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgMissingAPIURL     = "backend URL is required (set " + EnvAPIURL + ")"
	ErrMsgUnknownCommand    = "unknown command"
)

// Output format strings
const (
	FmtErrorWithCause  = "Error: %s: %v\n"
	FmtErrorWithDetail = "Error: %s: %s\n"
)

// Help text
const (
	HelpMainUsage = `prompting - prompt templating with schema-validated responses

Usage:
    prompting <command> [options]

Commands:
    render      Resolve a template with variables
    generate    Resolve a template and send it to a completions backend
    validate    Validate candidate data against a schema
    version     Show version information
    help        Show help for a command

Use "prompting help <command>" for more information about a command.`

	HelpRenderUsage = `Resolve a template with variables

Usage:
    prompting render [options]

Options:
    -t, --template <file>   Template file (use "-" for stdin)
    -d, --vars <json>       JSON variables string
    -f, --vars-file <file>  Variables file (JSON or YAML)
    -s, --schema <file>     Schema file (JSON); appends the format directive
    -F, --format <name>     Response format label (default: json)
    -o, --output <file>     Output file (default: stdout)

Examples:
    prompting render -t prompt.txt -d '{"name": "Alice"}'
    prompting render -t prompt.txt -f vars.yaml -s schema.json
    cat prompt.txt | prompting render -t -`

	HelpGenerateUsage = `Resolve a template and send it to a completions backend

Reads backend configuration from the environment (a .env file in the
working directory is loaded if present):

    PROMPTING_API_URL      completions endpoint URL (required)
    PROMPTING_API_KEY      bearer credential
    PROMPTING_MODEL        model identifier
    PROMPTING_MAX_TOKENS   generation length hint

Usage:
    prompting generate [options]

Options:
    -t, --template <file>   Template file (use "-" for stdin)
    -d, --vars <json>       JSON variables string
    -f, --vars-file <file>  Variables file (JSON or YAML)
    -s, --schema <file>     Schema file (JSON); response is validated
    -F, --format <name>     Response format label (default: json)
    -o, --output <file>     Output file (default: stdout)`

	HelpValidateUsage = `Validate candidate data against a schema

Usage:
    prompting validate [options]

Options:
    -s, --schema <file>     Schema file (JSON)
    -d, --data <json>       Candidate JSON string
    -f, --data-file <file>  Candidate JSON file

Exit code is nonzero when validation fails; every violated constraint
is printed.`

	HelpVersionUsage = `Show version information

Usage:
    prompting version`

	HelpHelpUsage = `Show help for a command

Usage:
    prompting help [command]`
)
