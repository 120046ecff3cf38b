package prompting

import "time"

// Placeholder syntax constants - the {{ }} syntax matches the wider
// prompt-templating ecosystem; names are word characters only.
const (
	PlaceholderOpenDelim  = "{{"
	PlaceholderCloseDelim = "}}"
	PlaceholderPattern    = `\{\{\s*(\w+)\s*\}\}`
)

// Schema node types
const (
	SchemaTypeString  = "string"
	SchemaTypeNumber  = "number"
	SchemaTypeBoolean = "boolean"
	SchemaTypeObject  = "object"
	SchemaTypeArray   = "array"
)

// JSON Schema property keys used by the wire form and dialect parsing
const (
	SchemaKeyType        = "type"
	SchemaKeyDescription = "description"
	SchemaKeyProperties  = "properties"
	SchemaKeyRequired    = "required"
	SchemaKeyItems       = "items"
)

// Response format names for the built-in decoders
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatHJSON = "hjson"
)

// DefaultResponseFormat is the format label used when none is configured.
const DefaultResponseFormat = FormatJSON

// Response directive fragments appended to resolved text when a schema is
// configured. The %s is the engine's response format label.
const (
	ResponseDirectivePrefix = " Please provide a "
	ResponseDirectiveSuffix = " response with the following structure:\n"
)

// Schema projection rendering indent
const (
	DescribeIndent       = "  "
	DescribeBulletPrefix = "- "
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	ErrMsgMissingBinding    = "missing binding for template placeholders"
	ErrMsgNoBackend         = "no backend configured"
	ErrMsgSchemaCompile     = "schema compilation failed"
	ErrMsgSchemaNilNode     = "schema node is nil"
	ErrMsgSchemaEmptyType   = "schema type is required"
	ErrMsgSchemaUnknownType = "unknown schema type"
	ErrMsgSchemaNoItems     = "array schema requires items"
	ErrMsgSchemaDupProperty = "duplicate property name"
	ErrMsgSchemaBadRequired = "required name has no matching property"
	ErrMsgSchemaParseFailed = "schema parsing failed"
	ErrMsgBackendFailed     = "generation backend failed"
	ErrMsgDecodeFailed      = "response decoding failed"
	ErrMsgValidationFailed  = "response validation failed"
	ErrMsgUnknownFormat     = "no decoder registered for format"
	ErrMsgNilRecord         = "record is nil"
)

// Error code constants for categorization
const (
	ErrCodeResolve  = "PROMPTING_RESOLVE"
	ErrCodeSchema   = "PROMPTING_SCHEMA"
	ErrCodeGenerate = "PROMPTING_GENERATE"
	ErrCodeDecode   = "PROMPTING_DECODE"
	ErrCodeValidate = "PROMPTING_VALIDATE"
	ErrCodeStorage  = "PROMPTING_STORAGE"
)

// Error kind values attached as metadata for programmatic discrimination.
const (
	ErrKindMissingBinding   = "missing_binding"
	ErrKindNoBackend        = "no_backend"
	ErrKindSchemaCompile    = "schema_compile"
	ErrKindBackendFailure   = "backend_failure"
	ErrKindDecodeFailure    = "decode_failure"
	ErrKindValidationFailed = "validation_failed"
)

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeyKind         = "kind"
	MetaKeyPlaceholders = "placeholders"
	MetaKeyFormat       = "format"
	MetaKeyPath         = "path"
	MetaKeyField        = "field"
	MetaKeyViolations   = "violations"
	MetaKeyPromptName   = "prompt_name"
	MetaKeyVersion      = "version"
	MetaKeyDriverName   = "driver"
)

// Validation diagnostic message fragments
const (
	ValMsgRequiredMissing = "required property missing"
	ValMsgTypeMismatch    = "type mismatch"
	ValMsgNullValue       = "null"
)

// Completions backend defaults
const (
	DefaultCompletionsModel     = "text-davinci-003"
	DefaultCompletionsMaxTokens = 256
	DefaultCompletionsTimeout   = 60 * time.Second
)

// Completions backend error messages
const (
	ErrMsgCompletionsNoURL      = "completions base URL is empty"
	ErrMsgCompletionsMarshal    = "failed to encode completions request"
	ErrMsgCompletionsRequest    = "completions request failed"
	ErrMsgCompletionsStatus     = "completions endpoint returned non-success status"
	ErrMsgCompletionsUnmarshal  = "failed to decode completions response"
	ErrMsgCompletionsNoChoices  = "completions response contains no choices"
	ErrMsgCompletionsBuildReq   = "failed to build completions request"
	ErrMsgCompletionsReadBody   = "failed to read completions response body"
	MetaKeyStatusCode           = "status_code"
	HeaderAuthorization         = "Authorization"
	HeaderContentType           = "Content-Type"
	BearerPrefix                = "Bearer "
	ContentTypeJSON             = "application/json"
	CompletionsChoicesFieldPath = "choices[0].text"
)

// Storage driver names
const (
	StorageDriverNameMemory     = "memory"
	StorageDriverNameFilesystem = "filesystem"
	StorageDriverNamePostgres   = "postgres"
)

// Storage error messages
const (
	ErrMsgNilStorageDriver        = "storage driver is nil"
	ErrMsgDriverAlreadyRegistered = "storage driver already registered"
	ErrMsgStorageDriverNotFound   = "storage driver not found"
	ErrMsgStorageClosed           = "storage is closed"
	ErrMsgPromptNotFound          = "prompt not found"
	ErrMsgPromptVersionNotFound   = "prompt version not found"
	ErrMsgNilStoredPrompt         = "stored prompt is nil"
	ErrMsgEmptyPromptName         = "prompt name cannot be empty"
	ErrMsgNilPromptRecord         = "stored prompt record is nil"
	ErrMsgPathTraversalDetected   = "invalid prompt name: path traversal characters detected"
	ErrMsgCryptoRandFailure       = "cryptographic random number generator failure"
)

// Filesystem storage constants
const (
	FilesystemDirPermissions  = 0755
	FilesystemFilePermissions = 0644
	FilesystemVersionPrefix   = "v"
	FilesystemVersionSuffix   = ".json"
)

// Storage ID prefix for stored prompt records
const (
	PromptIDPrefix = "prm_"
	PromptIDLength = 12
)

// PostgreSQL storage configuration defaults
const (
	PostgresTablePrefix            = "prompting_"
	PostgresDefaultMaxOpenConns    = 25
	PostgresDefaultMaxIdleConns    = 5
	PostgresDefaultConnMaxLifetime = 5 * time.Minute
	PostgresDefaultConnMaxIdleTime = 5 * time.Minute
	PostgresDefaultQueryTimeout    = 30 * time.Second
)

// PostgreSQL storage error messages
const (
	ErrMsgPostgresConnectionFailed = "failed to connect to PostgreSQL"
	ErrMsgPostgresQueryFailed      = "PostgreSQL query failed"
	ErrMsgPostgresScanFailed       = "failed to scan PostgreSQL result"
	ErrMsgPostgresMarshalFailed    = "failed to marshal record for PostgreSQL"
	ErrMsgPostgresUnmarshalFailed  = "failed to unmarshal PostgreSQL data"
	ErrMsgPostgresMigrationFailed  = "PostgreSQL migration failed"
	ErrMsgPostgresEmptyConnString  = "PostgreSQL connection string is empty"
)
