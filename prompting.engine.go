package prompting

import (
	"context"

	"go.uber.org/zap"
)

// Engine owns a text template, default variable bindings, an optional
// response schema with its compiled validator, and an optional generation
// backend. It resolves final prompt text, invokes the backend, and
// validates/parses the result.
//
// Engines are value objects with copy-on-write configuration: every
// WithXxx method returns a derived engine and leaves the receiver
// untouched, so a base engine can be specialized any number of times
// without cross-contamination. Resolve and Generate hold no mutable
// per-call state and are safe to call concurrently against one
// configuration; configuration itself is not lock-protected, so treat an
// engine as owned by one mutation authority at a time and fork with the
// WithXxx methods to share.
type Engine struct {
	template    string
	templateSet bool
	defaults    map[string]any
	variables   map[string]any // pre-bound set from WithVariables
	schema      *Schema
	validator   *Validator // always compiled from schema, never stale
	backend     Backend    // shared, not owned
	format      string
	decoder     ResponseDecoder // explicit override; nil means registry lookup
	logger      *zap.Logger
}

// Option is a functional option for configuring a new Engine.
type Option func(*Engine) error

// WithTemplate sets the template text. No validation is performed;
// placeholders are discovered lazily at resolution.
func WithTemplate(text string) Option {
	return func(e *Engine) error {
		e.template = text
		e.templateSet = true
		return nil
	}
}

// WithDefaults sets the default binding layer wholesale.
func WithDefaults(defaults map[string]any) Option {
	return func(e *Engine) error {
		e.defaults = copyBindings(defaults)
		return nil
	}
}

// WithSchema sets the response schema and compiles its validator.
// Compile failures surface from New.
func WithSchema(schema *Schema) Option {
	return func(e *Engine) error {
		return e.setSchema(schema)
	}
}

// WithBackend binds a generation backend. The engine shares the backend
// and does not manage its lifecycle.
func WithBackend(backend Backend) Option {
	return func(e *Engine) error {
		e.backend = backend
		return nil
	}
}

// WithFormat sets the response-format label used in the schema directive
// and for decoder selection. Default: "json".
func WithFormat(format string) Option {
	return func(e *Engine) error {
		e.format = format
		return nil
	}
}

// WithDecoder sets an explicit response decoder, bypassing the registry.
func WithDecoder(decoder ResponseDecoder) Option {
	return func(e *Engine) error {
		e.decoder = decoder
		return nil
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// New creates an Engine with the given options. A schema option that
// fails to compile fails New.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{format: DefaultResponseFormat}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e, nil
}

// MustNew creates an Engine and panics on error.
func MustNew(opts ...Option) *Engine {
	e, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// setSchema replaces the schema description and recompiles the validator
// atomically: on compile failure neither field changes.
func (e *Engine) setSchema(schema *Schema) error {
	if schema == nil {
		e.schema = nil
		e.validator = nil
		return nil
	}
	validator, err := CompileSchema(schema)
	if err != nil {
		return err
	}
	e.schema = schema
	e.validator = validator
	return nil
}

// clone produces a field-by-field copy with fresh binding maps. The
// schema, validator, backend, and logger are shared: schemas are
// immutable once set and the rest are stateless or externally owned.
func (e *Engine) clone() *Engine {
	derived := *e
	derived.defaults = copyBindings(e.defaults)
	derived.variables = copyBindings(e.variables)
	return &derived
}

// WithTemplate returns a derived engine with the template replaced.
func (e *Engine) WithTemplate(text string) *Engine {
	derived := e.clone()
	derived.template = text
	derived.templateSet = true
	return derived
}

// WithDefaults returns a derived engine with the default binding layer
// replaced wholesale (not merged with previous defaults).
func (e *Engine) WithDefaults(defaults map[string]any) *Engine {
	derived := e.clone()
	derived.defaults = copyBindings(defaults)
	return derived
}

// WithSchema returns a derived engine with the schema replaced and its
// validator recompiled. Compile failures propagate immediately and leave
// the receiver untouched.
func (e *Engine) WithSchema(schema *Schema) (*Engine, error) {
	derived := e.clone()
	if err := derived.setSchema(schema); err != nil {
		return nil, err
	}
	return derived, nil
}

// MustWithSchema is WithSchema panicking on compile failure.
func (e *Engine) MustWithSchema(schema *Schema) *Engine {
	derived, err := e.WithSchema(schema)
	if err != nil {
		panic(err)
	}
	return derived
}

// WithVariables returns a derived engine, identical configuration, with a
// pre-bound variable set used by Resolve and Render when no explicit
// per-call variables are given. The original is not mutated.
func (e *Engine) WithVariables(vars map[string]any) *Engine {
	derived := e.clone()
	derived.variables = copyBindings(vars)
	return derived
}

// WithBackend returns a derived engine bound to the given backend.
func (e *Engine) WithBackend(backend Backend) *Engine {
	derived := e.clone()
	derived.backend = backend
	return derived
}

// WithFormat returns a derived engine with the response-format label replaced.
func (e *Engine) WithFormat(format string) *Engine {
	derived := e.clone()
	derived.format = format
	return derived
}

// Template returns the template text and whether one has been set.
func (e *Engine) Template() (string, bool) {
	return e.template, e.templateSet
}

// Schema returns the configured schema, or nil.
func (e *Engine) Schema() *Schema {
	return e.schema
}

// Format returns the response-format label.
func (e *Engine) Format() string {
	return e.format
}

// Resolve computes the final prompt text: effective bindings are the
// defaults overridden entry-by-entry by vars if non-nil, else by the
// pre-bound variable set. Bindings without template occurrences are
// silently ignored; placeholders without bindings fail with a
// missing-binding error listing every unresolved name in order of first
// appearance. If a schema is configured, the format directive and schema
// projection are appended.
//
// Resolve is deterministic, synchronous, and side-effect-free; this is
// exactly the text Generate sends to the backend.
func (e *Engine) Resolve(vars map[string]any) (string, error) {
	overrides := vars
	if overrides == nil {
		overrides = e.variables
	}
	bindings := mergeBindings(e.defaults, overrides)

	text := substitutePlaceholders(e.template, bindings)
	if missing := missingPlaceholders(text); len(missing) > 0 {
		return "", NewMissingBindingError(missing)
	}

	if e.schema != nil {
		text += ResponseDirectivePrefix + e.format + ResponseDirectiveSuffix + e.schema.Project()
	}

	e.logger.Debug("resolved prompt text",
		zap.Int("bindings", len(bindings)),
		zap.Int("length", len(text)),
		zap.Bool("schema", e.schema != nil))
	return text, nil
}

// Render resolves the prompt using only pre-bound variables and defaults.
// Useful for inspection and debugging without invoking generation.
func (e *Engine) Render() (string, error) {
	return e.Resolve(nil)
}

// Result is the outcome of one Generate call.
type Result struct {
	// Raw is the backend's response text, verbatim.
	Raw string

	// Value is the decoded, validated response. Nil unless Structured.
	Value any

	// Structured reports whether a schema was configured and Value is set.
	Structured bool
}

// Generate resolves the prompt, invokes the bound backend, and — when a
// schema is configured — decodes the raw response in the configured
// format and validates it against the compiled validator. Decoding
// failure and validation failure are distinct error kinds; validation
// failure enumerates every violated constraint.
//
// Generate requires a bound backend and fails immediately without one.
// Concurrent Generate calls against one engine are independent: each
// computes its own effective bindings and resolved text locally.
func (e *Engine) Generate(ctx context.Context, vars map[string]any) (*Result, error) {
	if e.backend == nil {
		return nil, NewNoBackendError()
	}

	text, err := e.Resolve(vars)
	if err != nil {
		return nil, err
	}

	raw, err := e.backend.Complete(ctx, &CompletionRequest{Prompt: text})
	if err != nil {
		return nil, NewBackendError(err)
	}
	e.logger.Debug("backend completed", zap.Int("response_length", len(raw)))

	if e.schema == nil {
		return &Result{Raw: raw}, nil
	}

	decoder := e.decoder
	if decoder == nil {
		decoder, err = LookupDecoder(e.format)
		if err != nil {
			return nil, err
		}
	}

	value, err := decoder.Decode(raw)
	if err != nil {
		return nil, NewDecodeError(e.format, err)
	}

	if result := e.validator.Validate(value); !result.Valid {
		return nil, NewValidationFailedError(result.Errors)
	}

	return &Result{Raw: raw, Value: value, Structured: true}, nil
}
