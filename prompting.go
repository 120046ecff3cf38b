// Package prompting provides a prompt-templating and response-validation
// layer in front of a pluggable text-generation backend.
//
// An Engine owns a text template with {{ name }} placeholders, a set of
// default variable bindings, an optional response Schema, and an optional
// generation Backend:
//
//	engine := prompting.MustNew(
//	    prompting.WithTemplate("List {{num}} books by {{name}}."),
//	    prompting.WithDefaults(map[string]any{"num": 3}),
//	)
//	text, err := engine.Resolve(map[string]any{"name": "George Orwell"})
//	// text: "List 3 books by George Orwell."
//
// # Placeholders
//
// Placeholders use the form {{ name }}: double braces, optional inner
// whitespace, a case-sensitive word-character name. There is no escaping
// and no nesting. Placeholders left unresolved after substitution fail
// Resolve with an error enumerating every missing name.
//
// # Response schemas
//
// A Schema describes the expected response shape (object, array, or
// primitive nodes). When set, Resolve appends a format directive plus a
// projection of the schema, and Generate decodes and validates the
// backend's raw output against it:
//
//	schema := prompting.Array(prompting.Object(
//	    prompting.Prop("title", prompting.String()),
//	    prompting.Prop("year", prompting.String()),
//	).Require("title", "year"))
//
//	engine, err := prompting.New(
//	    prompting.WithTemplate("List {{num}} books by {{name}}."),
//	    prompting.WithSchema(schema),
//	    prompting.WithBackend(backend),
//	)
//	result, err := engine.Generate(ctx, map[string]any{"num": 3, "name": "George Orwell"})
//	// result.Value holds the decoded, validated response
//
// # Derived configurations
//
// Engines are copy-on-write values: WithTemplate, WithDefaults, WithSchema,
// WithBackend, and WithVariables return derived engines and never mutate
// the receiver, so a base configuration can be specialized freely:
//
//	base := prompting.MustNew(prompting.WithTemplate("Hello, {{who}}."))
//	english := base.WithVariables(map[string]any{"who": "world"})
//	german := base.WithVariables(map[string]any{"who": "Welt"})
//
// # Backends
//
// A Backend is a single-method capability: given resolved prompt text,
// produce response text, fallibly, under a context. CompletionsBackend is
// the bundled implementation for bearer-authenticated HTTP completions
// endpoints; any test double satisfying the interface works the same way.
//
// # Persistence
//
// Engine.Serialize produces a plain Record (template, defaults, schema —
// never the backend or pre-bound variables) and FromRecord reconstructs an
// engine from one. The PromptStorage interface with memory, filesystem,
// and postgres drivers stores named, versioned records.
package prompting
