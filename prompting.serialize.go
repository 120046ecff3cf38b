package prompting

// Record is the plain persistence form of an engine configuration:
// template text, defaults, and schema description. The backend reference
// and pre-bound variables are deliberately excluded — a backend is never
// serialized, and pre-bound variables are call-scoped specialization, not
// configuration.
type Record struct {
	// Text is the template, or nil when no template has been set.
	Text *string `json:"text,omitempty"`

	// Defaults is the default binding layer.
	Defaults map[string]any `json:"defaults"`

	// Schema is the response schema description, or nil.
	Schema *Schema `json:"schema,omitempty"`
}

// Serialize produces a Record suitable for external persistence. The
// record holds copies, so later engine derivation does not leak into it.
func (e *Engine) Serialize() *Record {
	rec := &Record{
		Defaults: copyBindings(e.defaults),
	}
	if rec.Defaults == nil {
		rec.Defaults = map[string]any{}
	}
	if e.templateSet {
		text := e.template
		rec.Text = &text
	}
	rec.Schema = e.schema
	return rec
}

// FromRecord reconstructs an engine from a serialized record plus an
// explicitly supplied backend (pass nil for a resolve-only engine).
// The record's schema is recompiled; compile failures propagate.
// Additional options apply after the record's fields.
func FromRecord(rec *Record, backend Backend, opts ...Option) (*Engine, error) {
	if rec == nil {
		return nil, NewNilRecordError()
	}

	recordOpts := []Option{WithDefaults(rec.Defaults)}
	if rec.Text != nil {
		recordOpts = append(recordOpts, WithTemplate(*rec.Text))
	}
	if rec.Schema != nil {
		recordOpts = append(recordOpts, WithSchema(rec.Schema))
	}
	if backend != nil {
		recordOpts = append(recordOpts, WithBackend(backend))
	}

	return New(append(recordOpts, opts...)...)
}
