package prompting

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Schema is a structural description of an expected response shape.
// A node is one of {primitive, object, array}; objects carry an ordered
// property list plus an optional required-name set, arrays carry an
// element schema, and any node may carry a free-text description.
//
// Both observed schema dialects normalize into this one representation:
// the description-carrying dialect populates Description per node, the
// structural dialect populates Required and Items.
//
// Schemas are treated as immutable once handed to an Engine; the
// chainable Describe and Require helpers are construction-time only.
type Schema struct {
	Type        string
	Description string
	Properties  []Property // object only, insertion-ordered
	Required    []string   // object only
	Items       *Schema    // array only
}

// Property is one named entry of an object schema. Order of properties is
// significant: projections iterate them in insertion order.
type Property struct {
	Name   string
	Schema *Schema
}

// String returns a new string primitive schema node.
func String() *Schema {
	return &Schema{Type: SchemaTypeString}
}

// Number returns a new number primitive schema node.
func Number() *Schema {
	return &Schema{Type: SchemaTypeNumber}
}

// Boolean returns a new boolean primitive schema node.
func Boolean() *Schema {
	return &Schema{Type: SchemaTypeBoolean}
}

// Object returns a new object schema node with the given ordered properties.
func Object(props ...Property) *Schema {
	return &Schema{Type: SchemaTypeObject, Properties: props}
}

// Array returns a new array schema node with the given element schema.
func Array(items *Schema) *Schema {
	return &Schema{Type: SchemaTypeArray, Items: items}
}

// Prop pairs a property name with its schema for Object construction.
func Prop(name string, schema *Schema) Property {
	return Property{Name: name, Schema: schema}
}

// Describe sets the node's free-text description and returns the node for
// literal-style construction.
func (s *Schema) Describe(text string) *Schema {
	s.Description = text
	return s
}

// Require marks property names as required on an object node and returns
// the node for literal-style construction.
func (s *Schema) Require(names ...string) *Schema {
	s.Required = append(s.Required, names...)
	return s
}

// HasDescriptions reports whether any node in the schema tree carries a
// description. Projections use this to select a rendering strategy.
func (s *Schema) HasDescriptions() bool {
	if s == nil {
		return false
	}
	if s.Description != "" {
		return true
	}
	for _, p := range s.Properties {
		if p.Schema.HasDescriptions() {
			return true
		}
	}
	return s.Items.HasDescriptions()
}

// property returns the schema for a named property, or nil.
func (s *Schema) property(name string) *Schema {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

// ParseSchema parses a JSON schema description in either supported
// dialect into the normalized representation. Property order within
// objects is preserved. Property values may be full schema nodes or bare
// type-name strings (the shorthand form), and the result is not compiled:
// pass it to CompileSchema or Engine.WithSchema for structural checks.
func ParseSchema(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, NewSchemaParseError(err)
	}
	return &s, nil
}

// MarshalJSON renders the schema in the standard JSON-Schema-shaped wire
// form, writing object properties in insertion order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.WriteString(`"` + SchemaKeyType + `":`)
	writeJSONString(&buf, s.Type)
	if s.Description != "" {
		buf.WriteString(`,"` + SchemaKeyDescription + `":`)
		writeJSONString(&buf, s.Description)
	}
	if len(s.Properties) > 0 {
		buf.WriteString(`,"` + SchemaKeyProperties + `":{`)
		for i, p := range s.Properties {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(&buf, p.Name)
			buf.WriteByte(':')
			child, err := json.Marshal(p.Schema)
			if err != nil {
				return nil, err
			}
			buf.Write(child)
		}
		buf.WriteByte('}')
	}
	if len(s.Required) > 0 {
		buf.WriteString(`,"` + SchemaKeyRequired + `":`)
		req, err := json.Marshal(s.Required)
		if err != nil {
			return nil, err
		}
		buf.Write(req)
	}
	if s.Items != nil {
		buf.WriteString(`,"` + SchemaKeyItems + `":`)
		items, err := json.Marshal(s.Items)
		if err != nil {
			return nil, err
		}
		buf.Write(items)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the wire form, preserving object property order.
// encoding/json's map decoding would lose order, so this walks tokens.
func (s *Schema) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	node, err := decodeSchemaNode(dec)
	if err != nil {
		return err
	}
	*s = *node
	return nil
}

// decodeSchemaNode decodes one schema node from the token stream. A bare
// string token is the shorthand form naming a primitive type.
func decodeSchemaNode(dec *json.Decoder) (*Schema, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case string:
		return &Schema{Type: t}, nil
	case json.Delim:
		if t != '{' {
			return nil, fmt.Errorf("expected schema object, got %v", t)
		}
	default:
		return nil, fmt.Errorf("expected schema object, got %v", tok)
	}

	node := &Schema{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}

		switch key {
		case SchemaKeyType:
			node.Type, err = decodeStringToken(dec)
			if err != nil {
				return nil, err
			}
		case SchemaKeyDescription:
			node.Description, err = decodeStringToken(dec)
			if err != nil {
				return nil, err
			}
		case SchemaKeyProperties:
			if err := decodeProperties(dec, node); err != nil {
				return nil, err
			}
		case SchemaKeyRequired:
			if err := dec.Decode(&node.Required); err != nil {
				return nil, err
			}
		case SchemaKeyItems:
			node.Items, err = decodeSchemaNode(dec)
			if err != nil {
				return nil, err
			}
		default:
			var ignored any
			if err := dec.Decode(&ignored); err != nil {
				return nil, err
			}
		}
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return node, nil
}

// decodeProperties decodes the properties object in token order.
func decodeProperties(dec *json.Decoder, node *Schema) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected properties object, got %v", tok)
	}

	for dec.More() {
		nameTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := nameTok.(string)
		if !ok {
			return fmt.Errorf("expected property name, got %v", nameTok)
		}
		child, err := decodeSchemaNode(dec)
		if err != nil {
			return err
		}
		node.Properties = append(node.Properties, Property{Name: name, Schema: child})
	}

	_, err = dec.Token()
	return err
}

// decodeStringToken reads the next token and requires it to be a string.
func decodeStringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	str, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %v", tok)
	}
	return str, nil
}

// writeJSONString writes a JSON-escaped string literal.
func writeJSONString(buf *bytes.Buffer, s string) {
	encoded, _ := json.Marshal(s)
	buf.Write(encoded)
}
