package prompting

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ValidationResult accumulates the outcome of checking a decoded value
// against a schema. Every violation is collected, not just the first.
type ValidationResult struct {
	// Valid indicates whether the value passed validation
	Valid bool `json:"valid"`
	// Errors contains one diagnostic per violated constraint
	Errors []string `json:"errors,omitempty"`
}

// Validator is a compiled schema capable of checking decoded candidate
// values. It holds no per-call state and is safe for concurrent use.
type Validator struct {
	schema *Schema
}

// Schema returns the schema this validator was compiled from.
func (v *Validator) Schema() *Schema {
	return v.schema
}

// CompileSchema checks the schema description for structural consistency
// and returns a compiled validator. An internally inconsistent schema
// (empty or unknown type, array without items, duplicate or dangling
// required property names) fails here, not at validation time.
func CompileSchema(s *Schema) (*Validator, error) {
	if s == nil {
		return nil, NewSchemaCompileError(ErrMsgSchemaNilNode, "")
	}
	if err := checkSchemaNode(s, ""); err != nil {
		return nil, err
	}
	return &Validator{schema: s}, nil
}

// checkSchemaNode validates one node and recurses.
func checkSchemaNode(s *Schema, path string) error {
	if s == nil {
		return NewSchemaCompileError(ErrMsgSchemaNilNode, path)
	}

	switch s.Type {
	case "":
		return NewSchemaCompileError(ErrMsgSchemaEmptyType, path)
	case SchemaTypeString, SchemaTypeNumber, SchemaTypeBoolean:
		return nil
	case SchemaTypeObject:
		seen := make(map[string]bool, len(s.Properties))
		for _, p := range s.Properties {
			if seen[p.Name] {
				return NewSchemaCompileError(ErrMsgSchemaDupProperty+": "+p.Name, path)
			}
			seen[p.Name] = true
			if err := checkSchemaNode(p.Schema, joinPath(path, p.Name)); err != nil {
				return err
			}
		}
		for _, name := range s.Required {
			if !seen[name] {
				return NewSchemaCompileError(ErrMsgSchemaBadRequired+": "+name, path)
			}
		}
		return nil
	case SchemaTypeArray:
		if s.Items == nil {
			return NewSchemaCompileError(ErrMsgSchemaNoItems, path)
		}
		return checkSchemaNode(s.Items, joinPath(path, SchemaKeyItems))
	default:
		return NewSchemaCompileError(ErrMsgSchemaUnknownType+": "+s.Type, path)
	}
}

// Validate checks an already-decoded candidate value against the schema,
// accumulating a diagnostic for every violated constraint.
func (v *Validator) Validate(value any) *ValidationResult {
	result := &ValidationResult{Valid: true}
	validateValue(v.schema, value, "", result)
	return result
}

// validateValue checks one value against one node and recurses.
func validateValue(s *Schema, value any, path string, result *ValidationResult) {
	if value == nil {
		addViolation(result, path, ValMsgTypeMismatch+": expected "+s.Type+", got "+ValMsgNullValue)
		return
	}

	switch s.Type {
	case SchemaTypeString:
		if _, ok := value.(string); !ok {
			addTypeViolation(result, path, s.Type, value)
		}
	case SchemaTypeNumber:
		if !isNumber(value) {
			addTypeViolation(result, path, s.Type, value)
		}
	case SchemaTypeBoolean:
		if _, ok := value.(bool); !ok {
			addTypeViolation(result, path, s.Type, value)
		}
	case SchemaTypeObject:
		obj, ok := value.(map[string]any)
		if !ok {
			addTypeViolation(result, path, s.Type, value)
			return
		}
		for _, name := range s.Required {
			if _, present := obj[name]; !present {
				addViolation(result, joinPath(path, name), ValMsgRequiredMissing)
			}
		}
		for _, p := range s.Properties {
			if child, present := obj[p.Name]; present {
				validateValue(p.Schema, child, joinPath(path, p.Name), result)
			}
		}
	case SchemaTypeArray:
		arr, ok := value.([]any)
		if !ok {
			addTypeViolation(result, path, s.Type, value)
			return
		}
		for i, elem := range arr {
			validateValue(s.Items, elem, path+"["+strconv.Itoa(i)+"]", result)
		}
	}
}

// isNumber accepts the numeric representations the supported decoders
// produce for untyped targets.
func isNumber(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		return true
	default:
		return false
	}
}

// addTypeViolation records a kind mismatch with the observed Go type.
func addTypeViolation(result *ValidationResult, path, expected string, value any) {
	addViolation(result, path, ValMsgTypeMismatch+": expected "+expected+", got "+fmt.Sprintf("%T", value))
}

// addViolation records a diagnostic and marks the result invalid.
func addViolation(result *ValidationResult, path, msg string) {
	result.Valid = false
	if path != "" {
		msg = path + ": " + msg
	}
	result.Errors = append(result.Errors, msg)
}

// joinPath joins dotted field path segments.
func joinPath(base, segment string) string {
	if base == "" {
		return segment
	}
	return base + "." + segment
}
