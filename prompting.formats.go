package prompting

import (
	"encoding/json"
	"sync"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v3"
)

// ResponseDecoder parses raw backend text in one response format into a
// structured value for validation. Implementations must be safe for
// concurrent use.
type ResponseDecoder interface {
	// Format returns the format label this decoder handles.
	Format() string

	// Decode parses raw response text into a structured value.
	Decode(raw string) (any, error)
}

var (
	decodersMu sync.RWMutex
	decoders   = make(map[string]ResponseDecoder)
)

// RegisterDecoder makes a response decoder available for lookup by an
// engine's format label. Registering over an existing format replaces it.
func RegisterDecoder(decoder ResponseDecoder) {
	decodersMu.Lock()
	defer decodersMu.Unlock()
	decoders[decoder.Format()] = decoder
}

// LookupDecoder returns the registered decoder for a format label.
func LookupDecoder(format string) (ResponseDecoder, error) {
	decodersMu.RLock()
	defer decodersMu.RUnlock()

	decoder, ok := decoders[format]
	if !ok {
		return nil, NewUnknownFormatError(format)
	}
	return decoder, nil
}

// ListDecoders returns the registered format labels.
func ListDecoders() []string {
	decodersMu.RLock()
	defer decodersMu.RUnlock()

	names := make([]string, 0, len(decoders))
	for name := range decoders {
		names = append(names, name)
	}
	return names
}

func init() {
	RegisterDecoder(&JSONDecoder{})
	RegisterDecoder(&YAMLDecoder{})
	RegisterDecoder(&HJSONDecoder{})
}

// JSONDecoder decodes strict JSON. With Repair set, malformed input is
// first run through json-repair, which recovers the truncated or
// fence-wrapped JSON LLM backends commonly emit.
type JSONDecoder struct {
	Repair bool
}

// Format implements ResponseDecoder.
func (d *JSONDecoder) Format() string {
	return FormatJSON
}

// Decode implements ResponseDecoder.
func (d *JSONDecoder) Decode(raw string) (any, error) {
	var value any
	err := json.Unmarshal([]byte(raw), &value)
	if err == nil {
		return value, nil
	}
	if !d.Repair {
		return nil, err
	}

	repaired, repairErr := jsonrepair.RepairJSON(raw)
	if repairErr != nil {
		return nil, err
	}
	if unmarshalErr := json.Unmarshal([]byte(repaired), &value); unmarshalErr != nil {
		return nil, err
	}
	return value, nil
}

// YAMLDecoder decodes YAML responses. Mappings decode to map[string]any.
type YAMLDecoder struct{}

// Format implements ResponseDecoder.
func (d *YAMLDecoder) Format() string {
	return FormatYAML
}

// Decode implements ResponseDecoder.
func (d *YAMLDecoder) Decode(raw string) (any, error) {
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return nil, err
	}
	return normalizeYAMLValue(value), nil
}

// normalizeYAMLValue rewrites yaml.v3's map[string]any values recursively
// so validation sees the same shapes the JSON decoder produces.
func normalizeYAMLValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for k, elem := range v {
			v[k] = normalizeYAMLValue(elem)
		}
		return v
	case []any:
		for i, elem := range v {
			v[i] = normalizeYAMLValue(elem)
		}
		return v
	default:
		return v
	}
}

// HJSONDecoder decodes Hjson, the human-friendly JSON dialect that
// tolerates comments, trailing commas, and unquoted keys.
type HJSONDecoder struct{}

// Format implements ResponseDecoder.
func (d *HJSONDecoder) Format() string {
	return FormatHJSON
}

// Decode implements ResponseDecoder.
// hjson decodes objects into its own ordered-map type, so the result is
// round-tripped through JSON to yield the map[string]any shapes the
// validator expects.
func (d *HJSONDecoder) Decode(raw string) (any, error) {
	var intermediate any
	if err := hjson.Unmarshal([]byte(raw), &intermediate); err != nil {
		return nil, err
	}
	normalized, err := json.Marshal(intermediate)
	if err != nil {
		return nil, err
	}
	var value any
	if err := json.Unmarshal(normalized, &value); err != nil {
		return nil, err
	}
	return value, nil
}
