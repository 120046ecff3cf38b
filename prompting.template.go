package prompting

import (
	"fmt"
	"regexp"
	"strconv"
)

// placeholderRegexp matches {{ name }} tokens: double braces, optional
// inner whitespace, a word-character name. Brace pairs whose content is
// not a word-character name are not placeholders and pass through as
// literal text.
var placeholderRegexp = regexp.MustCompile(PlaceholderPattern)

// substitutePlaceholders replaces every placeholder occurrence that has
// an effective binding with the binding's textual form. Occurrences with
// no binding are left intact for the missing-placeholder scan.
func substitutePlaceholders(template string, bindings map[string]any) string {
	return placeholderRegexp.ReplaceAllStringFunc(template, func(token string) string {
		name := placeholderRegexp.FindStringSubmatch(token)[1]
		value, ok := bindings[name]
		if !ok {
			return token
		}
		return bindingString(value)
	})
}

// missingPlaceholders scans text for remaining placeholder-shaped tokens
// and returns their names in order of first appearance, without duplicates.
func missingPlaceholders(text string) []string {
	matches := placeholderRegexp.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// placeholderNames returns the distinct placeholder names in a template,
// in order of first appearance.
func placeholderNames(template string) []string {
	return missingPlaceholders(template)
}

// bindingString converts a binding value to its textual form for
// substitution.
func bindingString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// mergeBindings composes the effective bindings for one resolution:
// defaults overridden entry-by-entry by overrides. Neither input map is
// mutated.
func mergeBindings(defaults, overrides map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// copyBindings returns a shallow copy of a binding map, or nil for nil.
func copyBindings(bindings map[string]any) map[string]any {
	if bindings == nil {
		return nil
	}
	copied := make(map[string]any, len(bindings))
	for k, v := range bindings {
		copied[k] = v
	}
	return copied
}
