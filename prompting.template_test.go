package prompting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitutePlaceholders(t *testing.T) {
	t.Run("replaces bound placeholder", func(t *testing.T) {
		out := substitutePlaceholders("Hello {{name}}!", map[string]any{"name": "Alice"})
		assert.Equal(t, "Hello Alice!", out)
	})

	t.Run("whitespace inside braces is tolerated", func(t *testing.T) {
		bindings := map[string]any{"name": "Alice"}
		assert.Equal(t, "Alice", substitutePlaceholders("{{name}}", bindings))
		assert.Equal(t, "Alice", substitutePlaceholders("{{ name }}", bindings))
		assert.Equal(t, "Alice", substitutePlaceholders("{{  name  }}", bindings))
		assert.Equal(t, "Alice", substitutePlaceholders("{{name }}", bindings))
	})

	t.Run("replaces every occurrence of the same name", func(t *testing.T) {
		out := substitutePlaceholders("{{x}} and {{ x }}", map[string]any{"x": "1"})
		assert.Equal(t, "1 and 1", out)
	})

	t.Run("names are case-sensitive", func(t *testing.T) {
		out := substitutePlaceholders("{{Name}}", map[string]any{"name": "Alice"})
		assert.Equal(t, "{{Name}}", out)
	})

	t.Run("unbound placeholders are left intact", func(t *testing.T) {
		out := substitutePlaceholders("Hi {{a}} {{b}}", map[string]any{"a": "x"})
		assert.Equal(t, "Hi x {{b}}", out)
	})

	t.Run("non-word brace contents pass through as literal text", func(t *testing.T) {
		bindings := map[string]any{"a": "x", "a b": "y"}
		assert.Equal(t, "{{a b}}", substitutePlaceholders("{{a b}}", bindings))
		assert.Equal(t, "{{a-b}}", substitutePlaceholders("{{a-b}}", bindings))
		assert.Equal(t, "{{}}", substitutePlaceholders("{{}}", bindings))
	})

	t.Run("template without placeholders is unchanged", func(t *testing.T) {
		out := substitutePlaceholders("plain text", map[string]any{"a": "x"})
		assert.Equal(t, "plain text", out)
	})

	t.Run("empty template", func(t *testing.T) {
		assert.Equal(t, "", substitutePlaceholders("", map[string]any{"a": "x"}))
	})

	t.Run("unused bindings are ignored", func(t *testing.T) {
		out := substitutePlaceholders("{{a}}", map[string]any{"a": "x", "unused": "y"})
		assert.Equal(t, "x", out)
	})
}

func TestMissingPlaceholders(t *testing.T) {
	t.Run("returns names in order of first appearance", func(t *testing.T) {
		names := missingPlaceholders("{{b}} {{a}} {{c}}")
		assert.Equal(t, []string{"b", "a", "c"}, names)
	})

	t.Run("deduplicates repeated names", func(t *testing.T) {
		names := missingPlaceholders("{{a}} {{b}} {{a}}")
		assert.Equal(t, []string{"a", "b"}, names)
	})

	t.Run("nil for text without placeholders", func(t *testing.T) {
		assert.Nil(t, missingPlaceholders("no tokens here"))
	})

	t.Run("ignores non-word brace contents", func(t *testing.T) {
		assert.Nil(t, missingPlaceholders("{{a b}} {{-}} {{}}"))
	})
}

func TestBindingString(t *testing.T) {
	t.Run("string passes through", func(t *testing.T) {
		assert.Equal(t, "hello", bindingString("hello"))
	})

	t.Run("numeric values", func(t *testing.T) {
		assert.Equal(t, "3", bindingString(3))
		assert.Equal(t, "3", bindingString(int64(3)))
		assert.Equal(t, "3.5", bindingString(3.5))
	})

	t.Run("boolean values", func(t *testing.T) {
		assert.Equal(t, "true", bindingString(true))
		assert.Equal(t, "false", bindingString(false))
	})

	t.Run("nil renders empty", func(t *testing.T) {
		assert.Equal(t, "", bindingString(nil))
	})
}

func TestMergeBindings(t *testing.T) {
	t.Run("overrides win entry-by-entry", func(t *testing.T) {
		defaults := map[string]any{"a": "1", "b": "2"}
		overrides := map[string]any{"b": "3", "c": "4"}

		merged := mergeBindings(defaults, overrides)
		assert.Equal(t, map[string]any{"a": "1", "b": "3", "c": "4"}, merged)
	})

	t.Run("inputs are not mutated", func(t *testing.T) {
		defaults := map[string]any{"a": "1"}
		overrides := map[string]any{"a": "2"}

		_ = mergeBindings(defaults, overrides)
		assert.Equal(t, "1", defaults["a"])
		assert.Equal(t, "2", overrides["a"])
	})

	t.Run("nil inputs yield empty map", func(t *testing.T) {
		merged := mergeBindings(nil, nil)
		assert.NotNil(t, merged)
		assert.Empty(t, merged)
	})
}

func TestCopyBindings(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, copyBindings(nil))
	})

	t.Run("copy is independent", func(t *testing.T) {
		original := map[string]any{"a": "1"}
		copied := copyBindings(original)
		copied["a"] = "2"
		assert.Equal(t, "1", original["a"])
	})
}
