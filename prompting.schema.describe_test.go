package prompting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectSkeleton(t *testing.T) {
	t.Run("array of objects", func(t *testing.T) {
		s := Array(Object(
			Prop("title", String()),
			Prop("year", String()),
		))

		expected := "[\n" +
			"  {\n" +
			"    \"title\": \"string\",\n" +
			"    \"year\": \"string\"\n" +
			"  }\n" +
			"]"
		assert.Equal(t, expected, s.ProjectSkeleton())
	})

	t.Run("flat object", func(t *testing.T) {
		s := Object(
			Prop("name", String()),
			Prop("age", Number()),
			Prop("active", Boolean()),
		)

		expected := "{\n" +
			"  \"name\": \"string\",\n" +
			"  \"age\": \"number\",\n" +
			"  \"active\": \"boolean\"\n" +
			"}"
		assert.Equal(t, expected, s.ProjectSkeleton())
	})

	t.Run("nested object indents per level", func(t *testing.T) {
		s := Object(
			Prop("author", Object(
				Prop("name", String()),
			)),
		)

		expected := "{\n" +
			"  \"author\": {\n" +
			"    \"name\": \"string\"\n" +
			"  }\n" +
			"}"
		assert.Equal(t, expected, s.ProjectSkeleton())
	})

	t.Run("array-valued property", func(t *testing.T) {
		s := Object(Prop("tags", Array(String())))

		expected := "{\n" +
			"  \"tags\": [\n" +
			"    \"string\"\n" +
			"  ]\n" +
			"}"
		assert.Equal(t, expected, s.ProjectSkeleton())
	})

	t.Run("primitive root", func(t *testing.T) {
		assert.Equal(t, `"string"`, String().ProjectSkeleton())
		assert.Equal(t, `"number"`, Number().ProjectSkeleton())
	})

	t.Run("empty object and itemless array", func(t *testing.T) {
		assert.Equal(t, "{}", Object().ProjectSkeleton())
		assert.Equal(t, "[]", (&Schema{Type: SchemaTypeArray}).ProjectSkeleton())
	})
}

func TestProjectBullets(t *testing.T) {
	t.Run("flat object with descriptions", func(t *testing.T) {
		s := Object(
			Prop("title", String().Describe("The book title")),
			Prop("year", String().Describe("Year of first publication")),
		)

		expected := "- title (string): \"The book title\"\n" +
			"- year (string): \"Year of first publication\""
		assert.Equal(t, expected, s.ProjectBullets())
	})

	t.Run("nested object indents its bullets", func(t *testing.T) {
		s := Object(
			Prop("author", Object(
				Prop("name", String().Describe("Full name")),
			).Describe("Who wrote it")),
		)

		expected := "- author (object): \"Who wrote it\"\n" +
			"  - name (string): \"Full name\""
		assert.Equal(t, expected, s.ProjectBullets())
	})

	t.Run("array of objects lists the element properties", func(t *testing.T) {
		s := Array(Object(
			Prop("title", String().Describe("The book title")),
		))

		assert.Equal(t, "- title (string): \"The book title\"", s.ProjectBullets())
	})

	t.Run("property without description omits the quoted text", func(t *testing.T) {
		s := Object(
			Prop("title", String().Describe("The book title")),
			Prop("year", String()),
		)

		expected := "- title (string): \"The book title\"\n" +
			"- year (string)"
		assert.Equal(t, expected, s.ProjectBullets())
	})
}

func TestProject(t *testing.T) {
	t.Run("selects skeleton for structural schemas", func(t *testing.T) {
		s := Array(Object(Prop("title", String())))
		assert.Equal(t, s.ProjectSkeleton(), s.Project())
	})

	t.Run("selects bullets when any description is present", func(t *testing.T) {
		s := Object(Prop("title", String().Describe("The book title")))
		assert.Equal(t, s.ProjectBullets(), s.Project())
	})

	t.Run("nil schema projects empty", func(t *testing.T) {
		var s *Schema
		assert.Equal(t, "", s.Project())
	})
}
