package prompting

import (
	"strings"
)

// Project renders the schema into a form embeddable in prompt text.
//
// Two rendering strategies exist, selected by which fields the schema
// populates: when any node carries a description, the bullet-list
// strategy is used; otherwise the structural-skeleton strategy is the
// default. Use ProjectSkeleton or ProjectBullets to force one.
func (s *Schema) Project() string {
	if s == nil {
		return ""
	}
	if s.HasDescriptions() {
		return s.ProjectBullets()
	}
	return s.ProjectSkeleton()
}

// ProjectSkeleton renders the schema as a structural skeleton: a
// pretty-printed JSON-shaped value using type names as placeholders,
// two-space indentation, arrays as one-element lists.
//
// For example, an array of objects with string properties title and year
// renders as:
//
//	[
//	  {
//	    "title": "string",
//	    "year": "string"
//	  }
//	]
func (s *Schema) ProjectSkeleton() string {
	var sb strings.Builder
	writeSkeleton(&sb, s, 0)
	return sb.String()
}

// writeSkeleton renders one node at the given indent depth. The caller is
// responsible for indentation preceding the node's first character.
func writeSkeleton(sb *strings.Builder, s *Schema, depth int) {
	switch s.Type {
	case SchemaTypeObject:
		if len(s.Properties) == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{\n")
		for i, p := range s.Properties {
			sb.WriteString(strings.Repeat(DescribeIndent, depth+1))
			sb.WriteString(`"` + p.Name + `": `)
			writeSkeleton(sb, p.Schema, depth+1)
			if i < len(s.Properties)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Repeat(DescribeIndent, depth))
		sb.WriteString("}")
	case SchemaTypeArray:
		if s.Items == nil {
			sb.WriteString("[]")
			return
		}
		sb.WriteString("[\n")
		sb.WriteString(strings.Repeat(DescribeIndent, depth+1))
		writeSkeleton(sb, s.Items, depth+1)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(DescribeIndent, depth))
		sb.WriteString("]")
	default:
		sb.WriteString(`"` + s.Type + `"`)
	}
}

// ProjectBullets renders the schema as a bullet list carrying per-field
// descriptions, one line per property:
//
//   - title (string): "The book title"
//   - author (object): "Who wrote it"
//   - name (string): "Full name"
//
// Nested objects indent two further spaces per level. Array properties
// recurse into their element schema at the next depth. A primitive root
// renders as a single unnamed bullet.
func (s *Schema) ProjectBullets() string {
	var sb strings.Builder
	switch s.Type {
	case SchemaTypeObject:
		writeBulletProps(&sb, s, 0)
	case SchemaTypeArray:
		if s.Items != nil {
			writeBulletProps(&sb, s.Items, 0)
		}
	default:
		sb.WriteString(DescribeBulletPrefix + "(" + s.Type + ")")
		if s.Description != "" {
			sb.WriteString(`: "` + s.Description + `"`)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// writeBulletProps renders the properties of an object node as bullets.
func writeBulletProps(sb *strings.Builder, s *Schema, depth int) {
	for _, p := range s.Properties {
		sb.WriteString(strings.Repeat(DescribeIndent, depth))
		sb.WriteString(DescribeBulletPrefix + p.Name + " (" + p.Schema.Type + ")")
		if p.Schema.Description != "" {
			sb.WriteString(`: "` + p.Schema.Description + `"`)
		}
		sb.WriteString("\n")

		switch p.Schema.Type {
		case SchemaTypeObject:
			writeBulletProps(sb, p.Schema, depth+1)
		case SchemaTypeArray:
			if p.Schema.Items != nil && p.Schema.Items.Type == SchemaTypeObject {
				writeBulletProps(sb, p.Schema.Items, depth+1)
			}
		}
	}
}
