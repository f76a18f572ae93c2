package generation

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/phrazzld/brandkit-api/internal/domain"
)

// FieldType is the JSON shape a schema field must have.
type FieldType int

// Supported field types.
const (
	TypeString FieldType = iota
	TypeStringArray
	TypeObject
	TypeObjectArray
)

func (t FieldType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeStringArray:
		return "array of strings"
	case TypeObject:
		return "object"
	case TypeObjectArray:
		return "array of objects"
	default:
		return "unknown"
	}
}

// Field is one entry of a declarative schema table. The same table drives
// both the prompt's schema description and reply validation.
type Field struct {
	Name string
	Type FieldType

	// Enum closes the set of allowed values for a string field.
	Enum []string

	// Pattern constrains a string field; PatternHint is how the pattern is
	// shown to the model and in violations.
	Pattern     *regexp.Regexp
	PatternHint string

	// Fields describes the members of an object, or of each array element.
	Fields []Field
}

// Schema is the required shape of a reply for one mode.
type Schema struct {
	Name   string
	Fields []Field

	// Ignored lists top-level keys that are tolerated and discarded, such as
	// the identity fields attached at assembly time.
	Ignored []string
}

var hexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var (
	colorFields = []Field{
		{Name: "name", Type: TypeString},
		{Name: "hex", Type: TypeString, Pattern: hexPattern, PatternHint: "#RRGGBB"},
		{Name: "usage", Type: TypeString},
	}

	fontFields = []Field{
		{Name: "role", Type: TypeString, Enum: []string{
			string(domain.FontRoleHeading),
			string(domain.FontRoleBody),
			string(domain.FontRoleAccent),
		}},
		{Name: "name", Type: TypeString},
		{Name: "fallback", Type: TypeString},
		{Name: "sample", Type: TypeString},
	}

	logoFields = []Field{
		{Name: "id", Type: TypeString},
		{Name: "title", Type: TypeString},
		{Name: "description", Type: TypeString},
		{Name: "rationale", Type: TypeString},
	}

	mockupFields = []Field{
		{Name: "type", Type: TypeString},
		{Name: "description", Type: TypeString},
	}

	previewFields = []Field{
		{Name: "colors", Type: TypeObjectArray, Fields: colorFields},
		{Name: "fonts", Type: TypeObjectArray, Fields: fontFields},
		{Name: "logoPlaceholder", Type: TypeObject, Fields: logoFields},
		{Name: "taglineSuggestions", Type: TypeStringArray},
	}

	fullOnlyFields = []Field{
		{Name: "brandVoiceDescription", Type: TypeString},
		{Name: "socialMockups", Type: TypeObjectArray, Fields: mockupFields},
		{Name: "collateralMockups", Type: TypeObjectArray, Fields: mockupFields},
		{Name: "websiteHeaderDescription", Type: TypeString},
		{Name: "recommendedChannels", Type: TypeObjectArray, Fields: []Field{
			{Name: "channel", Type: TypeString},
			{Name: "reason", Type: TypeString},
		}},
		{Name: "campaignDirections", Type: TypeObjectArray, Fields: []Field{
			{Name: "title", Type: TypeString},
			{Name: "concept", Type: TypeString},
			{Name: "suggestedVisuals", Type: TypeString},
		}},
		{Name: "nextSteps", Type: TypeStringArray},
	}

	extendedOnlyFields = []Field{
		{Name: "sampleLogos", Type: TypeObjectArray, Fields: []Field{
			{Name: "title", Type: TypeString},
			{Name: "description", Type: TypeString},
			{Name: "style", Type: TypeString},
		}},
		{Name: "sampleTypography", Type: TypeObjectArray, Fields: []Field{
			{Name: "name", Type: TypeString},
			{Name: "headingFont", Type: TypeString},
			{Name: "bodyFont", Type: TypeString},
			{Name: "accentFont", Type: TypeString},
			{Name: "usage", Type: TypeString},
		}},
		{Name: "samplePosters", Type: TypeObjectArray, Fields: []Field{
			{Name: "title", Type: TypeString},
			{Name: "headline", Type: TypeString},
			{Name: "description", Type: TypeString},
		}},
		{Name: "sampleSocialPosts", Type: TypeObjectArray, Fields: []Field{
			{Name: "platform", Type: TypeString},
			{Name: "caption", Type: TypeString},
			{Name: "visualDescription", Type: TypeString},
		}},
	}
)

// assemblyFields are set by the Assembler, never taken from the model.
var assemblyFields = []string{"id", "createdAt"}

// PreviewSchema returns the schema for preview replies.
func PreviewSchema() Schema {
	return Schema{Name: "preview", Fields: previewFields}
}

// FullSchema returns the schema for full-kit replies. It is a strict
// superset of PreviewSchema, with the preview fields first.
func FullSchema(profile Profile) Schema {
	fields := slices.Concat(previewFields, fullOnlyFields)
	name := "full"
	if profile == ProfileExtended {
		fields = slices.Concat(fields, extendedOnlyFields)
		name = "full_extended"
	}
	return Schema{Name: name, Fields: fields, Ignored: assemblyFields}
}

// Validate compares a decoded reply with the schema and returns every
// violation found, or nil. Unknown keys are violations at the top level and
// ignored inside nested objects.
func (s Schema) Validate(obj map[string]any) []Violation {
	var violations []Violation
	known := make(map[string]bool, len(s.Fields)+len(s.Ignored))

	for _, f := range s.Fields {
		known[f.Name] = true
		violations = append(violations, checkField(f, f.Name, obj)...)
	}
	for _, name := range s.Ignored {
		known[name] = true
	}

	var extra []string
	for key := range obj {
		if !known[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		violations = append(violations, Violation{
			Path:     key,
			Expected: "no such field",
			Actual:   "unexpected " + jsonType(obj[key]),
		})
	}

	return violations
}

func checkField(f Field, path string, parent map[string]any) []Violation {
	v, ok := parent[f.Name]
	if !ok {
		return []Violation{{Path: path, Expected: f.Type.String(), Actual: "missing"}}
	}
	return checkValue(f, path, v)
}

func checkValue(f Field, path string, v any) []Violation {
	switch f.Type {
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return []Violation{{Path: path, Expected: "string", Actual: jsonType(v)}}
		}
		if len(f.Enum) > 0 && !slices.Contains(f.Enum, s) {
			return []Violation{{
				Path:     path,
				Expected: "one of [" + strings.Join(f.Enum, " ") + "]",
				Actual:   strconv.Quote(s),
			}}
		}
		if f.Pattern != nil && !f.Pattern.MatchString(s) {
			return []Violation{{Path: path, Expected: "string like " + f.PatternHint, Actual: strconv.Quote(s)}}
		}
		return nil

	case TypeStringArray:
		items, ok := v.([]any)
		if !ok {
			return []Violation{{Path: path, Expected: f.Type.String(), Actual: jsonType(v)}}
		}
		var violations []Violation
		for i, item := range items {
			if _, ok := item.(string); !ok {
				violations = append(violations, Violation{
					Path:     fmt.Sprintf("%s[%d]", path, i),
					Expected: "string",
					Actual:   jsonType(item),
				})
			}
		}
		return violations

	case TypeObject:
		m, ok := v.(map[string]any)
		if !ok {
			return []Violation{{Path: path, Expected: "object", Actual: jsonType(v)}}
		}
		return checkMembers(f.Fields, path, m)

	case TypeObjectArray:
		items, ok := v.([]any)
		if !ok {
			return []Violation{{Path: path, Expected: f.Type.String(), Actual: jsonType(v)}}
		}
		var violations []Violation
		for i, item := range items {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			m, ok := item.(map[string]any)
			if !ok {
				violations = append(violations, Violation{Path: itemPath, Expected: "object", Actual: jsonType(item)})
				continue
			}
			violations = append(violations, checkMembers(f.Fields, itemPath, m)...)
		}
		return violations
	}

	return []Violation{{Path: path, Expected: f.Type.String(), Actual: jsonType(v)}}
}

func checkMembers(fields []Field, path string, m map[string]any) []Violation {
	var violations []Violation
	for _, sub := range fields {
		violations = append(violations, checkField(sub, path+"."+sub.Name, m)...)
	}

	// encoding/json matches keys case-insensitively when decoding the typed
	// value, so a case variant of a field would overwrite the checked value.
	keys := slices.Sorted(maps.Keys(m))
	for _, key := range keys {
		for _, sub := range fields {
			if key != sub.Name && strings.EqualFold(key, sub.Name) {
				violations = append(violations, Violation{
					Path:     path + "." + key,
					Expected: "no such field (did you mean " + strconv.Quote(sub.Name) + "?)",
					Actual:   "unexpected " + jsonType(m[key]),
				})
				break
			}
		}
	}
	return violations
}

// jsonType names the JSON type of a value produced by encoding/json.
func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
