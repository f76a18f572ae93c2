package generation_test

import (
	"encoding/json"
	"testing"

	"github.com/phrazzld/brandkit-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func fieldNames(s generation.Schema) []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

func TestFullSchemaIsStrictSupersetOfPreview(t *testing.T) {
	t.Parallel()

	preview := fieldNames(generation.PreviewSchema())
	for _, profile := range []generation.Profile{generation.ProfileStandard, generation.ProfileExtended} {
		full := fieldNames(generation.FullSchema(profile))
		assert.Greater(t, len(full), len(preview))
		assert.Equal(t, preview, full[:len(preview)], "preview fields come first in %s", profile)
	}

	standard := fieldNames(generation.FullSchema(generation.ProfileStandard))
	extended := fieldNames(generation.FullSchema(generation.ProfileExtended))
	assert.Equal(t, standard, extended[:len(standard)])
	assert.Subset(t, extended, []string{"sampleLogos", "sampleTypography", "samplePosters", "sampleSocialPosts"})
}

func TestSchemaValidate_ValidReplies(t *testing.T) {
	t.Parallel()

	assert.Empty(t, generation.PreviewSchema().Validate(decode(t, previewReply)))
	assert.Empty(t, generation.FullSchema(generation.ProfileStandard).Validate(decode(t, fullReply())))
	assert.Empty(t, generation.FullSchema(generation.ProfileExtended).Validate(decode(t, extendedReply())))
}

func TestSchemaValidate_EmptyArraysAreStructurallyValid(t *testing.T) {
	t.Parallel()

	reply := decode(t, previewReply)
	reply["taglineSuggestions"] = []any{}
	reply["colors"] = []any{}

	assert.Empty(t, generation.PreviewSchema().Validate(reply))
}

func TestSchemaValidate_IgnoresUnknownNestedKeys(t *testing.T) {
	t.Parallel()

	reply := decode(t, previewReply)
	reply["logoPlaceholder"].(map[string]any)["palette"] = "warm"

	assert.Empty(t, generation.PreviewSchema().Validate(reply))
}

func TestSchemaValidate_Violations(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		mutate func(m map[string]any)
		want   []generation.Violation
	}{
		{
			name:   "missing nested field",
			mutate: func(m map[string]any) { delete(m["logoPlaceholder"].(map[string]any), "rationale") },
			want: []generation.Violation{
				{Path: "logoPlaceholder.rationale", Expected: "string", Actual: "missing"},
			},
		},
		{
			name:   "array element of wrong type",
			mutate: func(m map[string]any) { m["taglineSuggestions"] = []any{"ok", 3.0, true} },
			want: []generation.Violation{
				{Path: "taglineSuggestions[1]", Expected: "string", Actual: "number"},
				{Path: "taglineSuggestions[2]", Expected: "string", Actual: "boolean"},
			},
		},
		{
			name:   "object array element not an object",
			mutate: func(m map[string]any) { m["colors"] = []any{"#FFFFFF"} },
			want: []generation.Violation{
				{Path: "colors[0]", Expected: "object", Actual: "string"},
			},
		},
		{
			name: "short hex",
			mutate: func(m map[string]any) {
				m["colors"].([]any)[0].(map[string]any)["hex"] = "#FFF"
			},
			want: []generation.Violation{
				{Path: "colors[0].hex", Expected: "string like #RRGGBB", Actual: `"#FFF"`},
			},
		},
		{
			name: "hex without hash",
			mutate: func(m map[string]any) {
				m["colors"].([]any)[2].(map[string]any)["hex"] = "4C8C4A"
			},
			want: []generation.Violation{
				{Path: "colors[2].hex", Expected: "string like #RRGGBB", Actual: `"4C8C4A"`},
			},
		},
		{
			name: "role with different case",
			mutate: func(m map[string]any) {
				m["fonts"].([]any)[0].(map[string]any)["role"] = "Heading"
			},
			want: []generation.Violation{
				{Path: "fonts[0].role", Expected: "one of [heading body accent]", Actual: `"Heading"`},
			},
		},
		{
			name: "extra keys sorted",
			mutate: func(m map[string]any) {
				m["zeta"] = 1.0
				m["alpha"] = []any{}
			},
			want: []generation.Violation{
				{Path: "alpha", Expected: "no such field", Actual: "unexpected array"},
				{Path: "zeta", Expected: "no such field", Actual: "unexpected number"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			reply := decode(t, previewReply)
			tc.mutate(reply)

			got := generation.PreviewSchema().Validate(reply)

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSchemaValidate_ReportsEveryViolation(t *testing.T) {
	t.Parallel()

	got := generation.PreviewSchema().Validate(map[string]any{})

	require.Len(t, got, 4)
	for i, name := range []string{"colors", "fonts", "logoPlaceholder", "taglineSuggestions"} {
		assert.Equal(t, name, got[i].Path)
		assert.Equal(t, "missing", got[i].Actual)
	}
}

func TestFullSchema_IgnoresAssemblyFields(t *testing.T) {
	t.Parallel()

	reply := decode(t, fullReply())
	require.Contains(t, reply, "id")
	require.Contains(t, reply, "createdAt")

	assert.Empty(t, generation.FullSchema(generation.ProfileStandard).Validate(reply))
}
