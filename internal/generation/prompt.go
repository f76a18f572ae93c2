package generation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/phrazzld/brandkit-api/internal/domain"
)

// systemInstruction is identical for every mode.
const systemInstruction = `You are a senior brand strategist and visual identity designer.
Respond with exactly one JSON object and nothing else.
Do not write prose, explanations, or markdown code fences before or after the object.
Include every top-level field listed below and do not add any top-level field that is not listed.
Every value must be a string, an object, or an array as shown. Hex colors use the form #RRGGBB.`

const schemaHeader = "Reply with one JSON object containing exactly these top-level fields, all required:"

// DescribeSchema renders the schema table for the model, one line per
// top-level field. Because FullSchema lists the preview fields first, the
// preview description is a prefix of the full one.
func DescribeSchema(s Schema) string {
	var b strings.Builder
	b.WriteString(schemaHeader)
	for _, f := range s.Fields {
		b.WriteString("\n- ")
		b.WriteString(strconv.Quote(f.Name))
		b.WriteString(": ")
		b.WriteString(describeField(f))
	}
	return b.String()
}

func describeField(f Field) string {
	switch f.Type {
	case TypeString:
		switch {
		case len(f.Enum) > 0:
			quoted := make([]string, len(f.Enum))
			for i, v := range f.Enum {
				quoted[i] = strconv.Quote(v)
			}
			return strings.Join(quoted, " | ")
		case f.PatternHint != "":
			return strconv.Quote(f.PatternHint)
		default:
			return "string"
		}
	case TypeStringArray:
		return "[ string ]"
	case TypeObject:
		return describeObject(f.Fields)
	case TypeObjectArray:
		return "[ " + describeObject(f.Fields) + " ]"
	default:
		return f.Type.String()
	}
}

func describeObject(fields []Field) string {
	parts := make([]string, len(fields))
	for i, sub := range fields {
		parts[i] = strconv.Quote(sub.Name) + ": " + describeField(sub)
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

type payload struct {
	Task  string             `json:"task"`
	Input domain.BrandInputs `json:"input"`
}

// buildRequest composes the single completion request for a mode.
func buildRequest(mode Mode, schema Schema, input domain.BrandInputs) (CompletionRequest, error) {
	body, err := json.MarshalIndent(payload{Task: mode.task(), Input: input}, "", "  ")
	if err != nil {
		return CompletionRequest{}, fmt.Errorf("failed to encode payload: %w", err)
	}

	return CompletionRequest{
		SystemInstruction: systemInstruction,
		SchemaDescription: DescribeSchema(schema),
		Payload:           string(body),
	}, nil
}
