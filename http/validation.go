package http

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

const predictSchemaJSON = `{
  "type": "object",
  "required": ["category_code", "country_code", "funding_total_usd", "relationships",
               "total_funding_usd", "investor_count", "cluster_profile"],
  "properties": {
    "category_code":     {"type": "string"},
    "country_code":      {"type": "string"},
    "funding_total_usd": {"type": "number"},
    "relationships":     {"type": "integer"},
    "total_funding_usd": {"type": "number"},
    "investor_count":    {"type": "integer"},
    "cluster_profile":   {"type": "integer"}
  }
}`

const clusterSchemaJSON = `{
  "type": "object",
  "required": ["funding_total_usd", "funding_rounds", "relationships",
               "total_funding_usd", "funding_rounds_count", "investor_count"],
  "properties": {
    "funding_total_usd":    {"type": "number"},
    "funding_rounds":       {"type": "number"},
    "relationships":        {"type": "number"},
    "total_funding_usd":    {"type": "number"},
    "funding_rounds_count": {"type": "number"},
    "investor_count":       {"type": "number"}
  }
}`

var (
	predictSchema = mustSchema(predictSchemaJSON)
	clusterSchema = mustSchema(clusterSchemaJSON)
)

func mustSchema(source string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return schema
}

// ValidationDetail is one entry of a 422 response body.
type ValidationDetail struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

type validationResponse struct {
	Detail []ValidationDetail `json:"detail"`
}

// validateBody checks body against schema and, when it conforms, decodes it into dst.
// A nil result means dst is populated.
func validateBody(schema *gojsonschema.Schema, body []byte, dst any) []ValidationDetail {
	if !json.Valid(body) {
		return []ValidationDetail{{
			Loc:  []any{"body", 0},
			Msg:  "JSON decode error",
			Type: "json_invalid",
		}}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return []ValidationDetail{{Loc: []any{"body"}, Msg: err.Error(), Type: "json_invalid"}}
	}
	if !result.Valid() {
		details := make([]ValidationDetail, 0, len(result.Errors()))
		for _, resultErr := range result.Errors() {
			details = append(details, toDetail(resultErr))
		}
		return details
	}

	if err := json.Unmarshal(body, dst); err != nil {
		detail := ValidationDetail{Loc: []any{"body"}, Msg: err.Error(), Type: "value_error"}
		if typeErr, ok := err.(*json.UnmarshalTypeError); ok && typeErr.Field != "" {
			detail.Loc = []any{"body", typeErr.Field}
			detail.Msg = fmt.Sprintf("Input should be a valid %s", typeErr.Type.String())
			detail.Type = typeErr.Type.Kind().String() + "_type"
		}
		return []ValidationDetail{detail}
	}
	return nil
}

func toDetail(resultErr gojsonschema.ResultError) ValidationDetail {
	details := resultErr.Details()
	field := resultErr.Field()

	switch resultErr.Type() {
	case "required":
		property, _ := details["property"].(string)
		return ValidationDetail{Loc: []any{"body", property}, Msg: "Field required", Type: "missing"}
	case "invalid_type":
		expected, _ := details["expected"].(string)
		msg, typ := describeExpected(expected)
		loc := []any{"body"}
		if field != gojsonschema.STRING_CONTEXT_ROOT && field != "" {
			loc = append(loc, field)
		}
		return ValidationDetail{Loc: loc, Msg: msg, Type: typ}
	default:
		loc := []any{"body"}
		if field != gojsonschema.STRING_CONTEXT_ROOT && field != "" {
			loc = append(loc, field)
		}
		return ValidationDetail{Loc: loc, Msg: resultErr.Description(), Type: resultErr.Type()}
	}
}

func describeExpected(expected string) (string, string) {
	switch expected {
	case gojsonschema.TYPE_INTEGER:
		return "Input should be a valid integer", "int_type"
	case gojsonschema.TYPE_NUMBER:
		return "Input should be a valid number", "float_type"
	case gojsonschema.TYPE_STRING:
		return "Input should be a valid string", "string_type"
	case gojsonschema.TYPE_OBJECT:
		return "Input should be a valid dictionary or object", "model_attributes_type"
	default:
		return "Input should be a valid " + expected, expected + "_type"
	}
}
