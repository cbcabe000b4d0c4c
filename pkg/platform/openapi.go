package platform

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// openAPISchema accepts the subset of OpenAPI 3.x and Swagger 2.0 the
// gateway needs to publish a tool: a version marker, a titled info block
// and at least one path.
const openAPISchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["info", "paths"],
  "anyOf": [
    {"required": ["openapi"]},
    {"required": ["swagger"]}
  ],
  "properties": {
    "openapi": {"type": ["string", "number"]},
    "swagger": {"type": ["string", "number"]},
    "info": {
      "type": "object",
      "required": ["title"],
      "properties": {
        "title": {"type": "string", "minLength": 1},
        "description": {"type": "string"}
      }
    },
    "paths": {"type": "object", "minProperties": 1}
  }
}`

var openAPISchemaLoader = gojsonschema.NewStringLoader(openAPISchema)

// openAPIDoc is the part of a parsed document the gateway reads.
type openAPIDoc struct {
	Title       string
	Description string
	Paths       int
}

// parseOpenAPI decodes a JSON or YAML document and validates its shape.
func parseOpenAPI(doc string) (openAPIDoc, error) {
	if strings.TrimSpace(doc) == "" {
		return openAPIDoc{}, &OpenAPIError{Problems: []string{"document is empty"}}
	}

	var raw any
	if err := yaml.Unmarshal([]byte(doc), &raw); err != nil {
		return openAPIDoc{}, &OpenAPIError{Problems: []string{fmt.Sprintf("parse: %v", err)}}
	}
	raw = normalizeYAML(raw)

	result, err := gojsonschema.Validate(openAPISchemaLoader, gojsonschema.NewGoLoader(raw))
	if err != nil {
		return openAPIDoc{}, &OpenAPIError{Problems: []string{err.Error()}}
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return openAPIDoc{}, &OpenAPIError{Problems: problems}
	}

	root := raw.(map[string]any)
	info := root["info"].(map[string]any)
	out := openAPIDoc{Paths: len(root["paths"].(map[string]any))}
	out.Title, _ = info["title"].(string)
	out.Description, _ = info["description"].(string)
	return out, nil
}

// normalizeYAML turns the map[any]any nodes yaml produces for non-string
// keys (status codes under responses, for example) into JSON-compatible maps.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = normalizeYAML(child)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[fmt.Sprint(k)] = normalizeYAML(child)
		}
		return out
	case []any:
		for i, child := range t {
			t[i] = normalizeYAML(child)
		}
		return t
	default:
		return v
	}
}
