package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/pollux-motors/showroom/internal/model"
)

// Seed is the content of a catalog import file.
type Seed struct {
	Vehicles []model.Vehicle     `json:"vehicles"`
	Pages    []model.ContentPage `json:"pages"`
}

// ValidationError is a single schema violation in a seed file.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every schema violation found in a seed file.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return strings.Join(msgs, "; ")
}

const seedSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"vehicles": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name"],
				"properties": {
					"id": {"type": ["string", "integer"]},
					"name": {"type": "string", "minLength": 1},
					"brand": {"type": "string"},
					"model": {"type": "string"},
					"category": {"type": "string"},
					"year": {"type": ["string", "integer"]},
					"price": {"type": ["string", "number", "null"]},
					"description": {"type": "string"},
					"featured": {"type": "boolean"},
					"color": {"type": "string"},
					"image_url": {"type": "string"},
					"specs": {
						"type": "object",
						"additionalProperties": false,
						"properties": {
							"speed": {"type": ["string", "number", "null"]},
							"acceleration": {"type": ["string", "number", "null"]},
							"power": {"type": ["string", "number", "null"]},
							"range": {"type": ["string", "number", "null"]}
						}
					}
				}
			}
		},
		"pages": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "title"],
				"properties": {
					"id": {"type": ["string", "integer"]},
					"title": {"type": "string", "minLength": 1},
					"description": {"type": "string"},
					"kind": {"enum": ["car", "page", "feature", "service"]},
					"url": {"type": "string"},
					"author": {"type": "string"},
					"date": {"type": "string"}
				}
			}
		}
	}
}`

var seedSchemaLoader = gojsonschema.NewStringLoader(seedSchema)

// LoadSeed reads a YAML or JSON seed file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read seed %s", path)
	}
	seed, err := ParseSeed(data)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: seed %s", path)
	}
	return seed, nil
}

// ParseSeed validates data against the seed schema and decodes it. JSON is
// accepted as a subset of YAML. Schema violations are reported as
// *ValidationErrors.
func ParseSeed(data []byte) (*Seed, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "catalog: parse seed")
	}
	if doc == nil {
		doc = map[string]any{}
	}

	result, err := gojsonschema.Validate(seedSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, eris.Wrap(err, "catalog: validate seed")
	}
	if !result.Valid() {
		verrs := &ValidationErrors{}
		for _, desc := range result.Errors() {
			verrs.Errors = append(verrs.Errors, ValidationError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
		return nil, verrs
	}

	// Integer years are common in hand-written files.
	if vehicles, ok := doc["vehicles"].([]any); ok {
		for _, item := range vehicles {
			if v, ok := item.(map[string]any); ok {
				if y, ok := v["year"]; ok {
					v["year"] = fmt.Sprint(y)
				}
			}
		}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: encode seed")
	}
	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, eris.Wrap(err, "catalog: decode seed")
	}

	if err := checkUniqueIDs(seed); err != nil {
		return nil, err
	}
	return &seed, nil
}

func checkUniqueIDs(seed Seed) error {
	verrs := &ValidationErrors{}
	seen := make(map[model.ID]bool, len(seed.Vehicles))
	for i, v := range seed.Vehicles {
		if seen[v.ID] {
			verrs.Errors = append(verrs.Errors, ValidationError{
				Field:   fmt.Sprintf("vehicles.%d.id", i),
				Message: fmt.Sprintf("duplicate id %q", v.ID),
			})
		}
		seen[v.ID] = true
	}
	seen = make(map[model.ID]bool, len(seed.Pages))
	for i, p := range seed.Pages {
		if seen[p.ID] {
			verrs.Errors = append(verrs.Errors, ValidationError{
				Field:   fmt.Sprintf("pages.%d.id", i),
				Message: fmt.Sprintf("duplicate id %q", p.ID),
			})
		}
		seen[p.ID] = true
	}
	if len(verrs.Errors) > 0 {
		return verrs
	}
	return nil
}
