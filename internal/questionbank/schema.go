package questionbank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const datasetSchemaURL = "schema://question-dataset.json"

// datasetSchema describes {questions: [{id, question, options: [string]}]}.
const datasetSchema = `{
  "type": "object",
  "properties": {
    "questions": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": "integer"},
          "question": {"type": "string", "minLength": 1},
          "options": {"type": "array", "items": {"type": "string"}}
        },
        "required": ["id", "question", "options"]
      }
    }
  },
  "required": ["questions"]
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func datasetValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(datasetSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse dataset schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(datasetSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(datasetSchemaURL)
	})
	return compiled, compileErr
}

// Decode validates raw dataset JSON against the dataset schema and returns
// its questions in declared order.
func Decode(raw []byte) ([]Question, error) {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := datasetValidator()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var ds Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if ds.Questions == nil {
		ds.Questions = []Question{}
	}
	seen := make(map[int]bool, len(ds.Questions))
	for _, q := range ds.Questions {
		if seen[q.ID] {
			return nil, fmt.Errorf("duplicate question id %d", q.ID)
		}
		seen[q.ID] = true
	}
	return ds.Questions, nil
}
