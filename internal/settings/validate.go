package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var ErrInvalidSettings = errors.New("invalid settings")

const projectSchemaJSON = `{
  "type": "object",
  "required": ["projectName", "budget", "priority", "teamMembers"],
  "properties": {
    "projectName": {"type": "string", "minLength": 1, "maxLength": 120},
    "description": {"type": "string", "maxLength": 2000},
    "dueDate": {"type": "string", "format": "date-time"},
    "budget": {"type": "number", "minimum": 0},
    "priority": {"enum": ["low", "medium", "high"]},
    "teamMembers": {
      "type": "array",
      "items": {"type": "string", "format": "email"},
      "uniqueItems": true
    }
  },
  "additionalProperties": false
}`

const emailSchemaJSON = `{"type": "string", "format": "email"}`

var (
	compileOnce   sync.Once
	projectSchema *jsonschema.Schema
	emailSchema   *jsonschema.Schema
	compileErr    error
)

func compileSchemas() error {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.AssertFormat()
		for url, src := range map[string]string{
			"schema://project_settings.json": projectSchemaJSON,
			"schema://user_email.json":       emailSchemaJSON,
		} {
			var doc any
			if err := json.Unmarshal([]byte(src), &doc); err != nil {
				compileErr = fmt.Errorf("parse %s: %w", url, err)
				return
			}
			if err := c.AddResource(url, doc); err != nil {
				compileErr = fmt.Errorf("add resource %s: %w", url, err)
				return
			}
		}
		if projectSchema, compileErr = c.Compile("schema://project_settings.json"); compileErr != nil {
			return
		}
		emailSchema, compileErr = c.Compile("schema://user_email.json")
	})
	return compileErr
}

// validateDocument checks the serialized project settings against the schema.
func validateDocument(raw []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if err := projectSchema.Validate(parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}

// ValidateEmail checks a single address. The empty string is allowed.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if err := compileSchemas(); err != nil {
		return err
	}
	if err := emailSchema.Validate(email); err != nil {
		return fmt.Errorf("%w: %q is not a valid email address", ErrInvalidSettings, email)
	}
	return nil
}
