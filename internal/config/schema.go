package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON []byte

// ErrSchemaViolation indicates the config file does not match the schema.
var ErrSchemaViolation = errors.New("config does not match schema")

// CheckSchemaFile decodes the YAML (or JSON) document at path and validates
// it against the embedded config schema. Unknown keys are rejected so typos
// do not silently fall back to defaults.
func CheckSchemaFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from viper's resolved config file.
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return CheckSchema(data)
}

// CheckSchema validates a raw config document. An empty document passes.
func CheckSchema(data []byte) error {
	var doc map[string]any

	decodeErr := yaml.Unmarshal(data, &doc)
	if decodeErr != nil {
		return fmt.Errorf("decode config: %w", decodeErr)
	}

	if doc == nil {
		return nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", verr.Field(), verr.Description()))
	}

	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(problems, "; "))
}
