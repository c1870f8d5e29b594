package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema/config.schema.json
var configSchemaJSON string

//go:embed schema/hooks.schema.json
var hooksSchemaJSON string

var (
	configSchema = mustCompile("config.schema.json", configSchemaJSON)
	hooksSchema  = mustCompile("hooks.schema.json", hooksSchemaJSON)
)

func mustCompile(name, src string) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, bytes.NewReader([]byte(src))); err != nil {
		panic(fmt.Sprintf("config: bad embedded schema %s: %v", name, err))
	}
	return c.MustCompile(name)
}

// CheckSchema validates a raw configuration document against the
// embedded JSON Schema. Returns one message per violation; nil means the
// document is structurally sound. This catches shape errors (wrong
// types, unknown keys) before Validate checks semantic invariants.
func CheckSchema(data []byte) ([]string, error) {
	return checkAgainst(configSchema, data)
}

// CheckHooksSchema validates a hook manifest document (the file a hook
// source ships to declare its hooks).
func CheckHooksSchema(data []byte) ([]string, error) {
	return checkAgainst(hooksSchema, data)
}

func checkAgainst(schema *jsonschema.Schema, data []byte) ([]string, error) {
	doc, err := yamlToJSONValue(data)
	if err != nil {
		return nil, err
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil, nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, err
	}
	return flattenSchemaError(ve), nil
}

// yamlToJSONValue decodes YAML and round-trips through JSON so the value
// tree carries JSON-native types the schema validator expects.
func yamlToJSONValue(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting document: %w", err)
	}

	var out any
	if err := json.Unmarshal(jsonBytes, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// flattenSchemaError collects leaf violations with their instance paths.
func flattenSchemaError(ve *jsonschema.ValidationError) []string {
	var msgs []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			msgs = append(msgs, fmt.Sprintf("%s: %s", loc, e.Message))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return msgs
}
