// Package config loads the YAML workspace file that names environments
// and reusable requests for the run command.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Config is the top-level workspace file.
type Config struct {
	Environments map[string]Environment `yaml:"environments"`
	Requests     map[string]Request     `yaml:"requests"`
}

// Environment names a target to run requests against.
type Environment struct {
	BaseURL string            `yaml:"baseUrl"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Timeout string            `yaml:"timeout,omitempty"`
}

// Request is a reusable request template.
type Request struct {
	Method      string            `yaml:"method"`
	URL         string            `yaml:"url"`
	Headers     map[string]string `yaml:"headers,omitempty"`
	QueryParams map[string]string `yaml:"queryParams,omitempty"`
	Body        string            `yaml:"body,omitempty"`
	Extract     map[string]string `yaml:"extract,omitempty"`
}

// configSchema is the structural contract for the workspace file,
// enforced before the semantic checks in Validate run.
const configSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"environments": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"properties": {
					"baseUrl": {"type": "string"},
					"headers": {"type": "object", "additionalProperties": {"type": "string"}},
					"timeout": {"type": "string"}
				},
				"required": ["baseUrl"]
			}
		},
		"requests": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"properties": {
					"method": {"type": "string"},
					"url": {"type": "string"},
					"headers": {"type": "object", "additionalProperties": {"type": "string"}},
					"queryParams": {"type": "object", "additionalProperties": {"type": "string"}},
					"body": {"type": "string"},
					"extract": {"type": "object", "additionalProperties": {"type": "string"}}
				},
				"required": ["method", "url"]
			}
		}
	},
	"required": ["requests"]
}`

// Load reads, schema-checks, parses, and validates a workspace file.
// Validation reports every problem it finds, not just the first.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, fmt.Errorf("config file %s: %w", path, errors.Join(errs...))
	}
	return &cfg, nil
}

func validateSchema(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config.schema.json", strings.NewReader(configSchema)); err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}
	schema, err := compiler.Compile("config.schema.json")
	if err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}
