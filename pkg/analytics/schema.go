package analytics

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

const (
	schemaOverview      = "overview.json"
	schemaSeries        = "series.json"
	schemaSubscriptions = "subscriptions.json"
	schemaTopContent    = "top_content.json"
)

// schemaSet compiles the embedded response schemas on first use.
type schemaSet struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

func newSchemaSet() *schemaSet {
	return &schemaSet{compiled: make(map[string]*jsonschema.Schema)}
}

// validate checks raw JSON against the named schema.
func (s *schemaSet) validate(name string, raw []byte) error {
	schema, err := s.schemaFor(name)
	if err != nil {
		return err
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidPayload, name, err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidPayload, name, err)
	}
	return nil
}

func (s *schemaSet) schemaFor(name string) (*jsonschema.Schema, error) {
	s.mu.RLock()
	schema, ok := s.compiled[name]
	s.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := schemaFiles.ReadFile("schemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("analytics: read schema %s: %w", name, err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("analytics: load schema %s: %w", name, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("analytics: compile schema %s: %w", name, err)
	}
	s.mu.Lock()
	s.compiled[name] = compiled
	s.mu.Unlock()
	return compiled, nil
}
