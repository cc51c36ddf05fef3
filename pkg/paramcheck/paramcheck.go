// Package paramcheck validates a caller-supplied JSON array of command
// arguments against a zcl.CommandPrototype's parameter types before they
// ever reach the codec — arity and gross type mismatches produce a
// ParamValidationError instead of an opaque encode failure deep inside
// the controller.
package paramcheck

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/urmzd/zcl-harness/pkg/zcl"
)

// ParamValidationError describes why a JSON argument array did not
// satisfy a command's declared parameter shape.
type ParamValidationError struct {
	CommandName string
	Err         error
}

func (e *ParamValidationError) Error() string {
	return fmt.Sprintf("%s: invalid arguments: %v", e.CommandName, e.Err)
}

func (e *ParamValidationError) Unwrap() error { return e.Err }

// Checker compiles and caches a JSON Schema per distinct parameter
// shape.
type Checker struct {
	mu    sync.RWMutex
	cache map[string]*jsonschema.Schema
}

// NewChecker returns a Checker with an empty cache.
func NewChecker() *Checker {
	return &Checker{cache: make(map[string]*jsonschema.Schema)}
}

// Validate checks that args, a JSON array of positional argument
// values, matches proto's arity and each parameter's declared type.
func (c *Checker) Validate(proto *zcl.CommandPrototype, args json.RawMessage) error {
	compiled, err := c.compile(proto)
	if err != nil {
		return fmt.Errorf("compile param schema for %s: %w", proto.Name, err)
	}

	var payload any
	if err := json.Unmarshal(args, &payload); err != nil {
		return &ParamValidationError{CommandName: proto.Name, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	if err := compiled.Validate(payload); err != nil {
		return &ParamValidationError{CommandName: proto.Name, Err: err}
	}
	return nil
}

func (c *Checker) compile(proto *zcl.CommandPrototype) (*jsonschema.Schema, error) {
	key := schemaKey(proto)

	c.mu.RLock()
	if s, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return s, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.cache[key]; ok {
		return s, nil
	}

	schemaDoc := buildSchema(proto)

	var schemaMap any
	if err := json.Unmarshal(schemaDoc, &schemaMap); err != nil {
		return nil, fmt.Errorf("unmarshal generated schema: %w", err)
	}

	resourceName := "paramcheck-" + proto.Name + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceName, schemaMap); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	c.cache[key] = compiled
	return compiled, nil
}

// schemaKey distinguishes prototypes by their positional type
// signature — two different commands with identical param types share
// a cached schema.
func schemaKey(proto *zcl.CommandPrototype) string {
	key := ""
	for _, p := range proto.Params {
		key += string(p.Type) + ","
	}
	return key
}

// buildSchema synthesises a JSON Schema 2020-12 tuple schema from
// proto's ordered parameter types.
func buildSchema(proto *zcl.CommandPrototype) json.RawMessage {
	prefixItems := make([]map[string]any, len(proto.Params))
	for i, p := range proto.Params {
		prefixItems[i] = jsonTypeConstraint(p.Type)
	}

	doc := map[string]any{
		"$schema":     "https://json-schema.org/draft/2020-12/schema",
		"type":        "array",
		"prefixItems": prefixItems,
		"items":       false,
		"minItems":    len(proto.Params),
		"maxItems":    len(proto.Params),
	}

	b, _ := json.Marshal(doc)
	return b
}

func jsonTypeConstraint(tag zcl.DataType) map[string]any {
	switch tag {
	case zcl.Boolean:
		return map[string]any{"type": "boolean"}
	case zcl.CharString, zcl.LongCharString:
		return map[string]any{"type": "string"}
	case zcl.OctetString, zcl.LongOctetString:
		return map[string]any{"type": "array", "items": map[string]any{"type": "integer"}}
	case zcl.FloatSemi, zcl.FloatSingle, zcl.FloatDouble:
		return map[string]any{"type": "number"}
	default:
		return map[string]any{"type": "integer"}
	}
}
