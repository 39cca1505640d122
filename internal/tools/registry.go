package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"summarizer-agent/internal/logger"

	"github.com/invopop/jsonschema"
	"github.com/sirupsen/logrus"
)

// Definition is the platform-facing description of a function tool
type Definition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Handler executes a tool call from its raw JSON arguments
type Handler func(ctx context.Context, arguments json.RawMessage) (string, error)

// FunctionTool is a Definition paired with the handler that serves it
type FunctionTool struct {
	Definition
	handler Handler
}

// NewFunctionTool builds a tool from a typed function. The parameter schema is
// generated from Args' json and jsonschema struct tags.
func NewFunctionTool[Args any](name, description string, fn func(context.Context, Args) (string, error)) (*FunctionTool, error) {
	if name == "" {
		return nil, fmt.Errorf("tool name cannot be empty")
	}
	if description == "" {
		return nil, fmt.Errorf("tool %s: description cannot be empty", name)
	}

	params, err := generateSchema[Args]()
	if err != nil {
		return nil, fmt.Errorf("error generating schema for %s: %w", name, err)
	}

	handler := func(ctx context.Context, arguments json.RawMessage) (string, error) {
		var args Args
		if len(strings.TrimSpace(string(arguments))) > 0 {
			if err := json.Unmarshal(arguments, &args); err != nil {
				return "", fmt.Errorf("error decoding arguments: %w", err)
			}
		}
		return fn(ctx, args)
	}

	return &FunctionTool{
		Definition: Definition{Name: name, Description: description, Parameters: params},
		handler:    handler,
	}, nil
}

// Registry holds the function tools exposed to the agent, in registration order
type Registry struct {
	tools map[string]*FunctionTool
	order []string
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*FunctionTool)}
}

// Register adds a tool; names must be unique
func (r *Registry) Register(tool *FunctionTool) error {
	if tool == nil {
		return fmt.Errorf("tool cannot be nil")
	}
	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("tool %s already registered", tool.Name)
	}

	r.tools[tool.Name] = tool
	r.order = append(r.order, tool.Name)

	logger.Log.WithField("tool", tool.Name).Debug("Registered tool")
	return nil
}

// Definitions returns the definitions of all registered tools
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition)
	}
	return defs
}

// Names returns the registered tool names
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Execute runs the named tool. Unknown tools and handler failures are
// reported in the returned output so the agent can see them.
func (r *Registry) Execute(ctx context.Context, name, arguments string) string {
	tool, ok := r.tools[name]
	if !ok {
		logger.Log.WithField("tool", name).Warn("Agent requested unknown tool")
		return fmt.Sprintf("Error: unknown tool %q", name)
	}

	start := time.Now()
	output, err := tool.handler(ctx, json.RawMessage(arguments))
	fields := logrus.Fields{
		"tool":        name,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		logger.Log.WithFields(fields).WithError(err).Warn("Tool execution failed")
		return fmt.Sprintf("Error: %s", err.Error())
	}

	fields["output_length"] = len(output)
	logger.Log.WithFields(fields).Info("Tool executed")
	return output
}

func generateSchema[T any]() (map[string]any, error) {
	reflector := &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		DoNotReference:             true,
	}

	schema := reflector.Reflect(new(T))

	data, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	delete(result, "$schema")
	delete(result, "$id")

	return result, nil
}
