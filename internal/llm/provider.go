package llm

import "context"

// Provider sends a single prompt to a hosted model and returns the raw text
// of its answer. The answer is expected to be JSON matching Completion.Schema.
type Provider interface {
	Name() string
	Complete(ctx context.Context, c Completion) (string, error)
}

// Completion is one schema-constrained request to a model
type Completion struct {
	Prompt      string
	SchemaName  string
	Schema      *Schema
	Strict      bool
	Temperature float64
	MaxTokens   int
}

// SchemaType is a JSON Schema primitive type name
type SchemaType string

const (
	TypeObject  SchemaType = "object"
	TypeArray   SchemaType = "array"
	TypeString  SchemaType = "string"
	TypeInteger SchemaType = "integer"
	TypeNumber  SchemaType = "number"
	TypeBoolean SchemaType = "boolean"
)

// Schema is the subset of JSON Schema the providers understand.
// It marshals to standard JSON Schema.
type Schema struct {
	Type                 SchemaType         `json:"type"`
	Description          string             `json:"description,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty"`
}

// Closed marks an object schema as accepting no properties beyond the declared ones.
func (s *Schema) Closed() *Schema {
	no := false
	s.AdditionalProperties = &no
	return s
}
