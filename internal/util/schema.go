package util

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents parameter validation errors with detailed information.
type ValidationError struct {
	Field   string `json:"field"`   // Field that failed validation
	Value   any    `json:"value"`   // Value that was provided
	Message string `json:"message"` // Human-readable error message
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// Parameter describes one named tool parameter. Its index inside a Schema is
// its position.
type Parameter struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
}

// Schema is an ordered parameter list. Unlike a JSON-Schema properties map it
// preserves declaration order, which positional argument mapping relies on.
type Schema struct {
	Parameters []Parameter `json:"parameters" yaml:"parameters"`
}

// NewSchema builds a Schema from parameters in positional order.
func NewSchema(params ...Parameter) Schema {
	return Schema{Parameters: params}
}

// IsZero reports whether the schema declares no parameters.
func (s Schema) IsZero() bool { return len(s.Parameters) == 0 }

// Names returns the parameter names in positional order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		names[i] = p.Name
	}

	return names
}

// Has reports whether name is a declared parameter.
func (s Schema) Has(name string) bool {
	for _, p := range s.Parameters {
		if p.Name == name {
			return true
		}
	}

	return false
}

// JSONSchema renders the schema as a JSON-Schema object definition.
func (s Schema) JSONSchema() map[string]any {
	properties := make(map[string]any, len(s.Parameters))
	required := make([]any, 0)

	for _, p := range s.Parameters {
		prop := map[string]any{"type": p.Type}
		if p.Type == "" {
			prop["type"] = "string"
		}

		if p.Description != "" {
			prop["description"] = p.Description
		}

		properties[p.Name] = prop

		if p.Required {
			required = append(required, p.Name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}

	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

// SchemaFromStruct derives a Schema from a Go struct using reflection. Field
// order defines parameter order; json tags name the parameters and
// description tags document them. Non-pointer fields without omitempty are
// required.
func SchemaFromStruct(structType any) Schema {
	t := reflect.TypeOf(structType)
	if t == nil {
		return Schema{}
	}

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return Schema{}
	}

	params := make([]Parameter, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		fieldName := field.Name
		if jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" {
				fieldName = parts[0]
			}
		}

		params = append(params, Parameter{
			Name:        fieldName,
			Type:        getJSONType(field.Type),
			Description: field.Tag.Get("description"),
			Required:    !hasOmitEmpty(jsonTag) && !isPointer(field.Type),
		})
	}

	return Schema{Parameters: params}
}

// ValidateParameters validates params against the schema using JSON-Schema
// semantics. The first violation is reported as a *ValidationError.
func ValidateParameters(params map[string]any, schema Schema) error {
	if params == nil {
		params = map[string]any{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema.JSONSchema()),
		gojsonschema.NewGoLoader(params),
	)
	if err != nil {
		return &ValidationError{Field: "(root)", Message: err.Error()}
	}

	if result.Valid() {
		return nil
	}

	first := result.Errors()[0]

	field := first.Field()
	if prop, ok := first.Details()["property"].(string); ok && prop != "" {
		field = prop // required errors report the parent object as field
	}

	return &ValidationError{
		Field:   field,
		Value:   first.Value(),
		Message: first.Description(),
	}
}

// getJSONType returns the JSON schema type for a given Go type.
func getJSONType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Ptr:
		return getJSONType(t.Elem())
	default:
		return "string"
	}
}

// hasOmitEmpty checks if a JSON tag has the "omitempty" option.
func hasOmitEmpty(tag string) bool {
	parts := strings.Split(tag, ",")
	for _, part := range parts[1:] {
		if strings.TrimSpace(part) == "omitempty" {
			return true
		}
	}
	return false
}

// isPointer checks if a type is a pointer.
func isPointer(t reflect.Type) bool {
	return t.Kind() == reflect.Ptr
}
