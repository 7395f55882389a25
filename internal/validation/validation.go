// Package validation checks todo input before it reaches the store. The
// rules live in an embedded JSON Schema so the form and the CLI share them.
package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nhle/geotodo/internal/model"
)

const schemaURL = "https://geotodo.local/schemas/todo.json"

//go:embed todo.schema.json
var schemaJSON []byte

// ErrValidation is matched by every error this package returns.
var ErrValidation = errors.New("validation failed")

// ValidationError is a single failed rule.
type ValidationError struct {
	Path string // dotted field path, e.g. "location.latitude"
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports ErrValidation so callers can test any failure uniformly.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Errors collects every failed rule for one input.
type Errors struct {
	List []*ValidationError
}

func (e *Errors) Error() string {
	msgs := make([]string, len(e.List))
	for i, ve := range e.List {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *Errors) Unwrap() []error {
	out := make([]error, len(e.List))
	for i, ve := range e.List {
		out[i] = ve
	}
	return out
}

// Field returns the first failure at path, or nil.
func (e *Errors) Field(path string) error {
	for _, ve := range e.List {
		if ve.Path == path {
			return ve
		}
	}
	return nil
}

var (
	compileOnce  sync.Once
	fieldsSchema *jsonschema.Schema
	patchSchema  *jsonschema.Schema
	compileErr   error
)

func schemas() (*jsonschema.Schema, *jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		fieldsSchema, compileErr = compiler.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile schema: %w", compileErr)
			return
		}
		patchSchema, compileErr = compiler.Compile(schemaURL + "#/$defs/patch")
		if compileErr != nil {
			compileErr = fmt.Errorf("compile patch schema: %w", compileErr)
		}
	})
	return fieldsSchema, patchSchema, compileErr
}

// fieldsDoc mirrors model.TodoFields with empty enums omitted, since the
// store fills in their defaults.
type fieldsDoc struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Completed   bool            `json:"completed"`
	Status      model.Status    `json:"status,omitempty"`
	Priority    model.Priority  `json:"priority,omitempty"`
	DueDate     string          `json:"dueDate,omitempty"`
	Category    string          `json:"category,omitempty"`
	Location    *model.Location `json:"location,omitempty"`
}

// ValidateFields checks the input for a new todo.
func ValidateFields(fields model.TodoFields) error {
	fs, _, err := schemas()
	if err != nil {
		return err
	}
	return validate(fs, fieldsDoc{
		Title:       fields.Title,
		Description: fields.Description,
		Completed:   fields.Completed,
		Status:      fields.Status,
		Priority:    fields.Priority,
		DueDate:     fields.DueDate,
		Category:    fields.Category,
		Location:    fields.Location,
	})
}

// ValidatePatch checks only the fields the patch supplies.
func ValidatePatch(patch model.TodoPatch) error {
	_, ps, err := schemas()
	if err != nil {
		return err
	}

	doc := map[string]any{}
	if patch.Title != nil {
		doc["title"] = *patch.Title
	}
	if patch.Description != nil {
		doc["description"] = *patch.Description
	}
	if patch.Completed != nil {
		doc["completed"] = *patch.Completed
	}
	if patch.Status != nil {
		doc["status"] = *patch.Status
	}
	if patch.Priority != nil {
		doc["priority"] = *patch.Priority
	}
	if patch.DueDate != nil && *patch.DueDate != "" {
		doc["dueDate"] = *patch.DueDate
	}
	if patch.Category != nil {
		doc["category"] = *patch.Category
	}
	if patch.Location != nil && !patch.ClearLocation {
		doc["location"] = patch.Location
	}
	return validate(ps, doc)
}

func validate(schema *jsonschema.Schema, v any) error {
	// Round-trip through JSON so the validator sees plain maps and float64s.
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal input: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal input: %w", err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &Errors{List: []*ValidationError{{Err: err}}}
	}

	result := &Errors{}
	collectSchemaErrors(result, ve)
	return result
}

func collectSchemaErrors(result *Errors, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		path := jsonPointerToPath(err.InstanceLocation)
		if result.Field(path) != nil {
			return
		}
		result.List = append(result.List, &ValidationError{
			Path: path,
			Err:  errors.New(message(path, err.Message)),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// fieldMessages replaces the validator's wording for fields users type into.
var fieldMessages = map[string]string{
	"title":              "title is required",
	"dueDate":            "due date must be a valid YYYY-MM-DD date",
	"status":             "status must be one of pending, in-progress, done",
	"priority":           "priority must be one of low, medium, high",
	"location.latitude":  "latitude must be a number between -90 and 90",
	"location.longitude": "longitude must be a number between -180 and 180",
}

func message(path, fallback string) string {
	if msg, ok := fieldMessages[path]; ok {
		return msg
	}
	return fallback
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	parts := strings.Split(ptr, "/")
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		parts[i] = strings.ReplaceAll(p, "~0", "~")
	}
	return strings.Join(parts, ".")
}
