package schema

import (
	"encoding/json"
	"fmt"
)

// Severity of a validation issue. Errors block saving, warnings do not.
type Severity string

const (
	Error   Severity = "error"
	Warning Severity = "warning"
)

// Issue is one validation finding against a block payload.
type Issue struct {
	BlockKey string
	Field    string
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.BlockKey, i.Field, i.Message)
}

// HasErrors reports whether any issue is blocking.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == Error {
			return true
		}
	}
	return false
}

// ValidateBlock checks a raw block payload against its declared shape.
// Unknown block types yield a single warning; the renderer tolerates them, so
// saving is not blocked.
func ValidateBlock(blockType, blockKey string, raw json.RawMessage) []Issue {
	def, ok := Lookup(blockType)
	if !ok {
		return []Issue{{
			BlockKey: blockKey,
			Severity: Warning,
			Message:  fmt.Sprintf("unknown block type %q", blockType),
		}}
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return []Issue{{
			BlockKey: blockKey,
			Severity: Error,
			Message:  "block payload is not a JSON object",
		}}
	}

	var issues []Issue
	for _, f := range def.Fields {
		issues = append(issues, validateField(blockKey, f, payload[f.Name])...)
	}
	return issues
}

func validateField(blockKey string, f Field, value interface{}) []Issue {
	var issues []Issue
	issue := func(sev Severity, format string, args ...interface{}) {
		issues = append(issues, Issue{
			BlockKey: blockKey,
			Field:    f.Name,
			Severity: sev,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if isEmptyValue(value) {
		if f.Required {
			issue(Error, "required field is missing")
		}
		return issues
	}

	switch f.Type {
	case TypeString, TypeText, TypeURL:
		s, ok := value.(string)
		if !ok {
			issue(Error, "expected a string")
			return issues
		}
		if f.MaxLength > 0 && len(s) > f.MaxLength {
			issue(Error, "exceeds maximum length of %d", f.MaxLength)
		}
		if f.WarnLength > 0 && len(s) > f.WarnLength {
			issue(Warning, "longer than the recommended %d characters", f.WarnLength)
		}
		if len(f.Options) > 0 && !contains(f.Options, s) {
			issue(Error, "value %q is not one of the allowed options", s)
		}
	case TypeNumber:
		if _, ok := value.(float64); !ok {
			issue(Error, "expected a number")
		}
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			issue(Error, "expected a boolean")
		}
	case TypeArray:
		items, ok := value.([]interface{})
		if !ok {
			issue(Error, "expected an array")
			return issues
		}
		if f.MinItems > 0 && len(items) < f.MinItems {
			issue(Error, "needs at least %d items", f.MinItems)
		}
		if f.MaxItems > 0 && len(items) > f.MaxItems {
			issue(Error, "allows at most %d items", f.MaxItems)
		}
		if len(f.Of) > 0 {
			for _, item := range items {
				obj, ok := item.(map[string]interface{})
				if !ok {
					continue
				}
				for _, sub := range f.Of {
					issues = append(issues, validateField(blockKey, sub, obj[sub.Name])...)
				}
			}
		}
	}
	return issues
}

func isEmptyValue(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []interface{}:
		return len(t) == 0
	case map[string]interface{}:
		return len(t) == 0
	}
	return false
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
