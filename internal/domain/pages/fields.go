package pages

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Field is one entry of a page's custom form schema.
type Field struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type"` // "text" | "email" | "number" | "select" | "checkbox"
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"` // for "select"
}

// FieldSchema decodes the page's stored field schema. An empty Fields column
// means the page collects nothing beyond the customer email.
func (p *CheckoutPage) FieldSchema() ([]Field, error) {
	if strings.TrimSpace(p.Fields) == "" {
		return nil, nil
	}
	var fields []Field
	if err := json.Unmarshal([]byte(p.Fields), &fields); err != nil {
		return nil, fmt.Errorf("invalid field schema for page %d: %w", p.ID, err)
	}
	return fields, nil
}

// ValidateSubmission checks submitted form data against the schema.
// Unknown keys are rejected so sellers only ever see fields they defined.
func ValidateSubmission(fields []Field, data map[string]interface{}) error {
	known := make(map[string]Field, len(fields))
	for _, f := range fields {
		known[f.Name] = f
	}

	for key := range data {
		if _, ok := known[key]; !ok {
			return fmt.Errorf("unknown field %q", key)
		}
	}

	for _, f := range fields {
		v, present := data[f.Name]
		if !present || isEmptyValue(v) {
			if f.Required {
				return fmt.Errorf("field %q is required", f.Name)
			}
			continue
		}

		switch f.Type {
		case "number":
			if _, ok := v.(float64); !ok {
				return fmt.Errorf("field %q must be a number", f.Name)
			}
		case "checkbox":
			if _, ok := v.(bool); !ok {
				return fmt.Errorf("field %q must be a boolean", f.Name)
			}
		case "select":
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("field %q must be a string", f.Name)
			}
			if len(f.Options) > 0 && !contains(f.Options, s) {
				return fmt.Errorf("field %q has invalid option %q", f.Name, s)
			}
		case "email":
			s, ok := v.(string)
			if !ok || !strings.Contains(s, "@") {
				return fmt.Errorf("field %q must be an email address", f.Name)
			}
		default: // "text" and anything else
			if _, ok := v.(string); !ok {
				return fmt.Errorf("field %q must be a string", f.Name)
			}
		}
	}
	return nil
}

func isEmptyValue(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
